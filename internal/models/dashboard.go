package models

type DashboardStats struct {
	TotalProperties    int64   `json:"totalProperties"`
	ActiveTenants      int64   `json:"activeTenants"`
	ActiveContracts    int64   `json:"activeContracts"`
	PendingMaintenance int64   `json:"pendingMaintenance"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
}
