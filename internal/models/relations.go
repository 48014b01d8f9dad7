package models

// Read-side projections returned by the "with relations" endpoints.

type ContractWithTenant struct {
	Contract
	Tenant *Tenant `json:"tenant"`
}

type MaintenanceWithTenant struct {
	MaintenanceRequest
	Tenant *Tenant `json:"tenant"`
}

type PropertyWithRelations struct {
	Property
	Contracts           []ContractWithTenant    `json:"contracts"`
	MaintenanceRequests []MaintenanceWithTenant `json:"maintenanceRequests"`
}

type ContractWithParties struct {
	Contract
	Property *Property `json:"property"`
	Tenant   *Tenant   `json:"tenant"`
}

type ContractWithRelations struct {
	Contract
	Property *Property `json:"property"`
	Tenant   *Tenant   `json:"tenant"`
	Invoices []Invoice `json:"invoices"`
}

type InvoiceWithContract struct {
	Invoice
	Contract *ContractWithParties `json:"contract"`
}

type InvoiceWithRelations struct {
	Invoice
	Contract *ContractWithParties `json:"contract"`
	Payments []Payment            `json:"payments"`
}

type MaintenanceWithRelations struct {
	MaintenanceRequest
	Property *Property `json:"property"`
	Tenant   *Tenant   `json:"tenant"`
}

type PaymentWithRelations struct {
	Payment
	Invoice *InvoiceWithContract `json:"invoice"`
}
