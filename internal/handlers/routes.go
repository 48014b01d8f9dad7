package handlers

import (
	"propertymanager/internal/metrics"
	"propertymanager/internal/middleware"
	"propertymanager/internal/models"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Routes bundles every handler group mounted on the server.
type Routes struct {
	Auth        *AuthHandlers
	Properties  *PropertyHandlers
	Tenants     *TenantHandlers
	Contracts   *ContractHandlers
	Invoices    *InvoiceHandlers
	Maintenance *MaintenanceHandlers
	Payments    *PaymentHandlers
	Users       *UserHandlers
	Dashboard   *DashboardHandlers
	Health      *HealthHandlers

	// Session authenticates /api routes other than login and logout.
	Session echo.MiddlewareFunc
}

func RegisterRoutes(e *echo.Echo, r *Routes) {
	e.GET("/health", r.Health.LivenessCheck)
	e.GET("/health/ready", r.Health.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", r.Auth.Login)
	auth.POST("/logout", r.Auth.Logout)
	auth.GET("/me", r.Auth.Me, r.Session)

	protected := api.Group("", r.Session)

	protected.GET("/dashboard/stats", r.Dashboard.GetStats)

	protected.GET("/properties", r.Properties.ListProperties)
	protected.POST("/properties", r.Properties.CreateProperty)
	protected.GET("/properties/:id", r.Properties.GetProperty)
	protected.PUT("/properties/:id", r.Properties.UpdateProperty)
	protected.DELETE("/properties/:id", r.Properties.DeleteProperty)
	protected.POST("/properties/:id/image", r.Properties.UploadImage)
	protected.GET("/properties/:id/image", r.Properties.GetImage)

	protected.GET("/tenants", r.Tenants.ListTenants)
	protected.POST("/tenants", r.Tenants.CreateTenant)
	protected.GET("/tenants/:id", r.Tenants.GetTenant)
	protected.PUT("/tenants/:id", r.Tenants.UpdateTenant)
	protected.DELETE("/tenants/:id", r.Tenants.DeleteTenant)

	protected.GET("/contracts", r.Contracts.ListContracts)
	protected.POST("/contracts", r.Contracts.CreateContract)
	protected.GET("/contracts/:id", r.Contracts.GetContract)
	protected.PUT("/contracts/:id", r.Contracts.UpdateContract)
	protected.DELETE("/contracts/:id", r.Contracts.DeleteContract)

	protected.GET("/invoices", r.Invoices.ListInvoices)
	protected.POST("/invoices", r.Invoices.CreateInvoice)
	protected.GET("/invoices/:id", r.Invoices.GetInvoice)
	protected.PUT("/invoices/:id", r.Invoices.UpdateInvoice)
	protected.DELETE("/invoices/:id", r.Invoices.DeleteInvoice)
	protected.GET("/invoices/:id/pdf", r.Invoices.GenerateInvoicePDF)

	protected.GET("/maintenance", r.Maintenance.ListRequests)
	protected.POST("/maintenance", r.Maintenance.CreateRequest)
	protected.GET("/maintenance/:id", r.Maintenance.GetRequest)
	protected.PUT("/maintenance/:id", r.Maintenance.UpdateRequest)
	protected.DELETE("/maintenance/:id", r.Maintenance.DeleteRequest)

	protected.GET("/payments", r.Payments.ListPayments)
	protected.POST("/payments", r.Payments.CreatePayment)
	protected.GET("/payments/:id", r.Payments.GetPayment)
	protected.PUT("/payments/:id", r.Payments.UpdatePayment)
	protected.DELETE("/payments/:id", r.Payments.DeletePayment)

	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", r.Users.ListUsers)
	admin.POST("/users", r.Users.CreateUser)
	admin.GET("/users/:id", r.Users.GetUser)
	admin.PUT("/users/:id", r.Users.UpdateUser)
	admin.DELETE("/users/:id", r.Users.DeleteUser)
}
