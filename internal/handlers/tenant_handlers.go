package handlers

import (
	"net/http"

	"propertymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant HTTP requests
type TenantHandlers struct {
	tenants services.TenantService
}

func NewTenantHandlers(tenants services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenants: tenants}
}

func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants, err := h.tenants.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenants)
}

func (h *TenantHandlers) GetTenant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	tenant, err := h.tenants.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req services.CreateTenantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tenant, err := h.tenants.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req services.UpdateTenantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tenant, err := h.tenants.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.tenants.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return noContent(c)
}
