package handlers

import (
	"net/http"

	"propertymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// MaintenanceHandlers handles maintenance request HTTP requests
type MaintenanceHandlers struct {
	maintenance services.MaintenanceService
}

func NewMaintenanceHandlers(maintenance services.MaintenanceService) *MaintenanceHandlers {
	return &MaintenanceHandlers{maintenance: maintenance}
}

func (h *MaintenanceHandlers) ListRequests(c echo.Context) error {
	requests, err := h.maintenance.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *MaintenanceHandlers) GetRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	request, err := h.maintenance.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

func (h *MaintenanceHandlers) CreateRequest(c echo.Context) error {
	var req services.CreateMaintenanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	request, err := h.maintenance.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, request)
}

func (h *MaintenanceHandlers) UpdateRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req services.UpdateMaintenanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	request, err := h.maintenance.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

func (h *MaintenanceHandlers) DeleteRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.maintenance.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return noContent(c)
}
