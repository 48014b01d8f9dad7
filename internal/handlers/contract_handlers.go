package handlers

import (
	"net/http"

	"propertymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// ContractHandlers handles lease contract HTTP requests. Creating and deleting
// a contract also moves its property between rented and available.
type ContractHandlers struct {
	contracts services.ContractService
}

func NewContractHandlers(contracts services.ContractService) *ContractHandlers {
	return &ContractHandlers{contracts: contracts}
}

func (h *ContractHandlers) ListContracts(c echo.Context) error {
	contracts, err := h.contracts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contracts)
}

func (h *ContractHandlers) GetContract(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	contract, err := h.contracts.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contract)
}

func (h *ContractHandlers) CreateContract(c echo.Context) error {
	var req services.CreateContractRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	contract, err := h.contracts.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandlers) UpdateContract(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req services.UpdateContractRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	contract, err := h.contracts.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contract)
}

func (h *ContractHandlers) DeleteContract(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.contracts.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return noContent(c)
}
