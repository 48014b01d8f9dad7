package handlers

import (
	"net/http"

	"propertymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// PaymentHandlers handles payment HTTP requests. A payment covering the full
// invoice amount marks the invoice paid.
type PaymentHandlers struct {
	payments services.PaymentService
}

func NewPaymentHandlers(payments services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{payments: payments}
}

func (h *PaymentHandlers) ListPayments(c echo.Context) error {
	payments, err := h.payments.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandlers) GetPayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	payment, err := h.payments.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandlers) CreatePayment(c echo.Context) error {
	var req services.CreatePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := h.payments.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandlers) UpdatePayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req services.UpdatePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := h.payments.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandlers) DeletePayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.payments.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return noContent(c)
}
