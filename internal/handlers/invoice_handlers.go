package handlers

import (
	"fmt"
	"net/http"

	"propertymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// InvoiceHandlers handles HTTP requests for invoices
type InvoiceHandlers struct {
	invoices services.InvoiceService
}

func NewInvoiceHandlers(invoices services.InvoiceService) *InvoiceHandlers {
	return &InvoiceHandlers{invoices: invoices}
}

func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	invoices, err := h.invoices.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	invoice, err := h.invoices.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// CreateInvoice handles POST /api/invoices. An empty invoiceNumber is generated.
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	var req services.CreateInvoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	invoice, err := h.invoices.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandlers) UpdateInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req services.UpdateInvoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	invoice, err := h.invoices.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.invoices.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return noContent(c)
}

// GenerateInvoicePDF streams the rendered invoice as an attachment
func (h *InvoiceHandlers) GenerateInvoicePDF(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	invoice, doc, err := h.invoices.RenderPDF(c.Request().Context(), id)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", invoice.InvoiceNumber+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", doc)
}
