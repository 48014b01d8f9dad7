package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/models"

	"github.com/jung-kurt/gofpdf"
)

const pdfDateLayout = "02 Jan 2006"

func renderInvoicePDF(inv *models.InvoiceWithRelations, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "RENT INVOICE")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice Number: %s", inv.InvoiceNumber))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Issue Date: %s", inv.IssueDate.Format(pdfDateLayout)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Due Date: %s", inv.DueDate.Format(pdfDateLayout)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", strings.ToUpper(inv.Status)))
	pdf.Ln(12)

	if inv.Contract != nil {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "BILL TO:")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		if t := inv.Contract.Tenant; t != nil {
			pdf.Cell(0, 6, t.FullName())
			pdf.Ln(6)
			pdf.Cell(0, 6, fmt.Sprintf("%s  |  %s", t.Email, t.Phone))
			pdf.Ln(6)
		}
		if p := inv.Contract.Property; p != nil {
			pdf.Cell(0, 6, fmt.Sprintf("Property: %s, %s", p.Name, p.Address))
			pdf.Ln(6)
		}
		pdf.Cell(0, 6, fmt.Sprintf("Lease: %s - %s", inv.Contract.StartDate.Format(pdfDateLayout), inv.Contract.EndDate.Format(pdfDateLayout)))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Monthly rent: %.2f  |  Deposit: %.2f", inv.Contract.MonthlyRent, common.SafeFloat64(inv.Contract.SecurityDeposit)))
		pdf.Ln(10)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	colWidths := []float64{130, 40}
	pdf.CellFormat(colWidths[0], 8, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, "Amount", "1", 0, "C", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	description := common.SafeString(inv.Description)
	if description == "" {
		description = "Rent"
	}
	pdf.CellFormat(colWidths[0], 8, description, "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%.2f", inv.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(14)

	if len(inv.Payments) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "PAYMENTS")
		pdf.Ln(8)

		pdf.SetFont("Arial", "B", 10)
		widths := []float64{40, 45, 45, 40}
		for i, header := range []string{"Date", "Method", "Status", "Amount"} {
			pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		for _, p := range inv.Payments {
			pdf.CellFormat(widths[0], 7, p.PaymentDate.Format(pdfDateLayout), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 7, strings.ReplaceAll(p.PaymentMethod, "_", " "), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[2], 7, p.Status, "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", p.Amount), "1", 0, "R", false, 0, "")
			pdf.Ln(7)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", generatedAt.Format(time.RFC1123)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
