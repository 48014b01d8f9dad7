package models

import (
	"math"
	"time"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheck        = "check"
	PaymentMethodCash         = "cash"
	PaymentMethodOnline       = "online"
)

type Payment struct {
	ID            int64     `json:"id" db:"id"`
	InvoiceID     int64     `json:"invoiceId" db:"invoice_id"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentDate   time.Time `json:"paymentDate" db:"payment_date"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method"`
	Status        string    `json:"status" db:"status"`
	Reference     *string   `json:"reference" db:"reference"`
	Notes         *string   `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Covers reports whether this single payment settles the whole invoice.
// Amounts are compared in cents so numeric(10,2) values round-trip exactly.
func (p *Payment) Covers(invoice *Invoice) bool {
	return ToCents(p.Amount) >= ToCents(invoice.Amount)
}

func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
