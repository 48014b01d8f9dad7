package models

import (
	"time"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

type Invoice struct {
	ID            int64     `json:"id" db:"id"`
	InvoiceNumber string    `json:"invoiceNumber" db:"invoice_number"`
	ContractID    int64     `json:"contractId" db:"contract_id"`
	Amount        float64   `json:"amount" db:"amount"`
	DueDate       time.Time `json:"dueDate" db:"due_date"`
	IssueDate     time.Time `json:"issueDate" db:"issue_date"`
	Status        string    `json:"status" db:"status"`
	Description   *string   `json:"description" db:"description"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
