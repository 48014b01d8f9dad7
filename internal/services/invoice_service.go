package services

import (
	"context"
	"fmt"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/metrics"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"
)

type InvoiceService interface {
	Create(ctx context.Context, req *CreateInvoiceRequest) (*models.Invoice, error)
	GetByID(ctx context.Context, id int64) (*models.InvoiceWithRelations, error)
	Update(ctx context.Context, id int64, req *UpdateInvoiceRequest) (*models.Invoice, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.InvoiceWithContract, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	RenderPDF(ctx context.Context, id int64) (*models.InvoiceWithRelations, []byte, error)
}

type invoiceService struct {
	repos *repositories.Repositories
	tx    repositories.Transactor
	now   func() time.Time
}

func NewInvoiceService(repos *repositories.Repositories, tx repositories.Transactor) InvoiceService {
	return &invoiceService{repos: repos, tx: tx, now: time.Now}
}

type CreateInvoiceRequest struct {
	InvoiceNumber string     `json:"invoiceNumber" validate:"omitempty,max=50"`
	ContractID    int64      `json:"contractId" validate:"required,gt=0"`
	Amount        *float64   `json:"amount" validate:"required,gt=0,money"`
	DueDate       *Timestamp `json:"dueDate" validate:"required"`
	IssueDate     *Timestamp `json:"issueDate"`
	Status        string     `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	Description   *string    `json:"description"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string    `json:"invoiceNumber" validate:"omitempty,min=1,max=50"`
	ContractID    *int64     `json:"contractId" validate:"omitempty,gt=0"`
	Amount        *float64   `json:"amount" validate:"omitempty,gt=0,money"`
	DueDate       *Timestamp `json:"dueDate"`
	IssueDate     *Timestamp `json:"issueDate"`
	Status        *string    `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	Description   *string    `json:"description"`
}

// invoiceNumber formats INV-YYYYMM-NNNNNN from the issue month and a sequence value.
func invoiceNumber(issued time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%06d", issued.Format("200601"), seq)
}

func (s *invoiceService) Create(ctx context.Context, req *CreateInvoiceRequest) (*models.Invoice, error) {
	invoice := &models.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		ContractID:    req.ContractID,
		Amount:        *req.Amount,
		DueDate:       req.DueDate.Time(),
		IssueDate:     s.now(),
		Status:        req.Status,
		Description:   req.Description,
	}
	if req.IssueDate != nil {
		invoice.IssueDate = req.IssueDate.Time()
	}
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusPending
	}

	if invoice.InvoiceNumber == "" {
		seq, err := s.repos.Invoices.NextInvoiceSequence(ctx)
		if err != nil {
			return nil, common.Unexpected("generate invoice number", err)
		}
		invoice.InvoiceNumber = invoiceNumber(invoice.IssueDate, seq)
	}

	if err := s.repos.Invoices.Create(ctx, invoice); err != nil {
		return nil, repoError("Invoice", "create invoice", err)
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id int64) (*models.InvoiceWithRelations, error) {
	invoice, err := s.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("Invoice", "fetch invoice", err)
	}

	expanded, err := relationLoader{repos: s.repos}.invoicesWithContract(ctx, []models.Invoice{*invoice})
	if err != nil {
		return nil, common.Unexpected("fetch invoice relations", err)
	}
	payments, err := s.repos.Payments.ListByInvoiceID(ctx, id)
	if err != nil {
		return nil, common.Unexpected("fetch invoice payments", err)
	}

	return &models.InvoiceWithRelations{
		Invoice:  *invoice,
		Contract: expanded[0].Contract,
		Payments: payments,
	}, nil
}

func (s *invoiceService) Update(ctx context.Context, id int64, req *UpdateInvoiceRequest) (*models.Invoice, error) {
	var updated *models.Invoice
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		existing, err := r.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.InvoiceNumber != nil {
			existing.InvoiceNumber = *req.InvoiceNumber
		}
		if req.ContractID != nil {
			existing.ContractID = *req.ContractID
		}
		if req.Amount != nil {
			existing.Amount = *req.Amount
		}
		if req.DueDate != nil {
			existing.DueDate = req.DueDate.Time()
		}
		if req.IssueDate != nil {
			existing.IssueDate = req.IssueDate.Time()
		}
		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.Description != nil {
			existing.Description = req.Description
		}

		if err := r.Invoices.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, repoError("Invoice", "update invoice", err)
	}
	return updated, nil
}

func (s *invoiceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Invoices.Delete(ctx, id); err != nil {
		return deleteError("Invoice", err)
	}
	return nil
}

func (s *invoiceService) List(ctx context.Context) ([]models.InvoiceWithContract, error) {
	invoices, err := s.repos.Invoices.List(ctx)
	if err != nil {
		return nil, common.Unexpected("fetch invoices", err)
	}
	expanded, err := relationLoader{repos: s.repos}.invoicesWithContract(ctx, invoices)
	if err != nil {
		return nil, common.Unexpected("fetch invoice relations", err)
	}
	return expanded, nil
}

// MarkOverdue moves pending invoices whose due date has passed to overdue.
func (s *invoiceService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repos.Invoices.MarkOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	metrics.RecordLifecycleEvent(metrics.EventInvoiceOverdue, int(n))
	return n, nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id int64) (*models.InvoiceWithRelations, []byte, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := renderInvoicePDF(invoice, s.now())
	if err != nil {
		return nil, nil, common.Unexpected("render invoice pdf", err)
	}
	return invoice, doc, nil
}
