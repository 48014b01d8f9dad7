package services

import (
	"context"

	"propertymanager/internal/common"
	"propertymanager/internal/metrics"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"
)

type PaymentService interface {
	// Create records the payment and marks the invoice paid when this single
	// payment covers the full invoice amount. Earlier payments are not summed.
	Create(ctx context.Context, req *CreatePaymentRequest) (*models.Payment, error)
	GetByID(ctx context.Context, id int64) (*models.PaymentWithRelations, error)
	Update(ctx context.Context, id int64, req *UpdatePaymentRequest) (*models.Payment, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.PaymentWithRelations, error)
}

type paymentService struct {
	repos *repositories.Repositories
	tx    repositories.Transactor
}

func NewPaymentService(repos *repositories.Repositories, tx repositories.Transactor) PaymentService {
	return &paymentService{repos: repos, tx: tx}
}

type CreatePaymentRequest struct {
	InvoiceID     int64      `json:"invoiceId" validate:"required,gt=0"`
	Amount        *float64   `json:"amount" validate:"required,gt=0,money"`
	PaymentDate   *Timestamp `json:"paymentDate" validate:"required"`
	PaymentMethod string     `json:"paymentMethod" validate:"required,oneof=bank_transfer check cash online"`
	Status        string     `json:"status" validate:"omitempty,oneof=pending completed failed"`
	Reference     *string    `json:"reference"`
	Notes         *string    `json:"notes"`
}

type UpdatePaymentRequest struct {
	InvoiceID     *int64     `json:"invoiceId" validate:"omitempty,gt=0"`
	Amount        *float64   `json:"amount" validate:"omitempty,gt=0,money"`
	PaymentDate   *Timestamp `json:"paymentDate"`
	PaymentMethod *string    `json:"paymentMethod" validate:"omitempty,oneof=bank_transfer check cash online"`
	Status        *string    `json:"status" validate:"omitempty,oneof=pending completed failed"`
	Reference     *string    `json:"reference"`
	Notes         *string    `json:"notes"`
}

func (s *paymentService) Create(ctx context.Context, req *CreatePaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{
		InvoiceID:     req.InvoiceID,
		Amount:        *req.Amount,
		PaymentDate:   req.PaymentDate.Time(),
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		Reference:     req.Reference,
		Notes:         req.Notes,
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	paid := false
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}

		invoice, err := r.Invoices.GetByID(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if !payment.Covers(invoice) || invoice.Status == models.InvoiceStatusPaid {
			return nil
		}

		if err := r.Invoices.UpdateStatus(ctx, invoice.ID, models.InvoiceStatusPaid); err != nil {
			return err
		}
		paid = true
		return nil
	})
	if err != nil {
		return nil, repoError("Invoice", "create payment", err)
	}

	if paid {
		metrics.RecordLifecycleEvent(metrics.EventInvoicePaid, 1)
		common.Logger.WithField("payment_id", payment.ID).Debugf("Invoice %d marked paid", payment.InvoiceID)
	}
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id int64) (*models.PaymentWithRelations, error) {
	payment, err := s.repos.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("Payment", "fetch payment", err)
	}
	expanded, err := relationLoader{repos: s.repos}.paymentsWithRelations(ctx, []models.Payment{*payment})
	if err != nil {
		return nil, common.Unexpected("fetch payment relations", err)
	}
	return &expanded[0], nil
}

func (s *paymentService) Update(ctx context.Context, id int64, req *UpdatePaymentRequest) (*models.Payment, error) {
	var updated *models.Payment
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		existing, err := r.Payments.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.InvoiceID != nil {
			existing.InvoiceID = *req.InvoiceID
		}
		if req.Amount != nil {
			existing.Amount = *req.Amount
		}
		if req.PaymentDate != nil {
			existing.PaymentDate = req.PaymentDate.Time()
		}
		if req.PaymentMethod != nil {
			existing.PaymentMethod = *req.PaymentMethod
		}
		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.Reference != nil {
			existing.Reference = req.Reference
		}
		if req.Notes != nil {
			existing.Notes = req.Notes
		}

		if err := r.Payments.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, repoError("Payment", "update payment", err)
	}
	return updated, nil
}

func (s *paymentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Payments.Delete(ctx, id); err != nil {
		return deleteError("Payment", err)
	}
	return nil
}

func (s *paymentService) List(ctx context.Context) ([]models.PaymentWithRelations, error) {
	payments, err := s.repos.Payments.List(ctx)
	if err != nil {
		return nil, common.Unexpected("fetch payments", err)
	}
	expanded, err := relationLoader{repos: s.repos}.paymentsWithRelations(ctx, payments)
	if err != nil {
		return nil, common.Unexpected("fetch payment relations", err)
	}
	return expanded, nil
}
