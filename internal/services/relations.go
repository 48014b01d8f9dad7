package services

import (
	"context"

	"propertymanager/internal/models"
	"propertymanager/internal/repositories"
)

// relationLoader expands rows with their related entities by batch-loading
// each related table once per call.
type relationLoader struct {
	repos *repositories.Repositories
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func indexByID[T any](items []T, id func(*T) int64) map[int64]*T {
	index := make(map[int64]*T, len(items))
	for i := range items {
		index[id(&items[i])] = &items[i]
	}
	return index
}

func (l relationLoader) tenants(ctx context.Context, ids []int64) (map[int64]*models.Tenant, error) {
	tenants, err := l.repos.Tenants.ListByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	return indexByID(tenants, func(t *models.Tenant) int64 { return t.ID }), nil
}

func (l relationLoader) properties(ctx context.Context, ids []int64) (map[int64]*models.Property, error) {
	properties, err := l.repos.Properties.ListByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	return indexByID(properties, func(p *models.Property) int64 { return p.ID }), nil
}

func (l relationLoader) contractsWithParties(ctx context.Context, contracts []models.Contract) ([]models.ContractWithParties, error) {
	propertyIDs := make([]int64, 0, len(contracts))
	tenantIDs := make([]int64, 0, len(contracts))
	for _, c := range contracts {
		propertyIDs = append(propertyIDs, c.PropertyID)
		tenantIDs = append(tenantIDs, c.TenantID)
	}

	properties, err := l.properties(ctx, propertyIDs)
	if err != nil {
		return nil, err
	}
	tenants, err := l.tenants(ctx, tenantIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.ContractWithParties, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, models.ContractWithParties{
			Contract: c,
			Property: properties[c.PropertyID],
			Tenant:   tenants[c.TenantID],
		})
	}
	return out, nil
}

func (l relationLoader) invoicesWithContract(ctx context.Context, invoices []models.Invoice) ([]models.InvoiceWithContract, error) {
	contractIDs := make([]int64, 0, len(invoices))
	for _, inv := range invoices {
		contractIDs = append(contractIDs, inv.ContractID)
	}

	contracts, err := l.repos.Contracts.ListByIDs(ctx, uniqueIDs(contractIDs))
	if err != nil {
		return nil, err
	}
	expanded, err := l.contractsWithParties(ctx, contracts)
	if err != nil {
		return nil, err
	}
	byID := indexByID(expanded, func(c *models.ContractWithParties) int64 { return c.ID })

	out := make([]models.InvoiceWithContract, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, models.InvoiceWithContract{Invoice: inv, Contract: byID[inv.ContractID]})
	}
	return out, nil
}

func (l relationLoader) maintenanceWithRelations(ctx context.Context, requests []models.MaintenanceRequest) ([]models.MaintenanceWithRelations, error) {
	propertyIDs := make([]int64, 0, len(requests))
	tenantIDs := make([]int64, 0, len(requests))
	for _, m := range requests {
		propertyIDs = append(propertyIDs, m.PropertyID)
		if m.TenantID != nil {
			tenantIDs = append(tenantIDs, *m.TenantID)
		}
	}

	properties, err := l.properties(ctx, propertyIDs)
	if err != nil {
		return nil, err
	}
	tenants, err := l.tenants(ctx, tenantIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.MaintenanceWithRelations, 0, len(requests))
	for _, m := range requests {
		item := models.MaintenanceWithRelations{MaintenanceRequest: m, Property: properties[m.PropertyID]}
		if m.TenantID != nil {
			item.Tenant = tenants[*m.TenantID]
		}
		out = append(out, item)
	}
	return out, nil
}

func (l relationLoader) paymentsWithRelations(ctx context.Context, payments []models.Payment) ([]models.PaymentWithRelations, error) {
	invoiceIDs := make([]int64, 0, len(payments))
	for _, p := range payments {
		invoiceIDs = append(invoiceIDs, p.InvoiceID)
	}

	invoices, err := l.repos.Invoices.ListByIDs(ctx, uniqueIDs(invoiceIDs))
	if err != nil {
		return nil, err
	}
	expanded, err := l.invoicesWithContract(ctx, invoices)
	if err != nil {
		return nil, err
	}
	byID := indexByID(expanded, func(inv *models.InvoiceWithContract) int64 { return inv.ID })

	out := make([]models.PaymentWithRelations, 0, len(payments))
	for _, p := range payments {
		out = append(out, models.PaymentWithRelations{Payment: p, Invoice: byID[p.InvoiceID]})
	}
	return out, nil
}
