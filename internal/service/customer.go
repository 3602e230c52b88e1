package service

import (
	"context"
	"fmt"

	"github.com/umalmyha/customers-viewer/internal/filter"
	"github.com/umalmyha/customers-viewer/internal/model"
	"github.com/umalmyha/customers-viewer/internal/repository"
)

// CustomerService composes server-side role filter with client-side search
type CustomerService interface {
	FindAll(context.Context, model.RoleFilter) ([]model.Customer, error)
	Search(context.Context, model.RoleFilter, string) ([]model.Customer, error)
	Refresh(context.Context, model.RoleFilter) ([]model.Customer, error)
}

type customerService struct {
	customerRps repository.CustomerRepository
}

// NewCustomerService builds new customer service
func NewCustomerService(customerRps repository.CustomerRepository) CustomerService {
	return &customerService{customerRps: customerRps}
}

func (s *customerService) FindAll(ctx context.Context, f model.RoleFilter) ([]model.Customer, error) {
	customers, err := s.customerRps.FindAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers - %w", err)
	}
	return customers, nil
}

func (s *customerService) Search(ctx context.Context, f model.RoleFilter, text string) ([]model.Customer, error) {
	customers, err := s.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return filter.Visible(customers, text), nil
}

func (s *customerService) Refresh(ctx context.Context, f model.RoleFilter) ([]model.Customer, error) {
	customers, err := s.customerRps.Fetch(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh customers - %w", err)
	}
	return customers, nil
}
