package service

import (
	"context"
	"strings"

	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
)

type Repository interface {
	Insert(ctx context.Context, m domain.Material) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Material, error)
	FindAll(ctx context.Context) ([]domain.Material, error)
	Delete(ctx context.Context, id uint) error
}

type MaterialsService struct {
	repo Repository
}

func NewService(repo Repository) *MaterialsService {
	return &MaterialsService{repo: repo}
}

func (s *MaterialsService) Add(ctx context.Context, m domain.Material) (*domain.Material, error) {
	if strings.TrimSpace(m.InvoiceID) == "" ||
		strings.TrimSpace(m.Name) == "" ||
		strings.TrimSpace(m.SupplierName) == "" ||
		m.Quantity <= 0 || m.LotPrice <= 0 {
		return nil, apperrors.NewValidationError("Please provide all details")
	}

	id, err := s.repo.Insert(ctx, m)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *MaterialsService) Get(ctx context.Context, id uint) (*domain.Material, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MaterialsService) List(ctx context.Context) ([]domain.Material, error) {
	return s.repo.FindAll(ctx)
}

func (s *MaterialsService) Remove(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
