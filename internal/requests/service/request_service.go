package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tnrsteel/internal/auth"
	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
)

type RequestRepository interface {
	Insert(ctx context.Context, req domain.Request) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Request, error)
	FindAll(ctx context.Context) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id uint, status string, decidedBy string) error
	DeleteIfPending(ctx context.Context, id uint) (bool, error)
}

// RequestService runs the requisition state machine shared by material and
// production requests: pending -> approved | rejected, delete only while
// pending. Re-deciding an already-decided request is allowed; only deletion
// is restricted.
type RequestService struct {
	repo   RequestRepository
	logger *zap.Logger
}

func NewRequestService(repo RequestRepository, logger *zap.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, actor auth.Actor, itemRef string, quantity int) (*domain.Request, error) {
	if strings.TrimSpace(itemRef) == "" || quantity <= 0 {
		return nil, apperrors.NewValidationError("Please provide all details")
	}

	req := domain.Request{
		ItemRef:     strings.TrimSpace(itemRef),
		Quantity:    quantity,
		Status:      domain.RequestStatusPending,
		RequestedBy: actor.ID,
	}

	id, err := s.repo.Insert(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("request created",
		zap.Uint("requestId", id), zap.String("itemRef", req.ItemRef),
		zap.Int("quantity", quantity), zap.String("requestedBy", actor.ID))

	return created, nil
}

func (s *RequestService) List(ctx context.Context) ([]domain.Request, error) {
	return s.repo.FindAll(ctx)
}

func (s *RequestService) SetStatus(ctx context.Context, actor auth.Actor, id uint, status string) (*domain.Request, error) {
	if !domain.IsDecidableStatus(status) {
		return nil, apperrors.NewValidationError("Invalid status")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status, actor.ID); err != nil {
		return nil, err
	}

	s.logger.Info("request decided",
		zap.Uint("requestId", id), zap.String("status", status), zap.String("decidedBy", actor.ID))

	return s.repo.FindByID(ctx, id)
}

func (s *RequestService) Delete(ctx context.Context, id uint) error {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Status != domain.RequestStatusPending {
		return apperrors.NewValidationError("Only pending requests can be deleted")
	}

	deleted, err := s.repo.DeleteIfPending(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		// Decided between the read and the delete.
		return apperrors.NewValidationError("Only pending requests can be deleted")
	}

	s.logger.Info("request deleted", zap.Uint("requestId", id))
	return nil
}
