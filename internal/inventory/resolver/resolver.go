package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
)

type StockRepository interface {
	FindByExactName(ctx context.Context, name string) (*domain.StockItem, error)
	FindAll(ctx context.Context) ([]domain.StockItem, error)
}

// NotResolvedError reports that no stock item matched the requested name.
// It carries the full availability listing so the client can self-correct.
type NotResolvedError struct {
	Name      string
	Available []domain.StockAvailability
}

func (e *NotResolvedError) Error() string {
	names := make([]string, len(e.Available))
	for i, a := range e.Available {
		names[i] = a.Name
	}
	return fmt.Sprintf("Stock not found for item %q. Available items: %s",
		e.Name, strings.Join(names, ", "))
}

// Resolver maps free-text item names to stock records without a canonical
// ID system. Sales people type names by hand, so whitespace padding and
// case variation must resolve; anything else (including internal extra
// whitespace) must not.
type Resolver struct {
	repo   StockRepository
	logger *zap.Logger
}

func NewResolver(repo StockRepository, logger *zap.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve tries an exact lookup on the trimmed name, then falls back to a
// normalized-equality scan (trimmed, case-insensitive) over all stock.
func (r *Resolver) Resolve(ctx context.Context, name string) (*domain.StockItem, error) {
	searchName := strings.TrimSpace(name)

	item, err := r.repo.FindByExactName(ctx, searchName)
	if err == nil {
		return item, nil
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	all, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	normalized := strings.ToLower(searchName)
	for i := range all {
		if strings.ToLower(strings.TrimSpace(all[i].Name)) == normalized {
			r.logger.Debug("stock item resolved by normalized match",
				zap.String("requested", name), zap.String("matched", all[i].Name))
			return &all[i], nil
		}
	}

	available := make([]domain.StockAvailability, len(all))
	for i, item := range all {
		available[i] = domain.StockAvailability{Name: item.Name, Quantity: item.Quantity}
	}

	return nil, &NotResolvedError{Name: name, Available: available}
}
