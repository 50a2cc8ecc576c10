package usecase

import (
	"context"

	"github.com/DRSN-tech/product-registry/internal/domain"
)

// ProductRepository хранит записи реестра. Наружу отдаются только копии.
type ProductRepository interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Product, error)
}

// EventJournal - упорядоченный журнал событий реестра, он же outbox для брокера.
type EventJournal interface {
	Append(ctx context.Context, event *domain.Event) (*domain.Event, error)
	After(ctx context.Context, seq uint64, limit int) ([]domain.Event, error)
	Notify() <-chan struct{}
}
