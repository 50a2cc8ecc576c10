package usecase

import (
	"context"

	"github.com/DRSN-tech/product-registry/internal/domain"
)

// RegistryUC - операции реестра продуктов, доступные транспортному слою.
type RegistryUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) error
	SellProduct(ctx context.Context, req *SellProductReq) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	TransferOwnership(ctx context.Context, req *TransferOwnershipReq) error
	InteractWithExternalRegistry(ctx context.Context, req *VerifyConditionReq) (bool, error)
	Owner(ctx context.Context) domain.Address
	Events(ctx context.Context, afterSeq uint64, limit int) ([]domain.Event, error)
}
