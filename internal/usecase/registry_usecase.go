package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/DRSN-tech/product-registry/pkg/logger"
)

// RegistryUseCase реализует реестр продуктов с единственным администратором.
//
// Все операции, включая вызов внешнего реестра и запись события, выполняются
// под одним мьютексом: следующая операция начинается только после полного
// завершения предыдущей. При ошибке состояние не меняется.
//
// Продажи выполняет только администратор от имени текущего держателя продукта,
// сам держатель передать продукт не может.
type RegistryUseCase struct {
	mu          sync.Mutex
	owner       domain.Address
	productRepo ProductRepository
	journal     EventJournal
	logger      logger.Logger
}

// NewRegistryUC создаёт реестр, администратором которого становится owner (вызывающий конструктор).
func NewRegistryUC(
	owner domain.Address,
	productRepo ProductRepository,
	journal EventJournal,
	logger logger.Logger,
) (*RegistryUseCase, error) {
	const op = "NewRegistryUC"

	if owner.IsZero() {
		return nil, e.Wrap(op, e.ErrInvalidAddress)
	}

	return &RegistryUseCase{
		owner:       owner,
		productRepo: productRepo,
		journal:     journal,
		logger:      logger,
	}, nil
}

// CreateProduct регистрирует новый продукт под опекой администратора.
func (r *RegistryUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) error {
	const op = "RegistryUseCase.CreateProduct"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireOwner(req.Caller); err != nil {
		return e.Wrap(op, err)
	}

	if err := validateProduct(req); err != nil {
		return e.Wrap(op, err)
	}

	product := domain.NewProduct(req.ProductID, req.Name, req.Price, r.owner)
	if err := r.productRepo.Insert(ctx, product); err != nil {
		return e.Wrap(op, err)
	}

	err := r.emit(ctx, domain.ProductCreatedPayload{
		ProductID: product.ID,
		Name:      product.Name,
		Owner:     r.owner,
		Price:     product.Price,
	})
	if err != nil {
		// Откат вставки, чтобы продукт не существовал без события
		if delErr := r.productRepo.Delete(context.WithoutCancel(ctx), product.ID); delErr != nil {
			r.logger.Errorf(delErr, "failed to roll back product %d", product.ID)
		}
		return e.Wrap(op, err)
	}

	r.logger.Infof("product created: id=%d name=%q price=%d", product.ID, product.Name, product.Price)
	return nil
}

// SellProduct передаёт продукт покупателю и переводит его в состояние Sold.
func (r *RegistryUseCase) SellProduct(ctx context.Context, req *SellProductReq) error {
	const op = "RegistryUseCase.SellProduct"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireOwner(req.Caller); err != nil {
		return e.Wrap(op, err)
	}

	if req.Buyer.IsZero() {
		return e.Wrap(op, e.ErrInvalidAddress)
	}

	product, err := r.productRepo.Get(ctx, req.ProductID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if product.IsSold() {
		return e.Wrap(op, e.ErrProductAlreadySold)
	}

	if product.CurrentOwner != req.Caller {
		return e.Wrap(op, e.ErrNotOwnerOfProduct)
	}

	before := *product
	seller := product.CurrentOwner
	product.Sell(req.Buyer)

	if err := r.productRepo.Update(ctx, product); err != nil {
		return e.Wrap(op, err)
	}

	err = r.emit(ctx, domain.ProductSoldPayload{
		ProductID: product.ID,
		Seller:    seller,
		Buyer:     req.Buyer,
		Price:     product.Price,
	})
	if err != nil {
		// Отмена ctx не должна прерывать откат
		if rbErr := r.productRepo.Update(context.WithoutCancel(ctx), &before); rbErr != nil {
			r.logger.Errorf(rbErr, "failed to roll back sale of product %d", product.ID)
		}
		return e.Wrap(op, err)
	}

	r.logger.Infof("product sold: id=%d buyer=%s", product.ID, req.Buyer)
	return nil
}

// GetProduct возвращает копию записи продукта. Авторизация не требуется.
func (r *RegistryUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "RegistryUseCase.GetProduct"

	r.mu.Lock()
	defer r.mu.Unlock()

	product, err := r.productRepo.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// ListProducts возвращает все продукты, отсортированные по идентификатору.
func (r *RegistryUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "RegistryUseCase.ListProducts"

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// TransferOwnership передаёт права администратора реестра.
func (r *RegistryUseCase) TransferOwnership(ctx context.Context, req *TransferOwnershipReq) error {
	const op = "RegistryUseCase.TransferOwnership"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireOwner(req.Caller); err != nil {
		return e.Wrap(op, err)
	}

	if req.NewOwner.IsZero() {
		return e.Wrap(op, e.ErrInvalidAddress)
	}

	oldOwner := r.owner
	r.owner = req.NewOwner

	err := r.emit(ctx, domain.OwnershipTransferredPayload{
		OldOwner: oldOwner,
		NewOwner: req.NewOwner,
	})
	if err != nil {
		r.owner = oldOwner
		return e.Wrap(op, err)
	}

	r.logger.Infof("registry ownership transferred: %s -> %s", oldOwner, req.NewOwner)
	return nil
}

// InteractWithExternalRegistry проверяет условие во внешнем реестре.
// Невыполненное условие и любая ошибка внешнего реестра возвращаются как
// ErrConditionVerificationFailed, событие при этом не пишется. Паника внешнего
// реестра (например, типизированный nil) тоже считается ошибкой проверки.
func (r *RegistryUseCase) InteractWithExternalRegistry(ctx context.Context, req *VerifyConditionReq) (bool, error) {
	const op = "RegistryUseCase.InteractWithExternalRegistry"

	r.mu.Lock()
	defer r.mu.Unlock()

	if req.Condition == nil {
		return false, e.Wrap(op, e.ErrConditionVerificationFailed)
	}

	ok, err := verifyCondition(ctx, req.Condition, req.Param)
	if err != nil {
		r.logger.Warnf("external registry call failed: param=%d: %v", req.Param, err)
		return false, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrConditionVerificationFailed, err))
	}

	if !ok {
		return false, e.Wrap(op, e.ErrConditionVerificationFailed)
	}

	err = r.emit(ctx, domain.ConditionVerifiedPayload{
		Caller: req.Caller,
		Param:  req.Param,
	})
	if err != nil {
		return false, e.Wrap(op, err)
	}

	return true, nil
}

// Owner возвращает текущего администратора реестра.
func (r *RegistryUseCase) Owner(_ context.Context) domain.Address {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.owner
}

// Events возвращает события журнала с порядковым номером больше afterSeq.
func (r *RegistryUseCase) Events(ctx context.Context, afterSeq uint64, limit int) ([]domain.Event, error) {
	const op = "RegistryUseCase.Events"

	events, err := r.journal.After(ctx, afterSeq, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return events, nil
}

// requireOwner - единственная проверка доступа для изменяющих операций.
func (r *RegistryUseCase) requireOwner(caller domain.Address) error {
	if caller != r.owner {
		return e.ErrUnauthorized
	}

	return nil
}

// emit записывает событие в журнал.
func (r *RegistryUseCase) emit(ctx context.Context, payload domain.EventPayload) error {
	event, err := r.journal.Append(ctx, domain.NewEvent(payload))
	if err != nil {
		return err
	}

	r.logger.Debugf("event emitted: seq=%d type=%s id=%s", event.Seq, event.Type, event.ID)
	return nil
}

// verifyCondition вызывает внешний реестр и превращает его панику в ошибку.
// Так ведёт себя, например, nil-указатель на конкретный реестр, упакованный в интерфейс.
func verifyCondition(ctx context.Context, cond ExternalCondition, param int64) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok, err = false, fmt.Errorf("external registry panicked: %v", rec)
		}
	}()

	return cond.VerifyCondition(ctx, param)
}

// validateProduct проверяет корректность входных данных запроса на создание продукта.
func validateProduct(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price < 0 {
		return e.ErrPriceMustBeNonNegative
	}

	return nil
}
