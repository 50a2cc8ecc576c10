package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий продуктов в памяти процесса.
// Записи хранятся по значению, наружу отдаются только копии.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		products: make(map[int64]domain.Product),
	}
}

// Get возвращает копию продукта по идентификатору.
func (p *ProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	product, ok := p.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return &product, nil
}

// Insert добавляет новый продукт. Повторная вставка того же идентификатора запрещена.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.products[product.ID]; ok {
		return e.ErrDuplicateProduct
	}

	p.products[product.ID] = *product
	return nil
}

// Update перезаписывает существующий продукт.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.products[product.ID]; !ok {
		return e.ErrProductNotFound
	}

	p.products[product.ID] = *product
	return nil
}

// Delete удаляет продукт. Используется только для отката незавершённой операции.
func (p *ProductRepo) Delete(_ context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.products[id]; !ok {
		return e.ErrProductNotFound
	}

	delete(p.products, id)
	return nil
}

// List возвращает копии всех продуктов, отсортированные по идентификатору.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]domain.Product, 0, len(p.products))
	for _, product := range p.products {
		result = append(result, product)
	}

	slices.SortFunc(result, func(a, b domain.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return result, nil
}
