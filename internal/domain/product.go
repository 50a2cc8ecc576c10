package domain

import "fmt"

// ProductState - стадия жизненного цикла продукта.
type ProductState uint8

const (
	ProductCreated ProductState = iota
	ProductSold
)

func (s ProductState) String() string {
	switch s {
	case ProductCreated:
		return "Created"
	case ProductSold:
		return "Sold"
	default:
		return fmt.Sprintf("ProductState(%d)", uint8(s))
	}
}

// Product описывает запись реестра
type Product struct {
	ID           int64
	Name         string
	Price        int64 // Цена хранится в минимальных неделимых единицах
	CurrentOwner Address
	State        ProductState
}

func NewProduct(id int64, name string, price int64, owner Address) *Product {
	return &Product{
		ID:           id,
		Name:         name,
		Price:        price,
		CurrentOwner: owner,
		State:        ProductCreated,
	}
}

// IsSold сообщает, был ли продукт уже продан.
func (p *Product) IsSold() bool {
	return p.State == ProductSold
}

// Sell передаёт продукт покупателю. Переход Created -> Sold выполняется ровно один раз.
func (p *Product) Sell(buyer Address) {
	p.CurrentOwner = buyer
	p.State = ProductSold
}
