package usecase

import "github.com/DRSN-tech/product-registry/internal/domain"

// REGISTRY USECASE

// CreateProductReq - запрос на регистрацию нового продукта.
type CreateProductReq struct {
	Caller    domain.Address
	ProductID int64
	Name      string
	Price     int64
}

// SellProductReq - запрос на продажу продукта покупателю.
type SellProductReq struct {
	Caller    domain.Address
	ProductID int64
	Buyer     domain.Address
}

// TransferOwnershipReq - запрос на смену администратора реестра.
type TransferOwnershipReq struct {
	Caller   domain.Address
	NewOwner domain.Address
}

// VerifyConditionReq - запрос на проверку условия во внешнем реестре.
type VerifyConditionReq struct {
	Caller    domain.Address
	Condition ExternalCondition
	Param     int64
}

// INFRASTRUCTURE

// WriteMessageReq - сообщение для публикации в брокер.
type WriteMessageReq struct {
	Key     string
	EventID string
	Payload []byte
}

// MAPPERS

func NewCreateProductReq(caller domain.Address, id int64, name string, price int64) *CreateProductReq {
	return &CreateProductReq{
		Caller:    caller,
		ProductID: id,
		Name:      name,
		Price:     price,
	}
}

func NewSellProductReq(caller domain.Address, id int64, buyer domain.Address) *SellProductReq {
	return &SellProductReq{
		Caller:    caller,
		ProductID: id,
		Buyer:     buyer,
	}
}

func NewTransferOwnershipReq(caller, newOwner domain.Address) *TransferOwnershipReq {
	return &TransferOwnershipReq{
		Caller:   caller,
		NewOwner: newOwner,
	}
}

func NewVerifyConditionReq(caller domain.Address, condition ExternalCondition, param int64) *VerifyConditionReq {
	return &VerifyConditionReq{
		Caller:    caller,
		Condition: condition,
		Param:     param,
	}
}

func NewWriteMessageReq(key, eventID string, payload []byte) WriteMessageReq {
	return WriteMessageReq{
		Key:     key,
		EventID: eventID,
		Payload: payload,
	}
}
