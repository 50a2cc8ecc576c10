package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EventType - тип события реестра.
type EventType string

const (
	EventProductCreated       EventType = "ProductCreated"
	EventProductSold          EventType = "ProductSold"
	EventOwnershipTransferred EventType = "OwnershipTransferred"
	EventConditionVerified    EventType = "ConditionVerified"
)

// EventPayload - данные конкретного события.
type EventPayload interface {
	EventType() EventType
	// PartitionKey определяет ключ сообщения в брокере: события одного продукта идут в одну партицию.
	PartitionKey() string
}

// Event - запись журнала событий реестра.
// Seq назначается журналом при добавлении и строго возрастает.
type Event struct {
	ID        string       `json:"event_id"`
	Seq       uint64       `json:"seq"`
	Type      EventType    `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	Payload   EventPayload `json:"payload"`
}

func NewEvent(payload EventPayload) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      payload.EventType(),
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
}

type ProductCreatedPayload struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Owner     Address `json:"owner"`
	Price     int64   `json:"price"`
}

func (ProductCreatedPayload) EventType() EventType { return EventProductCreated }

func (p ProductCreatedPayload) PartitionKey() string { return productKey(p.ProductID) }

type ProductSoldPayload struct {
	ProductID int64   `json:"product_id"`
	Seller    Address `json:"seller"`
	Buyer     Address `json:"buyer"`
	Price     int64   `json:"price"`
}

func (ProductSoldPayload) EventType() EventType { return EventProductSold }

func (p ProductSoldPayload) PartitionKey() string { return productKey(p.ProductID) }

type OwnershipTransferredPayload struct {
	OldOwner Address `json:"old_owner"`
	NewOwner Address `json:"new_owner"`
}

func (OwnershipTransferredPayload) EventType() EventType { return EventOwnershipTransferred }

func (OwnershipTransferredPayload) PartitionKey() string { return "registry:owner" }

// ConditionVerifiedPayload фиксирует успешную проверку условия во внешнем реестре.
type ConditionVerifiedPayload struct {
	Caller Address `json:"caller"`
	Param  int64   `json:"param"`
}

func (ConditionVerifiedPayload) EventType() EventType { return EventConditionVerified }

func (ConditionVerifiedPayload) PartitionKey() string { return "registry:condition" }

func productKey(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}
