package memory

import (
	"context"
	"sync"

	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/jimlawless/whereami"
)

// EventJournal - журнал событий в памяти. Служит outbox-таблицей для публикации в брокер.
type EventJournal struct {
	mu      sync.RWMutex
	events  []domain.Event
	lastSeq uint64
	notify  chan struct{}
}

func NewEventJournal() *EventJournal {
	return &EventJournal{
		notify: make(chan struct{}, 1),
	}
}

// Append присваивает событию следующий порядковый номер и сохраняет его.
func (j *EventJournal) Append(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	j.mu.Lock()
	j.lastSeq++
	event.Seq = j.lastSeq
	j.events = append(j.events, *event)
	j.mu.Unlock()

	// Неблокирующее уведомление: одного ожидающего сигнала достаточно
	select {
	case j.notify <- struct{}{}:
	default:
	}

	stored := *event
	return &stored, nil
}

// After возвращает до limit событий с Seq > seq в порядке записи.
// limit <= 0 означает «без ограничения».
func (j *EventJournal) After(ctx context.Context, seq uint64, limit int) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	// Seq начинается с 1 и идёт без пропусков, поэтому индекс события равен Seq-1
	if seq >= uint64(len(j.events)) {
		return []domain.Event{}, nil
	}

	tail := j.events[seq:]
	if limit > 0 && len(tail) > limit {
		tail = tail[:limit]
	}

	result := make([]domain.Event, len(tail))
	copy(result, tail)

	return result, nil
}

// Notify возвращает канал, в который приходит сигнал после каждой записи.
func (j *EventJournal) Notify() <-chan struct{} {
	return j.notify
}

// LastSeq возвращает номер последнего записанного события.
func (j *EventJournal) LastSeq() uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.lastSeq
}
