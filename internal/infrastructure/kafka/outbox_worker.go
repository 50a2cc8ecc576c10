package kafka

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/product-registry/internal/cfg"
	"github.com/DRSN-tech/product-registry/internal/usecase"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/DRSN-tech/product-registry/pkg/jitter"
	"github.com/DRSN-tech/product-registry/pkg/logger"
)

const baseBackoff = 200 * time.Millisecond

// OutboxWorker переносит события из журнала реестра в Kafka.
// Курсор сдвигается только после успешной отправки, поэтому доставка «как минимум один раз».
type OutboxWorker struct {
	journal      usecase.EventJournal
	producer     usecase.MessageProducer
	logger       logger.Logger
	batchSize    int
	pollInterval time.Duration
	maxBackoff   time.Duration
	cursor       atomic.Uint64
	stop         chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

func NewOutboxWorker(
	journal usecase.EventJournal,
	producer usecase.MessageProducer,
	logger logger.Logger,
	cfg *cfg.KafkaCfg,
) *OutboxWorker {
	return &OutboxWorker{
		journal:      journal,
		producer:     producer,
		logger:       logger,
		batchSize:    cfg.BatchSize,
		pollInterval: cfg.PollInterval,
		maxBackoff:   cfg.MaxBackoff,
		stop:         make(chan struct{}),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Stop останавливает воркер и дожидается завершения текущей пачки.
func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	w.wg.Wait()
}

// Cursor возвращает номер последнего опубликованного события.
func (w *OutboxWorker) Cursor() uint64 {
	return w.cursor.Load()
}

func (w *OutboxWorker) run(ctx context.Context) {
	// Обрабатываем "остатки" при старте
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped by context cancellation")
			return
		case <-w.stop:
			w.logger.Infof("Outbox worker stopped")
			return
		case <-w.journal.Notify():
			w.logger.Debugf("Received journal notification, draining outbox events")
			w.drain(ctx)
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain отправляет пачки до тех пор, пока журнал не опустеет.
// При ошибке повторяет попытку с экспоненциальной задержкой.
func (w *OutboxWorker) drain(ctx context.Context) {
	attempt := 0
	for {
		hasMore, err := w.processBatch(ctx)
		if err == nil {
			attempt = 0
			if !hasMore {
				return
			}
			continue
		}

		if isRetryableError(err) {
			w.logger.Warnf("Temporary Kafka failure, will retry: %v", err)
		} else {
			w.logger.Errorf(err, "Kafka publish failed, will retry")
		}

		delay := jitter.ExponentialBackoff(baseBackoff, w.maxBackoff, attempt, jitter.DefaultJitter)
		attempt++

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-w.stop:
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	const op = "OutboxWorker.processBatch"

	events, err := w.journal.After(ctx, w.cursor.Load(), w.batchSize)
	if err != nil {
		return false, e.Wrap(op, err)
	}

	if len(events) == 0 {
		return false, nil
	}

	reqs := make([]usecase.WriteMessageReq, 0, len(events))
	for _, event := range events {
		req, err := ToWriteMessageReq(event)
		if err != nil {
			// Сериализация детерминирована: повтор не поможет, событие пропускается
			w.logger.Errorf(err, "skip outbox event seq=%d id=%s", event.Seq, event.ID)
			continue
		}
		reqs = append(reqs, req)
	}

	if err := w.producer.WriteMessages(ctx, reqs...); err != nil {
		return false, e.Wrap(op, err)
	}

	w.cursor.Store(events[len(events)-1].Seq)
	return len(events) == w.batchSize, nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
