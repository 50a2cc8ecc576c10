package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/product-registry/internal/cfg"
	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/internal/repository/memory"
	"github.com/DRSN-tech/product-registry/internal/usecase"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	mu       sync.Mutex
	sent     []usecase.WriteMessageReq
	failures int
}

func (f *fakeProducer) WriteMessages(_ context.Context, reqs ...usecase.WriteMessageReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failures > 0 {
		f.failures--
		return errors.New("broker not available")
	}

	f.sent = append(f.sent, reqs...)
	return nil
}

func (f *fakeProducer) Sent() []usecase.WriteMessageReq {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]usecase.WriteMessageReq(nil), f.sent...)
}

func testKafkaCfg() *cfg.KafkaCfg {
	return &cfg.KafkaCfg{
		BatchSize:    2,
		PollInterval: 20 * time.Millisecond,
		MaxBackoff:   50 * time.Millisecond,
	}
}

func appendEvents(t *testing.T, j *memory.EventJournal, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		_, err := j.Append(context.Background(), domain.NewEvent(domain.ProductCreatedPayload{ProductID: id, Name: "p"}))
		require.NoError(t, err)
	}
}

func TestOutboxWorker_PublishesInOrder(t *testing.T) {
	journal := memory.NewEventJournal()
	producer := &fakeProducer{}
	appendEvents(t, journal, 1, 2, 3)

	w := NewOutboxWorker(journal, producer, logger.NewNopLogger(), testKafkaCfg())
	w.Start(context.Background())
	t.Cleanup(w.Stop)

	require.Eventually(t, func() bool { return w.Cursor() == 3 }, time.Second, 5*time.Millisecond)

	appendEvents(t, journal, 4)
	require.Eventually(t, func() bool { return w.Cursor() == 4 }, time.Second, 5*time.Millisecond)

	sent := producer.Sent()
	require.Len(t, sent, 4)
	for i, msg := range sent {
		var ev struct {
			Seq     uint64 `json:"seq"`
			Type    string `json:"type"`
			Payload struct {
				ProductID int64 `json:"product_id"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		require.Equal(t, uint64(i+1), ev.Seq)
		require.Equal(t, string(domain.EventProductCreated), ev.Type)
		require.Equal(t, int64(i+1), ev.Payload.ProductID)
		require.NotEmpty(t, msg.EventID)
	}
}

func TestOutboxWorker_RetriesAfterFailure(t *testing.T) {
	journal := memory.NewEventJournal()
	producer := &fakeProducer{failures: 2}
	appendEvents(t, journal, 1)

	w := NewOutboxWorker(journal, producer, logger.NewNopLogger(), testKafkaCfg())
	w.Start(context.Background())
	t.Cleanup(w.Stop)

	require.Eventually(t, func() bool { return w.Cursor() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Len(t, producer.Sent(), 1)
}

func TestOutboxWorker_StopIsIdempotent(t *testing.T) {
	w := NewOutboxWorker(memory.NewEventJournal(), &fakeProducer{}, logger.NewNopLogger(), testKafkaCfg())
	w.Start(context.Background())

	w.Stop()
	w.Stop()
	require.Equal(t, uint64(0), w.Cursor())
}

func TestToWriteMessageReq(t *testing.T) {
	owner := domain.MustParseAddress("0x00000000000000000000000000000000000000a1")
	ev := domain.NewEvent(domain.OwnershipTransferredPayload{OldOwner: owner, NewOwner: owner})
	ev.Seq = 9

	req, err := ToWriteMessageReq(*ev)
	require.NoError(t, err)
	require.Equal(t, "registry:owner", req.Key)
	require.Equal(t, ev.ID, req.EventID)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(req.Payload, &decoded))
	require.Equal(t, "OwnershipTransferred", decoded["type"])
	require.EqualValues(t, 9, decoded["seq"])
	require.Equal(t, owner.String(), decoded["payload"].(map[string]any)["new_owner"])
}

func TestIsRetryableError(t *testing.T) {
	require.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	require.True(t, isRetryableError(errors.New("Broker Not Available")))
	require.False(t, isRetryableError(errors.New("message too large")))
	require.False(t, isRetryableError(nil))
}
