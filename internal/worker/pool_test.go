package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandler struct{ recibidos []json.RawMessage }

func (h *fakeHandler) Process(_ context.Context, raw json.RawMessage) error {
	h.recibidos = append(h.recibidos, raw)
	return nil
}

func TestPool_HandleDispatchesByType(t *testing.T) {
	p := NewPool(nil, 2)
	h := &fakeHandler{}
	p.Register(QueueRecibos, JobRecibo, h)
	p.Register(QueueRecibos, "otro", &fakeHandler{})

	raw, err := json.Marshal(Job{Type: JobRecibo, Payload: json.RawMessage(`{"venta_id":"v"}`)})
	require.NoError(t, err)
	p.handle(context.Background(), QueueRecibos, string(raw))
	p.handle(context.Background(), QueueRecibos, "no es json")
	p.handle(context.Background(), QueueRecibos, `{"type":"desconocido"}`)

	require.Len(t, h.recibidos, 1)
	assert.JSONEq(t, `{"venta_id":"v"}`, string(h.recibidos[0]))
	assert.Equal(t, []string{QueueRecibos}, p.queues)
}

func TestWithRetry(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, time.Millisecond, func(int) error {
		calls++
		if calls < 3 {
			return errors.New("todavia no")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = withRetry(context.Background(), 2, time.Millisecond, func(int) error {
		calls++
		return errors.New("siempre")
	})
	assert.EqualError(t, err, "siempre")
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := withRetry(ctx, 3, time.Hour, func(int) error { return errors.New("x") })
	assert.ErrorIs(t, err, context.Canceled)
}
