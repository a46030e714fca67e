package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listasEnMemoria implements the two list commands the DLQ uses. Any other
// redis.Cmdable method panics on the nil embedded interface.
type listasEnMemoria struct {
	redis.Cmdable
	listas map[string][]string
	err    error
}

func (r *listasEnMemoria) LPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	if r.err != nil {
		return redis.NewIntResult(0, r.err)
	}
	for _, v := range values {
		var s string
		switch x := v.(type) {
		case []byte:
			s = string(x)
		case string:
			s = x
		}
		r.listas[key] = append([]string{s}, r.listas[key]...)
	}
	return redis.NewIntResult(int64(len(r.listas[key])), nil)
}

func (r *listasEnMemoria) LLen(_ context.Context, key string) *redis.IntCmd {
	return redis.NewIntResult(int64(len(r.listas[key])), r.err)
}

type handlerQueFalla struct{}

func (handlerQueFalla) Process(context.Context, json.RawMessage) error {
	return errors.New("smtp rechazado")
}

func TestPool_HandleAparcaJobFallido(t *testing.T) {
	rdb := &listasEnMemoria{listas: map[string][]string{}}
	p := NewPool(rdb, 1)
	p.Register(QueueRecibos, JobRecibo, handlerQueFalla{})

	raw, err := json.Marshal(Job{Type: JobRecibo, Payload: json.RawMessage(`{"venta_id":"v1"}`)})
	require.NoError(t, err)
	p.handle(context.Background(), QueueRecibos, string(raw))

	n, err := DLQLength(context.Background(), rdb, QueueRecibos)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.Len(t, rdb.listas["dlq:"+QueueRecibos], 1)
	var fallido JobFallido
	require.NoError(t, json.Unmarshal([]byte(rdb.listas["dlq:"+QueueRecibos][0]), &fallido))
	assert.Equal(t, QueueRecibos, fallido.Cola)
	assert.Equal(t, JobRecibo, fallido.Job.Type)
	assert.JSONEq(t, `{"venta_id":"v1"}`, string(fallido.Job.Payload))
	assert.Equal(t, "smtp rechazado", fallido.Error)
	assert.Equal(t, maxAttempts, fallido.Intentos)
	assert.False(t, fallido.FalloEn.IsZero())
}

func TestAparcar_ErrorDeRedisNoEntraEnPanico(t *testing.T) {
	rdb := &listasEnMemoria{listas: map[string][]string{}, err: errors.New("redis caido")}

	assert.NotPanics(t, func() {
		aparcar(context.Background(), rdb, QueueRecibos, Job{Type: JobRecibo}, 1, errors.New("x"))
	})
	_, err := DLQLength(context.Background(), rdb, QueueRecibos)
	assert.Error(t, err)
}
