package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// JobFallido is a job parked after its handler gave up. Parked jobs are kept
// newest first in "dlq:<cola>" until an operator replays or drops them.
type JobFallido struct {
	Cola     string    `json:"cola"`
	Job      Job       `json:"job"`
	Error    string    `json:"error"`
	Intentos int       `json:"intentos"`
	FalloEn  time.Time `json:"fallo_en"`
}

func claveDLQ(cola string) string { return "dlq:" + cola }

// aparcar moves a failed job to the dead letter list of its queue. It only
// logs on failure: the job has already been consumed from the queue.
func aparcar(ctx context.Context, rdb redis.Cmdable, cola string, job Job, intentos int, causa error) {
	l := log.With().Str("queue", cola).Str("job_type", job.Type).Int("attempts", intentos).Logger()

	data, err := json.Marshal(JobFallido{
		Cola:     cola,
		Job:      job,
		Error:    causa.Error(),
		Intentos: intentos,
		FalloEn:  time.Now().UTC(),
	})
	if err == nil {
		err = rdb.LPush(ctx, claveDLQ(cola), data).Err()
	}
	if err != nil {
		l.Error().Err(err).AnErr("causa", causa).Msg("dlq: job perdido")
		return
	}
	l.Warn().AnErr("causa", causa).Msg("dlq: job aparcado")
}

// DLQLength is reported by the health endpoint.
func DLQLength(ctx context.Context, rdb redis.Cmdable, cola string) (int64, error) {
	return rdb.LLen(ctx, claveDLQ(cola)).Result()
}
