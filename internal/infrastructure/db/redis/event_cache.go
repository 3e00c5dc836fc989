package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"
)

const (
	defaultEventTTL = 5 * time.Minute
	// generationGrace keeps the generation key alive past any cached copy
	// written under it.
	generationGrace = time.Minute
)

// storeIfCurrent writes the event only while the generation the reader saw
// before loading is still current. A mutation that lands between the load
// and the write bumps the generation, so the stale copy is dropped.
const storeIfCurrent = `
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

// EventCache decorates an EventRepository with a read-through cache for
// single-event lookups. Every mutation bumps the event's generation and drops
// the cached copy. Redis failures are logged and the call falls through to
// the wrapped repository.
// Key format: event:<id>, generation: event:<id>:gen
type EventCache struct {
	next   ports.EventRepository
	client redis.Cmdable
	ttl    time.Duration
	log    zerolog.Logger
}

var _ ports.EventRepository = (*EventCache)(nil)

// NewEventCache wraps next. If ttl <= 0, defaultEventTTL is used.
func NewEventCache(next ports.EventRepository, client redis.Cmdable, ttl time.Duration, log zerolog.Logger) *EventCache {
	if ttl <= 0 {
		ttl = defaultEventTTL
	}
	return &EventCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *EventCache) Insert(ctx context.Context, e *domain.Event) (string, error) {
	return c.next.Insert(ctx, e)
}

func (c *EventCache) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var e domain.Event
		if err := json.Unmarshal(raw, &e); err == nil {
			return &e, nil
		}
		c.log.Warn().Str("event_id", id).Msg("discarding undecodable cached event")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("event_id", id).Msg("event cache read failed")
	}

	gen, ok := c.generation(ctx, id)
	e, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		c.store(ctx, e, gen)
	}
	return e, nil
}

func (c *EventCache) Find(ctx context.Context, f ports.EventFilter, skip, limit int64) ([]*domain.Event, error) {
	return c.next.Find(ctx, f, skip, limit)
}

func (c *EventCache) Update(ctx context.Context, id string, patch domain.EventPatch) (int64, error) {
	defer c.invalidate(ctx, id)
	return c.next.Update(ctx, id, patch)
}

func (c *EventCache) Delete(ctx context.Context, id string) (int64, error) {
	defer c.invalidate(ctx, id)
	return c.next.Delete(ctx, id)
}

func (c *EventCache) PushParticipant(ctx context.Context, id string, p domain.Participant, updatedAt time.Time) (int64, error) {
	defer c.invalidate(ctx, id)
	return c.next.PushParticipant(ctx, id, p, updatedAt)
}

func (c *EventCache) PullParticipant(ctx context.Context, id, userID string, updatedAt time.Time) (int64, error) {
	defer c.invalidate(ctx, id)
	return c.next.PullParticipant(ctx, id, userID, updatedAt)
}

func (c *EventCache) SetParticipantPaid(ctx context.Context, id, userID string, paidAmount float64, updatedAt time.Time) (int64, error) {
	defer c.invalidate(ctx, id)
	return c.next.SetParticipantPaid(ctx, id, userID, paidAmount, updatedAt)
}

func (c *EventCache) generation(ctx context.Context, id string) (string, bool) {
	gen, err := c.client.Get(ctx, c.genKey(id)).Result()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return "0", true
	default:
		c.log.Warn().Err(err).Str("event_id", id).Msg("event cache generation read failed")
		return "", false
	}
}

func (c *EventCache) store(ctx context.Context, e *domain.Event, gen string) {
	raw, err := json.Marshal(e)
	if err != nil {
		c.log.Warn().Err(err).Str("event_id", e.ID).Msg("event not cacheable")
		return
	}
	keys := []string{c.key(e.ID), c.genKey(e.ID)}
	stored, err := c.client.Eval(ctx, storeIfCurrent, keys, gen, string(raw), c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.Warn().Err(err).Str("event_id", e.ID).Msg("event cache write failed")
		return
	}
	if stored == 0 {
		c.log.Debug().Str("event_id", e.ID).Msg("skipped caching event mutated during load")
	}
}

func (c *EventCache) invalidate(ctx context.Context, id string) {
	gk := c.genKey(id)
	if err := c.client.Incr(ctx, gk).Err(); err != nil {
		c.log.Warn().Err(err).Str("event_id", id).Msg("event cache generation bump failed")
	} else if err := c.client.Expire(ctx, gk, c.ttl+generationGrace).Err(); err != nil {
		c.log.Warn().Err(err).Str("event_id", id).Msg("event cache generation expiry failed")
	}
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Str("event_id", id).Msg("event cache invalidation failed")
	}
}

func (c *EventCache) key(id string) string {
	return fmt.Sprintf("event:%s", id)
}

func (c *EventCache) genKey(id string) string {
	return fmt.Sprintf("event:%s:gen", id)
}
