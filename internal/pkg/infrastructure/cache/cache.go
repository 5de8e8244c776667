package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/metrics"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/sync/singleflight"
)

type Region string

const (
	ShortTerm Region = "short_term"
	LongTerm  Region = "long_term"
)

type region struct {
	store Store
	ttl   time.Duration
}

// Cache is a set of named regions, each with its own store and expiry. A nil *Cache
// is valid and caches nothing.
type Cache struct {
	regions     map[Region]region
	group       singleflight.Group
	now         func() time.Time
	loadTimeout time.Duration
}

type Option func(*Cache)

func WithRegion(name Region, store Store, ttl time.Duration) Option {
	return func(c *Cache) {
		c.regions[name] = region{store: store, ttl: ttl}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLoadTimeout bounds a shared load. Loads run detached from the cancellation of the
// caller that started them, since other callers may be waiting on the same result.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.loadTimeout = d
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		regions:     map[Region]region{},
		now:         time.Now,
		loadTimeout: 2 * time.Minute,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Key joins the parts of a cache key. Time values are rendered in UTC so that
// equal instants in different zones share an entry.
func Key(parts ...any) string {
	b := make([]byte, 0, 64)
	for i, p := range parts {
		if i > 0 {
			b = append(b, '|')
		}
		switch v := p.(type) {
		case string:
			b = append(b, v...)
		case time.Time:
			b = v.UTC().AppendFormat(b, time.RFC3339Nano)
		case bool:
			b = strconv.AppendBool(b, v)
		case float64:
			b = strconv.AppendFloat(b, v, 'g', -1, 64)
		case int:
			b = strconv.AppendInt(b, int64(v), 10)
		default:
			b = fmt.Append(b, v)
		}
	}
	return string(b)
}

func hashID(op, key string) string {
	h := xxhash.New()
	h.WriteString(op)
	h.WriteString("\x1f")
	h.WriteString(key)
	return strconv.FormatUint(h.Sum64(), 16)
}

type loaded struct {
	value any
	raw   json.RawMessage
}

// Memoize returns the value cached for (op, key) in the given region, or runs load and
// caches its result. Concurrent callers with the same key share one execution of load.
// Errors are never cached.
func Memoize[T any](ctx context.Context, c *Cache, name Region, op, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	r, ok := c.regions[name]
	if !ok {
		return load(ctx)
	}

	log := logging.GetFromContext(ctx)
	fullKey := op + "\x1f" + key
	id := hashID(op, key)

	var value T

	e, found, err := r.store.Get(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("region", string(name)).Str("op", op).Msg("cache read failed")
	} else if found {
		if e.Key == fullKey && !e.expired(c.now()) {
			if err = json.Unmarshal(e.Value, &value); err == nil {
				metrics.CacheRequests.WithLabelValues(string(name), op, "hit").Inc()
				return value, nil
			}
			log.Warn().Err(err).Str("region", string(name)).Str("op", op).Msg("discarding unreadable cache entry")
		}
		if e.Key == fullKey {
			if err = r.store.Delete(ctx, id); err != nil {
				log.Warn().Err(err).Str("region", string(name)).Str("op", op).Msg("cache delete failed")
			}
		}
	}

	metrics.CacheRequests.WithLabelValues(string(name), op, "miss").Inc()

	flight := c.group.DoChan(string(name)+":"+id, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		result, err := load(lctx)
		if err != nil {
			metrics.CacheLoads.WithLabelValues(string(name), op, "error").Inc()
			return nil, err
		}
		metrics.CacheLoads.WithLabelValues(string(name), op, "success").Inc()

		raw, err := json.Marshal(result)
		if err != nil {
			log.Warn().Err(err).Str("op", op).Msg("result can not be cached")
			return loaded{value: result}, nil
		}

		err = r.store.Set(lctx, id, Entry{Key: fullKey, Expires: c.now().Add(r.ttl), Value: raw})
		if err != nil {
			log.Warn().Err(err).Str("region", string(name)).Str("op", op).Msg("cache write failed")
		}

		return loaded{value: result, raw: raw}, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return value, ctx.Err()
	case res = <-flight:
	}

	if res.Err != nil {
		return value, res.Err
	}

	l := res.Val.(loaded)
	if l.raw == nil {
		return l.value.(T), nil
	}

	// callers sharing a load must not share slices or maps
	if err = json.Unmarshal(l.raw, &value); err != nil {
		return l.value.(T), nil
	}

	return value, nil
}

// Purge removes expired entries from every region.
func (c *Cache) Purge(ctx context.Context) error {
	if c == nil {
		return nil
	}

	log := logging.GetFromContext(ctx)
	now := c.now()

	var errs []error
	for name, r := range c.regions {
		count, err := r.store.Purge(ctx, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to purge region %s: %w", name, err))
			continue
		}
		if count > 0 {
			metrics.CachePurged.WithLabelValues(string(name)).Add(float64(count))
			log.Debug().Str("region", string(name)).Int("count", count).Msg("purged expired cache entries")
		}
	}

	return errors.Join(errs...)
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}

	var first error
	for _, r := range c.regions {
		if err := r.store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
