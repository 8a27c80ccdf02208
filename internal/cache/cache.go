// Package cache keeps the last known full record snapshot behind a TTL so
// list and analytics views can render without waiting on the store. The
// cache is advisory only: the store stays authoritative, and every cache
// failure is logged and swallowed rather than surfaced to a render path.
package cache

import (
	"encoding/json"
	"strconv"
	"time"

	"jobtrack/internal/logging"
	"jobtrack/pkg/models"
)

const (
	snapshotKey   = "snapshot"
	capturedAtKey = "captured_at"
)

// DefaultTTL is the snapshot validity window.
const DefaultTTL = 5 * time.Minute

// Status describes the cache for diagnostics. A stale snapshot stays
// readable here even though Load refuses to return it as fresh.
type Status struct {
	Valid      bool      `json:"valid"`
	CapturedAt time.Time `json:"captured_at"`
	Records    int       `json:"records"`
}

// SnapshotCache is a TTL cache over a KV backend.
type SnapshotCache struct {
	kv     KV
	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time
}

// Option configures a SnapshotCache.
type Option func(*SnapshotCache)

// WithClock overrides the cache's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *SnapshotCache) { c.now = now }
}

// New creates a snapshot cache with the given backend and TTL.
func New(kv KV, ttl time.Duration, logger logging.Logger, opts ...Option) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &SnapshotCache{
		kv:     kv,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Save stores a snapshot with the current capture timestamp. Failures are
// logged, never returned.
func (c *SnapshotCache) Save(records []models.Application) {
	data, err := json.Marshal(records)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to encode cache snapshot")
		return
	}
	if err := c.kv.Set(snapshotKey, data); err != nil {
		c.logger.WithError(err).Warn("Failed to write cache snapshot")
		return
	}
	stamp := strconv.FormatInt(c.now().UnixNano(), 10)
	if err := c.kv.Set(capturedAtKey, []byte(stamp)); err != nil {
		c.logger.WithError(err).Warn("Failed to write cache timestamp")
	}
}

// Load returns the snapshot when it is younger than the TTL. The second
// return is false when the cache is empty, stale, invalidated or unreadable.
// Stale entries are not deleted; Status still reports them.
func (c *SnapshotCache) Load() ([]models.Application, bool) {
	capturedAt, ok := c.capturedAt()
	if !ok {
		return nil, false
	}
	if c.now().Sub(capturedAt) >= c.ttl {
		return nil, false
	}

	data, found, err := c.kv.Get(snapshotKey)
	if err != nil || !found {
		if err != nil {
			c.logger.WithError(err).Warn("Failed to read cache snapshot")
		}
		return nil, false
	}

	var records []models.Application
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.WithError(err).Warn("Failed to decode cache snapshot")
		return nil, false
	}
	return records, true
}

// Invalidate forces the next Load to miss regardless of snapshot age. Called
// after every successful mutation. The snapshot itself is kept so Status can
// still report what was cached.
func (c *SnapshotCache) Invalidate() {
	if err := c.kv.Set(capturedAtKey, []byte("0")); err != nil {
		c.logger.WithError(err).Warn("Failed to invalidate cache")
	}
}

// Status reports cache freshness and the size of whatever snapshot is held,
// fresh or stale.
func (c *SnapshotCache) Status() Status {
	st := Status{}

	if capturedAt, ok := c.capturedAt(); ok {
		st.CapturedAt = capturedAt
		st.Valid = c.now().Sub(capturedAt) < c.ttl
	}

	if data, found, err := c.kv.Get(snapshotKey); err == nil && found {
		var records []models.Application
		if json.Unmarshal(data, &records) == nil {
			st.Records = len(records)
		}
	}
	return st
}

// Close releases the underlying KV backend.
func (c *SnapshotCache) Close() error {
	return c.kv.Close()
}

func (c *SnapshotCache) capturedAt() (time.Time, bool) {
	data, found, err := c.kv.Get(capturedAtKey)
	if err != nil || !found {
		if err != nil {
			c.logger.WithError(err).Warn("Failed to read cache timestamp")
		}
		return time.Time{}, false
	}
	nanos, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil || nanos <= 0 {
		return time.Time{}, false
	}
	return time.Unix(0, nanos), true
}
