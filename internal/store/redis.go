package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrack/internal/config"
	"jobtrack/internal/logging"
	"jobtrack/pkg/models"
	"jobtrack/pkg/utils"
)

const keyPrefix = "jobtrack:"

// RedisStore keeps each collection in a hash keyed by record id and
// publishes a notification on every mutation so subscribers can re-read the
// snapshot.
type RedisStore struct {
	client *redis.Client
	logger logging.Logger
	now    func() time.Time
}

// NewRedisStore creates a store from the Redis section of the config.
func NewRedisStore(cfg *config.Config) *RedisStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logging.GetGlobalLogger(),
		now:    time.Now,
	}
}

// Ping tests the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// List returns every record in the collection.
func (s *RedisStore) List(ctx context.Context, path string) ([]models.Application, error) {
	values, err := s.client.HGetAll(ctx, s.collectionKey(path)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrUnavailable, path, err)
	}

	records := make([]models.Application, 0, len(values))
	for id, raw := range values {
		var app models.Application
		if err := json.Unmarshal([]byte(raw), &app); err != nil {
			// A corrupt entry should not take the whole view down.
			s.logger.WithField("record_id", id).WithError(err).Warn("Skipping undecodable record")
			continue
		}
		records = append(records, app)
	}
	return records, nil
}

// Get returns one record or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, path, id string) (*models.Application, error) {
	raw, err := s.client.HGet(ctx, s.collectionKey(path), id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, path, err)
	}

	var app models.Application
	if err := json.Unmarshal([]byte(raw), &app); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, id, err)
	}
	return &app, nil
}

// Create stores a new record, assigning an id and creation timestamp.
func (s *RedisStore) Create(ctx context.Context, path string, app models.Application) (string, error) {
	if app.ID == "" {
		app.ID = utils.GenerateRequestID()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = s.now()
	}

	if err := s.write(ctx, path, app); err != nil {
		return "", err
	}
	s.publish(ctx, path, "create", app.ID)
	return app.ID, nil
}

// Update applies a partial update, stamping UpdatedAt. The record must
// already exist (read-then-confirm-then-write).
func (s *RedisStore) Update(ctx context.Context, path, id string, patch models.ApplicationPatch) error {
	existing, err := s.Get(ctx, path, id)
	if err != nil {
		return err
	}

	patch.Apply(existing)
	now := s.now()
	existing.UpdatedAt = &now

	if err := s.write(ctx, path, *existing); err != nil {
		return err
	}
	s.publish(ctx, path, "update", id)
	return nil
}

// Delete removes a record, failing with ErrNotFound when it is absent.
func (s *RedisStore) Delete(ctx context.Context, path, id string) error {
	removed, err := s.client.HDel(ctx, s.collectionKey(path), id).Result()
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, path, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.publish(ctx, path, "delete", id)
	return nil
}

// Subscribe emits the full record set on every mutation, starting with the
// current state. The channel closes when ctx is cancelled.
func (s *RedisStore) Subscribe(ctx context.Context, path string) (<-chan []models.Application, error) {
	initial, err := s.List(ctx, path)
	if err != nil {
		return nil, err
	}

	pubsub := s.client.Subscribe(ctx, s.eventsKey(path))
	out := make(chan []models.Application, 1)
	out <- initial

	go func() {
		defer close(out)
		defer pubsub.Close()

		events := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				snapshot, err := s.List(ctx, path)
				if err != nil {
					s.logger.WithError(err).Warn("Failed to refresh snapshot after store event")
					continue
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *RedisStore) write(ctx context.Context, path string, app models.Application) error {
	data, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrUnavailable, app.ID, err)
	}
	if err := s.client.HSet(ctx, s.collectionKey(path), app.ID, data).Err(); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// publish is best-effort: a lost event only delays subscribers until the
// next one, it never fails the mutation.
func (s *RedisStore) publish(ctx context.Context, path, op, id string) {
	payload := fmt.Sprintf(`{"op":%q,"id":%q}`, op, id)
	if err := s.client.Publish(ctx, s.eventsKey(path), payload).Err(); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"op":        op,
			"record_id": id,
		}).WithError(err).Warn("Failed to publish store event")
	}
}

func (s *RedisStore) collectionKey(path string) string {
	return keyPrefix + path
}

func (s *RedisStore) eventsKey(path string) string {
	return keyPrefix + path + ":events"
}
