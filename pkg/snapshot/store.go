package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/eve-pagination/pkg/paginate"
)

var (
	// ErrSnapshotMiss indicates no snapshot is stored under the key
	ErrSnapshotMiss = errors.New("snapshot miss")

	// ErrInvalidSnapshot indicates the stored snapshot cannot be decoded
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrInvalidKey indicates the snapshot key is incomplete
	ErrInvalidKey = errors.New("invalid snapshot key")

	// ErrSnapshotExpired indicates a snapshot was put after its expiry
	ErrSnapshotExpired = errors.New("snapshot already expired")
)

// Config holds snapshot store configuration.
type Config struct {
	// TTL applied to saved snapshots (0 keeps them until deleted)
	TTL time.Duration
}

// DefaultConfig keeps snapshots until they are deleted.
func DefaultConfig() Config {
	return Config{TTL: 0}
}

// Store saves and loads pagination snapshots in Redis.
type Store struct {
	redis  *redis.Client
	config Config
	logger zerolog.Logger
}

// NewStore creates a snapshot store with a Redis backend.
func NewStore(redisClient *redis.Client, config Config, logger zerolog.Logger) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if config.TTL < 0 {
		config.TTL = 0
	}
	return &Store{
		redis:  redisClient,
		config: config,
		logger: logger,
	}
}

// Save encodes state and stores it under key, replacing any previous
// snapshot.
func Save[ID comparable](ctx context.Context, s *Store, key Key, state paginate.State[ID]) error {
	snap, err := Encode[ID](state, s.config.TTL)
	if err != nil {
		Errors.WithLabelValues("save").Inc()
		return err
	}
	return s.Put(ctx, key, snap)
}

// Load fetches and decodes the state stored under key.
// Returns ErrSnapshotMiss if nothing is stored or the snapshot expired.
func Load[ID comparable](ctx context.Context, s *Store, key Key) (paginate.State[ID], error) {
	snap, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	state, err := Decode[ID](snap)
	if err != nil {
		Errors.WithLabelValues("load").Inc()
		s.logger.Warn().
			Err(err).
			Str("snapshot_key", key.String()).
			Msg("Stored snapshot could not be decoded")
		return nil, err
	}
	return state, nil
}

// Put stores an encoded snapshot under key. A snapshot whose expiry has
// already passed is rejected with ErrSnapshotExpired.
func (s *Store) Put(ctx context.Context, key Key, snap *Snapshot) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	// Redis treats a zero expiration as "keep forever".
	ttl := snap.TTL()
	if !snap.Expires.IsZero() && ttl <= 0 {
		Errors.WithLabelValues("save").Inc()
		return fmt.Errorf("%w: expired at %s", ErrSnapshotExpired, snap.Expires.Format(time.RFC3339))
	}

	redisKey := key.String()

	data, err := json.Marshal(snap)
	if err != nil {
		Errors.WithLabelValues("save").Inc()
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := s.redis.Set(ctx, redisKey, data, ttl).Err(); err != nil {
		Errors.WithLabelValues("save").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	Operations.WithLabelValues("save").Inc()
	Size.Set(float64(len(data)))

	s.logger.Debug().
		Str("snapshot_key", redisKey).
		Bool("keyed", snap.Keyed).
		Int("bytes", len(data)).
		Dur("ttl", ttl).
		Msg("Snapshot saved")

	return nil
}

// Get retrieves the encoded snapshot stored under key.
// Returns ErrSnapshotMiss if the key doesn't exist or the snapshot expired.
func (s *Store) Get(ctx context.Context, key Key) (*Snapshot, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	redisKey := key.String()

	data, err := s.redis.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			Misses.Inc()
			return nil, ErrSnapshotMiss
		}
		Errors.WithLabelValues("load").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		Errors.WithLabelValues("load").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	if snap.IsExpired() {
		_ = s.Delete(ctx, key)
		Misses.Inc()
		return nil, ErrSnapshotMiss
	}

	Operations.WithLabelValues("load").Inc()
	s.logger.Debug().
		Str("snapshot_key", redisKey).
		Time("saved_at", snap.SavedAt).
		Msg("Snapshot loaded")

	return &snap, nil
}

// Delete removes the snapshot stored under key.
func (s *Store) Delete(ctx context.Context, key Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	if err := s.redis.Del(ctx, key.String()).Err(); err != nil {
		Errors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	Operations.WithLabelValues("delete").Inc()
	return nil
}
