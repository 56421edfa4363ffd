package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisSlotGridKeyPrefix prefixes cached grids: slot_grid:{doctor_id}:{YYYY-MM-DD}
	RedisSlotGridKeyPrefix = "slot_grid:"
	// RedisSlotGridVersionKeyPrefix counts invalidations: slot_grid_version:{doctor_id}:{YYYY-MM-DD}
	RedisSlotGridVersionKeyPrefix = "slot_grid_version:"

	// version keys outlive any read that could still be building a grid
	slotGridVersionTTL = 24 * time.Hour

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second
)

var errGridOutdated = errors.New("slot grid outdated")

// SlotCacheService caches derived slot grids per (doctor, date).
// A nil Redis client or a non-positive TTL turns every call into a no-op.
//
// Readers take Version before loading appointments and pass it to Set; a grid
// built before the latest Invalidate is never written back.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	now         func() time.Time
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *SlotCacheService) enabled() bool {
	return s != nil && s.redisClient != nil && s.ttl > 0
}

// Get returns the cached grid; found is false on a miss.
func (s *SlotCacheService) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.TimeSlot, bool, error) {
	if !s.enabled() {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := s.redisClient.Get(ctx, SlotGridKey(doctorID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot grid for doctor %s: %w", doctorID, err)
	}

	var slots []entity.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false, fmt.Errorf("decode slot grid for doctor %s: %w", doctorID, err)
	}
	return slots, true, nil
}

// Version returns the invalidation counter of the (doctor, date) grid
func (s *SlotCacheService) Version(ctx context.Context, doctorID uuid.UUID, date time.Time) (int64, error) {
	if !s.enabled() {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	version, err := readVersion(ctx, s.redisClient, SlotGridVersionKey(doctorID, date))
	if err != nil {
		return 0, fmt.Errorf("get slot grid version for doctor %s: %w", doctorID, err)
	}
	return version, nil
}

// Set caches slots unless the grid was invalidated since version was read.
func (s *SlotCacheService) Set(ctx context.Context, doctorID uuid.UUID, date time.Time, version int64, slots []entity.TimeSlot) error {
	if !s.enabled() {
		return nil
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encode slot grid for doctor %s: %w", doctorID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	ttl := s.calculateTTL(date)
	key := SlotGridKey(doctorID, date)
	versionKey := SlotGridVersionKey(doctorID, date)

	err = s.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, versionKey)
		if err != nil {
			return err
		}
		if current != version {
			return errGridOutdated
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, errGridOutdated) || errors.Is(err, redis.TxFailedErr) {
		s.log.Debugf("Skipped caching outdated slot grid for doctor %s on %s", doctorID, date.Format(time.DateOnly))
		return nil
	}
	if err != nil {
		return fmt.Errorf("set slot grid for doctor %s: %w", doctorID, err)
	}

	s.log.Debugf("Cached slot grid for doctor %s on %s, TTL=%v", doctorID, date.Format(time.DateOnly), ttl)
	return nil
}

// Invalidate drops the cached grids of the doctor on every given date and bumps
// their versions in one transaction.
func (s *SlotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID, dates ...time.Time) error {
	if !s.enabled() || len(dates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	pipe := s.redisClient.TxPipeline()
	for _, d := range dates {
		versionKey := SlotGridVersionKey(doctorID, d)
		pipe.Del(ctx, SlotGridKey(doctorID, d))
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, slotGridVersionTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate slot grid for doctor %s: %w", doctorID, err)
	}
	return nil
}

func SlotGridKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", RedisSlotGridKeyPrefix, doctorID.String(), date.Format(time.DateOnly))
}

func SlotGridVersionKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", RedisSlotGridVersionKeyPrefix, doctorID.String(), date.Format(time.DateOnly))
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, c getter, key string) (int64, error) {
	version, err := c.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// calculateTTL returns the configured TTL, cut short so the entry never outlives
// 24 hours after the grid date. Past dates get a short TTL.
func (s *SlotCacheService) calculateTTL(date time.Time) time.Duration {
	expireAt := date.AddDate(0, 0, 1)
	ttl := expireAt.Sub(s.now())

	if ttl <= 0 {
		return 1 * time.Minute
	}
	if ttl > s.ttl {
		return s.ttl
	}
	return ttl
}
