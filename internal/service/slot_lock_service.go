package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotBusy is returned when another request holds the booking lock for the same slot
var ErrSlotBusy = errors.New("slot is being booked by another request")

// releaseSlotScript deletes the lock only when it still holds our token,
// so an expired lock re-acquired by someone else is never released by us.
var releaseSlotScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisSlotLockKeyPrefix = "appointment:slot:"

	// Timeout for the release call, which runs detached from the request context
	redisReleaseTimeout = 5 * time.Second

	mutexCleanupInterval = 10 * time.Minute
	mutexStaleThreshold  = 10 * time.Minute
)

// SlotLocker serializes bookings for one doctor/date/hour slot
type SlotLocker interface {
	Acquire(ctx context.Context, doctorID, date string, hour int) (release func(), err error)
}

// SlotLockService locks booking slots in Redis with SET NX and a TTL.
// Without a Redis client, or when Redis errors, it falls back to a per-slot
// in-process mutex which only protects a single instance.
type SlotLockService struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger

	slotMu sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewSlotLockService starts the background mutex cleanup. Call Stop() during graceful shutdown.
func NewSlotLockService(redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) *SlotLockService {
	svc := &SlotLockService{
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop is safe to call multiple times
func (s *SlotLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotLockService stopped")
	}
}

func SlotLockKey(doctorID, date string, hour int) string {
	return fmt.Sprintf("%s%s:%s:%02d", RedisSlotLockKeyPrefix, doctorID, date, hour)
}

func (s *SlotLockService) Acquire(ctx context.Context, doctorID, date string, hour int) (func(), error) {
	key := SlotLockKey(doctorID, date, hour)

	if s.redisClient == nil {
		return s.acquireLocal(ctx, key)
	}

	token := uuid.NewString()
	ok, err := s.redisClient.SetNX(ctx, key, token, s.ttl).Result()
	if err != nil {
		s.log.Warnf("Redis slot lock failed for %s, using local lock: %+v", key, err)
		return s.acquireLocal(ctx, key)
	}
	if !ok {
		return nil, ErrSlotBusy
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), redisReleaseTimeout)
		defer cancel()

		if err := releaseSlotScript.Run(releaseCtx, s.redisClient, []string{key}, token).Err(); err != nil {
			s.log.Warnf("Failed to release slot lock %s: %+v", key, err)
		}
	}, nil
}

// acquireLocal blocks until the slot mutex is free or ctx is done
func (s *SlotLockService) acquireLocal(ctx context.Context, key string) (func(), error) {
	mt := s.getSlotMutex(key)

	for !mt.mu.TryLock() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
	mt.lastUsed.Store(time.Now().Unix())

	var once sync.Once
	return func() {
		once.Do(mt.mu.Unlock)
	}, nil
}

func (s *SlotLockService) getSlotMutex(key string) *mutexWithTimestamp {
	mt, _ := s.slotMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *SlotLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Slot mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes drops mutexes unused since cutoff. TryLock skips any that are held.
func (s *SlotLockService) cleanupStaleMutexes(cutoff time.Time) int {
	var cleaned int

	s.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff.Unix() {
				s.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
	return cleaned
}
