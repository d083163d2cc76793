package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Errors
// =============================================================================

// ErrScheduleLockTimeout is returned when a person's schedule stays locked
// by another booking for longer than the configured wait.
var ErrScheduleLockTimeout = errors.New("schedule is being updated, please retry")

// releaseLockScript deletes the lock key only if it still holds our token,
// so an expired lock re-acquired by another instance is never released by us.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// =============================================================================
// Constants
// =============================================================================

const (
	RedisScheduleLockKeyPrefix = "schedule:lock:person:"

	defaultLockTTL  = 10 * time.Second
	defaultLockWait = 5 * time.Second
	lockRetryDelay  = 25 * time.Millisecond
	localRetryDelay = 5 * time.Millisecond

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// =============================================================================
// Types
// =============================================================================

// ScheduleLockService serializes appointment writes per person.
//
// Two layers:
// - an in-process mutex per person, for requests served by this instance
// - a Redis lock per person (SET NX PX), for requests spread across instances
//
// Persons are always locked in ascending id order so two bookings naming
// the same pair never deadlock. When Redis is unavailable the service logs
// and falls back to the in-process layer; the row locks taken inside the
// booking transaction still hold across instances.
type ScheduleLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	wait        time.Duration

	// Per-person mutex for in-process safety
	personMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

type heldRedisLock struct {
	key   string
	token string
}

// =============================================================================
// Constructor
// =============================================================================

// NewScheduleLockService creates a new ScheduleLockService. redisClient may
// be nil, in which case only the in-process layer is used.
// Starts background goroutine for mutex cleanup.
// Call Stop() during graceful shutdown.
func NewScheduleLockService(redisClient *redis.Client, log *logrus.Logger, ttl, wait time.Duration) *ScheduleLockService {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}

	svc := &ScheduleLockService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		wait:        wait,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *ScheduleLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("ScheduleLockService stopped")
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Acquire locks the schedules of every given person and returns a function
// that releases them. Duplicate and nil ids are ignored.
func (s *ScheduleLockService) Acquire(ctx context.Context, personIDs ...uuid.UUID) (func(), error) {
	ids := sortedUniqueIDs(personIDs)
	// Both layers share one wait budget.
	deadline := time.Now().Add(s.wait)

	locals := make([]*mutexWithTimestamp, 0, len(ids))
	unlockLocals := func() {
		for i := len(locals) - 1; i >= 0; i-- {
			locals[i].lastUsed.Store(time.Now().Unix())
			locals[i].mu.Unlock()
		}
	}

	for _, id := range ids {
		mt, err := s.lockPersonMutex(ctx, id, deadline)
		if err != nil {
			unlockLocals()
			return nil, err
		}
		locals = append(locals, mt)
	}

	held, err := s.acquireRedis(ctx, ids, deadline)
	if err != nil {
		unlockLocals()
		return nil, err
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.releaseRedis(held)
			unlockLocals()
		})
	}
	return release, nil
}

// =============================================================================
// In-process layer
// =============================================================================

// lockPersonMutex locks and returns the mutex for personID, giving up at
// deadline or when ctx is done. If cleanup evicted the mutex between lookup
// and lock, it retries with the live one.
func (s *ScheduleLockService) lockPersonMutex(ctx context.Context, personID uuid.UUID, deadline time.Time) (*mutexWithTimestamp, error) {
	for {
		v, _ := s.personMu.LoadOrStore(personID, &mutexWithTimestamp{})
		mt := v.(*mutexWithTimestamp)
		mt.lastUsed.Store(time.Now().Unix())

		if mt.mu.TryLock() {
			if current, ok := s.personMu.Load(personID); ok && current == mt {
				return mt, nil
			}
			mt.mu.Unlock()
			continue
		}

		if time.Now().After(deadline) {
			return nil, ErrScheduleLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for schedule lock: %w", ctx.Err())
		case <-time.After(localRetryDelay):
		}
	}
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *ScheduleLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes removes mutexes unused since cutoff. TryLock skips
// mutexes that are currently held.
func (s *ScheduleLockService) cleanupStaleMutexes(cutoff time.Time) int {
	cutoffUnix := cutoff.Unix()
	var cleaned int

	s.personMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffUnix {
				s.personMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
	return cleaned
}

// =============================================================================
// Redis layer
// =============================================================================

func (s *ScheduleLockService) acquireRedis(ctx context.Context, ids []uuid.UUID, deadline time.Time) ([]heldRedisLock, error) {
	if s.redisClient == nil {
		return nil, nil
	}

	held := make([]heldRedisLock, 0, len(ids))

	for _, id := range ids {
		lock := heldRedisLock{
			key:   RedisScheduleLockKeyPrefix + id.String(),
			token: uuid.NewString(),
		}

		for {
			ok, err := s.redisClient.SetNX(ctx, lock.key, lock.token, s.ttl).Result()
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					s.releaseRedis(held)
					return nil, fmt.Errorf("waiting for schedule lock: %w", ctxErr)
				}
				// Degrade to in-process + row locks rather than refusing bookings.
				s.log.Warnf("Redis schedule lock unavailable for %s, continuing without it: %+v", id, err)
				s.releaseRedis(held)
				return nil, nil
			}
			if ok {
				held = append(held, lock)
				break
			}

			if time.Now().After(deadline) {
				s.releaseRedis(held)
				return nil, ErrScheduleLockTimeout
			}

			select {
			case <-ctx.Done():
				s.releaseRedis(held)
				return nil, fmt.Errorf("waiting for schedule lock: %w", ctx.Err())
			case <-time.After(lockRetryDelay):
			}
		}
	}

	return held, nil
}

func (s *ScheduleLockService) releaseRedis(held []heldRedisLock) {
	if s.redisClient == nil || len(held) == 0 {
		return
	}

	// Release even if the request context is already cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := len(held) - 1; i >= 0; i-- {
		if err := releaseLockScript.Run(ctx, s.redisClient, []string{held[i].key}, held[i].token).Err(); err != nil {
			s.log.Warnf("Failed to release schedule lock %s (will expire): %+v", held[i].key, err)
		}
	}
}

func sortedUniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i][:], out[j][:]) < 0 })
	return out
}
