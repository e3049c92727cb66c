package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	doctorsAvailableKey      = "availability:doctors"
	providersAvailablePrefix = "availability:providers:"

	// Timeout for individual cache operations
	cacheOpTimeout = 2 * time.Second
)

// AvailabilityCache keeps the candidate lists shown to patients.
// Entries are dropped on every write that changes availability, verification or rating.
// A stale read is tolerated because creation re-validates the chosen doctor or provider.
type AvailabilityCache struct {
	cache cache.Cache
	ttl   time.Duration
	log   *logrus.Logger

	// Collapses concurrent misses for the same key and generation into one load.
	loads singleflight.Group

	// generations counts invalidations per key. A load that started before an
	// invalidation must not write its result back.
	mu          sync.Mutex
	generations map[string]uint64
}

func NewAvailabilityCache(c cache.Cache, ttl time.Duration, log *logrus.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		cache:       c,
		ttl:         ttl,
		log:         log,
		generations: make(map[string]uint64),
	}
}

func (a *AvailabilityCache) Doctors(ctx context.Context, load func() ([]entity.DoctorProfile, error)) ([]entity.DoctorProfile, error) {
	return readThrough(ctx, a, doctorsAvailableKey, load)
}

func (a *AvailabilityCache) Providers(ctx context.Context, kind entity.TransportType, load func() ([]entity.TransportProvider, error)) ([]entity.TransportProvider, error) {
	return readThrough(ctx, a, providersAvailablePrefix+string(kind), load)
}

func (a *AvailabilityCache) InvalidateDoctors(ctx context.Context) {
	a.delete(ctx, doctorsAvailableKey)
}

// InvalidateProviders drops the lists for kinds, or for every type when kinds is empty.
func (a *AvailabilityCache) InvalidateProviders(ctx context.Context, kinds ...entity.TransportType) {
	if len(kinds) == 0 {
		kinds = []entity.TransportType{entity.TransportAmbulance, entity.TransportCab, entity.TransportMotorbike}
	}
	keys := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		keys = append(keys, providersAvailablePrefix+string(kind))
	}
	a.delete(ctx, keys...)
}

func (a *AvailabilityCache) generation(key string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generations[key]
}

func (a *AvailabilityCache) delete(ctx context.Context, keys ...string) {
	a.mu.Lock()
	for _, key := range keys {
		a.generations[key]++
	}
	a.mu.Unlock()

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOpTimeout)
	defer cancel()

	if err := a.cache.Delete(opCtx, keys...); err != nil {
		a.log.Warnf("Failed to invalidate availability cache %v: %+v", keys, err)
	}
}

// readThrough serves key from the cache, falling back to load on a miss or a cache failure.
func readThrough[T any](ctx context.Context, a *AvailabilityCache, key string, load func() ([]T, error)) ([]T, error) {
	opCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	var cached []T
	found, err := a.cache.Get(opCtx, key, &cached)
	if err != nil {
		a.log.Warnf("Availability cache read failed for %s: %+v", key, err)
	}
	if found {
		return cached, nil
	}

	gen := a.generation(key)
	v, err, _ := a.loads.Do(key+"#"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		items, err := load()
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		if a.generation(key) != gen {
			return items, nil
		}
		if err := a.cache.Set(opCtx, key, items, a.ttl); err != nil {
			a.log.Warnf("Availability cache write failed for %s: %+v", key, err)
		}
		// An invalidation that bumped the generation before this write may have deleted first.
		if a.generation(key) != gen {
			if err := a.cache.Delete(opCtx, key); err != nil {
				a.log.Warnf("Failed to invalidate availability cache %s: %+v", key, err)
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}
