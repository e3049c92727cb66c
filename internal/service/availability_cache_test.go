package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAvailabilityCache_DoctorsReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	ac := NewAvailabilityCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, newTestLogger())

	calls := 0
	load := func() ([]entity.DoctorProfile, error) {
		calls++
		return []entity.DoctorProfile{{UserID: int64(calls)}}, nil
	}

	first, err := ac.Doctors(ctx, load)
	require.NoError(t, err)
	second, err := ac.Doctors(ctx, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first[0].UserID, second[0].UserID)

	ac.InvalidateDoctors(ctx)
	third, err := ac.Doctors(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(2), third[0].UserID)
}

func TestAvailabilityCache_ProvidersKeyedByType(t *testing.T) {
	ctx := context.Background()
	ac := NewAvailabilityCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, newTestLogger())

	loads := map[entity.TransportType]int{}
	loader := func(kind entity.TransportType) func() ([]entity.TransportProvider, error) {
		return func() ([]entity.TransportProvider, error) {
			loads[kind]++
			return []entity.TransportProvider{{Name: string(kind), Type: kind}}, nil
		}
	}

	cabs, err := ac.Providers(ctx, entity.TransportCab, loader(entity.TransportCab))
	require.NoError(t, err)
	assert.Equal(t, "cab", cabs[0].Name)

	ambulances, err := ac.Providers(ctx, entity.TransportAmbulance, loader(entity.TransportAmbulance))
	require.NoError(t, err)
	assert.Equal(t, "ambulance", ambulances[0].Name)

	_, err = ac.Providers(ctx, entity.TransportCab, loader(entity.TransportCab))
	require.NoError(t, err)
	assert.Equal(t, 1, loads[entity.TransportCab])

	ac.InvalidateProviders(ctx, entity.TransportCab)
	_, err = ac.Providers(ctx, entity.TransportCab, loader(entity.TransportCab))
	require.NoError(t, err)
	_, err = ac.Providers(ctx, entity.TransportAmbulance, loader(entity.TransportAmbulance))
	require.NoError(t, err)
	assert.Equal(t, 2, loads[entity.TransportCab])
	assert.Equal(t, 1, loads[entity.TransportAmbulance])

	ac.InvalidateProviders(ctx)
	_, err = ac.Providers(ctx, entity.TransportAmbulance, loader(entity.TransportAmbulance))
	require.NoError(t, err)
	assert.Equal(t, 2, loads[entity.TransportAmbulance])
}

func TestAvailabilityCache_EmptyAndErrors(t *testing.T) {
	ctx := context.Background()
	ac := NewAvailabilityCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, newTestLogger())

	empty, err := ac.Doctors(ctx, func() ([]entity.DoctorProfile, error) { return nil, nil })
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	ac.InvalidateDoctors(ctx)
	boom := errors.New("store down")
	_, err = ac.Doctors(ctx, func() ([]entity.DoctorProfile, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestAvailabilityCache_InvalidationDuringLoadIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	ac := NewAvailabilityCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, newTestLogger())

	// The snapshot is read, then a writer marks doctor 7 unavailable and invalidates
	// before the reader stores its result.
	stale, err := ac.Doctors(ctx, func() ([]entity.DoctorProfile, error) {
		snapshot := []entity.DoctorProfile{{UserID: 7, IsAvailable: true}}
		ac.InvalidateDoctors(ctx)
		return snapshot, nil
	})
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	calls := 0
	fresh, err := ac.Doctors(ctx, func() ([]entity.DoctorProfile, error) {
		calls++
		return []entity.DoctorProfile{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, fresh)
}

func TestAvailabilityCache_ProviderInvalidationDuringLoad(t *testing.T) {
	ctx := context.Background()
	ac := NewAvailabilityCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, newTestLogger())

	_, err := ac.Providers(ctx, entity.TransportCab, func() ([]entity.TransportProvider, error) {
		snapshot := []entity.TransportProvider{{ID: 3, Type: entity.TransportCab, IsAvailable: true}}
		ac.InvalidateProviders(ctx, entity.TransportCab)
		return snapshot, nil
	})
	require.NoError(t, err)

	calls := 0
	_, err = ac.Providers(ctx, entity.TransportCab, func() ([]entity.TransportProvider, error) {
		calls++
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
