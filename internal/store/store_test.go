package store

import (
	"context"
	"errors"
	"garage/internal/models"
	"garage/internal/storage"
	"garage/internal/testutil"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = storage.NewKeys("t")

func newTestStore(slots storage.SlotStorage) (*Store, *testutil.MockLogger, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	return NewStore(slots, keys, logger, metrics), logger, metrics
}

func put(t *testing.T, slots storage.SlotStorage, key string, ds *models.Dataset) []byte {
	t.Helper()
	data, err := json.Marshal(ds)
	require.NoError(t, err)
	require.NoError(t, slots.Set(context.Background(), key, data))
	return data
}

func TestStore_LoadEmptyWithoutWriting(t *testing.T) {
	slots := storage.NewMemoryStorage()
	s, _, _ := newTestStore(slots)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Users)
	assert.NotNil(t, ds.Users)
	assert.NotNil(t, ds.TimeSlots)

	_, ok, err := slots.Get(context.Background(), keys.Working)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_HydratesFromBootstrapVerbatim(t *testing.T) {
	slots := storage.NewMemoryStorage()
	raw := []byte(`{"services":[{"id":"s1","name":"Oil Change"}],"timeSlots":["9:00 AM"]}`)
	require.NoError(t, slots.Set(context.Background(), keys.Bootstrap, raw))
	s, _, _ := newTestStore(slots)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Services, 1)
	assert.Equal(t, "Oil Change", ds.Services[0].Name)
	assert.Equal(t, []models.TimeSlot{"9:00 AM"}, ds.TimeSlots)
	assert.NotNil(t, ds.Vehicles)

	working, ok, err := slots.Get(context.Background(), keys.Working)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, raw, working)
}

func TestStore_WorkingSlotWinsOverBootstrap(t *testing.T) {
	slots := storage.NewMemoryStorage()
	put(t, slots, keys.Bootstrap, &models.Dataset{Testimonials: []models.Testimonial{{ID: "seed"}}})
	put(t, slots, keys.Working, &models.Dataset{Testimonials: []models.Testimonial{{ID: "edited"}}})
	s, _, _ := newTestStore(slots)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Testimonials, 1)
	assert.Equal(t, "edited", ds.Testimonials[0].ID)
}

func TestStore_CorruptWorkingFallsBackToBootstrap(t *testing.T) {
	slots := storage.NewMemoryStorage()
	require.NoError(t, slots.Set(context.Background(), keys.Working, []byte("{not json")))
	put(t, slots, keys.Bootstrap, &models.Dataset{Services: []models.Service{{ID: "s1"}}})
	s, logger, _ := newTestStore(slots)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Services, 1)
	assert.Equal(t, 1, logger.Count("warn", "Ignoring slot"))
}

func TestStore_CorruptCompressedSlotReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	compressor, err := storage.NewZstdCompressor()
	require.NoError(t, err)
	slots, err := storage.NewFileStorage(dir, compressor)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t_working.slot"), []byte("garbage"), 0o600))
	s, logger, _ := newTestStore(slots)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Users)
	assert.Equal(t, 1, logger.Count("warn", "Ignoring slot"))
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	slots := storage.NewMemoryStorage()
	s, _, metrics := newTestStore(slots)
	in := &models.Dataset{
		Users:    []models.User{{ID: "u1", Email: "a@b.c", Password: "secret1", Role: models.RoleCustomer}},
		Vehicles: []models.Vehicle{{ID: "v1", Make: "Ford", Condition: models.ConditionUsed, Features: []string{"ABS"}, Images: []string{}}},
	}
	require.NoError(t, s.Save(context.Background(), in))

	out, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 1, metrics.PersistenceCalls)
	assert.Equal(t, 1, metrics.Records[models.CollectionUsers])
	assert.Equal(t, 0, metrics.Records[models.CollectionAppointments])
}

func TestStore_MutateSkipsSaveOnError(t *testing.T) {
	slots := storage.NewMemoryStorage()
	s, _, _ := newTestStore(slots)
	boom := errors.New("boom")

	err := s.Mutate(context.Background(), func(ds *models.Dataset) error {
		ds.Users = append(ds.Users, models.User{ID: "u1"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, _ := slots.Get(context.Background(), keys.Working)
	assert.False(t, ok)
}

func TestStore_MutateIsSerializedWithinInstance(t *testing.T) {
	s, _, _ := newTestStore(storage.NewMemoryStorage())
	const n = 20

	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			done <- s.Mutate(context.Background(), func(ds *models.Dataset) error {
				ds.TimeSlots = append(ds.TimeSlots, "slot")
				return nil
			})
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-done)
	}

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.TimeSlots, n)
}

func TestStore_CrossInstanceLastSaveWins(t *testing.T) {
	slots := storage.NewMemoryStorage()
	a, _, _ := newTestStore(slots)
	b, _, _ := newTestStore(slots)

	dsA, err := a.Load(context.Background())
	require.NoError(t, err)
	dsB, err := b.Load(context.Background())
	require.NoError(t, err)

	dsA.TimeSlots = append(dsA.TimeSlots, "from-a")
	dsB.TimeSlots = append(dsB.TimeSlots, "from-b")
	require.NoError(t, a.Save(context.Background(), dsA))
	require.NoError(t, b.Save(context.Background(), dsB))

	got, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlot{"from-b"}, got.TimeSlots)
}

func TestStore_SessionLifecycle(t *testing.T) {
	slots := storage.NewMemoryStorage()
	s, _, _ := newTestStore(slots)
	ctx := context.Background()

	got, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	session := models.Session{User: models.PublicUser{ID: "u1", Email: "a@b.c", Role: models.RoleCustomer}, Token: "tok"}
	require.NoError(t, s.SaveSession(ctx, session))
	got, err = s.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session, *got)

	require.NoError(t, s.ClearSession(ctx))
	got, err = s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CorruptSessionReadsAsNone(t *testing.T) {
	slots := storage.NewMemoryStorage()
	require.NoError(t, slots.Set(context.Background(), keys.Session, []byte("[")))
	s, _, _ := newTestStore(slots)

	got, err := s.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ResetRehydratesFromBootstrap(t *testing.T) {
	slots := storage.NewMemoryStorage()
	put(t, slots, keys.Bootstrap, &models.Dataset{Services: []models.Service{{ID: "seed"}}})
	s, _, _ := newTestStore(slots)
	ctx := context.Background()

	require.NoError(t, s.Mutate(ctx, func(ds *models.Dataset) error {
		ds.Services = nil
		return nil
	}))
	require.NoError(t, s.SaveSession(ctx, models.Session{Token: "tok"}))

	require.NoError(t, s.Reset(ctx))

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Services, 1)
	session, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}
