package repository

import (
	"context"
	"errors"
	"fmt"
	"garage/internal/models"
	"garage/internal/storage"
	"garage/internal/store"
	"garage/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTestStore(t *testing.T, seed *models.Dataset) *store.Store {
	t.Helper()
	slots := storage.NewMemoryStorage()
	keys := storage.NewKeys("t")
	if seed != nil {
		data, err := json.Marshal(seed)
		require.NoError(t, err)
		require.NoError(t, slots.Set(context.Background(), keys.Bootstrap, data))
	}
	return store.NewStore(slots, keys, &testutil.MockLogger{}, testutil.NewMockMetrics())
}

func seedDataset() *models.Dataset {
	return &models.Dataset{
		Users: []models.User{
			{ID: "u1", Email: "admin@garage.test", Password: "admin123", FirstName: "Brian", Role: models.RoleAdmin},
			{ID: "u2", Email: "jo@garage.test", Password: "hunter22", Role: models.RoleCustomer},
		},
		Services: []models.Service{
			{ID: "s1", Name: "Oil Change", Category: "maintenance"},
			{ID: "s2", Name: "Brake Repair", Category: "repair"},
		},
		Vehicles: []models.Vehicle{
			{ID: "v1", Make: "Ford", Model: "Focus", Condition: models.ConditionUsed, Features: []string{}, Images: []string{}},
			{ID: "v2", Make: "Audi", Model: "A4", Condition: models.ConditionReconditioned, Features: []string{}, Images: []string{}},
		},
		Appointments: []models.Appointment{
			{ID: "a1", UserID: "u2", ServiceID: "s1", Status: models.StatusScheduled},
			{ID: "a2", UserID: "u1", ServiceID: "s2", Status: models.StatusCompleted},
		},
		Testimonials: []models.Testimonial{{ID: "t1", CustomerName: "Sam", Rating: 5}},
		TimeSlots:    []models.TimeSlot{"9:00 AM", "10:00 AM"},
	}
}

func TestUserRepository_ListRedactsPasswords(t *testing.T) {
	repo := NewUserRepository(newTestStore(t, seedDataset()), &seqIDs{})

	users, err := repo.List(context.Background(), UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 2)

	for _, u := range users {
		raw, err := json.Marshal(u)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
	}

	admins, err := repo.List(context.Background(), UserFilter{Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "u1", admins[0].ID)
}

func TestUserRepository_RedactionLeavesStoredRecord(t *testing.T) {
	st := newTestStore(t, seedDataset())
	repo := NewUserRepository(st, &seqIDs{})

	_, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)

	ds, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin123", ds.Users[0].Password)
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := NewUserRepository(newTestStore(t, nil), &seqIDs{})

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_FindByCredentialsIsExact(t *testing.T) {
	repo := NewUserRepository(newTestStore(t, seedDataset()), &seqIDs{})
	ctx := context.Background()

	u, err := repo.FindByCredentials(ctx, "jo@garage.test", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "u2", u.ID)

	_, err = repo.FindByCredentials(ctx, "JO@garage.test", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = repo.FindByCredentials(ctx, "jo@garage.test", "Hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserRepository_CreateForcesCustomerRole(t *testing.T) {
	repo := NewUserRepository(newTestStore(t, nil), &seqIDs{})

	u, err := repo.Create(context.Background(), models.Registration{
		Email:    "a@x.com",
		Password: "secret1",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.Equal(t, "id-1", u.ID)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestStore(t, nil), &seqIDs{})
	ctx := context.Background()
	reg := models.Registration{Email: "a@x.com", Password: "secret1"}

	_, err := repo.Create(ctx, reg)
	require.NoError(t, err)
	_, err = repo.Create(ctx, reg)
	require.ErrorIs(t, err, ErrEmailTaken)

	users, err := repo.List(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_CreateRejectsInvalidInput(t *testing.T) {
	repo := NewUserRepository(newTestStore(t, nil), &seqIDs{})

	_, err := repo.Create(context.Background(), models.Registration{Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = repo.Create(context.Background(), models.Registration{Email: "a@x.com", Password: "123"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestVehicleRepository_ListByCondition(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t, seedDataset()), &seqIDs{})
	ctx := context.Background()

	all, err := repo.List(ctx, VehicleFilter{Condition: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	used, err := repo.List(ctx, VehicleFilter{Condition: "used"})
	require.NoError(t, err)
	require.Len(t, used, 1)
	assert.Equal(t, "v1", used[0].ID)
}

func TestVehicleRepository_ListReturnsCopy(t *testing.T) {
	st := newTestStore(t, seedDataset())
	repo := NewVehicleRepository(st, &seqIDs{})

	got, err := repo.List(context.Background(), VehicleFilter{})
	require.NoError(t, err)
	got[0].Make = "Changed"

	again, err := repo.List(context.Background(), VehicleFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Ford", again[0].Make)
}

func TestVehicleRepository_CreateUniqueIDs(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t, nil), NewIDGenerator())
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		v, err := repo.Create(ctx, models.NewVehicle{
			Year: 2015, Make: "VW", Model: "Golf", Condition: models.ConditionUsed,
			Features: []string{"ABS", "ABS", "Bluetooth"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"ABS", "Bluetooth"}, v.Features)
		assert.NotEmpty(t, v.ID)
		seen[v.ID] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestVehicleRepository_UpdateInPlace(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t, seedDataset()), &seqIDs{})
	ctx := context.Background()
	price := 12500.0

	v, err := repo.Update(ctx, "v1", models.VehiclePatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 12500.0, v.Price)
	assert.Equal(t, "Ford", v.Make)

	all, err := repo.List(ctx, VehicleFilter{})
	require.NoError(t, err)
	assert.Equal(t, "v1", all[0].ID)
	assert.Equal(t, 12500.0, all[0].Price)
}

func TestVehicleRepository_UpdateMissing(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t, seedDataset()), &seqIDs{})
	mk := "Kia"

	_, err := repo.Update(context.Background(), "missing", models.VehiclePatch{Make: &mk})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVehicleRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t, seedDataset()), &seqIDs{})
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "missing"))
	all, err := repo.List(ctx, VehicleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, "v1"))
	require.NoError(t, repo.Delete(ctx, "v1"))
	all, err = repo.List(ctx, VehicleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "v2", all[0].ID)
}

func TestAppointmentRepository_CreateDefaults(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t, nil), &seqIDs{})
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	a, err := repo.Create(context.Background(), models.NewAppointment{
		UserID: "u2", ServiceID: "s1", ServiceName: "Oil Change", Date: "2026-03-04", Time: "9:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, a.Status)
	assert.Equal(t, "2026-03-01T09:30:00Z", a.CreatedAt)
}

func TestAppointmentRepository_ListByUser(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t, seedDataset()), &seqIDs{})

	mine, err := repo.List(context.Background(), AppointmentFilter{UserID: "u2"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a1", mine[0].ID)
}

func TestAppointmentRepository_SetStatusVerbatimAndOrdered(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t, seedDataset()), &seqIDs{})
	ctx := context.Background()

	// completed -> scheduled is not a business transition; the repository writes it anyway.
	a, err := repo.SetStatus(ctx, "a2", models.StatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, a.Status)

	all, err := repo.List(ctx, AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a1", all[0].ID)
	assert.Equal(t, "a2", all[1].ID)
	assert.Equal(t, models.StatusScheduled, all[1].Status)
	assert.Equal(t, "s2", all[1].ServiceID)
}

func TestAppointmentRepository_SetStatusMissing(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t, seedDataset()), &seqIDs{})

	_, err := repo.SetStatus(context.Background(), "missing", models.StatusCancelled)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.SetStatus(context.Background(), "a1", models.Status("archived"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAppointmentRepository_SetStatusIfRejects(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t, seedDataset()), &seqIDs{})
	ctx := context.Background()
	denied := errors.New("denied")

	_, err := repo.SetStatusIf(ctx, "a1", models.StatusCompleted, func(current models.Status) error {
		assert.Equal(t, models.StatusScheduled, current)
		return denied
	})
	require.ErrorIs(t, err, denied)

	a, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, a.Status)
}

func TestAppointmentRepository_Lifecycle(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t, nil), NewIDGenerator())
	ctx := context.Background()

	a, err := repo.Create(ctx, models.NewAppointment{
		UserID: "u1", ServiceID: "s1", Date: "2026-03-04", Time: "9:00 AM", Status: models.StatusScheduled,
	})
	require.NoError(t, err)

	_, err = repo.SetStatus(ctx, a.ID, models.StatusInProgress)
	require.NoError(t, err)

	all, err := repo.List(ctx, AppointmentFilter{})
	require.NoError(t, err)
	matches := 0
	for _, got := range all {
		if got.ID == a.ID {
			matches++
			assert.Equal(t, models.StatusInProgress, got.Status)
		}
	}
	assert.Equal(t, 1, matches)

	require.NoError(t, repo.Delete(ctx, a.ID))
	all, err = repo.List(ctx, AppointmentFilter{})
	require.NoError(t, err)
	for _, got := range all {
		assert.NotEqual(t, a.ID, got.ID)
	}
}

func TestCatalogRepository(t *testing.T) {
	repo := NewCatalogRepository(newTestStore(t, seedDataset()))
	ctx := context.Background()

	services, err := repo.Services(ctx, ServiceFilter{Category: "repair"})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "s2", services[0].ID)

	testimonials, err := repo.Testimonials(ctx)
	require.NoError(t, err)
	assert.Len(t, testimonials, 1)

	slots, err := repo.TimeSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlot{"9:00 AM", "10:00 AM"}, slots)
}

func TestCatalogRepository_EmptyWithoutSeed(t *testing.T) {
	repo := NewCatalogRepository(newTestStore(t, nil))

	services, err := repo.Services(context.Background(), ServiceFilter{})
	require.NoError(t, err)
	assert.NotNil(t, services)
	assert.Empty(t, services)
}
