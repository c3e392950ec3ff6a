package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/repo"
	"github.com/pkordes/travel-calendar/internal/service"
	"github.com/pkordes/travel-calendar/internal/store"
)

// mockTravelStore is a hand-written test double for service.TravelStore.
// Each method is a function field; set only the ones your test needs.
type mockTravelStore struct {
	get    func(id string) (domain.Travel, bool)
	list   func() []domain.Travel
	upsert func(ctx context.Context, t domain.Travel) error
	delete func(ctx context.Context, id string) (bool, error)
}

func (m *mockTravelStore) Get(id string) (domain.Travel, bool) { return m.get(id) }
func (m *mockTravelStore) List() []domain.Travel               { return m.list() }
func (m *mockTravelStore) Upsert(ctx context.Context, t domain.Travel) error {
	return m.upsert(ctx, t)
}
func (m *mockTravelStore) Delete(ctx context.Context, id string) (bool, error) {
	return m.delete(ctx, id)
}

// compile-time checks: both the mock and the real store satisfy TravelStore.
var (
	_ service.TravelStore = (*mockTravelStore)(nil)
	_ service.TravelStore = (*store.Store)(nil)
)

// ---- helpers ---------------------------------------------------------------

func validTravel() domain.Travel {
	return domain.Travel{
		Location:  "Kyoto",
		Type:      domain.TypeCultural,
		StartDate: "2024-03-10",
		EndDate:   "2024-03-12",
	}
}

func newService(t *testing.T) *service.TravelService {
	t.Helper()
	s := store.New(repo.NewMemoryKV(), "", nil)
	require.NoError(t, s.Load(context.Background()))
	return service.NewTravelService(s)
}

// ---- Create ----------------------------------------------------------------

func TestTravelService_Create_AssignsTimeOrderedID(t *testing.T) {
	svc := newService(t)

	got, err := svc.Create(context.Background(), validTravel())

	require.NoError(t, err)
	id, err := uuid.Parse(got.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, "2024-03-10", got.Date, "date defaults to start date")
}

func TestTravelService_Create_IgnoresCallerID(t *testing.T) {
	svc := newService(t)

	in := validTravel()
	in.ID = "caller-chosen"
	got, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.NotEqual(t, "caller-chosen", got.ID)
}

func TestTravelService_Create_UniqueIDs(t *testing.T) {
	svc := newService(t)
	seen := map[string]bool{}

	for range 50 {
		got, err := svc.Create(context.Background(), validTravel())
		require.NoError(t, err)
		require.False(t, seen[got.ID], "duplicate id %s", got.ID)
		seen[got.ID] = true
	}
}

func TestTravelService_Create_EndBeforeStart(t *testing.T) {
	svc := newService(t)

	in := validTravel()
	in.EndDate = "2024-03-09"
	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	list, _ := svc.List(context.Background())
	assert.Empty(t, list)
}

func TestTravelService_Create_StoreError(t *testing.T) {
	boom := errors.New("write failed")
	svc := service.NewTravelService(&mockTravelStore{
		upsert: func(context.Context, domain.Travel) error { return boom },
	})

	_, err := svc.Create(context.Background(), validTravel())

	assert.ErrorIs(t, err, boom)
}

// ---- GetByID ---------------------------------------------------------------

func TestTravelService_GetByID_NotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.GetByID(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List ------------------------------------------------------------------

func TestTravelService_List_EmptyIsNonNil(t *testing.T) {
	svc := service.NewTravelService(&mockTravelStore{
		list: func() []domain.Travel { return nil },
	})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestTravelService_ListPaged(t *testing.T) {
	svc := newService(t)
	for _, start := range []string{"2024-05-01", "2024-01-01", "2024-03-01"} {
		in := validTravel()
		in.StartDate, in.EndDate = start, start
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	page, limit := 2, 2
	got, total, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-05-01", got[0].StartDate)
}

func TestTravelService_ListPaged_PageBeyondRange(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), validTravel())
	require.NoError(t, err)

	page, limit := 92233720368547760, 100
	got, total, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, got)
}

// ---- Update ----------------------------------------------------------------

func TestTravelService_Update_ReplacesExisting(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(context.Background(), validTravel())
	require.NoError(t, err)

	created.Location = "Osaka"
	updated, err := svc.Update(context.Background(), created)

	require.NoError(t, err)
	assert.Equal(t, "Osaka", updated.Location)
	list, _ := svc.List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestTravelService_Update_UnknownIDNeverCreates(t *testing.T) {
	svc := newService(t)

	in := validTravel()
	in.ID = "ghost"
	_, err := svc.Update(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, _ := svc.List(context.Background())
	assert.Empty(t, list)
}

func TestTravelService_Update_Validation(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(context.Background(), validTravel())
	require.NoError(t, err)

	created.Location = "  "
	_, err = svc.Update(context.Background(), created)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete ----------------------------------------------------------------

func TestTravelService_Delete(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(context.Background(), validTravel())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), domain.ErrNotFound)
}
