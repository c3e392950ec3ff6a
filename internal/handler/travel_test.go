package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/handler"
)

// mockTravelServicer is a test double for handler.TravelServicer.
// Set only the method fields your test needs.
type mockTravelServicer struct {
	create    func(ctx context.Context, t domain.Travel) (domain.Travel, error)
	getByID   func(ctx context.Context, id string) (domain.Travel, error)
	list      func(ctx context.Context) ([]domain.Travel, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int, error)
	update    func(ctx context.Context, t domain.Travel) (domain.Travel, error)
	delete    func(ctx context.Context, id string) error
}

func (m *mockTravelServicer) Create(ctx context.Context, t domain.Travel) (domain.Travel, error) {
	return m.create(ctx, t)
}
func (m *mockTravelServicer) GetByID(ctx context.Context, id string) (domain.Travel, error) {
	return m.getByID(ctx, id)
}
func (m *mockTravelServicer) List(ctx context.Context) ([]domain.Travel, error) {
	return m.list(ctx)
}
func (m *mockTravelServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTravelServicer) Update(ctx context.Context, t domain.Travel) (domain.Travel, error) {
	return m.update(ctx, t)
}
func (m *mockTravelServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTravelServicer must satisfy handler.TravelServicer.
var _ handler.TravelServicer = (*mockTravelServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into its chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.TravelServicer) http.Handler {
	return handler.NewServer(svc, nil, nil, handler.Options{}).Routes()
}

func travelFixture() domain.Travel {
	return domain.Travel{
		ID:             "0190f1c2-7d7e-7c4a-9a7e-3f1b2c3d4e5f",
		Date:           "2024-03-10",
		Location:       "Kyoto",
		Type:           domain.TypeCultural,
		StartDate:      "2024-03-10",
		EndDate:        "2024-03-12",
		Accommodation:  "Ryokan",
		Transportation: "Shinkansen",
		Budget:         "1200",
		Notes:          "temples",
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

// ---- POST /travels ---------------------------------------------------------

func TestCreateTravel_201(t *testing.T) {
	fixture := travelFixture()
	var got domain.Travel
	svc := &mockTravelServicer{
		create: func(_ context.Context, tr domain.Travel) (domain.Travel, error) {
			got = tr
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"location":  "Kyoto",
		"type":      "cultural",
		"startDate": "2024-03-10",
		"endDate":   "2024-03-12",
		"budget":    "1200",
	})

	req := httptest.NewRequest(http.MethodPost, "/travels", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2024-03-10", got.StartDate)
	assert.Equal(t, "2024-03-12", got.EndDate)
	assert.Equal(t, domain.TypeCultural, got.Type)

	var resp handler.Travel
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, "🎭", resp.Glyph)
	require.NotNil(t, resp.Days)
	assert.Equal(t, 3, *resp.Days)
}

func TestCreateTravel_422_ValidationError(t *testing.T) {
	svc := &mockTravelServicer{
		create: func(_ context.Context, _ domain.Travel) (domain.Travel, error) {
			return domain.Travel{}, errors.Join(
				&domain.FieldError{Field: "location", Message: "is required"},
				&domain.FieldError{Field: "endDate", Message: "must not be before startDate"},
			)
		},
	}

	body := jsonBody(t, map[string]any{
		"location":  "",
		"startDate": "2024-03-10",
		"endDate":   "2024-03-01",
	})

	req := httptest.NewRequest(http.MethodPost, "/travels", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "validation_error", detail.Code)
	assert.Equal(t, "endDate must not be before startDate; location is required", detail.Message)
	assert.Equal(t, "is required", detail.Fields["location"])
}

func TestCreateTravel_422_MalformedDate(t *testing.T) {
	svc := &mockTravelServicer{
		create: func(_ context.Context, _ domain.Travel) (domain.Travel, error) {
			t.Fatal("service must not be called for a malformed body")
			return domain.Travel{}, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"location":  "Kyoto",
		"startDate": "2024-02-30",
		"endDate":   "2024-03-01",
	})

	req := httptest.NewRequest(http.MethodPost, "/travels", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateTravel_422_MissingDates(t *testing.T) {
	svc := &mockTravelServicer{}

	body := jsonBody(t, map[string]any{"location": "Kyoto"})

	req := httptest.NewRequest(http.MethodPost, "/travels", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "startDate is required", decodeError(t, rec).Message)
}

func TestCreateTravel_500_HidesCause(t *testing.T) {
	svc := &mockTravelServicer{
		create: func(_ context.Context, _ domain.Travel) (domain.Travel, error) {
			return domain.Travel{}, errors.New("disk full at /var/lib/secret")
		},
	}

	body := jsonBody(t, map[string]any{
		"location":  "Kyoto",
		"startDate": "2024-03-10",
		"endDate":   "2024-03-12",
	})

	req := httptest.NewRequest(http.MethodPost, "/travels", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

// ---- GET /travels ----------------------------------------------------------

func TestListTravels_200(t *testing.T) {
	var gotParams domain.PaginationParams
	svc := &mockTravelServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Travel, int, error) {
			gotParams = p
			return []domain.Travel{travelFixture(), travelFixture()}, 7, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels?page=2&limit=2", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 2}, gotParams)

	var resp handler.TravelList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 2, Total: 7}, resp.Pagination)
}

func TestListTravels_200_Empty(t *testing.T) {
	svc := &mockTravelServicer{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Travel, int, error) {
			return []domain.Travel{}, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// Must be a JSON array, not null.
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTravels_422_BadPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/travels?page=two", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(&mockTravelServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListTravels_UnparsableRangeOmitsDays(t *testing.T) {
	legacy := travelFixture()
	legacy.EndDate = "soon"
	svc := &mockTravelServicer{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Travel, int, error) {
			return []domain.Travel{legacy}, 1, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	var resp handler.TravelList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "soon", resp.Data[0].EndDate)
	assert.Nil(t, resp.Data[0].Days)
}

// ---- GET /travels/{id} -----------------------------------------------------

func TestGetTravel_200(t *testing.T) {
	fixture := travelFixture()
	svc := &mockTravelServicer{
		getByID: func(_ context.Context, id string) (domain.Travel, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels/"+fixture.ID, nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.Travel
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.Location, resp.Location)
}

func TestGetTravel_404(t *testing.T) {
	svc := &mockTravelServicer{
		getByID: func(_ context.Context, _ string) (domain.Travel, error) {
			return domain.Travel{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels/missing", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "not_found", detail.Code)
	assert.Equal(t, "travel not found", detail.Message)
}

// ---- PUT /travels/{id} -----------------------------------------------------

func TestUpdateTravel_200(t *testing.T) {
	fixture := travelFixture()
	fixture.Location = "Osaka"
	svc := &mockTravelServicer{
		update: func(_ context.Context, tr domain.Travel) (domain.Travel, error) {
			assert.Equal(t, fixture.ID, tr.ID, "path id wins")
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"location":  "Osaka",
		"startDate": fixture.StartDate,
		"endDate":   fixture.EndDate,
	})

	req := httptest.NewRequest(http.MethodPut, "/travels/"+fixture.ID, body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.Travel
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Osaka", resp.Location)
}

func TestUpdateTravel_404(t *testing.T) {
	svc := &mockTravelServicer{
		update: func(_ context.Context, _ domain.Travel) (domain.Travel, error) {
			return domain.Travel{}, domain.ErrNotFound
		},
	}

	body := jsonBody(t, map[string]any{
		"location":  "X",
		"startDate": "2024-06-01",
		"endDate":   "2024-06-01",
	})

	req := httptest.NewRequest(http.MethodPut, "/travels/missing", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /travels/{id} --------------------------------------------------

func TestDeleteTravel_204(t *testing.T) {
	svc := &mockTravelServicer{
		delete: func(_ context.Context, _ string) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/travels/abc", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteTravel_404(t *testing.T) {
	svc := &mockTravelServicer{
		delete: func(_ context.Context, _ string) error { return domain.ErrNotFound },
	}

	req := httptest.NewRequest(http.MethodDelete, "/travels/abc", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- protection of mutating routes -----------------------------------------

func TestRoutes_ProtectWrapsWritesOnly(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	svc := &mockTravelServicer{
		getByID: func(_ context.Context, _ string) (domain.Travel, error) { return travelFixture(), nil },
		delete:  func(_ context.Context, _ string) error { return nil },
	}
	h := handler.NewServer(svc, nil, nil, handler.Options{Protect: deny}).Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/travels/abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/travels/abc", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
