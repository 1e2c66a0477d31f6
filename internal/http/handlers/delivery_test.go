package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"agriteranga-courier/internal/apperr"
	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/store"
	testlog "agriteranga-courier/internal/testutil"
)

// stubDeliveryUsecase scripts the store behaviour for handler tests.
type stubDeliveryUsecase struct {
	snap store.Snapshot

	acceptErr   error
	acceptedID  string
	updateErr   error
	updated     struct {
		id     string
		status domain.DeliveryStatus
		notes  string
	}
	completeErr error
	details     domain.DeliveryDetails
	detailsErr  error
	filterErr   error
	pageErr     error
	lastPage    int
	refreshErr  error
}

func (s *stubDeliveryUsecase) Snapshot() store.Snapshot { return s.snap }

func (s *stubDeliveryUsecase) AcceptDelivery(_ context.Context, id string) error {
	s.acceptedID = id
	return s.acceptErr
}

func (s *stubDeliveryUsecase) UpdateDeliveryStatus(_ context.Context, id string, status domain.DeliveryStatus, notes string) error {
	s.updated.id, s.updated.status, s.updated.notes = id, status, notes
	return s.updateErr
}

func (s *stubDeliveryUsecase) CompleteDelivery(context.Context, string, string) error {
	return s.completeErr
}

func (s *stubDeliveryUsecase) DeliveryDetails(context.Context, string) (domain.DeliveryDetails, error) {
	return s.details, s.detailsErr
}

func (s *stubDeliveryUsecase) FilterMyDeliveriesByStatus(context.Context, domain.DeliveryStatus) error {
	return s.filterErr
}

func (s *stubDeliveryUsecase) FilterHistoryByDateRange(context.Context, string, string, domain.DeliveryStatus) error {
	return s.filterErr
}

func (s *stubDeliveryUsecase) ChangeAvailablePage(_ context.Context, page int) error {
	s.lastPage = page
	return s.pageErr
}

func (s *stubDeliveryUsecase) ChangeMyDeliveriesPage(_ context.Context, page int) error {
	s.lastPage = page
	return s.pageErr
}

func (s *stubDeliveryUsecase) ChangeHistoryPage(_ context.Context, page int) error {
	s.lastPage = page
	return s.pageErr
}

func (s *stubDeliveryUsecase) RefreshAll(context.Context) error { return s.refreshErr }

func newDeliveryRouter(uc deliveryUsecase) http.Handler {
	h := NewDeliveryHandler(testlog.New().Logger(), uc)
	r := chi.NewRouter()
	r.Get("/dashboard", h.Dashboard)
	r.Post("/refresh", h.Refresh)
	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/available", h.Available)
		r.Get("/mine", h.Mine)
		r.Get("/history", h.History)
		r.Post("/mine/filter", h.FilterMine)
		r.Post("/mine/page", h.MinePage)
		r.Get("/{id}", h.Details)
		r.Post("/{id}/accept", h.Accept)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Post("/{id}/complete", h.Complete)
	})
	return r
}

func doReq(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestDashboard_RendersSnapshot(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{snap: store.Snapshot{
		Stats:     domain.DeliveryStats{TotalDeliveries: 12, TotalEarnings: 34500},
		Available: []domain.AvailableDelivery{{ID: "o1"}},
		Mine:      []domain.MyDelivery{{ID: "d1"}, {ID: "d2"}},
		Loading:   true,
	}}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodGet, "/dashboard", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var got dashboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, 12, got.Stats.TotalDeliveries)
	require.Equal(t, 1, got.AvailableCount)
	require.Equal(t, 2, got.MineCount)
	require.True(t, got.Loading)
}

func TestMine_ListsWithPagination(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{snap: store.Snapshot{
		Mine:     []domain.MyDelivery{{ID: "d1", ProductName: "Mangues", Status: domain.StatusInTransit}},
		MinePage: domain.Pagination{Page: 2, TotalPages: 4, Total: 35},
	}}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodGet, "/deliveries/mine", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var got listResponse[myDeliveryDTO]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
	require.Equal(t, "in-transit", got.Items[0].Status)
	require.Equal(t, 2, got.Pagination.Page)
	require.Equal(t, 35, got.Pagination.Total)
}

func TestAccept_PassesIDFromPath(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPost, "/deliveries/o42/accept", "")

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "o42", uc.acceptedID)
}

func TestAccept_ConflictMapsTo409(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{acceptErr: apperr.ErrConflict}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPost, "/deliveries/o42/accept", "")

	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestUpdateStatus_DecodesPayload(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPatch, "/deliveries/d1/status",
		`{"status":"in-transit","notes":"picked up"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "d1", uc.updated.id)
	require.Equal(t, domain.StatusInTransit, uc.updated.status)
	require.Equal(t, "picked up", uc.updated.notes)
}

func TestUpdateStatus_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPatch, "/deliveries/d1/status",
		`{"status":"in-transit","bogus":true}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Empty(t, uc.updated.id)
}

func TestComplete_UnavailableMapsTo502(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{completeErr: apperr.ErrUnavailable}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPost, "/deliveries/d1/complete", `{"notes":"done"}`)

	require.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestDetails_NotFoundMapsTo404(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{detailsErr: apperr.ErrNotFound}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodGet, "/deliveries/d1", "")

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMinePage_PassesPage(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPost, "/deliveries/mine/page", `{"page":3}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 3, uc.lastPage)
}

func TestMinePage_InvalidMapsTo400(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{pageErr: apperr.ErrInvalid}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPost, "/deliveries/mine/page", `{"page":0}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFilterMine_ReturnsFilteredList(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{snap: store.Snapshot{
		Mine:     []domain.MyDelivery{{ID: "d1", Status: domain.StatusInTransit}},
		MinePage: domain.Pagination{Page: 1, TotalPages: 1, Total: 1},
	}}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPost, "/deliveries/mine/filter", `{"status":"in-transit"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var got listResponse[myDeliveryDTO]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
}

func TestRefresh_ErrorsSurface(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{refreshErr: apperr.ErrUnavailable}
	rr := doReq(t, newDeliveryRouter(uc), http.MethodPost, "/refresh", "")

	require.Equal(t, http.StatusBadGateway, rr.Code)
}
