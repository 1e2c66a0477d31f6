package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agriteranga-courier/internal/apperr"
	"agriteranga-courier/internal/domain"
	testlog "agriteranga-courier/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *testlog.Recorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := testlog.New()
	c := NewClient(srv.Client(), srv.URL, "test-token", rec.Logger())
	require.NotNil(t, c)
	return c, rec
}

func TestClient_ListAvailable_NestedEnvelope(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courier/orders/available", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {
				"orders": [{
					"_id": "o1",
					"items": [
						{"product": {"name": "Mangues", "images": ["m.jpg"]}, "quantity": 2},
						{"product": {"name": "Oignons"}, "quantity": 9}
					],
					"totalPrice": 5000,
					"customer": {"firstName": "Awa", "lastName": "Diop", "phone": "+221771234567"},
					"deliveryAddress": "Médina, Dakar"
				}],
				"pagination": {"page": 2, "totalPages": 3, "total": 25}
			}
		}`))
	})

	items, pg, err := c.ListAvailable(context.Background(), 2, 10, domain.AvailableFilters{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	// only the first line item survives the projection
	got := items[0]
	require.Equal(t, "o1", got.ID)
	require.Equal(t, "Mangues", got.ProductName)
	require.Equal(t, 2, got.Quantity)
	require.Equal(t, float64(5000), got.Amount)
	require.Equal(t, "Awa Diop", got.Customer.Name)
	require.Equal(t, "m.jpg", got.ProductImage)
	require.Equal(t, domain.Pagination{Page: 2, TotalPages: 3, Total: 25}, pg)
}

func TestClient_ListAvailable_UnrecognizedShapeDegradesToEmpty(t *testing.T) {
	t.Parallel()

	c, logs := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"unexpected":true}}`))
	})

	items, pg, err := c.ListAvailable(context.Background(), 3, 10, domain.AvailableFilters{})
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, 3, pg.Page)
	require.True(t, logs.HasMsg("available response shape unrecognized"))
}

func TestClient_ListMine_FiltersAndDerivedStatus(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courier/deliveries", r.URL.Path)
		require.Equal(t, "in-transit", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"data":{"deliveries":[
			{"_id":"d1","status":"in-transit","order":{"status":"shipped","items":[{"product":{"name":"Mangues"},"quantity":1}],"totalPrice":1500}},
			{"_id":"d2","status":"failed","order":{"status":"shipped"}},
			{"_id":"d3","status":"in-transit","order":{"status":"cancelled"}}
		]}}`))
	})

	items, _, err := c.ListMine(context.Background(), 1, 10, domain.MineFilters{Status: domain.StatusInTransit})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, domain.StatusInTransit, items[0].Status)
	// a failed delivery and a cancelled parent order both display as cancelled
	require.Equal(t, domain.StatusCancelled, items[1].Status)
	require.Equal(t, domain.StatusCancelled, items[2].Status)
	require.Equal(t, "shipped", items[1].OrderStatus)
	require.Equal(t, "cancelled", items[2].OrderStatus)
}

func TestClient_ListHistory_DateRangeOnTheWire(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courier/deliveries/history", r.URL.Path)
		require.Equal(t, "2026-08-01", r.URL.Query().Get("dateFrom"))
		require.Equal(t, "2026-08-31", r.URL.Query().Get("dateTo"))
		require.Equal(t, "delivered", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"data":{"history":[{"_id":"d1","completedAt":"2026-08-15T10:00:00Z","order":{"totalPrice":2500,"items":[{"product":{"name":"Mangues"}}]}}]}}`))
	})

	items, _, err := c.ListHistory(context.Background(), 1, 10, domain.HistoryFilters{
		Status:   domain.StatusDelivered,
		DateFrom: "2026-08-01",
		DateTo:   "2026-08-31",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "d1", items[0].ID)
	require.Equal(t, "Mangues", items[0].ProductName)
	require.Equal(t, float64(2500), items[0].Amount)
	require.True(t, items[0].CompletedAt.Equal(time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)))
}

func TestClient_Accept_PostsToOrderPath(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.Accept(context.Background(), "o1"))
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/courier/orders/o1/accept", gotPath)

	require.ErrorIs(t, c.Accept(context.Background(), "  "), apperr.ErrInvalid)
}

func TestClient_UpdateStatus_PatchesWithPayload(t *testing.T) {
	t.Parallel()

	var gotBody updateStatusRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/courier/deliveries/d1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.UpdateStatus(context.Background(), "d1", domain.StatusInTransit, "picked up"))
	require.Equal(t, "in-transit", gotBody.Status)
	require.Equal(t, "picked up", gotBody.Notes)

	// cancelled is derived, never reported
	require.ErrorIs(t, c.UpdateStatus(context.Background(), "d1", domain.StatusCancelled, ""), apperr.ErrInvalid)
}

func TestClient_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		body   string
		want   error
	}{
		{status: http.StatusUnauthorized, body: `{"message":"token expired"}`, want: apperr.ErrUnauthorized},
		{status: http.StatusForbidden, body: ``, want: apperr.ErrUnauthorized},
		{status: http.StatusNotFound, body: `{"error":"order not found"}`, want: apperr.ErrNotFound},
		{status: http.StatusConflict, body: `{"message":"already assigned"}`, want: apperr.ErrConflict},
		{status: http.StatusBadRequest, body: ``, want: apperr.ErrInvalid},
		{status: http.StatusUnprocessableEntity, body: ``, want: apperr.ErrInvalid},
		{status: http.StatusTooManyRequests, body: ``, want: apperr.ErrUnavailable},
		{status: http.StatusInternalServerError, body: ``, want: apperr.ErrUnavailable},
	}

	for _, tt := range tests {
		err := statusToErr(tt.status, []byte(tt.body))
		require.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}

	// the backend's own message is surfaced
	err := statusToErr(http.StatusConflict, []byte(`{"message":"already assigned"}`))
	require.ErrorContains(t, err, "already assigned")
}

func TestClient_Profile_NestedUser(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courier/profile", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","data":{"user":{"_id":"u1","firstName":"Awa","lastName":"Diop","phone":"+221771234567","zone":"Dakar"}}}`))
	})

	p, err := c.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", p.ID)
	require.Equal(t, "Awa", p.FirstName)
	require.Equal(t, "Dakar", p.Zone)
}

func TestClient_UpdateProfile_RejectsBadPhone(t *testing.T) {
	t.Parallel()

	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	phone := "77-12-34"
	_, err := c.UpdateProfile(context.Background(), domain.PartialProfileUpdate{Phone: &phone})
	require.ErrorIs(t, err, apperr.ErrInvalid)
	require.False(t, called)
}

func TestClient_ChangePassword_RequiresBothValues(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/courier/profile/password", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.ErrorIs(t, c.ChangePassword(context.Background(), "", "new"), apperr.ErrInvalid)
	require.NoError(t, c.ChangePassword(context.Background(), "old", "new"))
}

func TestClient_NilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"unexpected":true}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "", nil)
	require.NotNil(t, c)

	// the unrecognized-shape path logs a warning; it must not panic
	items, _, err := c.ListAvailable(context.Background(), 1, 10, domain.AvailableFilters{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestClient_Details_NotFoundOnEmptyBody(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Details(context.Background(), "d1")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
