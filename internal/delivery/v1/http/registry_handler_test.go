package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/internal/infrastructure/condition"
	"github.com/DRSN-tech/product-registry/internal/repository/memory"
	"github.com/DRSN-tech/product-registry/internal/usecase"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const (
	adminHex    = "0x00000000000000000000000000000000000000a1"
	strangerHex = "0x00000000000000000000000000000000000000b2"
	buyerHex    = "0x00000000000000000000000000000000000000c3"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	r, _ := setupRouterWithRegistry(t)
	return r
}

func setupRouterWithRegistry(t *testing.T) (*chi.Mux, *usecase.RegistryUseCase) {
	t.Helper()
	log := logger.NewNopLogger()

	uc, err := usecase.NewRegistryUC(domain.MustParseAddress(adminHex), memory.NewProductRepo(), memory.NewEventJournal(), log)
	require.NoError(t, err)

	r := chi.NewRouter()
	NewRouter(r, log).Init(uc, condition.NewAllowList(42))
	return r, uc
}

func doRequest(t *testing.T, h http.Handler, method, path, caller, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(callerHeader, caller)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestRegistryHandler_ProductLifecycle(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/v1/products", adminHex, `{"id":1,"name":"Widget","price":"5.99"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[ProductResponse](t, rec)
	require.Equal(t, ProductResponse{
		ID: 1, Name: "Widget", Price: 599, PriceDisplay: "5.99", CurrentOwner: adminHex, State: "Created",
	}, created)

	rec = doRequest(t, r, http.MethodPost, "/api/v1/products/1/sell", adminHex, `{"buyer":"`+buyerHex+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sold := decodeBody[ProductResponse](t, rec)
	require.Equal(t, buyerHex, sold.CurrentOwner)
	require.Equal(t, "Sold", sold.State)

	rec = doRequest(t, r, http.MethodGet, "/api/v1/products/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, sold, decodeBody[ProductResponse](t, rec))

	rec = doRequest(t, r, http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[[]ProductResponse](t, rec), 1)

	rec = doRequest(t, r, http.MethodGet, "/api/v1/events?after=1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	events := decodeBody[[]map[string]any](t, rec)
	require.Len(t, events, 1)
	require.Equal(t, "ProductSold", events[0]["type"])
}

func TestRegistryHandler_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		caller     string
		body       string
		wantStatus int
	}{
		{name: "unauthorized create", method: http.MethodPost, path: "/api/v1/products", caller: strangerHex, body: `{"id":2,"name":"X","price":"1"}`, wantStatus: http.StatusForbidden},
		{name: "missing caller", method: http.MethodPost, path: "/api/v1/products", body: `{"id":2,"name":"X","price":"1"}`, wantStatus: http.StatusForbidden},
		{name: "bad caller header", method: http.MethodPost, path: "/api/v1/products", caller: "0x0", body: `{"id":2,"name":"X","price":"1"}`, wantStatus: http.StatusBadRequest},
		{name: "duplicate", method: http.MethodPost, path: "/api/v1/products", caller: adminHex, body: `{"id":1,"name":"X","price":"1"}`, wantStatus: http.StatusConflict},
		{name: "too many decimals", method: http.MethodPost, path: "/api/v1/products", caller: adminHex, body: `{"id":2,"name":"X","price":"1.001"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/api/v1/products", caller: adminHex, body: `{"id":2,"name":"X","price":"1","color":"red"}`, wantStatus: http.StatusBadRequest},
		{name: "empty body", method: http.MethodPost, path: "/api/v1/products", caller: adminHex, body: ``, wantStatus: http.StatusBadRequest},
		{name: "not found", method: http.MethodGet, path: "/api/v1/products/99", wantStatus: http.StatusNotFound},
		{name: "bad id", method: http.MethodGet, path: "/api/v1/products/abc", wantStatus: http.StatusBadRequest},
		{name: "zero buyer", method: http.MethodPost, path: "/api/v1/products/1/sell", caller: adminHex, body: `{"buyer":"0x0000000000000000000000000000000000000000"}`, wantStatus: http.StatusBadRequest},
		{name: "sell unauthorized", method: http.MethodPost, path: "/api/v1/products/1/sell", caller: strangerHex, body: `{"buyer":"` + buyerHex + `"}`, wantStatus: http.StatusForbidden},
		{name: "transfer to zero", method: http.MethodPut, path: "/api/v1/owner", caller: adminHex, body: `{"new_owner":"0x0000000000000000000000000000000000000000"}`, wantStatus: http.StatusBadRequest},
		{name: "condition fails", method: http.MethodPost, path: "/api/v1/external-registry/verify", body: `{"param":7}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad events cursor", method: http.MethodGet, path: "/api/v1/events?after=-1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t)
			rec := doRequest(t, r, http.MethodPost, "/api/v1/products", adminHex, `{"id":1,"name":"Widget","price":"1"}`)
			require.Equal(t, http.StatusCreated, rec.Code)

			rec = doRequest(t, r, tt.method, tt.path, tt.caller, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			resp := decodeBody[ErrorResponse](t, rec)
			require.Equal(t, tt.wantStatus, resp.Code)
			require.NotEmpty(t, resp.Message)
		})
	}
}

func TestRegistryHandler_Ownership(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/v1/owner", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, adminHex, decodeBody[OwnerResponse](t, rec).Owner)

	rec = doRequest(t, r, http.MethodPut, "/api/v1/owner", adminHex, `{"new_owner":"`+strangerHex+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/api/v1/owner", "", "")
	require.Equal(t, strangerHex, decodeBody[OwnerResponse](t, rec).Owner)

	rec = doRequest(t, r, http.MethodPut, "/api/v1/owner", adminHex, `{"new_owner":"`+adminHex+`"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegistryHandler_VerifyCondition(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/v1/external-registry/verify", strangerHex, `{"param":42}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeBody[VerifyConditionResponse](t, rec).Verified)
}

func TestRegistryHandler_ListEventsLimit(t *testing.T) {
	r, uc := setupRouterWithRegistry(t)
	admin := domain.MustParseAddress(adminHex)
	for i := 0; i <= maxEventsLimit; i++ {
		require.NoError(t, uc.CreateProduct(context.Background(), usecase.NewCreateProductReq(admin, int64(i), "p", 1)))
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "default", query: "", want: defaultEventsLimit},
		{name: "explicit", query: "?limit=2", want: 2},
		{name: "zero", query: "?limit=0", want: maxEventsLimit},
		{name: "above max", query: "?limit=5000", want: maxEventsLimit},
		{name: "above int64", query: "?limit=18446744073709551615", want: maxEventsLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodGet, "/api/v1/events"+tt.query, "", "")
			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, decodeBody[[]map[string]any](t, rec), tt.want)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr error
	}{
		{input: "600", want: 60000},
		{input: "599.99", want: 59999},
		{input: "0.1", want: 10},
		{input: "0", want: 0},
		{input: "1.500", want: 150},
		{input: "2.10000", want: 210},
		{input: "", wantErr: e.ErrMissingFields},
		{input: "abc", wantErr: e.ErrInvalidPrice},
		{input: "-1", wantErr: e.ErrPriceMustBeNonNegative},
		{input: "1.234", wantErr: e.ErrPricePrecision},
		{input: "99999999999999999999", wantErr: e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePrice(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "5.99", formatPrice(599))
	require.Equal(t, "0.00", formatPrice(0))
	require.Equal(t, "600.00", formatPrice(60000))
}

func TestToHTTPResponse_Unknown(t *testing.T) {
	code, msg := ToHTTPResponse(e.Wrap("op", e.ErrInternalServerError))
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, e.ErrInternalServerError.Error(), msg)

	code, _ = ToHTTPResponse(e.Wrap("op", e.ErrConditionVerificationFailed))
	require.Equal(t, http.StatusUnprocessableEntity, code)
}
