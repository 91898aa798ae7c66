package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/dto"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_ErrorDelBackendSeConvierteEnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	_, err := c.Sales.Create(context.Background(), dto.CreateSaleRequest{StoreID: "s1"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "INSUFFICIENT_STOCK", apiErr.Code)
	assert.Equal(t, "stock insuficiente", apiErr.Message)
}

func TestClient_ErrorSinCuerpoUsaTextoDeStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Products.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Message)
}

func TestClient_LoginGuardaTokenYLoEnvia(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, dto.LoginResponse{Token: "jwt-123", User: dto.UserResponse{ID: "u1", Role: "admin"}})
		case "/api/auth/me":
			gotAuth.Store(r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, dto.UserResponse{ID: "u1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	out, err := c.Auth.Login(context.Background(), "admin@textil.co", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-123", out.Token)

	_, err = c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-123", gotAuth.Load())
}

func TestClient_ListCacheadoHastaQueUnaMutacionInvalida(t *testing.T) {
	var listCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/inventario":
			listCalls.Add(1)
			assert.Equal(t, "s1", r.URL.Query().Get("store_id"))
			writeJSON(w, http.StatusOK, dto.StoreInventoryResponse{StoreID: "s1", TotalValue: decimal.NewFromInt(100)})
		case r.Method == http.MethodPost && r.URL.Path == "/api/trabajos/j1/completar":
			var in dto.CompleteJobRequest
			_ = json.NewDecoder(r.Body).Decode(&in)
			writeJSON(w, http.StatusOK, dto.JobResponse{ID: "j1", ReceivedPieces: in.ReceivedPieces, Status: "completado"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL, WithCache(NewQueryCache(time.Minute), time.Minute))

	inv, err := c.Inventory.Store(ctx, "s1", false)
	require.NoError(t, err)
	assert.True(t, inv.TotalValue.Equal(decimal.NewFromInt(100)))
	_, err = c.Inventory.Store(ctx, "s1", false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), listCalls.Load(), "la segunda lectura sale del cache")

	job, err := c.Jobs.CompleteJob(ctx, "j1", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, job.ReceivedPieces)

	_, err = c.Inventory.Store(ctx, "s1", false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), listCalls.Load(), "completar un trabajo invalida inventario")
}

func TestClient_DownloadReportDevuelveBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reportes/ventas.pdf", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("from"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	body, err := New(srv.URL).Reports.DownloadReport(context.Background(), ReportSales, Params{"from": "2024-01-01", "to": ""})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(body))
}
