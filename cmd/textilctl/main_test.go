package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/pkg/config"
	"github.com/jhoicas/textil-api/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{Client: config.ClientConfig{BaseURL: "http://127.0.0.1:1"}}
}

func TestRootCmd_Estructura(t *testing.T) {
	root := newRootCmd(testConfig(), logger.Nop())

	uses := make([]string, 0)
	for _, c := range root.Commands() {
		uses = append(uses, c.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "crear-admin", "reporte", "version"}, uses)

	report, _, err := root.Find([]string{"reporte"})
	require.NoError(t, err)
	sub := make([]string, 0)
	for _, c := range report.Commands() {
		sub = append(sub, c.Name())
	}
	assert.ElementsMatch(t, []string{"ventas", "inventario", "trabajos"}, sub)
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd(testConfig(), logger.Nop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "textilctl "+version)
}

func TestReporteVentas_DescargaPDFConToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reportes/ventas.pdf", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("from"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 ventas"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "ventas.pdf")
	root := newRootCmd(testConfig(), logger.Nop())
	root.SetArgs([]string{"reporte", "ventas", "--api-url", srv.URL, "--token", "tok", "--from", "2024-02-01", "--out", out})
	require.NoError(t, root.Execute())

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 ventas", string(body))
}

func TestReporteInventario_IniciaSesionSinToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: "nuevo"})
		case "/api/reportes/inventario.pdf":
			assert.Equal(t, "Bearer nuevo", r.Header.Get("Authorization"))
			assert.Equal(t, "s1", r.URL.Query().Get("store_id"))
			_, _ = w.Write([]byte("%PDF inventario"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "inv.pdf")
	root := newRootCmd(testConfig(), logger.Nop())
	root.SetArgs([]string{"reporte", "inventario", "--api-url", srv.URL, "--email", "a@b.co", "--password", "secreto123", "--store-id", "s1", "-o", out})
	require.NoError(t, root.Execute())

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF inventario", string(body))
}

func TestReporte_SinCredencialesFalla(t *testing.T) {
	root := newRootCmd(testConfig(), logger.Nop())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"reporte", "trabajos", "--out", filepath.Join(t.TempDir(), "x.pdf")})
	assert.Error(t, root.Execute())
}

func TestCrearAdmin_PasswordCortaFallaSinTocarDB(t *testing.T) {
	root := newRootCmd(testConfig(), logger.Nop())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"crear-admin", "--email", "a@b.co", "--password", "corta"})
	assert.Error(t, root.Execute())
}
