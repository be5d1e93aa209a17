//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type product struct {
	ID          string  `json:"idProducto"`
	Title       string  `json:"tituloProducto"`
	Price       float64 `json:"precio"`
	Description string  `json:"descripcion,omitempty"`
}

var catalog = []product{
	{ID: "1", Title: "Anillo de plata", Price: 45, Description: "Plata 925 con circonias"},
	{ID: "2", Title: "Collar de perlas", Price: 120},
	{ID: "3", Title: "Reloj Bulova", Price: 310},
}

// startBackend serves a small catalog on the routes the storefront reads
func startBackend(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("GET /api/Novedades/productosSlider", func(w http.ResponseWriter, r *http.Request) {
		reply(w, []any{})
	})
	mux.HandleFunc("GET /api/Novedades/novedades", func(w http.ResponseWriter, r *http.Request) {
		reply(w, catalog)
	})
	mux.HandleFunc("GET /api/Search/buscar", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("query"))
		out := []product{}
		for _, p := range catalog {
			if strings.Contains(strings.ToLower(p.Title), q) {
				out = append(out, p)
			}
		}
		reply(w, out)
	})
	mux.HandleFunc("GET /api/Productos/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, p := range catalog {
			if p.ID == r.PathValue("id") {
				reply(w, p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		reply(w, map[string]string{"mensaje": "Producto no encontrado"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

// startStorefront launches the TUI against a fresh backend and waits for it
func startStorefront(t *testing.T, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)
	tf.SetEnv("MERCAUCA_API_URL", startBackend(t))
	if err := tf.StartApp(args...); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	if !tf.Ready() {
		tf.DumpTailOnFail(t, "startup", 4096)
		t.Fatal("storefront did not start")
	}
	return tf
}
