package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercauca/internal/domain"
)

func newTestClient(t *testing.T, r chi.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", WithRetryPolicy(RetryPolicy{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCatalogEndpoints(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Novedades/productosSlider", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"fotoBase64": "iVBOR1"}, {"fotoBase64": "/9j/2"}})
	})
	r.Get("/api/Novedades/novedades", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"idProducto": 1, "tituloProducto": "Reloj", "precio": 10}})
	})
	r.Get("/api/Search/buscar", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "anillo de oro" {
			writeJSON(w, 200, []map[string]any{{"idProducto": "A1", "tituloProducto": "Anillo", "precio": "5"}})
			return
		}
		writeJSON(w, 200, map[string]any{"mensaje": "sin resultados"})
	})
	r.Get("/api/Productos/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{
			"idProducto":     chi.URLParam(r, "id"),
			"tituloProducto": "Collar",
			"descripcion":    "Plata 925",
		})
	})
	c := newTestClient(t, r)
	ctx := context.Background()

	photos, err := c.SliderPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "/9j/2", photos[1].Photo)

	news, err := c.NewArrivals(ctx)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, domain.ID("1"), news[0].ID)

	found, err := c.Search(ctx, "anillo de oro")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, domain.Amount(5), found[0].Price)

	none, err := c.Search(ctx, "nada")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	p, err := c.Product(ctx, "C9")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("C9"), p.ID)
	assert.Equal(t, "Plata 925", p.Description)
}

func TestCartEndpoints(t *testing.T) {
	var removed, checkedOut atomic.Bool
	var added AddToCartRequest

	r := chi.NewRouter()
	r.Route("/api/Carrito", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer tok" {
					writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "token inválido"})
					return
				}
				next.ServeHTTP(w, r)
			})
		})
		r.Get("/{user}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 200, []map[string]any{
				{"idProducto": 7, "tituloProducto": "Reloj", "precio": 20, "cantidad": 2},
				{"tituloProducto": "Sin id", "precio": 1, "cantidad": 1},
			})
		})
		r.Get("/cantidad-articulos/{user}", func(w http.ResponseWriter, r *http.Request) {
			switch chi.URLParam(r, "user") {
			case "num":
				_, _ = io.WriteString(w, "3")
			case "str":
				_, _ = io.WriteString(w, `"4"`)
			default:
				_, _ = io.WriteString(w, `{"total":5}`)
			}
		})
		r.Post("/agregar-articulo", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&added))
			if added.VariantID == "dup" {
				writeJSON(w, http.StatusConflict, map[string]any{"mensaje": "El artículo ya está en el carrito."})
				return
			}
			writeJSON(w, 200, map[string]any{"mensaje": "Artículo agregado correctamente."})
		})
		r.Delete("/eliminar-articulo/{user}/{product}", func(w http.ResponseWriter, r *http.Request) {
			removed.Store(chi.URLParam(r, "user") == "ana" && chi.URLParam(r, "product") == "7")
			w.WriteHeader(http.StatusNoContent)
		})
		r.Post("/finalizar-compra/{user}", func(w http.ResponseWriter, r *http.Request) {
			checkedOut.Store(true)
			w.WriteHeader(http.StatusOK)
		})
	})
	c := newTestClient(t, r)
	ctx := context.Background()

	items, err := c.Cart(ctx, "tok", "ana")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "#7", items[0].SKU())
	assert.Equal(t, domain.ID("1"), items[1].ID, "missing ids fall back to the position")

	_, err = c.Cart(ctx, "bad", "ana")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "token inválido", Message(err, "fallback"))

	for user, want := range map[string]int{"num": 3, "str": 4, "obj": 0} {
		n, err := c.CartCount(ctx, "tok", user)
		require.NoError(t, err)
		assert.Equal(t, want, n, user)
	}

	msg, err := c.AddToCart(ctx, "tok", AddToCartRequest{UserID: "ana", VariantID: "7", Quantity: 2, Price: 40})
	require.NoError(t, err)
	assert.Equal(t, "Artículo agregado correctamente.", msg)
	assert.Equal(t, "USD", added.Currency)
	assert.Equal(t, 40.0, added.Price)

	_, err = c.AddToCart(ctx, "tok", AddToCartRequest{UserID: "ana", VariantID: "dup", Quantity: 1})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, "El artículo ya está en el carrito.", se.Message)

	require.NoError(t, c.RemoveFromCart(ctx, "tok", "ana", "7"))
	assert.True(t, removed.Load())

	require.NoError(t, c.Checkout(ctx, "tok", "ana"))
	assert.True(t, checkedOut.Load())
}

func TestAuthEndpoints(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/usuarios/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secreto" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Credenciales inválidas"})
			return
		}
		writeJSON(w, 200, map[string]any{
			"token":        "tok",
			"expiresAtUtc": "2030-01-01T00:00:00Z",
			"user":         map[string]any{"idUsuario": body["idUsuario"]},
		})
	})
	r.Get("/api/Usuarios/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	r.Post("/api/Usuarios/registro", func(w http.ResponseWriter, r *http.Request) {
		var body RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, 200, map[string]any{"idUsuario": body.UserID})
	})
	r.Post("/api/verificacion/enviar-codigo", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/api/verificacion/verificar-codigo", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["codigo"] != "123456" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"mensaje": "Código incorrecto"})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	c := newTestClient(t, r)
	ctx := context.Background()

	resp, err := c.Login(ctx, " ana ", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.JSONEq(t, `{"idUsuario":"ana"}`, string(resp.User))

	_, err = c.Login(ctx, "ana", "mal")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Credenciales inválidas", Message(err, ""))

	require.NoError(t, c.Verify(ctx, "tok"))
	assert.ErrorIs(t, c.Verify(ctx, "old"), ErrUnauthorized)

	id, err := c.Register(ctx, NewRegisterRequest(domain.Registration{UserID: "ana", Email: "a@b.c"}))
	require.NoError(t, err)
	assert.Equal(t, "ana", id)

	require.NoError(t, c.SendCode(ctx, "a@b.c"))
	require.NoError(t, c.VerifyCode(ctx, "a@b.c", " 123456 "))
	err = c.VerifyCode(ctx, "a@b.c", "000000")
	assert.Equal(t, "Código incorrecto", Message(err, ""))
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/Novedades/novedades", func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			writeJSON(w, 200, []any{})
		}
	})
	c := newTestClient(t, r)

	_, err := c.NewArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/Novedades/novedades", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, r)

	_, err := c.NewArrivals(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.Status)
	assert.Equal(t, int32(4), calls.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/Productos/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	c := newTestClient(t, r)

	_, err := c.Product(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPostIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	r := chi.NewRouter()
	r.Post("/api/Carrito/finalizar-compra/{user}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, r)

	assert.Error(t, c.Checkout(context.Background(), "tok", "ana"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRequestIDHeader(t *testing.T) {
	seen := make(chan string, 1)
	r := chi.NewRouter()
	r.Get("/api/Usuarios/verify", func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(RequestIDHeader)
	})
	c := newTestClient(t, r)

	require.NoError(t, c.Verify(context.Background(), "tok"))
	_, err := uuid.Parse(<-seen)
	assert.NoError(t, err)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestCustomHTTPClient(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Usuarios/verify", func(w http.ResponseWriter, r *http.Request) {})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	rt := &countingTransport{}
	c := NewClient(srv.URL, WithHTTPClient(&http.Client{Transport: rt}), WithTimeout(time.Second))

	require.NoError(t, c.Verify(context.Background(), "tok"))
	assert.Equal(t, int32(1), rt.calls.Load())
}

func TestCreateProductMultipart(t *testing.T) {
	type received struct {
		fields   map[string]string
		filename string
		content  string
	}
	got := make(chan received, 1)

	r := chi.NewRouter()
	r.Post("/api/Productos", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("imagen")
		require.NoError(t, err)
		data, _ := io.ReadAll(file)
		rec := received{fields: map[string]string{}, filename: header.Filename, content: string(data)}
		for k, v := range r.MultipartForm.Value {
			rec.fields[k] = v[0]
		}
		got <- rec
		writeJSON(w, http.StatusCreated, map[string]any{"idProducto": 99})
	})
	c := newTestClient(t, r)

	form := domain.NewProductForm("ana")
	form.Title = "Reloj"
	form.Description = "Bulova"
	form.Brand = "Bulova"
	form.Price = " 150 "

	err := c.CreateProduct(context.Background(), "", form, Upload{Name: "reloj.png", Reader: strings.NewReader("PNGDATA")})
	require.NoError(t, err)

	rec := <-got
	assert.Equal(t, "reloj.png", rec.filename)
	assert.Equal(t, "PNGDATA", rec.content)
	assert.Equal(t, map[string]string{
		"idUsuario":   "ana",
		"titulo":      "Reloj",
		"descripcion": "Bulova",
		"marca":       "Bulova",
		"idCondicion": "C001",
		"idCategoria": "CAT001",
		"precio":      "150",
	}, rec.fields)
}

func TestCreateProductFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/Productos", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := newTestClient(t, r)

	err := c.CreateProduct(context.Background(), "", domain.NewProductForm("ana"), Upload{Reader: strings.NewReader("x")})
	assert.ErrorContains(t, err, "failed to create product")

	err = c.CreateProduct(context.Background(), "", domain.NewProductForm("ana"), Upload{})
	assert.Error(t, err)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 2, parseCount([]byte("2")))
	assert.Equal(t, 6, parseCount([]byte(`" 6 "`)))
	assert.Equal(t, 0, parseCount([]byte(`"seis"`)))
	assert.Equal(t, 0, parseCount([]byte(`null`)))
	assert.Equal(t, 0, parseCount([]byte(``)))
}
