package commands

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercauca/internal/api"
	"mercauca/internal/domain"
	"mercauca/internal/eventbus"
	"mercauca/internal/session"
)

// recordingBus delivers nothing and remembers what was published
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) types() []eventbus.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.EventType
	for _, e := range b.events {
		out = append(out, e.Type())
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type fixture struct {
	exec  *Executor
	store session.Store
	bus   *recordingBus
}

func newFixture(t *testing.T, r chi.Router) fixture {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store, err := session.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	bus := &recordingBus{}
	client := api.NewClient(srv.URL, api.WithRetryPolicy(api.RetryPolicy{
		MaxRetries:   1,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}))
	return fixture{
		exec:  NewExecutor(CommandContext{Backend: client, Store: store, Bus: bus, Timeout: 2 * time.Second}),
		store: store,
		bus:   bus,
	}
}

func TestLoadHomeToleratesSliderFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Novedades/productosSlider", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 500, map[string]string{"mensaje": "caído"})
	})
	r.Get("/api/Novedades/novedades", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"idProducto": 1, "tituloProducto": "Reloj", "precio": 10}})
	})
	f := newFixture(t, r)

	msg := f.exec.LoadHome()().(HomeLoadedMsg)
	assert.NoError(t, msg.Err)
	assert.Empty(t, msg.Photos)
	require.Len(t, msg.Products, 1)
	assert.Equal(t, "Reloj", msg.Products[0].Title)
}

func TestLoadHomeFailsWithoutProducts(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Novedades/productosSlider", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"fotoBase64": "iVBOR"}})
	})
	r.Get("/api/Novedades/novedades", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 400, map[string]string{"mensaje": "no"})
	})
	f := newFixture(t, r)

	msg := f.exec.LoadHome()().(HomeLoadedMsg)
	assert.Error(t, msg.Err)
}

func TestSearchCarriesSeq(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Search/buscar", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"idProducto": "A1", "tituloProducto": r.URL.Query().Get("query")}})
	})
	f := newFixture(t, r)

	msg := f.exec.Search("anillo", 7)().(SearchResultMsg)
	assert.Equal(t, 7, msg.Seq)
	assert.Equal(t, "anillo", msg.Query)
	require.Len(t, msg.Results, 1)
	assert.Equal(t, "anillo", msg.Results[0].Title)
}

func TestLoadProductNotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Productos/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, map[string]string{"mensaje": "no existe"})
	})
	f := newFixture(t, r)

	msg := f.exec.LoadProduct("9")().(ProductLoadedMsg)
	assert.True(t, msg.NotFound)
	assert.Equal(t, domain.ID("9"), msg.ID)
}

func TestAddToCartSendsLineTotal(t *testing.T) {
	var got api.AddToCartRequest
	var auth string
	r := chi.NewRouter()
	r.Post("/api/Carrito/agregar-articulo", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, 200, map[string]string{"mensaje": "Agregado"})
	})
	f := newFixture(t, r)

	p := domain.Product{ID: "5", VariantID: "55", Title: "Collar", Price: 12.5}
	msg := f.exec.AddToCart("tok", "ana", p, 3)().(AddedToCartMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "Agregado", msg.Message)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, domain.ID("55"), got.VariantID)
	assert.Equal(t, 3, got.Quantity)
	assert.InDelta(t, 37.5, got.Price, 0.001)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, []eventbus.EventType{eventbus.EventCartChanged}, f.bus.types())
}

func TestAddToCartOfflineMessage(t *testing.T) {
	f := newFixture(t, chi.NewRouter())
	f.exec.ctx.Backend = api.NewClient("http://127.0.0.1:1", api.WithTimeout(200*time.Millisecond),
		api.WithRetryPolicy(api.RetryPolicy{MaxRetries: 0, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}))

	msg := f.exec.AddToCart("tok", "ana", domain.Product{ID: "1"}, 1)().(AddedToCartMsg)
	require.Error(t, msg.Err)
	assert.Equal(t, "Ups, algo pasó al agregar al carrito.", msg.Message)
	assert.Empty(t, f.bus.types())
}

func TestCheckoutPublishesEvents(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/Carrito/finalizar-compra/{user}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]string{"mensaje": "ok"})
	})
	f := newFixture(t, r)

	msg := f.exec.Checkout("tok", "ana", 42)().(CheckoutDoneMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, []eventbus.EventType{eventbus.EventCheckoutCompleted, eventbus.EventCartChanged}, f.bus.types())
}

func TestLoginPersistsSession(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/usuarios/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{
			"token":        "tok-1",
			"expiresAtUtc": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
			"user":         map[string]string{"idUsuario": "ana", "nombreUsuario": "Ana"},
		})
	})
	f := newFixture(t, r)

	msg := f.exec.Login(domain.Credentials{UserID: "ana", Password: "x"})().(LoggedInMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "ana", msg.UserID)
	assert.Equal(t, "Ana", msg.User.Name)

	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", stored.Token)
	assert.Equal(t, []eventbus.EventType{eventbus.EventSessionStarted}, f.bus.types())
}

func TestLoginRejected(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/usuarios/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]string{})
	})
	f := newFixture(t, r)

	msg := f.exec.Login(domain.Credentials{UserID: "ana", Password: "x"})().(LoggedInMsg)
	require.Error(t, msg.Err)
	assert.Equal(t, "Credenciales inválidas", msg.Message)
	_, err := f.store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestRestoreSessionClearsRejectedToken(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Usuarios/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]string{"mensaje": "token inválido"})
	})
	f := newFixture(t, r)
	require.NoError(t, f.store.Save(session.Session{
		Token:        "old",
		ExpiresAtUTC: time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	}))

	msg := f.exec.RestoreSession()().(SessionRestoredMsg)
	assert.Error(t, msg.Err)
	_, err := f.store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
	assert.Equal(t, []eventbus.EventType{eventbus.EventSessionEnded}, f.bus.types())
}

func TestRestoreSessionAccepted(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/Usuarios/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]bool{"ok": true})
	})
	f := newFixture(t, r)
	require.NoError(t, f.store.Save(session.Session{
		Token:        "tok",
		ExpiresAtUTC: time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		User:         json.RawMessage(`{"idUsuario":"ana"}`),
	}))

	msg := f.exec.RestoreSession()().(SessionRestoredMsg)
	require.NoError(t, msg.Err)
	require.NotNil(t, msg.Session)
	assert.Equal(t, "ana", msg.UserID)
}

func TestRestoreSessionWithoutStore(t *testing.T) {
	e := NewExecutor(CommandContext{})
	msg := e.RestoreSession()().(SessionRestoredMsg)
	assert.True(t, errors.Is(msg.Err, session.ErrNoSession))
}

func TestVerifyAndRegister(t *testing.T) {
	codeOK := false
	var registered api.RegisterRequest
	r := chi.NewRouter()
	r.Post("/api/verificacion/verificar-codigo", func(w http.ResponseWriter, r *http.Request) {
		if !codeOK {
			writeJSON(w, 400, map[string]string{"mensaje": "Código vencido"})
			return
		}
		writeJSON(w, 200, map[string]string{})
	})
	r.Post("/api/Usuarios/registro", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&registered)
		writeJSON(w, 200, map[string]string{"idUsuario": "ana"})
	})
	f := newFixture(t, r)
	reg := domain.Registration{UserID: "ana", Name: "Ana", Email: "ana@example.com", Phone: "9", Password: "secreto"}

	msg := f.exec.VerifyAndRegister(reg, "123456")().(RegisteredMsg)
	assert.Equal(t, "Código vencido", msg.CodeErr)
	assert.Empty(t, registered.UserID, "nothing is registered before the code is accepted")

	codeOK = true
	msg = f.exec.VerifyAndRegister(reg, "123456")().(RegisteredMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "✅ Usuario ana registrado correctamente.", msg.Message)
	assert.Equal(t, "ana@example.com", registered.Email)
}

func TestCreateProductNeedsImage(t *testing.T) {
	f := newFixture(t, chi.NewRouter())
	form := domain.NewProductForm("ana")
	form.ImagePath = filepath.Join(t.TempDir(), "missing.jpg")

	msg := f.exec.CreateProduct("tok", form)().(ProductCreatedMsg)
	require.Error(t, msg.Err)
	assert.Equal(t, "Debes seleccionar una imagen.", msg.Message)
}

func TestCreateProductUploads(t *testing.T) {
	var title, filename string
	r := chi.NewRouter()
	r.Post("/api/Productos", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, 400, map[string]string{"mensaje": err.Error()})
			return
		}
		title = r.FormValue("titulo")
		if _, h, err := r.FormFile("imagen"); err == nil {
			filename = h.Filename
		}
		writeJSON(w, 200, map[string]string{"mensaje": "ok"})
	})
	f := newFixture(t, r)

	img := filepath.Join(t.TempDir(), "reloj.jpg")
	require.NoError(t, os.WriteFile(img, []byte{0xff, 0xd8, 0xff}, 0o600))
	form := domain.NewProductForm("ana")
	form.Title = "Reloj"
	form.ImagePath = img

	msg := f.exec.CreateProduct("tok", form)().(ProductCreatedMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "Reloj", title)
	assert.Equal(t, "reloj.jpg", filename)
	assert.Equal(t, []eventbus.EventType{eventbus.EventProductPublished}, f.bus.types())
}
