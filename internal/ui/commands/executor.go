package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mercauca/internal/api"
	"mercauca/internal/domain"
	"mercauca/internal/eventbus"
	"mercauca/internal/logger"
	"mercauca/internal/session"
)

// DefaultTimeout bounds every backend call started from the UI
const DefaultTimeout = 15 * time.Second

// CommandContext provides context for command execution
type CommandContext struct {
	Backend  Backend
	Store    session.Store
	Bus      eventbus.EventBus
	Timeout  time.Duration
	Currency string
	// WrapUpload, when set, wraps the image reader of a new listing, for
	// example to report progress
	WrapUpload func(r io.Reader, size int64) io.Reader
}

// Executor turns storefront operations into Bubble Tea commands. Each
// command runs off the UI goroutine and reports back with a message.
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx CommandContext) *Executor {
	if ctx.Timeout <= 0 {
		ctx.Timeout = DefaultTimeout
	}
	if ctx.Currency == "" {
		ctx.Currency = "USD"
	}
	return &Executor{ctx: &ctx}
}

func (e *Executor) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.ctx.Timeout)
}

func (e *Executor) publish(event eventbus.DomainEvent) {
	if e.ctx.Bus != nil {
		e.ctx.Bus.Publish(event)
	}
}

// userMessage picks the backend's message for a rejected request, fallback
// when the backend gave none, and offline when the request never got a reply
func userMessage(err error, fallback, offline string) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		return api.Message(err, fallback)
	}
	return offline
}

// LoadHome fetches the slider photos and the new products in parallel. A
// failing slider only costs the carousel its photos.
func (e *Executor) LoadHome() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()

		var msg HomeLoadedMsg
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			photos, err := e.ctx.Backend.SliderPhotos(gctx)
			if err != nil {
				logger.Warn("failed to load slider photos", zap.Error(err))
				return nil
			}
			msg.Photos = photos
			return nil
		})
		g.Go(func() error {
			products, err := e.ctx.Backend.NewArrivals(gctx)
			if err != nil {
				return fmt.Errorf("failed to load new products: %w", err)
			}
			msg.Products = products
			return nil
		})
		if err := g.Wait(); err != nil {
			logger.Error("home load failed", zap.Error(err))
			msg.Err = err
		}
		return msg
	}
}

// Search runs one query. Replies carry seq so stale ones can be dropped.
func (e *Executor) Search(query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		results, err := e.ctx.Backend.Search(ctx, query)
		if err != nil {
			logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		}
		return SearchResultMsg{Query: query, Seq: seq, Results: results, Err: err}
	}
}

// LoadProduct fetches the product detail
func (e *Executor) LoadProduct(id domain.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		p, err := e.ctx.Backend.Product(ctx, id)
		if err != nil {
			logger.Warn("failed to load product", zap.String("id", id.String()), zap.Error(err))
		}
		return ProductLoadedMsg{ID: id, Product: p, NotFound: errors.Is(err, api.ErrNotFound), Err: err}
	}
}

// AddToCart adds quantity units of p. The backend expects the line total
// as the price.
func (e *Executor) AddToCart(token, userID string, p domain.Product, quantity int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		req := api.AddToCartRequest{
			UserID:    userID,
			VariantID: p.CartVariantID(),
			Quantity:  quantity,
			Price:     float64(p.Price) * float64(quantity),
			Currency:  e.ctx.Currency,
		}
		message, err := e.ctx.Backend.AddToCart(ctx, token, req)
		if err != nil {
			logger.Warn("add to cart failed", zap.String("product", p.ID.String()), zap.Error(err))
			return AddedToCartMsg{
				Message: userMessage(err, "No se pudo agregar al carrito.", "Ups, algo pasó al agregar al carrito."),
				Err:     err,
			}
		}
		if message == "" {
			message = "Producto agregado al carrito ✅"
		}
		e.publish(eventbus.CartChangedEvent{UserID: userID})
		return AddedToCartMsg{Message: message}
	}
}

// LoadCart fetches the cart rows
func (e *Executor) LoadCart(token, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		items, err := e.ctx.Backend.Cart(ctx, token, userID)
		if err != nil {
			logger.Warn("failed to load cart", zap.Error(err))
			return CartLoadedMsg{
				Message: userMessage(err, "No se pudo cargar el carrito.", "Ocurrió un error inesperado cargando el carrito."),
				Err:     err,
			}
		}
		return CartLoadedMsg{Items: items}
	}
}

// RemoveItem deletes one cart row
func (e *Executor) RemoveItem(token, userID string, id domain.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		if err := e.ctx.Backend.RemoveFromCart(ctx, token, userID, id); err != nil {
			logger.Warn("failed to remove cart item", zap.String("id", id.String()), zap.Error(err))
			return CartItemRemovedMsg{
				ID:      id,
				Message: userMessage(err, "No se pudo eliminar el artículo del carrito.", "Ocurrió un error inesperado al eliminar el artículo."),
				Err:     err,
			}
		}
		e.publish(eventbus.CartChangedEvent{UserID: userID})
		return CartItemRemovedMsg{ID: id}
	}
}

// Checkout places the order
func (e *Executor) Checkout(token, userID string, total float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		if err := e.ctx.Backend.Checkout(ctx, token, userID); err != nil {
			logger.Error("checkout failed", zap.Error(err))
			return CheckoutDoneMsg{
				Total:   total,
				Message: userMessage(err, "No se pudo finalizar la compra.", "Ocurrió un error inesperado al finalizar la compra."),
				Err:     err,
			}
		}
		logger.Info("order placed", zap.String("user", userID), zap.Float64("total", total))
		e.publish(eventbus.CheckoutCompletedEvent{UserID: userID, Total: total})
		e.publish(eventbus.CartChangedEvent{UserID: userID})
		return CheckoutDoneMsg{Total: total}
	}
}

// CartCount fetches the badge count
func (e *Executor) CartCount(token, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		n, err := e.ctx.Backend.CartCount(ctx, token, userID)
		if err != nil {
			logger.Warn("failed to load cart count", zap.Error(err))
		}
		return CartCountMsg{Count: n, Err: err}
	}
}

// Login exchanges credentials for a session and persists it
func (e *Executor) Login(creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		resp, err := e.ctx.Backend.Login(ctx, creds.UserID, creds.Password)
		if err != nil {
			logger.Info("login rejected", zap.String("user", creds.UserID), zap.Error(err))
			return LoggedInMsg{
				Message: userMessage(err, "Credenciales inválidas", "⚠️ Error al conectar con el servidor"),
				Err:     err,
			}
		}

		sess := session.Session{Token: resp.Token, ExpiresAtUTC: resp.ExpiresAtUTC, User: resp.User}
		if e.ctx.Store != nil {
			if err := e.ctx.Store.Save(sess); err != nil {
				logger.Error("failed to persist session", zap.Error(err))
			}
		}
		user := sess.Profile()
		e.publish(eventbus.SessionStartedEvent{User: user})
		return LoggedInMsg{
			Session: sess,
			User:    user,
			UserID:  sess.UserID(),
			Message: "✅ Inicio de sesión correcto",
		}
	}
}

// RestoreSession loads the stored session and checks it with the backend.
// A rejected token is removed; an unreachable backend leaves it on disk
// for the next run.
func (e *Executor) RestoreSession() tea.Cmd {
	return func() tea.Msg {
		if e.ctx.Store == nil {
			return SessionRestoredMsg{Err: session.ErrNoSession}
		}
		sess, err := e.ctx.Store.Load()
		if err != nil {
			if errors.Is(err, session.ErrExpired) {
				e.publish(eventbus.SessionEndedEvent{Reason: "expired"})
			}
			return SessionRestoredMsg{Err: err}
		}

		ctx, cancel := e.context()
		defer cancel()
		if err := e.ctx.Backend.Verify(ctx, sess.Token); err != nil {
			var se *api.StatusError
			if errors.As(err, &se) {
				logger.Info("stored session rejected", zap.Int("status", se.Status))
				if cerr := e.ctx.Store.Clear(); cerr != nil {
					logger.Error("failed to clear session", zap.Error(cerr))
				}
				e.publish(eventbus.SessionEndedEvent{Reason: "rejected"})
			} else {
				logger.Warn("failed to verify session", zap.Error(err))
			}
			return SessionRestoredMsg{Err: err}
		}

		user := sess.Profile()
		e.publish(eventbus.SessionStartedEvent{User: user})
		return SessionRestoredMsg{Session: sess, User: user, UserID: sess.UserID()}
	}
}

// Logout removes the stored session
func (e *Executor) Logout() tea.Cmd {
	return func() tea.Msg {
		var err error
		if e.ctx.Store != nil {
			err = e.ctx.Store.Clear()
			if err != nil {
				logger.Error("failed to clear session", zap.Error(err))
			}
		}
		e.publish(eventbus.SessionEndedEvent{Reason: "logout"})
		return LoggedOutMsg{Err: err}
	}
}

// SendCode e-mails a verification code
func (e *Executor) SendCode(email string, resend bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		if err := e.ctx.Backend.SendCode(ctx, email); err != nil {
			logger.Warn("failed to send verification code", zap.Bool("resend", resend), zap.Error(err))
			msg := CodeSentMsg{Email: email, Resend: resend, Err: err}
			if resend {
				msg.Message = userMessage(err, "No se pudo reenviar el código, intenta más tarde.", "❌ Error al reenviar el código.")
			} else {
				msg.Message = userMessage(err, "⚠️ No se pudo enviar el código de verificación.", "❌ Error al conectar con el servidor de verificación.")
			}
			return msg
		}
		msg := CodeSentMsg{Email: email, Resend: resend}
		if resend {
			msg.Message = "✅ Se ha reenviado el código a tu correo."
		}
		return msg
	}
}

// VerifyAndRegister checks the e-mail code and, once accepted, creates the
// account
func (e *Executor) VerifyAndRegister(reg domain.Registration, code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.context()
		defer cancel()
		if err := e.ctx.Backend.VerifyCode(ctx, reg.Email, code); err != nil {
			logger.Info("verification code rejected", zap.Error(err))
			return RegisteredMsg{
				CodeErr: userMessage(err, "Código incorrecto o expirado. Intenta de nuevo.", "❌ Error al verificar el código."),
				Err:     err,
			}
		}

		id, err := e.ctx.Backend.Register(ctx, api.NewRegisterRequest(reg))
		if err != nil {
			logger.Warn("registration failed", zap.String("user", reg.UserID), zap.Error(err))
			return RegisteredMsg{
				Message: userMessage(err, "⚠️ Error al registrar usuario", "❌ Error al conectar con el servidor."),
				Err:     err,
			}
		}
		if id == "" {
			id = reg.UserID
		}
		logger.Info("account registered", zap.String("user", id))
		return RegisteredMsg{
			UserID:  id,
			Message: fmt.Sprintf("✅ Usuario %s registrado correctamente.", id),
		}
	}
}

// CreateProduct uploads the listing with the image read from disk
func (e *Executor) CreateProduct(token string, form domain.ProductForm) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(form.ImagePath)
		if err != nil {
			logger.Warn("failed to open product image", zap.String("path", form.ImagePath), zap.Error(err))
			return ProductCreatedMsg{Title: form.Title, Message: "Debes seleccionar una imagen.", Err: err}
		}
		defer f.Close()

		ctx, cancel := e.context()
		defer cancel()
		var r io.Reader = f
		if e.ctx.WrapUpload != nil {
			var size int64 = -1
			if info, err := f.Stat(); err == nil {
				size = info.Size()
			}
			r = e.ctx.WrapUpload(f, size)
		}
		upload := api.Upload{Name: filepath.Base(form.ImagePath), Reader: r}
		if err := e.ctx.Backend.CreateProduct(ctx, token, form, upload); err != nil {
			logger.Error("failed to publish product", zap.Error(err))
			return ProductCreatedMsg{Title: form.Title, Message: "Ocurrió un error al guardar el producto.", Err: err}
		}
		e.publish(eventbus.ProductPublishedEvent{Title: form.Title})
		return ProductCreatedMsg{Title: form.Title, Message: "Producto publicado correctamente 😎"}
	}
}
