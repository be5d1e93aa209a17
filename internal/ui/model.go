package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"mercauca/internal/carousel"
	"mercauca/internal/clock"
	"mercauca/internal/config"
	"mercauca/internal/domain"
	"mercauca/internal/eventbus"
	"mercauca/internal/logger"
	"mercauca/internal/session"
	"mercauca/internal/ui/commands"
	"mercauca/internal/ui/forms"
	"mercauca/internal/ui/handlers"
	"mercauca/internal/ui/input"
	inputtypes "mercauca/internal/ui/input/types"
	"mercauca/internal/ui/state"
	"mercauca/internal/ui/views"
)

// Delays of the storefront's transient UI
const (
	SearchDebounce      = 350 * time.Millisecond
	FeedbackDuration    = 2300 * time.Millisecond
	CheckoutSuccessTime = 2500 * time.Millisecond
	LoginRedirectDelay  = 800 * time.Millisecond
	SignupRedirectDelay = 1500 * time.Millisecond
	StatusDuration      = 3 * time.Second
)

// Deps are the collaborators the model needs
type Deps struct {
	Config  *config.Config
	Backend commands.Backend
	Store   session.Store
	Bus     eventbus.EventBus
	// Clock replaces the loop clock driving the carousel. Tests pass a
	// clock.Manual.
	Clock clock.Clock
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	spinner     spinner.Model
	inPagerMode bool

	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	pager        *PagerOps

	loginForm    *forms.Form
	registerForm *forms.Form
	sellForm     *forms.Form
	// registration waiting for its e-mail code
	pendingReg domain.Registration

	loop            *loopClock
	clock           clock.Clock
	host            *carouselHost
	carousel        *carousel.Controller
	disposeCarousel carousel.Disposer
	// autoplayHeld is set while the user has paused autoplay by hand
	autoplayHeld bool

	navSeq     int
	successSeq int

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(deps Deps) *Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appState := state.NewAppState(domain.FeaturedSlides)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		bus:          deps.Bus,
		config:       cfg,
		state:        appState,
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      sp,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		pager:        NewPagerOps(nil),
		loginForm:    forms.Login(),
		registerForm: forms.Register(),
		sellForm:     forms.Sell(),
		loop:         newLoopClock(),
		host:         newCarouselHost(appState),
	}
	m.clock = deps.Clock
	if m.clock == nil {
		m.clock = m.loop
	}

	m.cmdExecutor = commands.NewExecutor(commands.CommandContext{
		Backend:  deps.Backend,
		Store:    deps.Store,
		Bus:      deps.Bus,
		Timeout:  cfg.Timeout(),
		Currency: cfg.Shop.Currency,
	})
	m.eventHandler = handlers.NewEventHandler(appState, m.cmdExecutor.CartCount)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
	if p != nil {
		m.loop.SetSender(p.Send)
	}
}

// State exposes the application state, mainly for tests
func (m *Model) State() *state.AppState {
	return m.state
}

// Carousel returns the mounted carousel controller, nil off the home page
func (m *Model) Carousel() *carousel.Controller {
	return m.carousel
}

// Init mounts the home carousel and starts the initial loads
func (m *Model) Init() tea.Cmd {
	m.mountCarousel()
	return tea.Batch(
		m.cmdExecutor.RestoreSession(),
		m.cmdExecutor.LoadHome(),
		m.spinner.Tick,
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if m.state.Screen == state.ScreenHome && m.inputHandler.GetMode() == inputtypes.ModeNormal &&
			!m.state.CheckoutSuccess {
			m.host.HandleMouse(msg, views.LayoutCarousel(m.width, len(m.state.Slides)))
		}
		return m, nil

	case clockFireMsg:
		m.loop.fire(msg.id)
		return m, nil

	case spinner.TickMsg:
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		cmd := m.inputHandler.Update(msg)
		return m, tea.Batch(cmd, m.handleNonKeyboardMsg(msg))
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.state.CheckoutSuccess {
		m.state.CheckoutSuccess = false
		return nil
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}

	// The search box takes focus away from the home regions
	if m.inputHandler.GetMode() == inputtypes.ModeSearch && m.state.Focus != state.FocusNone {
		m.setFocus(state.FocusNone)
	}
	return tea.Batch(cmds...)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		State: m.state,
		Selector: func() bool {
			f := m.currentForm()
			return f != nil && f.SelectorFocused()
		},
	}
}

// changeMode switches the input mode outside of key handling
func (m *Model) changeMode(mode inputtypes.Mode, data string) tea.Cmd {
	actions, cmd := m.inputHandler.ChangeMode(mode, data, m.inputContext())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Cargando..."
	}

	mode := m.inputHandler.GetMode()
	ti := m.inputHandler.GetTextInput()
	m.keys.screen = m.state.Screen

	vs := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		App:             m.state,
		SearchActive:    mode == inputtypes.ModeSearch,
		CodeOpen:        mode == inputtypes.ModeCode,
		ConfirmOpen:     mode == inputtypes.ModeConfirm,
		Form:            m.currentForm(),
		Spinner:         m.spinner.View(),
		HelpView:        m.help.View(m.keys),
		CarouselFocused: m.state.Focus == state.FocusCarousel,
	}
	switch {
	case vs.SearchActive:
		vs.SearchInput = ti.View()
	case vs.CodeOpen:
		vs.CodeInput = ti.View()
	}
	if m.carousel != nil {
		vs.AutoplayState = autoplayLabel(m.carousel.State())
	}
	return m.renderer.Render(vs)
}

func autoplayLabel(s carousel.State) string {
	switch s {
	case carousel.StateRunning:
		return "reproduciendo"
	case carousel.StatePaused:
		return "en pausa"
	case carousel.StateDisabled:
		return "movimiento reducido"
	default:
		return "detenido"
	}
}

func (m *Model) currentForm() *forms.Form {
	switch m.state.Screen {
	case state.ScreenLogin:
		return m.loginForm
	case state.ScreenRegister:
		return m.registerForm
	case state.ScreenSell:
		return m.sellForm
	}
	return nil
}

// mountCarousel binds a fresh controller to the home page carousel
func (m *Model) mountCarousel() {
	if m.carousel != nil {
		return
	}
	root := m.host.Root(m.config.AutoplayDelay())
	m.carousel, m.disposeCarousel = carousel.Init(root, carousel.Config{
		TouchResumeDelay: m.config.TouchResumeDelay(),
		ReduceMotion:     m.config.Carousel.ReduceMotion,
		Clock:            m.clock,
	})
	logger.Debug("carousel mounted",
		zap.Int("slides", m.carousel.Len()),
		zap.Duration("delay", m.carousel.Delay()),
		zap.Stringer("state", m.carousel.State()))
}

func (m *Model) unmountCarousel() {
	m.setFocus(state.FocusNone)
	if m.disposeCarousel != nil {
		m.disposeCarousel()
	}
	m.carousel = nil
	m.disposeCarousel = nil
	m.autoplayHeld = false
	m.host.reset()
}

// setScreen switches pages, mounting the carousel only while home is shown
func (m *Model) setScreen(s state.Screen) {
	if m.state.Screen == s {
		return
	}
	if m.state.Screen == state.ScreenHome {
		m.unmountCarousel()
	}
	m.state.Screen = s
	m.state.StatusMessage = ""
	if s == state.ScreenHome {
		m.mountCarousel()
	}
}

// setFocus moves the home focus ring and tells the carousel about it
func (m *Model) setFocus(f state.Focus) {
	if f == state.FocusCarousel && len(m.state.Slides) == 0 {
		f = state.FocusGrid
	}
	m.state.Focus = f
	m.host.SetFocused(f == state.FocusCarousel)
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.state.StatusMessage = text
	return clearStatusAfter(text)
}

func clearStatusAfter(text string) tea.Cmd {
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg { return clearStatusMsg{text: text} })
}

// showPager runs content through the ov pager while rendering is paused
func (m *Model) showPager(what, content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{what: what, err: err}
	}
}

func (m *Model) quit() tea.Cmd {
	if m.disposeCarousel != nil {
		m.disposeCarousel()
		m.carousel = nil
		m.disposeCarousel = nil
	}
	return tea.Quit
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.FocusAction:
		m.moveFocus(a)

	case inputtypes.CarouselKeyAction:
		m.host.Key(a.Key)

	case inputtypes.ToggleAutoplayAction:
		switch {
		case m.carousel == nil:
		case m.carousel.State() == carousel.StateDisabled:
			return m.setStatus("Movimiento reducido: la reproducción automática está desactivada")
		case m.autoplayHeld:
			m.autoplayHeld = false
			m.carousel.Resume()
		default:
			m.autoplayHeld = true
			m.carousel.Pause()
		}

	case inputtypes.UpdateTextAction:
		if m.inputHandler.GetMode() == inputtypes.ModeSearch {
			return m.queryChanged(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			return m.searchNow(a.Text)
		case inputtypes.ModeCode:
			return m.submitCode(a.Text)
		}

	case inputtypes.CancelTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			m.closeResults()
		case inputtypes.ModeCode:
			m.state.CodeMessage = ""
			m.state.Submitting = false
		}

	case inputtypes.OpenProductAction:
		p, ok := m.state.SelectedProduct()
		if m.state.ShowResults {
			p, ok = m.state.SelectedResult()
		}
		if !ok {
			return nil
		}
		return m.openProduct(p)

	case inputtypes.BackAction:
		return m.back()

	case inputtypes.QuantityAction:
		if a.Delta > 0 {
			m.state.IncQuantity()
		} else {
			m.state.DecQuantity()
		}

	case inputtypes.AddToCartAction:
		return m.addToCart()

	case inputtypes.ShowDescriptionAction:
		p := m.state.Product
		content := renderMarkdown("# "+p.Title+"\n\n"+descriptionText(p), m.width-4)
		return m.showPager("descripción", content)

	case inputtypes.OpenCartAction:
		return m.openCart()

	case inputtypes.CloseCartAction:
		m.state.CartOpen = false
		m.state.CartError = ""

	case inputtypes.RemoveCartItemAction:
		if m.state.Cart.Empty() || m.state.CheckingOut {
			return nil
		}
		item := m.state.Cart.Items[m.state.CartIndex]
		return m.cmdExecutor.RemoveItem(m.state.Token, m.state.UserID, item.ID)

	case inputtypes.ToggleShippingAction:
		if m.state.Cart != nil {
			m.state.Cart.Shipping = m.state.Cart.Shipping.Toggle()
		}

	case inputtypes.CheckoutAction:
		if err := m.state.Cart.CanCheckout(); err != nil {
			m.state.CartError = "Tu carrito está vacío."
			return nil
		}
		if m.state.CheckingOut {
			return nil
		}
		m.state.CheckingOut = true
		m.state.CartError = ""
		return m.cmdExecutor.Checkout(m.state.Token, m.state.UserID, m.state.Cart.Total())

	case inputtypes.OpenLoginAction:
		return m.openForm(state.ScreenLogin)

	case inputtypes.OpenRegisterAction:
		return m.openForm(state.ScreenRegister)

	case inputtypes.OpenSellAction:
		if !m.state.LoggedIn() {
			return m.goToLogin("Inicia sesión para vender tus productos.")
		}
		return m.openForm(state.ScreenSell)

	case inputtypes.LogoutAction:
		return m.cmdExecutor.Logout()

	case inputtypes.FormFocusAction:
		if f := m.currentForm(); f != nil {
			return f.Move(a.Forward)
		}

	case inputtypes.CycleOptionAction:
		if f := m.currentForm(); f != nil {
			f.Cycle(a.Delta)
		}

	case inputtypes.UpdateFormAction:
		if f := m.currentForm(); f != nil {
			return f.Update(a.Msg)
		}

	case inputtypes.SubmitFormAction:
		return m.submitForm()

	case inputtypes.ResendCodeAction:
		if m.state.Submitting || m.pendingReg.Email == "" {
			return nil
		}
		m.state.CodeMessage = ""
		return m.cmdExecutor.SendCode(m.pendingReg.Email, true)

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll

	case inputtypes.ShowHelpPagerAction:
		return m.showPager("ayuda", RenderHelpContent())

	case inputtypes.QuitAction:
		return m.quit()
	}
	return nil
}

func (m *Model) navigate(direction string) {
	switch m.inputHandler.GetMode() {
	case inputtypes.ModeSearch:
		switch direction {
		case "up":
			m.state.MoveResult(-1)
		case "down":
			m.state.MoveResult(1)
		}
		return
	case inputtypes.ModeCart:
		switch direction {
		case "up":
			m.state.MoveCart(-1)
		case "down":
			m.state.MoveCart(1)
		}
		return
	}

	cols := views.GridColumns(m.width)
	switch direction {
	case "up":
		if m.state.GridIndex < cols {
			m.setFocus(state.FocusCarousel)
			return
		}
		m.state.MoveGrid(-cols)
	case "down":
		m.state.MoveGrid(cols)
	case "left":
		m.state.MoveGrid(-1)
	case "right":
		m.state.MoveGrid(1)
	case "home":
		m.state.GridIndex = 0
	case "end":
		m.state.MoveGrid(len(m.state.Products))
	}
}

// moveFocus walks the ring search, carousel, grid
func (m *Model) moveFocus(a inputtypes.FocusAction) {
	var next state.Focus
	switch {
	case a.FromSearch || m.state.Focus == state.FocusNone:
		next = state.FocusGrid
		if a.Forward {
			next = state.FocusCarousel
		}
	case m.state.Focus == state.FocusCarousel:
		next = state.FocusGrid
	default:
		next = state.FocusCarousel
	}
	m.setFocus(next)
}

func (m *Model) back() tea.Cmd {
	switch m.state.Screen {
	case state.ScreenHome:
		m.setFocus(state.FocusNone)
		return nil
	default:
		m.setScreen(state.ScreenHome)
		return m.changeMode(inputtypes.ModeNormal, "")
	}
}

func (m *Model) queryChanged(text string) tea.Cmd {
	if text == m.state.SearchQuery {
		return nil
	}
	m.state.SearchQuery = text
	m.state.SearchSeq++
	m.state.ResultIndex = 0
	query := strings.TrimSpace(text)
	if query == "" {
		m.state.ShowResults = false
		m.state.Searching = false
		m.state.SearchResults = nil
		return nil
	}
	m.state.ShowResults = true
	m.state.Searching = true
	seq := m.state.SearchSeq
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	})
}

func (m *Model) searchNow(text string) tea.Cmd {
	query := strings.TrimSpace(text)
	m.state.SearchQuery = text
	m.state.SearchSeq++
	if query == "" {
		m.closeResults()
		return nil
	}
	m.state.ShowResults = true
	m.state.Searching = true
	m.state.ResultIndex = 0
	return m.cmdExecutor.Search(query, m.state.SearchSeq)
}

func (m *Model) closeResults() {
	m.state.SearchSeq++
	m.state.ShowResults = false
	m.state.Searching = false
	m.state.ResultIndex = 0
}

func (m *Model) openProduct(p domain.Product) tea.Cmd {
	m.closeResults()
	m.setScreen(state.ScreenProduct)
	m.state.OpenProduct(p)
	return m.cmdExecutor.LoadProduct(p.ID)
}

func descriptionText(p domain.Product) string {
	if strings.TrimSpace(p.Description) == "" {
		return "Descripción no disponible por el momento."
	}
	return p.Description
}

func (m *Model) addToCart() tea.Cmd {
	if !m.state.LoggedIn() {
		return m.goToLogin("Inicia sesión para agregar productos al carrito.")
	}
	if m.state.Adding || m.state.ProductNotFound {
		return nil
	}
	m.state.Adding = true
	m.state.Feedback = state.Feedback{}
	return m.cmdExecutor.AddToCart(m.state.Token, m.state.UserID, m.state.Product, m.state.Quantity)
}

func (m *Model) openCart() tea.Cmd {
	if !m.state.LoggedIn() {
		return m.goToLogin("Inicia sesión para ver tu carrito.")
	}
	m.closeResults()
	m.state.CartOpen = true
	m.state.CartLoading = true
	m.state.CartError = ""
	m.state.CartIndex = 0
	return tea.Batch(
		m.changeMode(inputtypes.ModeCart, ""),
		m.cmdExecutor.LoadCart(m.state.Token, m.state.UserID),
	)
}

func (m *Model) openForm(screen state.Screen) tea.Cmd {
	m.closeResults()
	m.state.CartOpen = false
	m.setScreen(screen)
	m.state.ResetForm()
	f := m.currentForm()
	if f == nil {
		return nil
	}
	f.Reset()
	return tea.Batch(m.changeMode(inputtypes.ModeForm, ""), textinput.Blink)
}

func (m *Model) goToLogin(reason string) tea.Cmd {
	cmd := m.openForm(state.ScreenLogin)
	m.state.FormMessage = reason
	m.state.FormSuccess = false
	return cmd
}

// formError turns a validation failure into the form status line
func (m *Model) formError(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		m.state.FormMessage = ve.Message
	} else {
		m.state.FormMessage = err.Error()
	}
	m.state.FormSuccess = false
}

func (m *Model) submitForm() tea.Cmd {
	if m.state.Submitting {
		return nil
	}
	m.state.FormMessage = ""
	m.state.FormSuccess = false

	switch m.state.Screen {
	case state.ScreenLogin:
		creds := m.loginForm.Credentials()
		if err := creds.Validate(); err != nil {
			m.formError(err)
			return nil
		}
		m.state.Submitting = true
		return m.cmdExecutor.Login(creds)

	case state.ScreenRegister:
		reg := m.registerForm.Registration()
		if err := reg.Validate(); err != nil {
			m.formError(err)
			return nil
		}
		m.pendingReg = reg
		m.state.CodeEmail = reg.Email
		m.state.Submitting = true
		return m.cmdExecutor.SendCode(reg.Email, false)

	case state.ScreenSell:
		if !m.state.LoggedIn() {
			return m.goToLogin("Inicia sesión para vender tus productos.")
		}
		form := m.sellForm.ProductForm(m.state.UserID)
		if err := form.Validate(); err != nil {
			m.formError(err)
			return nil
		}
		m.state.Submitting = true
		return m.cmdExecutor.CreateProduct(m.state.Token, form)
	}
	return nil
}

func (m *Model) submitCode(code string) tea.Cmd {
	if m.state.Submitting {
		return nil
	}
	code = strings.TrimSpace(code)
	if err := domain.ValidateCode(code); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			m.state.CodeMessage = ve.Message
		} else {
			m.state.CodeMessage = err.Error()
		}
		return nil
	}
	m.state.CodeMessage = ""
	m.state.Submitting = true
	return m.cmdExecutor.VerifyAndRegister(m.pendingReg, code)
}

func (m *Model) redirect(screen state.Screen, after time.Duration) tea.Cmd {
	m.navSeq = m.state.NextSeq()
	seq := m.navSeq
	return tea.Tick(after, func(time.Time) tea.Msg { return navigateMsg{seq: seq, screen: screen} })
}

// handleNonKeyboardMsg processes command results, timers and events
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		before := m.state.StatusMessage
		cmd := m.eventHandler.HandleEvent(msg.Event)
		if m.state.StatusMessage != before && m.state.StatusMessage != "" {
			return tea.Batch(cmd, clearStatusAfter(m.state.StatusMessage))
		}
		return cmd

	case commands.HomeLoadedMsg:
		m.state.HomeLoading = false
		m.state.HomeError = ""
		if msg.Err != nil {
			m.state.HomeError = "No se pudieron cargar los productos."
		}
		m.state.Products = msg.Products
		m.state.MoveGrid(0)
		for i, photo := range msg.Photos {
			if i < len(m.state.Slides) {
				m.state.Slides[i].Photo = photo.Photo
			}
		}

	case searchDebounceMsg:
		if msg.seq != m.state.SearchSeq {
			return nil
		}
		return m.cmdExecutor.Search(msg.query, msg.seq)

	case commands.SearchResultMsg:
		if msg.Seq != m.state.SearchSeq {
			logger.Debug("dropping stale search results", zap.String("query", msg.Query))
			return nil
		}
		m.state.Searching = false
		m.state.SearchResults = msg.Results
		m.state.ResultIndex = 0
		if msg.Err != nil {
			m.state.SearchResults = nil
		}

	case commands.ProductLoadedMsg:
		if m.state.Screen != state.ScreenProduct || msg.ID != m.state.Product.ID {
			return nil
		}
		m.state.ProductLoading = false
		switch {
		case msg.NotFound:
			m.state.ProductNotFound = true
		case msg.Err != nil:
			return m.setStatus("No se pudo cargar el detalle del producto.")
		default:
			m.state.Product = m.state.Product.Merge(msg.Product)
			if strings.TrimSpace(m.state.Product.Description) != "" {
				m.state.Description = renderMarkdown(m.state.Product.Description, m.width-4)
			}
		}

	case commands.AddedToCartMsg:
		m.state.Adding = false
		kind := state.FeedbackSuccess
		if msg.Err != nil {
			kind = state.FeedbackError
		}
		seq := m.state.NextSeq()
		m.state.Feedback = state.Feedback{Open: true, Kind: kind, Message: msg.Message, Seq: seq}
		return tea.Tick(FeedbackDuration, func(time.Time) tea.Msg { return closeFeedbackMsg{seq: seq} })

	case closeFeedbackMsg:
		if msg.seq == m.state.Feedback.Seq {
			m.state.Feedback.Open = false
		}

	case commands.CartLoadedMsg:
		m.state.CartLoading = false
		if msg.Err != nil {
			m.state.Cart = nil
			m.state.CartError = msg.Message
			return nil
		}
		shipping := domain.ShippingStore
		if m.state.Cart != nil {
			shipping = m.state.Cart.Shipping
		}
		m.state.Cart = domain.NewCart(msg.Items, m.config.Shop.HomeShippingCost)
		m.state.Cart.Shipping = shipping
		m.state.MoveCart(0)

	case commands.CartItemRemovedMsg:
		if msg.Err != nil {
			m.state.CartError = msg.Message
			return nil
		}
		m.state.CartError = ""
		m.state.Cart.Remove(msg.ID)
		m.state.MoveCart(0)

	case commands.CheckoutDoneMsg:
		m.state.CheckingOut = false
		if msg.Err != nil {
			m.state.CartError = msg.Message
			return nil
		}
		m.state.CartOpen = false
		m.state.Cart = nil
		m.state.CartCount = 0
		m.state.CheckoutSuccess = true
		m.successSeq = m.state.NextSeq()
		seq := m.successSeq
		return tea.Batch(
			m.changeMode(inputtypes.ModeNormal, ""),
			tea.Tick(CheckoutSuccessTime, func(time.Time) tea.Msg { return closeSuccessMsg{seq: seq} }),
		)

	case closeSuccessMsg:
		if msg.seq == m.successSeq {
			m.state.CheckoutSuccess = false
		}

	case commands.CartCountMsg:
		if msg.Err == nil && m.state.LoggedIn() {
			m.state.CartCount = msg.Count
		}

	case commands.LoggedInMsg:
		m.state.Submitting = false
		m.state.FormMessage = msg.Message
		if msg.Err != nil {
			m.state.FormSuccess = false
			return nil
		}
		m.state.FormSuccess = true
		m.state.SetSession(msg.Session.Token, msg.User, msg.UserID)
		m.loginForm.Reset()
		return tea.Batch(
			m.cmdExecutor.CartCount(m.state.Token, m.state.UserID),
			m.redirect(state.ScreenHome, LoginRedirectDelay),
		)

	case commands.SessionRestoredMsg:
		if msg.Err != nil || msg.Session == nil {
			if msg.Err != nil && !errors.Is(msg.Err, session.ErrNoSession) {
				logger.Info("no session restored", zap.Error(msg.Err))
			}
			return nil
		}
		m.state.SetSession(msg.Session.Token, msg.User, msg.UserID)
		return m.cmdExecutor.CartCount(m.state.Token, m.state.UserID)

	case commands.LoggedOutMsg:
		m.state.ClearSession()
		m.state.CartOpen = false
		return m.setStatus("Sesión cerrada")

	case commands.CodeSentMsg:
		m.state.Submitting = false
		if msg.Resend {
			m.state.CodeMessage = msg.Message
			return nil
		}
		if msg.Err != nil {
			m.state.FormMessage = msg.Message
			m.state.FormSuccess = false
			return nil
		}
		m.state.CodeMessage = ""
		return m.changeMode(inputtypes.ModeCode, "")

	case commands.RegisteredMsg:
		m.state.Submitting = false
		if msg.CodeErr != "" {
			m.state.CodeMessage = msg.CodeErr
			return nil
		}
		cmd := m.changeMode(inputtypes.ModeForm, "")
		m.state.FormMessage = msg.Message
		m.state.FormSuccess = msg.Err == nil
		if msg.Err != nil {
			return cmd
		}
		m.registerForm.Reset()
		m.pendingReg = domain.Registration{}
		return tea.Batch(cmd, m.redirect(state.ScreenLogin, SignupRedirectDelay))

	case commands.ProductCreatedMsg:
		m.state.Submitting = false
		m.state.FormMessage = msg.Message
		m.state.FormSuccess = msg.Err == nil
		if msg.Err == nil {
			m.sellForm.Reset()
		}

	case navigateMsg:
		if msg.seq != m.navSeq {
			return nil
		}
		if msg.screen == state.ScreenHome {
			m.setScreen(state.ScreenHome)
			return m.changeMode(inputtypes.ModeNormal, "")
		}
		message := m.state.FormMessage
		cmd := m.openForm(msg.screen)
		m.state.FormMessage = message
		m.state.FormSuccess = true
		return cmd

	case clearStatusMsg:
		if m.state.StatusMessage == msg.text {
			m.state.StatusMessage = ""
		}

	case pagerMsg:
		if msg.err != nil {
			logger.Warn("pager failed", zap.String("content", msg.what), zap.Error(msg.err))
			return m.setStatus("No se pudo abrir el visor")
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m.spinner.Tick
	}
	return nil
}
