// Package app is the application-state container: it owns the session, the
// cart, the notification feed, the confirmation dialog and the current view,
// and every screen mutates them through its methods.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/api"
	"github.com/hongminglow/storefront/internal/cart"
	"github.com/hongminglow/storefront/internal/confirm"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
	"github.com/hongminglow/storefront/internal/notify"
	"github.com/hongminglow/storefront/internal/session"
	"github.com/hongminglow/storefront/internal/view"
)

// Backend is the REST surface the store depends on.
type Backend interface {
	notify.Source

	Login(ctx context.Context, email, password string) (dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (models.User, error)
	SubmitPurchase(ctx context.Context, token string, lines []dto.PurchaseLine) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, in dto.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, in dto.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, token string, id int64) error

	ListDogs(ctx context.Context) ([]models.Dog, error)
	CreateDog(ctx context.Context, token string, in dto.DogInput) (models.Dog, error)
	UpdateDog(ctx context.Context, token string, id int64, in dto.DogInput) (models.Dog, error)
	DeleteDog(ctx context.Context, token string, id int64) error

	SubmitAdoption(ctx context.Context, token string, req dto.AdoptionSubmit) error
	ListAdoptionRequests(ctx context.Context, token string) ([]models.AdoptionRequest, error)
	MyAdoptionRequests(ctx context.Context, token string) ([]models.AdoptionRequest, error)
	ApproveAdoption(ctx context.Context, token string, id int64) (string, error)
	RejectAdoption(ctx context.Context, token string, id int64) (string, error)

	ListInvoices(ctx context.Context, token string) ([]models.Invoice, error)
	MyInvoices(ctx context.Context, token string) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, token string, id int64) (models.Invoice, error)

	ListUsers(ctx context.Context, token string) ([]models.User, error)
	UpdateUser(ctx context.Context, token string, id int64, in dto.ProfileUpdate) error
	DeleteUser(ctx context.Context, token string, id int64) error
	UpdateProfile(ctx context.Context, token string, id int64, in dto.ProfileUpdate) error
}

var _ Backend = (*api.Client)(nil)

// Header is what the top bar shows.
type Header struct {
	DisplayName      string
	LoggedIn         bool
	Admin            bool
	View             view.View
	CartCount        int
	HasNotifications bool
	NewProduct       bool
}

// Store is safe for concurrent use. Its lock is never held across a backend
// call: state is read, the lock released, the call made, and the result
// applied under the lock again.
type Store struct {
	backend  Backend
	sessions *session.Store
	feed     *notify.Feed
	log      *zap.Logger

	mu               sync.Mutex
	root             context.Context
	cancelScreen     context.CancelFunc
	screenCtx        context.Context
	lines            []cart.Line
	cartOpen         bool
	dialog           confirm.State
	router           *view.Router
	loginPrompt      bool
	checkoutInFlight bool
	profile          Profile
}

// New builds a store over an already constructed session store.
func New(backend Backend, sessions *session.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		backend:  backend,
		sessions: sessions,
		feed:     notify.NewFeed(backend, log.Named("notifications")),
		log:      log,
		lines:    cart.Clear(),
		router:   view.NewRouter(),
	}
	s.root = context.Background()
	s.screenCtx, s.cancelScreen = context.WithCancel(s.root)
	return s
}

// Start restores the persisted session and loads notifications for it. ctx
// also bounds every screen context handed out afterwards.
func (s *Store) Start(ctx context.Context) session.Session {
	s.mu.Lock()
	s.root = ctx
	s.cancelScreen()
	s.screenCtx, s.cancelScreen = context.WithCancel(ctx)
	s.mu.Unlock()

	sess := s.sessions.Restore(ctx)
	s.feed.Fetch(ctx, sess.Token)
	return sess
}

// Session returns the current session.
func (s *Store) Session() session.Session {
	return s.sessions.Current()
}

// Header snapshots the top bar.
func (s *Store) Header() Header {
	sess := s.sessions.Current()
	s.mu.Lock()
	defer s.mu.Unlock()
	return Header{
		DisplayName:      sess.User.DisplayName(),
		LoggedIn:         sess.Authenticated(),
		Admin:            sess.User.IsAdmin(),
		View:             s.router.Current(),
		CartCount:        cart.Count(s.lines),
		HasNotifications: s.feed.HasUnseen(),
		NewProduct:       s.router.NewProductBadge(),
	}
}

// Dialog returns the confirmation dialog state.
func (s *Store) Dialog() confirm.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialog
}

// LoginPrompt reports whether the login form should be shown.
func (s *Store) LoginPrompt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginPrompt
}

// ShowLogin raises the login prompt.
func (s *Store) ShowLogin() {
	s.mu.Lock()
	s.loginPrompt = true
	s.mu.Unlock()
}

// DismissLogin hides the login prompt.
func (s *Store) DismissLogin() {
	s.mu.Lock()
	s.loginPrompt = false
	s.mu.Unlock()
}

// View returns the active view.
func (s *Store) View() view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Current()
}

// SwitchView changes the active view. Switching cancels the previous
// screen's context so its pending loads are discarded. The profile view
// needs a session; without one the login prompt is raised instead.
func (s *Store) SwitchView(v view.View) error {
	authed := s.sessions.Current().Authenticated()

	s.mu.Lock()
	defer s.mu.Unlock()
	if v == view.Profile && !authed {
		s.loginPrompt = true
		return ErrAuthRequired
	}
	s.router.Switch(v)
	s.resetScreenLocked()
	return nil
}

// ScreenContext is cancelled as soon as the user leaves the current view.
func (s *Store) ScreenContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screenCtx
}

func (s *Store) resetScreenLocked() {
	s.cancelScreen()
	s.screenCtx, s.cancelScreen = context.WithCancel(s.root)
}

// Notifications opens the notification panel: it clears the unseen badge
// and returns the loaded list.
func (s *Store) Notifications() []models.Notification {
	return s.feed.Open()
}

// RefreshNotifications reloads the feed for the current token.
func (s *Store) RefreshNotifications(ctx context.Context) {
	s.feed.Fetch(ctx, s.sessions.Token())
}

// Confirm accepts the pending dialog and runs its effect.
func (s *Store) Confirm(ctx context.Context) error {
	s.mu.Lock()
	next, effect, ok := confirm.Confirm(s.dialog)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.dialog = next
	s.mu.Unlock()

	switch effect {
	case confirm.EffectLogout:
		return s.logout(ctx)
	case confirm.EffectCheckout:
		return s.checkout(ctx)
	}
	return nil
}

// Cancel dismisses the pending dialog without running its effect.
func (s *Store) Cancel() {
	s.mu.Lock()
	s.dialog = confirm.Cancel(s.dialog)
	s.mu.Unlock()
}

func (s *Store) notice(msg string) {
	s.mu.Lock()
	s.dialog = confirm.Notice(s.dialog, msg)
	s.mu.Unlock()
}

func (s *Store) requireSession() (session.Session, error) {
	sess := s.sessions.Current()
	if !sess.Authenticated() {
		s.ShowLogin()
		return sess, ErrAuthRequired
	}
	return sess, nil
}

func (s *Store) requireAdmin() (session.Session, error) {
	sess, err := s.requireSession()
	if err != nil {
		return sess, err
	}
	if !sess.User.IsAdmin() {
		return sess, ErrAdminRequired
	}
	return sess, nil
}
