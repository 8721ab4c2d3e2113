package app

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/storefront/internal/confirm"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
)

// Notices raised by account actions.
const (
	MsgConfirmLogout    = "¿Seguro que deseas cerrar sesión?"
	MsgLoginOK          = "✅ Inicio de sesión exitoso"
	MsgLoginFailed      = "❌ Correo o contraseña incorrectos"
	MsgPasswordMismatch = "❌ Las contraseñas no coinciden"
	MsgRegisterOK       = "✅ Usuario creado exitosamente"
	MsgRegisterFailed   = "❌ Error al crear usuario"
	MsgProfileSaved     = "✅ Datos actualizados correctamente"
	MsgProfileFailed    = "Error al actualizar datos"
)

// Profile is the data the profile screen loads for regular users.
type Profile struct {
	Requests []models.AdoptionRequest
	Invoices []models.Invoice
	Loaded   bool
}

// Login authenticates, persists the session and loads notifications for
// the new token.
func (s *Store) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return invalid("correo", "correo y contraseña son obligatorios")
	}

	out, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.notice(MsgLoginFailed)
		return err
	}
	if err := s.sessions.Login(ctx, out.User, out.Token); err != nil {
		s.log.Warn("persist session failed; session lives in memory only", zap.Error(err))
	}

	s.mu.Lock()
	s.loginPrompt = false
	s.profile = Profile{}
	s.dialog = confirm.Notice(s.dialog, MsgLoginOK)
	s.mu.Unlock()

	s.feed.Fetch(ctx, out.Token)
	return nil
}

// Register creates an account and then asks the user to log in.
func (s *Store) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	if err := validateRegister(req); err != nil {
		s.notice(err.Msg)
		return models.User{}, err
	}

	user, err := s.backend.Register(ctx, req)
	if err != nil {
		s.notice(MsgRegisterFailed)
		return models.User{}, err
	}

	s.mu.Lock()
	s.loginPrompt = true
	s.dialog = confirm.Notice(s.dialog, MsgRegisterOK)
	s.mu.Unlock()
	return user, nil
}

func validateRegister(req dto.RegisterRequest) *ValidationError {
	switch {
	case strings.TrimSpace(req.FullName) == "":
		return invalid("nombre_completo", "el nombre es obligatorio")
	case strings.TrimSpace(req.Email) == "":
		return invalid("correo", "el correo es obligatorio")
	case req.Password == "":
		return invalid("password", "la contraseña es obligatoria")
	case req.Password != req.ConfirmPassword:
		return invalid("confirmPassword", MsgPasswordMismatch)
	}
	return nil
}

// RequestLogout asks for confirmation before logging out.
func (s *Store) RequestLogout() {
	s.mu.Lock()
	s.dialog = confirm.Request(s.dialog, MsgConfirmLogout, confirm.EffectLogout)
	s.mu.Unlock()
}

// logout clears the session everywhere and sends the user home. The local
// state is reset even if the persisted entries cannot be removed.
func (s *Store) logout(ctx context.Context) error {
	err := s.sessions.Logout(ctx)
	if err != nil {
		s.log.Error("clear persisted session failed", zap.Error(err))
	}
	s.feed.Reset()

	s.mu.Lock()
	s.router.Reset()
	s.resetScreenLocked()
	s.profile = Profile{}
	s.mu.Unlock()
	return err
}

// LoadProfile fetches the user's adoption requests and invoices in
// parallel. Admins have nothing to load. On failure the previously loaded
// profile is kept and only logged. Results arriving after ctx is done, or
// after the session changed, are dropped.
func (s *Store) LoadProfile(ctx context.Context) (Profile, error) {
	sess, err := s.requireSession()
	if err != nil {
		return Profile{}, err
	}
	if sess.User.IsAdmin() {
		return Profile{Loaded: true}, nil
	}

	var (
		requests []models.AdoptionRequest
		invoices []models.Invoice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requests, err = s.backend.MyAdoptionRequests(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.backend.MyInvoices(gctx, sess.Token)
		return err
	})
	fetchErr := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return s.profile, ctx.Err()
	}
	if s.sessions.Token() != sess.Token {
		return s.profile, nil
	}
	if fetchErr != nil {
		s.log.Warn("load profile failed; keeping previous data", zap.Error(fetchErr))
		return s.profile, nil
	}
	if requests == nil {
		requests = []models.AdoptionRequest{}
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	s.profile = Profile{Requests: requests, Invoices: invoices, Loaded: true}
	return s.profile, nil
}

// UpdateProfile saves the user's own profile fields and refreshes the
// persisted copy.
func (s *Store) UpdateProfile(ctx context.Context, in dto.ProfileUpdate) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" {
		return invalid("nombre_completo", "nombre y correo son obligatorios")
	}

	if err := s.backend.UpdateProfile(ctx, sess.Token, sess.User.ID, in); err != nil {
		s.notice(MsgProfileFailed)
		return err
	}

	updated := *sess.User
	updated.FullName = in.FullName
	updated.Email = in.Email
	updated.NationalID = in.NationalID
	updated.Sex = in.Sex
	updated.Phone = in.Phone
	if err := s.sessions.UpdateUser(ctx, updated); err != nil {
		s.log.Warn("persist updated profile failed", zap.Error(err))
	}
	s.notice(MsgProfileSaved)
	return nil
}

// InvoiceDetail loads one invoice with its lines.
func (s *Store) InvoiceDetail(ctx context.Context, id int64) (models.Invoice, error) {
	sess, err := s.requireSession()
	if err != nil {
		return models.Invoice{}, err
	}
	inv, err := s.backend.GetInvoice(ctx, sess.Token, id)
	if err != nil {
		s.notice("Error al cargar detalle de factura")
		return models.Invoice{}, err
	}
	return inv, nil
}
