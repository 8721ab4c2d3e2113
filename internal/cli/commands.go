package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/hongminglow/storefront/internal/app"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
	"github.com/hongminglow/storefront/internal/view"
)

func (s *Shell) cmdView(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("view")
	}
	v, err := view.Parse(strings.ToLower(args[0]))
	if err != nil {
		return usage("view")
	}
	switch v {
	case view.Products:
		return s.cmdProducts(ctx, nil)
	case view.Dogs:
		return s.cmdDogs(ctx, nil)
	case view.Profile:
		return s.cmdProfile(ctx, nil)
	}
	return s.store.SwitchView(v)
}

// loginForm is shown whenever the store raises the login prompt. An empty
// email closes it.
func (s *Shell) loginForm(ctx context.Context) error {
	s.printf("🔐 Iniciar sesión (correo vacío para cancelar)\n")
	email, ok := s.ask("Correo", "")
	if !ok {
		return errInputClosed
	}
	if email == "" {
		s.store.DismissLogin()
		return nil
	}
	password, ok := s.ask("Contraseña", "")
	if !ok {
		return errInputClosed
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.store.Login(cctx, email, password)
}

func (s *Shell) cmdLogin(_ context.Context, _ []string) error {
	if s.store.Session().Authenticated() {
		s.printf("Ya has iniciado sesión como %s.\n", s.store.Header().DisplayName)
		return nil
	}
	s.store.ShowLogin()
	return nil
}

func (s *Shell) cmdRegister(ctx context.Context, _ []string) error {
	var req dto.RegisterRequest
	fields := []struct {
		label string
		dst   *string
	}{
		{"Nombre completo", &req.FullName},
		{"Correo", &req.Email},
		{"Cédula", &req.NationalID},
		{"Sexo", &req.Sex},
		{"Teléfono", &req.Phone},
		{"Contraseña", &req.Password},
		{"Confirmar contraseña", &req.ConfirmPassword},
	}
	for _, f := range fields {
		v, ok := s.ask(f.label, "")
		if !ok {
			return errInputClosed
		}
		*f.dst = v
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	_, err := s.store.Register(cctx, req)
	return err
}

func (s *Shell) cmdLogout(_ context.Context, _ []string) error {
	if !s.store.Session().Authenticated() {
		s.printf("No hay una sesión activa.\n")
		return nil
	}
	s.store.RequestLogout()
	return nil
}

func (s *Shell) cmdYes(ctx context.Context, _ []string) error {
	if !s.store.Dialog().Visible() {
		s.printf("No hay nada que confirmar.\n")
		return nil
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.store.Confirm(cctx)
}

func (s *Shell) cmdNo(_ context.Context, _ []string) error {
	s.store.Cancel()
	return nil
}

func (s *Shell) cmdNotifications(ctx context.Context, _ []string) error {
	if _, err := s.requireLogin(); err != nil {
		return err
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	s.store.RefreshNotifications(cctx)
	s.renderNotifications(s.store.Notifications())
	return nil
}

func (s *Shell) requireLogin() (models.User, error) {
	sess := s.store.Session()
	if !sess.Authenticated() {
		s.store.ShowLogin()
		return models.User{}, app.ErrAuthRequired
	}
	return *sess.User, nil
}

func (s *Shell) loadProducts(ctx context.Context) error {
	sctx, cancel := s.screenCtx(ctx)
	defer cancel()
	products, err := s.store.Products(sctx)
	if err != nil {
		return err
	}
	s.products = products
	return nil
}

func (s *Shell) cmdProducts(ctx context.Context, _ []string) error {
	if err := s.store.SwitchView(view.Products); err != nil {
		return err
	}
	if err := s.loadProducts(ctx); err != nil {
		return err
	}
	s.renderProducts(s.products)
	return nil
}

func (s *Shell) findProduct(ctx context.Context, id int64) (models.Product, error) {
	if len(s.products) == 0 {
		if err := s.loadProducts(ctx); err != nil {
			return models.Product{}, err
		}
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, errors.New("producto no encontrado; usa 'products' para ver la lista")
}

func (s *Shell) cmdAdd(ctx context.Context, args []string) error {
	id, err := parseID(args, "add")
	if err != nil {
		return err
	}
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.store.AddToCart(p)
	return err
}

func (s *Shell) cmdCart(_ context.Context, _ []string) error {
	if _, err := s.requireLogin(); err != nil {
		return err
	}
	s.store.OpenCart()
	s.renderCart()
	return nil
}

func (s *Shell) cmdQty(_ context.Context, args []string) error {
	id, err := parseID(args, "qty")
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return usage("qty")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return usage("qty")
	}
	if !s.store.SetQuantity(id, n) {
		s.printf("La cantidad debe ser al menos 1 y el producto debe estar en el carrito.\n")
		return nil
	}
	s.renderCart()
	return nil
}

func (s *Shell) cmdRemove(_ context.Context, args []string) error {
	id, err := parseID(args, "remove")
	if err != nil {
		return err
	}
	s.store.RemoveFromCart(id)
	s.renderCart()
	return nil
}

func (s *Shell) cmdClear(_ context.Context, _ []string) error {
	s.store.ClearCart()
	return nil
}

func (s *Shell) cmdCheckout(_ context.Context, _ []string) error {
	return s.store.RequestCheckout()
}

func (s *Shell) cmdClose(_ context.Context, _ []string) error {
	s.store.CloseCart()
	return nil
}

func (s *Shell) loadDogs(ctx context.Context) error {
	sctx, cancel := s.screenCtx(ctx)
	defer cancel()
	dogs, err := s.store.Dogs(sctx)
	if err != nil {
		return err
	}
	s.dogs = dogs
	return nil
}

func (s *Shell) cmdDogs(ctx context.Context, _ []string) error {
	if err := s.store.SwitchView(view.Dogs); err != nil {
		return err
	}
	if err := s.loadDogs(ctx); err != nil {
		return err
	}
	s.renderDogs(s.dogs)
	return nil
}

func (s *Shell) findDog(ctx context.Context, id int64) (models.Dog, error) {
	if len(s.dogs) == 0 {
		if err := s.loadDogs(ctx); err != nil {
			return models.Dog{}, err
		}
	}
	for _, d := range s.dogs {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Dog{}, errors.New("perro no encontrado; usa 'dogs' para ver la lista")
}

func (s *Shell) cmdAdopt(ctx context.Context, args []string) error {
	id, err := parseID(args, "adopt")
	if err != nil {
		return err
	}
	dog, err := s.findDog(ctx, id)
	if err != nil {
		return err
	}

	var form app.AdoptionForm
	if s.store.Session().Authenticated() && !dog.Adopted {
		s.printf("Solicitud de adopción para %s\n", dog.Name)
		questions := []struct {
			label string
			dst   *string
		}{
			{"Tipo de vivienda (casa/departamento)", &form.Housing},
			{"¿Tiene niños menores de 10 años? (si/no)", &form.ChildrenUnder10},
			{"¿Tiene patio? (si/no)", &form.Yard},
			{"¿Tiene más de 2 perros? (si/no)", &form.MoreThanTwoDogs},
			{"¿Por qué quiere adoptar?", &form.Reason},
		}
		for _, q := range questions {
			v, ok := s.ask(q.label, "")
			if !ok {
				return errInputClosed
			}
			*q.dst = v
		}
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.store.RequestAdoption(cctx, dog, form)
}

func (s *Shell) cmdProfile(ctx context.Context, _ []string) error {
	if err := s.store.SwitchView(view.Profile); err != nil {
		return err
	}
	user := s.store.Session().User
	s.renderUser(user)
	if user.IsAdmin() {
		s.printf("Panel de administración: users, invoices, requests, product-new, dog-new.\n")
		return nil
	}

	sctx, cancel := s.screenCtx(ctx)
	defer cancel()
	profile, err := s.store.LoadProfile(sctx)
	if err != nil {
		return err
	}
	if !profile.Loaded {
		s.printf("No se pudieron cargar tus datos.\n")
		return nil
	}
	s.printf("\nMis solicitudes de adopción\n")
	s.renderRequests(profile.Requests, false)
	s.printf("\nMis facturas\n")
	s.renderInvoices(profile.Invoices, false)
	return nil
}

func (s *Shell) cmdEditProfile(ctx context.Context, _ []string) error {
	user, err := s.requireLogin()
	if err != nil {
		return err
	}
	in, ok := s.askProfile(user, false)
	if !ok {
		return errInputClosed
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.store.UpdateProfile(cctx, in)
}

// askProfile prompts for every editable field, offering the current values.
func (s *Shell) askProfile(u models.User, withRole bool) (dto.ProfileUpdate, bool) {
	in := dto.ProfileUpdate{
		FullName:   u.FullName,
		Email:      u.Email,
		NationalID: u.NationalID,
		Sex:        u.Sex,
		Phone:      u.Phone,
	}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Nombre completo", &in.FullName},
		{"Correo", &in.Email},
		{"Cédula", &in.NationalID},
		{"Sexo", &in.Sex},
		{"Teléfono", &in.Phone},
	}
	if withRole {
		in.Role = u.Role
		fields = append(fields, struct {
			label string
			dst   *string
		}{"Rol (usuario/admin)", &in.Role})
	}
	for _, f := range fields {
		v, ok := s.ask(f.label, *f.dst)
		if !ok {
			return dto.ProfileUpdate{}, false
		}
		*f.dst = v
	}
	return in, true
}

func (s *Shell) cmdInvoice(ctx context.Context, args []string) error {
	id, err := parseID(args, "invoice")
	if err != nil {
		return err
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	inv, err := s.store.InvoiceDetail(cctx, id)
	if err != nil {
		return err
	}
	s.renderInvoice(inv)
	return nil
}
