package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/hongminglow/storefront/internal/app"
	"github.com/hongminglow/storefront/internal/models"
)

func (s *Shell) cmdUsers(ctx context.Context, _ []string) error {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	users, err := s.store.Users(cctx)
	if err != nil {
		return err
	}
	s.users = users
	s.renderUsers(users)
	return nil
}

func (s *Shell) findUser(ctx context.Context, id int64) (models.User, error) {
	if len(s.users) == 0 {
		cctx, cancel := s.callCtx(ctx)
		defer cancel()
		users, err := s.store.Users(cctx)
		if err != nil {
			return models.User{}, err
		}
		s.users = users
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, errors.New("usuario no encontrado; usa 'users' para ver la lista")
}

func (s *Shell) cmdUserEdit(ctx context.Context, args []string) error {
	id, err := parseID(args, "user-edit")
	if err != nil {
		return err
	}
	u, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	in, ok := s.askProfile(u, true)
	if !ok {
		return errInputClosed
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.store.UpdateUser(cctx, id, in); err != nil {
		return err
	}
	s.users = nil
	return nil
}

func (s *Shell) cmdUserDelete(ctx context.Context, args []string) error {
	id, err := parseID(args, "user-delete")
	if err != nil {
		return err
	}
	if !s.askYesNo("¿Eliminar el usuario " + strconv.FormatInt(id, 10) + "?") {
		return nil
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.store.DeleteUser(cctx, id); err != nil {
		return err
	}
	s.users = nil
	return nil
}

func (s *Shell) cmdInvoices(ctx context.Context, _ []string) error {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	invoices, err := s.store.Invoices(cctx)
	if err != nil {
		return err
	}
	s.renderInvoices(invoices, true)
	return nil
}

func (s *Shell) loadRequests(ctx context.Context) error {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	reqs, err := s.store.AdoptionRequests(cctx)
	if err != nil {
		return err
	}
	s.requests = reqs
	return nil
}

func (s *Shell) cmdRequests(ctx context.Context, _ []string) error {
	if err := s.loadRequests(ctx); err != nil {
		return err
	}
	s.renderRequests(s.requests, true)
	return nil
}

func (s *Shell) findRequest(ctx context.Context, id int64) (models.AdoptionRequest, error) {
	if len(s.requests) == 0 {
		if err := s.loadRequests(ctx); err != nil {
			return models.AdoptionRequest{}, err
		}
	}
	for _, r := range s.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return models.AdoptionRequest{}, errors.New("solicitud no encontrada; usa 'requests' para ver la lista")
}

func (s *Shell) cmdApprove(ctx context.Context, args []string) error {
	return s.reviewRequest(ctx, args, "approve", true)
}

func (s *Shell) cmdReject(ctx context.Context, args []string) error {
	return s.reviewRequest(ctx, args, "reject", false)
}

func (s *Shell) reviewRequest(ctx context.Context, args []string, name string, approve bool) error {
	id, err := parseID(args, name)
	if err != nil {
		return err
	}
	req, err := s.findRequest(ctx, id)
	if err != nil {
		return err
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if approve {
		err = s.store.ApproveAdoption(cctx, req)
	} else {
		err = s.store.RejectAdoption(cctx, req)
	}
	// statuses changed on the backend either way
	s.requests = nil
	s.dogs = nil
	return err
}

// requireAdmin turns non-admins away before any form is shown.
func (s *Shell) requireAdmin() error {
	user, err := s.requireLogin()
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return app.ErrAdminRequired
	}
	return nil
}

func (s *Shell) askProductForm(p models.Product) (app.ProductForm, bool) {
	var f app.ProductForm
	if p.ID != 0 {
		f = app.ProductForm{
			Name:        p.Name,
			Description: p.Description,
			Price:       strconv.FormatFloat(p.Price.Float(), 'f', -1, 64),
			Stock:       strconv.FormatFloat(p.Stock.Float(), 'f', -1, 64),
			ImageURL:    p.ImageURL,
		}
	}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Nombre", &f.Name},
		{"Descripción", &f.Description},
		{"Precio (IVA incluido)", &f.Price},
		{"Stock", &f.Stock},
		{"URL de imagen", &f.ImageURL},
	}
	for _, fl := range fields {
		v, ok := s.ask(fl.label, *fl.dst)
		if !ok {
			return app.ProductForm{}, false
		}
		*fl.dst = v
	}
	return f, true
}

func (s *Shell) cmdProductNew(ctx context.Context, _ []string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	form, ok := s.askProductForm(models.Product{})
	if !ok {
		return errInputClosed
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if _, err := s.store.CreateProduct(cctx, form); err != nil {
		return err
	}
	s.products = nil
	return nil
}

func (s *Shell) cmdProductEdit(ctx context.Context, args []string) error {
	id, err := parseID(args, "product-edit")
	if err != nil {
		return err
	}
	if err := s.requireAdmin(); err != nil {
		return err
	}
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}
	form, ok := s.askProductForm(p)
	if !ok {
		return errInputClosed
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if _, err := s.store.UpdateProduct(cctx, id, form); err != nil {
		return err
	}
	s.products = nil
	return nil
}

func (s *Shell) cmdProductDelete(ctx context.Context, args []string) error {
	id, err := parseID(args, "product-del")
	if err != nil {
		return err
	}
	if !s.askYesNo("¿Eliminar el producto " + strconv.FormatInt(id, 10) + "?") {
		return nil
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.store.DeleteProduct(cctx, id); err != nil {
		return err
	}
	s.products = nil
	return nil
}

func (s *Shell) askDogForm(d models.Dog) (app.DogForm, bool) {
	var f app.DogForm
	if d.ID != 0 {
		f = app.DogForm{
			Name:        d.Name,
			Breed:       d.Breed,
			ImageURL:    d.ImageURL,
			Description: d.Description,
		}
		if d.Age > 0 {
			f.Age = strconv.FormatFloat(d.Age.Float(), 'f', -1, 64)
		}
	}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Nombre", &f.Name},
		{"Raza", &f.Breed},
		{"Edad", &f.Age},
		{"URL de imagen", &f.ImageURL},
		{"Descripción", &f.Description},
	}
	for _, fl := range fields {
		v, ok := s.ask(fl.label, *fl.dst)
		if !ok {
			return app.DogForm{}, false
		}
		*fl.dst = v
	}
	return f, true
}

func (s *Shell) cmdDogNew(ctx context.Context, _ []string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	form, ok := s.askDogForm(models.Dog{})
	if !ok {
		return errInputClosed
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if _, err := s.store.CreateDog(cctx, form); err != nil {
		return err
	}
	s.dogs = nil
	return nil
}

func (s *Shell) cmdDogEdit(ctx context.Context, args []string) error {
	id, err := parseID(args, "dog-edit")
	if err != nil {
		return err
	}
	if err := s.requireAdmin(); err != nil {
		return err
	}
	d, err := s.findDog(ctx, id)
	if err != nil {
		return err
	}
	form, ok := s.askDogForm(d)
	if !ok {
		return errInputClosed
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if _, err := s.store.UpdateDog(cctx, id, form); err != nil {
		return err
	}
	s.dogs = nil
	return nil
}

func (s *Shell) cmdDogDelete(ctx context.Context, args []string) error {
	id, err := parseID(args, "dog-del")
	if err != nil {
		return err
	}
	if !s.askYesNo("¿Eliminar el perro " + strconv.FormatInt(id, 10) + "?") {
		return nil
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	if err := s.store.DeleteDog(cctx, id); err != nil {
		return err
	}
	s.dogs = nil
	return nil
}
