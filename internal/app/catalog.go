package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
)

// Notices raised by the product and dog screens.
const (
	MsgProductCreated      = "✅ Producto creado correctamente"
	MsgProductCreateFailed = "❌ No se pudo crear el producto"
	MsgProductUpdated      = "✅ Producto actualizado correctamente"
	MsgProductUpdateFailed = "❌ No se pudo actualizar el producto"
	MsgProductDeleted      = "✅ Producto eliminado correctamente"
	MsgProductDeleteFailed = "❌ No se pudo eliminar el producto"
	MsgDogSaveFailed       = "❌ Hubo un error al guardar el perro"
	MsgDogDeleteFailed     = "No se pudo eliminar el perro"
	MsgAdoptionLogin       = "Debes iniciar sesión para solicitar adopción"
	MsgAdoptionSent        = "✅ Solicitud enviada. Te notificaremos cuando sea revisada."
	MsgAdoptionFailed      = "No se pudo enviar la solicitud"
	MsgDogAlreadyAdopted   = "Este perro ya fue adoptado"
	MsgLoadFailed          = "No se pudieron cargar los datos"
)

// ErrStale is returned by screen loads whose result was discarded because
// the screen was left before the response arrived.
var ErrStale = errors.New("screen left before load finished")

// Products loads the product grid for the current screen.
func (s *Store) Products(ctx context.Context) ([]models.Product, error) {
	items, err := s.backend.ListProducts(ctx)
	if ctx.Err() != nil {
		s.log.Warn("stale data ignored", zap.String("screen", "productos"))
		return nil, ErrStale
	}
	if err != nil {
		s.notice(MsgLoadFailed)
		return nil, err
	}
	return items, nil
}

// Dogs loads the dog grid for the current screen.
func (s *Store) Dogs(ctx context.Context) ([]models.Dog, error) {
	items, err := s.backend.ListDogs(ctx)
	if ctx.Err() != nil {
		s.log.Warn("stale data ignored", zap.String("screen", "perros"))
		return nil, ErrStale
	}
	if err != nil {
		s.notice(MsgLoadFailed)
		return nil, err
	}
	return items, nil
}

// CreateProduct validates the form, creates the product and raises the
// new-product badge.
func (s *Store) CreateProduct(ctx context.Context, form ProductForm) (models.Product, error) {
	sess, err := s.requireAdmin()
	if err != nil {
		return models.Product{}, err
	}
	in, err := form.Input()
	if err != nil {
		s.rejected(err)
		return models.Product{}, err
	}
	p, err := s.backend.CreateProduct(ctx, sess.Token, in)
	if err != nil {
		s.notice(MsgProductCreateFailed)
		return models.Product{}, err
	}

	s.mu.Lock()
	s.router.MarkProductCreated()
	s.mu.Unlock()
	s.notice(MsgProductCreated)
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, form ProductForm) (models.Product, error) {
	sess, err := s.requireAdmin()
	if err != nil {
		return models.Product{}, err
	}
	in, err := form.Input()
	if err != nil {
		s.rejected(err)
		return models.Product{}, err
	}
	p, err := s.backend.UpdateProduct(ctx, sess.Token, id, in)
	if err != nil {
		s.notice(MsgProductUpdateFailed)
		return models.Product{}, err
	}
	s.notice(MsgProductUpdated)
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	sess, err := s.requireAdmin()
	if err != nil {
		return err
	}
	if err := s.backend.DeleteProduct(ctx, sess.Token, id); err != nil {
		s.notice(MsgProductDeleteFailed)
		return err
	}
	s.notice(MsgProductDeleted)
	return nil
}

func (s *Store) CreateDog(ctx context.Context, form DogForm) (models.Dog, error) {
	sess, err := s.requireAdmin()
	if err != nil {
		return models.Dog{}, err
	}
	in, err := form.Input()
	if err != nil {
		s.rejected(err)
		return models.Dog{}, err
	}
	d, err := s.backend.CreateDog(ctx, sess.Token, in)
	if err != nil {
		s.notice(MsgDogSaveFailed)
		return models.Dog{}, err
	}
	return d, nil
}

func (s *Store) UpdateDog(ctx context.Context, id int64, form DogForm) (models.Dog, error) {
	sess, err := s.requireAdmin()
	if err != nil {
		return models.Dog{}, err
	}
	in, err := form.Input()
	if err != nil {
		s.rejected(err)
		return models.Dog{}, err
	}
	d, err := s.backend.UpdateDog(ctx, sess.Token, id, in)
	if err != nil {
		s.notice(MsgDogSaveFailed)
		return models.Dog{}, err
	}
	return d, nil
}

func (s *Store) DeleteDog(ctx context.Context, id int64) error {
	sess, err := s.requireAdmin()
	if err != nil {
		return err
	}
	if err := s.backend.DeleteDog(ctx, sess.Token, id); err != nil {
		s.notice(MsgDogDeleteFailed)
		return err
	}
	return nil
}

// RequestAdoption submits the questionnaire for dog. Guests get the login
// prompt; adopted dogs and incomplete forms are rejected locally.
func (s *Store) RequestAdoption(ctx context.Context, dog models.Dog, form AdoptionForm) error {
	sess, err := s.requireSession()
	if err != nil {
		s.notice(MsgAdoptionLogin)
		return err
	}
	if dog.Adopted {
		s.notice(MsgDogAlreadyAdopted)
		return invalid("perro_id", MsgDogAlreadyAdopted)
	}
	if !form.complete() {
		s.notice(MsgAdoptionIncomplete)
		return invalid("solicitud", MsgAdoptionIncomplete)
	}

	req := dto.AdoptionSubmit{DogID: dog.ID, Message: form.Message()}
	if err := s.backend.SubmitAdoption(ctx, sess.Token, req); err != nil {
		s.notice(MsgAdoptionFailed)
		return err
	}
	s.notice(MsgAdoptionSent)
	return nil
}
