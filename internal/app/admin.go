package app

import (
	"context"

	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
)

// Notices raised by the admin panels.
const (
	MsgUsersLoadFailed    = "Error al cargar usuarios"
	MsgUserUpdated        = "✅ Usuario actualizado correctamente"
	MsgUserUpdateFailed   = "Error al actualizar usuario"
	MsgUserDeleted        = "✅ Usuario eliminado"
	MsgUserDeleteFailed   = "Error al eliminar usuario"
	MsgInvoicesLoadFailed = "Error al cargar facturas"
	MsgRequestsLoadFailed = "Error al cargar solicitudes"
	MsgRequestNotPending  = "La solicitud ya fue revisada"
	MsgApproveFailed      = "No se pudo aprobar la solicitud"
	MsgRejectFailed       = "No se pudo rechazar la solicitud"
)

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	sess, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}
	users, err := s.backend.ListUsers(ctx, sess.Token)
	if err != nil {
		s.notice(MsgUsersLoadFailed)
		return nil, err
	}
	return users, nil
}

// UpdateUser is the admin edit; it may change the role.
func (s *Store) UpdateUser(ctx context.Context, id int64, in dto.ProfileUpdate) error {
	sess, err := s.requireAdmin()
	if err != nil {
		return err
	}
	if in.Role != "" && !models.ValidRole(in.Role) {
		return invalid("rol", "rol desconocido: "+in.Role)
	}
	if err := s.backend.UpdateUser(ctx, sess.Token, id, in); err != nil {
		s.notice(MsgUserUpdateFailed)
		return err
	}
	s.notice(MsgUserUpdated)
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	sess, err := s.requireAdmin()
	if err != nil {
		return err
	}
	if err := s.backend.DeleteUser(ctx, sess.Token, id); err != nil {
		s.notice(MsgUserDeleteFailed)
		return err
	}
	s.notice(MsgUserDeleted)
	return nil
}

func (s *Store) Invoices(ctx context.Context) ([]models.Invoice, error) {
	sess, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}
	invoices, err := s.backend.ListInvoices(ctx, sess.Token)
	if err != nil {
		s.notice(MsgInvoicesLoadFailed)
		return nil, err
	}
	return invoices, nil
}

func (s *Store) AdoptionRequests(ctx context.Context) ([]models.AdoptionRequest, error) {
	sess, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}
	reqs, err := s.backend.ListAdoptionRequests(ctx, sess.Token)
	if err != nil {
		s.notice(MsgRequestsLoadFailed)
		return nil, err
	}
	return reqs, nil
}

// ApproveAdoption approves req; only pending requests can be reviewed.
func (s *Store) ApproveAdoption(ctx context.Context, req models.AdoptionRequest) error {
	return s.review(ctx, req, true)
}

// RejectAdoption rejects req; only pending requests can be reviewed.
func (s *Store) RejectAdoption(ctx context.Context, req models.AdoptionRequest) error {
	return s.review(ctx, req, false)
}

func (s *Store) review(ctx context.Context, req models.AdoptionRequest, approve bool) error {
	sess, err := s.requireAdmin()
	if err != nil {
		return err
	}
	if !req.Pending() {
		s.notice(MsgRequestNotPending)
		return invalid("estado", MsgRequestNotPending)
	}

	var msg string
	if approve {
		msg, err = s.backend.ApproveAdoption(ctx, sess.Token, req.ID)
	} else {
		msg, err = s.backend.RejectAdoption(ctx, sess.Token, req.ID)
	}
	if err != nil {
		if approve {
			s.notice(MsgApproveFailed)
		} else {
			s.notice(MsgRejectFailed)
		}
		return err
	}
	if msg == "" {
		msg = "Solicitud actualizada"
	}
	s.notice(msg)
	return nil
}
