package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/http/respond"
	"github.com/hongminglow/storefront/internal/storage"
)

// pathID parses the {id} wildcard and writes a 400 when it is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, log *zap.Logger, err error, entity string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "No se encontró el "+entity)
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, http.StatusConflict, "El "+entity+" ya existe")
	case errors.Is(err, storage.ErrOutOfStock):
		respond.Error(w, http.StatusConflict, "Stock insuficiente")
	case errors.Is(err, storage.ErrNotPending):
		respond.Error(w, http.StatusConflict, "La solicitud ya fue revisada")
	case errors.Is(err, storage.ErrAlreadyAdopted):
		respond.Error(w, http.StatusConflict, "El perro ya fue adoptado")
	default:
		log.Error("store operation failed", zap.String("entity", entity), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}
