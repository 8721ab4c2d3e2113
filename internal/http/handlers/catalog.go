package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/auth"
	"github.com/hongminglow/storefront/internal/http/respond"
	"github.com/hongminglow/storefront/internal/middleware"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
	"github.com/hongminglow/storefront/internal/storage"
)

// CatalogHandler serves products and dogs. Listing is public; changes are
// admin only.
type CatalogHandler struct {
	store  storage.Shop
	tokens *auth.TokenManager
	log    *zap.Logger
}

func NewCatalogHandler(store storage.Shop, tokens *auth.TokenManager, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{store: store, tokens: tokens, log: log}
}

// Register attaches catalog routes to the mux.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/productos", h.handleListProducts)
	mux.HandleFunc("POST /api/productos", middleware.RequireAdmin(h.tokens, h.handleCreateProduct))
	mux.HandleFunc("PUT /api/productos/{id}", middleware.RequireAdmin(h.tokens, h.handleUpdateProduct))
	mux.HandleFunc("DELETE /api/productos/{id}", middleware.RequireAdmin(h.tokens, h.handleDeleteProduct))

	mux.HandleFunc("GET /api/perros", h.handleListDogs)
	mux.HandleFunc("POST /api/perros", middleware.RequireAdmin(h.tokens, h.handleCreateDog))
	mux.HandleFunc("PUT /api/perros/{id}", middleware.RequireAdmin(h.tokens, h.handleUpdateDog))
	mux.HandleFunc("DELETE /api/perros/{id}", middleware.RequireAdmin(h.tokens, h.handleDeleteDog))
}

func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		writeStoreError(w, h.log, err, "producto")
		return
	}
	respond.JSON(w, http.StatusOK, dto.ProductList{Products: products})
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	var in dto.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "JSON inválido")
		return models.Product{}, false
	}
	if strings.TrimSpace(in.Name) == "" || in.Price < 0 || in.Stock < 0 {
		respond.Error(w, http.StatusBadRequest, "Nombre, precio y stock son obligatorios")
		return models.Product{}, false
	}
	return models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       models.Number(in.Price),
		Stock:       models.Number(in.Stock),
		ImageURL:    in.ImageURL,
	}, true
}

func (h *CatalogHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	created, err := h.store.CreateProduct(r.Context(), p)
	if err != nil {
		writeStoreError(w, h.log, err, "producto")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.ProductEnvelope{Product: created})
}

func (h *CatalogHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	p.ID = id
	updated, err := h.store.UpdateProduct(r.Context(), p)
	if err != nil {
		writeStoreError(w, h.log, err, "producto")
		return
	}
	respond.JSON(w, http.StatusOK, dto.ProductEnvelope{Product: updated})
}

func (h *CatalogHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		writeStoreError(w, h.log, err, "producto")
		return
	}
	respond.JSON(w, http.StatusOK, dto.Message{Msg: "Producto eliminado"})
}

func (h *CatalogHandler) handleListDogs(w http.ResponseWriter, r *http.Request) {
	dogs, err := h.store.ListDogs(r.Context())
	if err != nil {
		writeStoreError(w, h.log, err, "perro")
		return
	}
	respond.JSON(w, http.StatusOK, dto.DogList{Dogs: dogs})
}

func decodeDog(w http.ResponseWriter, r *http.Request) (models.Dog, bool) {
	var in dto.DogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "JSON inválido")
		return models.Dog{}, false
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Breed) == "" || in.Age < 0 {
		respond.Error(w, http.StatusBadRequest, "Nombre y raza son obligatorios")
		return models.Dog{}, false
	}
	return models.Dog{
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         models.Number(in.Age),
		ImageURL:    in.ImageURL,
		Description: in.Description,
	}, true
}

func (h *CatalogHandler) handleCreateDog(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDog(w, r)
	if !ok {
		return
	}
	created, err := h.store.CreateDog(r.Context(), d)
	if err != nil {
		writeStoreError(w, h.log, err, "perro")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.DogEnvelope{Dog: created})
}

func (h *CatalogHandler) handleUpdateDog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, ok := decodeDog(w, r)
	if !ok {
		return
	}
	d.ID = id
	updated, err := h.store.UpdateDog(r.Context(), d)
	if err != nil {
		writeStoreError(w, h.log, err, "perro")
		return
	}
	respond.JSON(w, http.StatusOK, dto.DogEnvelope{Dog: updated})
}

func (h *CatalogHandler) handleDeleteDog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteDog(r.Context(), id); err != nil {
		writeStoreError(w, h.log, err, "perro")
		return
	}
	respond.JSON(w, http.StatusOK, dto.Message{Msg: "Perro eliminado"})
}
