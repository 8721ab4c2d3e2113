package handlers

import (
	"net/http"
	"time"

	"github.com/hongminglow/storefront/internal/http/respond"
	"github.com/hongminglow/storefront/internal/storage"
)

// HealthHandler reports uptime and whether the shop store answers.
type HealthHandler struct {
	store     storage.Shop
	startedAt time.Time
}

type healthStatus struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Products int    `json:"productos"`
	Dogs     int    `json:"perros"`
}

func NewHealthHandler(store storage.Shop, startedAt time.Time) *HealthHandler {
	return &HealthHandler{store: store, startedAt: startedAt}
}

func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	out := healthStatus{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Truncate(time.Second).String(),
	}
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		respond.Error(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	dogs, err := h.store.ListDogs(r.Context())
	if err != nil {
		respond.Error(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	out.Products, out.Dogs = len(products), len(dogs)
	respond.JSON(w, http.StatusOK, out)
}
