package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/auth"
	"github.com/hongminglow/storefront/internal/http/respond"
	"github.com/hongminglow/storefront/internal/middleware"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
	"github.com/hongminglow/storefront/internal/storage"
)

// OrderHandler serves purchases, invoices, adoption requests and
// notifications: everything tied to the calling user.
type OrderHandler struct {
	store  storage.Shop
	tokens *auth.TokenManager
	log    *zap.Logger
}

func NewOrderHandler(store storage.Shop, tokens *auth.TokenManager, log *zap.Logger) *OrderHandler {
	return &OrderHandler{store: store, tokens: tokens, log: log}
}

// Register attaches order routes to the mux.
func (h *OrderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /compras", middleware.RequireAuth(h.tokens, h.handlePurchase))
	mux.HandleFunc("GET /notificaciones", middleware.RequireAuth(h.tokens, h.handleNotifications))

	mux.HandleFunc("GET /api/facturas", middleware.RequireAdmin(h.tokens, h.handleListInvoices))
	mux.HandleFunc("GET /api/facturas/mis-facturas", middleware.RequireAuth(h.tokens, h.handleMyInvoices))
	mux.HandleFunc("GET /api/facturas/{id}", middleware.RequireAuth(h.tokens, h.handleGetInvoice))

	mux.HandleFunc("POST /api/solicitudes", middleware.RequireAuth(h.tokens, h.handleSubmitAdoption))
	mux.HandleFunc("GET /api/solicitudes", middleware.RequireAdmin(h.tokens, h.handleListAdoptions))
	mux.HandleFunc("GET /api/solicitudes/mis-solicitudes", middleware.RequireAuth(h.tokens, h.handleMyAdoptions))
	mux.HandleFunc("PATCH /api/solicitudes/{id}/aprobar", middleware.RequireAdmin(h.tokens, h.handleApprove))
	mux.HandleFunc("PATCH /api/solicitudes/{id}/rechazar", middleware.RequireAdmin(h.tokens, h.handleReject))
}

func callerID(r *http.Request) (int64, models.User) {
	claims, _ := middleware.ClaimsFrom(r.Context())
	id, _ := claims.UserID()
	return id, models.User{ID: id, Email: claims.Email, Role: claims.Role}
}

func (h *OrderHandler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req dto.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if len(req.Products) == 0 {
		respond.Error(w, http.StatusBadRequest, "El carrito está vacío")
		return
	}
	items := make([]storage.PurchaseItem, 0, len(req.Products))
	for _, p := range req.Products {
		if p.Quantity < 1 {
			respond.Error(w, http.StatusBadRequest, "Cantidad inválida")
			return
		}
		items = append(items, storage.PurchaseItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	userID, _ := callerID(r)
	inv, err := h.store.CreatePurchase(r.Context(), userID, items)
	if err != nil {
		writeStoreError(w, h.log, err, "producto")
		return
	}
	h.notify(r, userID, fmt.Sprintf("Tu compra #%d por $%.2f fue registrada", inv.ID, inv.Total.Float()))

	respond.JSON(w, http.StatusCreated, struct {
		Msg     string         `json:"msg"`
		Invoice models.Invoice `json:"factura"`
	}{"Compra realizada", inv})
}

func (h *OrderHandler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerID(r)
	items, err := h.store.ListNotifications(r.Context(), userID)
	if err != nil {
		writeStoreError(w, h.log, err, "notificación")
		return
	}
	respond.JSON(w, http.StatusOK, dto.NotificationList{Notifications: items})
}

func (h *OrderHandler) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.store.ListInvoices(r.Context())
	if err != nil {
		writeStoreError(w, h.log, err, "factura")
		return
	}
	respond.JSON(w, http.StatusOK, dto.InvoiceList{Invoices: invoices})
}

func (h *OrderHandler) handleMyInvoices(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerID(r)
	invoices, err := h.store.ListInvoicesByUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, h.log, err, "factura")
		return
	}
	respond.JSON(w, http.StatusOK, dto.InvoiceList{Invoices: invoices})
}

func (h *OrderHandler) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	inv, owner, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		writeStoreError(w, h.log, err, "factura")
		return
	}
	userID, caller := callerID(r)
	if owner != userID && !caller.IsAdmin() {
		respond.Error(w, http.StatusForbidden, "Acceso denegado")
		return
	}
	respond.JSON(w, http.StatusOK, dto.InvoiceEnvelope{Invoice: inv})
}

func (h *OrderHandler) handleSubmitAdoption(w http.ResponseWriter, r *http.Request) {
	var req dto.AdoptionSubmit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if req.DogID <= 0 || req.Message == "" {
		respond.Error(w, http.StatusBadRequest, "perro_id y mensaje son obligatorios")
		return
	}
	userID, _ := callerID(r)
	created, err := h.store.CreateAdoptionRequest(r.Context(), userID, req.DogID, req.Message)
	if err != nil {
		writeStoreError(w, h.log, err, "perro")
		return
	}
	respond.JSON(w, http.StatusCreated, struct {
		Msg     string                 `json:"msg"`
		Request models.AdoptionRequest `json:"solicitud"`
	}{"Solicitud enviada", created})
}

func (h *OrderHandler) handleListAdoptions(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.store.ListAdoptionRequests(r.Context())
	if err != nil {
		writeStoreError(w, h.log, err, "solicitud")
		return
	}
	respond.JSON(w, http.StatusOK, dto.AdoptionList{Requests: reqs})
}

func (h *OrderHandler) handleMyAdoptions(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerID(r)
	reqs, err := h.store.ListAdoptionRequestsByUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, h.log, err, "solicitud")
		return
	}
	respond.JSON(w, http.StatusOK, dto.AdoptionList{Requests: reqs})
}

func (h *OrderHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

func (h *OrderHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

func (h *OrderHandler) review(w http.ResponseWriter, r *http.Request, approve bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, owner, err := h.store.ReviewAdoptionRequest(r.Context(), id, approve)
	if err != nil {
		writeStoreError(w, h.log, err, "solicitud")
		return
	}

	msg := "Solicitud aprobada y perro marcado como adoptado"
	note := fmt.Sprintf("🎉 Tu solicitud para adoptar a %s fue aprobada", req.DogName)
	if !approve {
		msg = "Solicitud rechazada"
		note = fmt.Sprintf("Tu solicitud para adoptar a %s fue rechazada", req.DogName)
	}
	h.notify(r, owner, note)
	respond.JSON(w, http.StatusOK, dto.Message{Msg: msg})
}

// notify records a notification; failures are logged and do not fail the request.
func (h *OrderHandler) notify(r *http.Request, userID int64, message string) {
	if err := h.store.AddNotification(r.Context(), userID, message); err != nil {
		h.log.Warn("add notification failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}
