// Package memdb is an in-process implementation of storage.Shop used by the
// development backend and by tests.
package memdb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/storage"
)

// Ensure Shop satisfies the storage.Shop interface at compile time.
var _ storage.Shop = (*Shop)(nil)

type invoiceRecord struct {
	invoice models.Invoice
	userID  int64
}

type requestRecord struct {
	request models.AdoptionRequest
	userID  int64
}

type notificationRecord struct {
	notification models.Notification
	userID       int64
}

// Shop keeps every entity in maps guarded by one lock.
type Shop struct {
	mu sync.RWMutex
	id int64

	users         map[int64]models.User
	products      map[int64]models.Product
	dogs          map[int64]models.Dog
	invoices      map[int64]invoiceRecord
	requests      map[int64]requestRecord
	notifications []notificationRecord

	now func() time.Time
}

// NewShop returns an empty shop.
func NewShop() *Shop {
	return &Shop{
		users:    make(map[int64]models.User),
		products: make(map[int64]models.Product),
		dogs:     make(map[int64]models.Dog),
		invoices: make(map[int64]invoiceRecord),
		requests: make(map[int64]requestRecord),
		now:      time.Now,
	}
}

func (s *Shop) nextID() int64 {
	s.id++
	return s.id
}

func (s *Shop) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.nextID()
	s.users[user.ID] = user
	return user, nil
}

func (s *Shop) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Shop) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Shop) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateUser replaces the profile fields; the password hash is kept.
func (s *Shop) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.users[user.ID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.PasswordHash = current.PasswordHash
	s.users[user.ID] = user
	return user, nil
}

func (s *Shop) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Shop) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Shop) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID()
	s.products[p.ID] = p
	return p, nil
}

func (s *Shop) UpdateProduct(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return models.Product{}, storage.ErrNotFound
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *Shop) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Shop) ListDogs(_ context.Context) ([]models.Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Dog, 0, len(s.dogs))
	for _, d := range s.dogs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Shop) CreateDog(_ context.Context, d models.Dog) (models.Dog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextID()
	s.dogs[d.ID] = d
	return d, nil
}

// UpdateDog replaces the dog's fields but never its adoption status.
func (s *Shop) UpdateDog(_ context.Context, d models.Dog) (models.Dog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.dogs[d.ID]
	if !ok {
		return models.Dog{}, storage.ErrNotFound
	}
	d.Adopted = current.Adopted
	s.dogs[d.ID] = d
	return d, nil
}

func (s *Shop) DeleteDog(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dogs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.dogs, id)
	return nil
}

// CreatePurchase checks every line first and only then takes stock and
// writes the invoice, so a failed purchase changes nothing.
func (s *Shop) CreatePurchase(_ context.Context, userID int64, items []storage.PurchaseItem) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return models.Invoice{}, storage.ErrNotFound
	}

	wanted := make(map[int64]int)
	for _, it := range items {
		if _, ok := s.products[it.ProductID]; !ok {
			return models.Invoice{}, fmt.Errorf("product %d: %w", it.ProductID, storage.ErrNotFound)
		}
		wanted[it.ProductID] += it.Quantity
	}
	for id, qty := range wanted {
		if float64(qty) > s.products[id].Stock.Float() {
			return models.Invoice{}, fmt.Errorf("product %d: %w", id, storage.ErrOutOfStock)
		}
	}

	inv := models.Invoice{
		ID:       s.nextID(),
		UserName: user.FullName,
		IssuedAt: s.now().UTC().Format(time.RFC3339),
	}
	var total float64
	for _, it := range items {
		p := s.products[it.ProductID]
		p.Stock = models.Number(p.Stock.Float() - float64(it.Quantity))
		s.products[p.ID] = p
		total += p.Price.Float() * float64(it.Quantity)
		inv.Lines = append(inv.Lines, models.InvoiceLine{
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
	}
	inv.Total = models.Number(total)
	s.invoices[inv.ID] = invoiceRecord{invoice: inv, userID: userID}
	return inv, nil
}

func (s *Shop) ListInvoices(_ context.Context) ([]models.Invoice, error) {
	return s.invoicesWhere(func(invoiceRecord) bool { return true }), nil
}

func (s *Shop) ListInvoicesByUser(_ context.Context, userID int64) ([]models.Invoice, error) {
	return s.invoicesWhere(func(r invoiceRecord) bool { return r.userID == userID }), nil
}

// invoicesWhere returns summaries without lines, as the list endpoints do.
func (s *Shop) invoicesWhere(keep func(invoiceRecord) bool) []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Invoice, 0)
	for _, r := range s.invoices {
		if keep(r) {
			inv := r.invoice
			inv.Lines = nil
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetInvoice returns the invoice with its lines and the owner's user id.
func (s *Shop) GetInvoice(_ context.Context, id int64) (models.Invoice, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.invoices[id]
	if !ok {
		return models.Invoice{}, 0, storage.ErrNotFound
	}
	inv := r.invoice
	inv.Lines = append([]models.InvoiceLine(nil), r.invoice.Lines...)
	return inv, r.userID, nil
}

func (s *Shop) CreateAdoptionRequest(_ context.Context, userID, dogID int64, message string) (models.AdoptionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return models.AdoptionRequest{}, storage.ErrNotFound
	}
	dog, ok := s.dogs[dogID]
	if !ok {
		return models.AdoptionRequest{}, storage.ErrNotFound
	}
	if dog.Adopted {
		return models.AdoptionRequest{}, storage.ErrAlreadyAdopted
	}
	req := models.AdoptionRequest{
		ID:          s.nextID(),
		DogID:       dog.ID,
		DogName:     dog.Name,
		UserName:    user.FullName,
		Message:     message,
		Status:      models.AdoptionPending,
		RequestedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.requests[req.ID] = requestRecord{request: req, userID: userID}
	return req, nil
}

func (s *Shop) ListAdoptionRequests(_ context.Context) ([]models.AdoptionRequest, error) {
	return s.requestsWhere(func(requestRecord) bool { return true }), nil
}

func (s *Shop) ListAdoptionRequestsByUser(_ context.Context, userID int64) ([]models.AdoptionRequest, error) {
	return s.requestsWhere(func(r requestRecord) bool { return r.userID == userID }), nil
}

func (s *Shop) requestsWhere(keep func(requestRecord) bool) []models.AdoptionRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AdoptionRequest, 0)
	for _, r := range s.requests {
		if keep(r) {
			out = append(out, r.request)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReviewAdoptionRequest approves or rejects a pending request. Approving
// marks the dog adopted. It returns the updated request and its owner.
func (s *Shop) ReviewAdoptionRequest(_ context.Context, id int64, approve bool) (models.AdoptionRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return models.AdoptionRequest{}, 0, storage.ErrNotFound
	}
	if !r.request.Pending() {
		return models.AdoptionRequest{}, 0, storage.ErrNotPending
	}
	if approve {
		dog, ok := s.dogs[r.request.DogID]
		if ok && dog.Adopted {
			return models.AdoptionRequest{}, 0, storage.ErrAlreadyAdopted
		}
		if ok {
			dog.Adopted = true
			s.dogs[dog.ID] = dog
		}
		r.request.Status = models.AdoptionApproved
	} else {
		r.request.Status = models.AdoptionRejected
	}
	s.requests[id] = r
	return r.request, r.userID, nil
}

func (s *Shop) AddNotification(_ context.Context, userID int64, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, notificationRecord{
		notification: models.Notification{ID: s.nextID(), Message: message},
		userID:       userID,
	})
	return nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *Shop) ListNotifications(_ context.Context, userID int64) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, 0)
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if r := s.notifications[i]; r.userID == userID {
			out = append(out, r.notification)
		}
	}
	return out, nil
}
