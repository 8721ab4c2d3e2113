package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/storefront/internal/models"
)

// ErrNotFound indicates a key or record has no stored value.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrOutOfStock indicates a purchase asked for more units than are left.
var ErrOutOfStock = errors.New("insufficient stock")

// ErrNotPending indicates an adoption request was already reviewed.
var ErrNotPending = errors.New("adoption request already reviewed")

// ErrAlreadyAdopted indicates the dog is no longer available.
var ErrAlreadyAdopted = errors.New("dog already adopted")

// KeyValue is the durable client-state store: a handful of string entries
// that survive restarts of the terminal client.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PurchaseItem is one requested product and quantity.
type PurchaseItem struct {
	ProductID int64
	Quantity  int
}

// Shop captures the persistence operations the development backend needs.
type Shop interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListDogs(ctx context.Context) ([]models.Dog, error)
	CreateDog(ctx context.Context, d models.Dog) (models.Dog, error)
	UpdateDog(ctx context.Context, d models.Dog) (models.Dog, error)
	DeleteDog(ctx context.Context, id int64) error

	CreatePurchase(ctx context.Context, userID int64, items []PurchaseItem) (models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	ListInvoicesByUser(ctx context.Context, userID int64) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (models.Invoice, int64, error)

	CreateAdoptionRequest(ctx context.Context, userID, dogID int64, message string) (models.AdoptionRequest, error)
	ListAdoptionRequests(ctx context.Context) ([]models.AdoptionRequest, error)
	ListAdoptionRequestsByUser(ctx context.Context, userID int64) ([]models.AdoptionRequest, error)
	ReviewAdoptionRequest(ctx context.Context, id int64, approve bool) (models.AdoptionRequest, int64, error)

	AddNotification(ctx context.Context, userID int64, message string) error
	ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
}
