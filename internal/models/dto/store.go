package dto

import "github.com/hongminglow/storefront/internal/models"

// PurchaseLine is a cart line as submitted to /compras: the product fields
// plus the chosen quantity.
type PurchaseLine struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"nombre"`
	Price     float64 `json:"precio"`
	Quantity  int     `json:"cantidad"`
}

type PurchaseRequest struct {
	Products []PurchaseLine `json:"productos"`
}

type ProductInput struct {
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imagen_url"`
}

type ProductList struct {
	Products []models.Product `json:"productos"`
}

type ProductEnvelope struct {
	Product models.Product `json:"producto"`
}

type DogInput struct {
	Name        string `json:"nombre"`
	Breed       string `json:"raza"`
	Age         int    `json:"edad"`
	ImageURL    string `json:"imagen_url"`
	Description string `json:"descripcion"`
}

type DogList struct {
	Dogs []models.Dog `json:"perros"`
}

type DogEnvelope struct {
	Dog models.Dog `json:"perro"`
}

type AdoptionSubmit struct {
	DogID   int64  `json:"perro_id"`
	Message string `json:"mensaje"`
}

type AdoptionList struct {
	Requests []models.AdoptionRequest `json:"solicitudes"`
}

type InvoiceList struct {
	Invoices []models.Invoice `json:"facturas"`
}

type InvoiceEnvelope struct {
	Invoice models.Invoice `json:"factura"`
}

type NotificationList struct {
	Notifications []models.Notification `json:"notificaciones"`
}
