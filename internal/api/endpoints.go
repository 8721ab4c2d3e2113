package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
)

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/users/login", "", dto.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	var out dto.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/api/users/register", "", req, &out)
	return out.User, err
}

func (c *Client) ListNotifications(ctx context.Context, token string) ([]models.Notification, error) {
	var out dto.NotificationList
	err := c.do(ctx, http.MethodGet, "/notificaciones", token, nil, &out)
	return out.Notifications, err
}

// SubmitPurchase sends the cart lines as one purchase.
func (c *Client) SubmitPurchase(ctx context.Context, token string, lines []dto.PurchaseLine) error {
	return c.do(ctx, http.MethodPost, "/compras", token, dto.PurchaseRequest{Products: lines}, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out dto.ProductList
	err := c.do(ctx, http.MethodGet, "/api/productos", "", nil, &out)
	return out.Products, err
}

func (c *Client) CreateProduct(ctx context.Context, token string, in dto.ProductInput) (models.Product, error) {
	var out dto.ProductEnvelope
	err := c.do(ctx, http.MethodPost, "/api/productos", token, in, &out)
	return out.Product, err
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, in dto.ProductInput) (models.Product, error) {
	var out dto.ProductEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/productos/%d", id), token, in, &out)
	return out.Product, err
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/productos/%d", id), token, nil, nil)
}

func (c *Client) ListDogs(ctx context.Context) ([]models.Dog, error) {
	var out dto.DogList
	err := c.do(ctx, http.MethodGet, "/api/perros", "", nil, &out)
	return out.Dogs, err
}

func (c *Client) CreateDog(ctx context.Context, token string, in dto.DogInput) (models.Dog, error) {
	var out dto.DogEnvelope
	err := c.do(ctx, http.MethodPost, "/api/perros", token, in, &out)
	return out.Dog, err
}

func (c *Client) UpdateDog(ctx context.Context, token string, id int64, in dto.DogInput) (models.Dog, error) {
	var out dto.DogEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/perros/%d", id), token, in, &out)
	return out.Dog, err
}

func (c *Client) DeleteDog(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/perros/%d", id), token, nil, nil)
}

func (c *Client) SubmitAdoption(ctx context.Context, token string, req dto.AdoptionSubmit) error {
	return c.do(ctx, http.MethodPost, "/api/solicitudes", token, req, nil)
}

// ListAdoptionRequests returns every request; admin only.
func (c *Client) ListAdoptionRequests(ctx context.Context, token string) ([]models.AdoptionRequest, error) {
	var out dto.AdoptionList
	err := c.do(ctx, http.MethodGet, "/api/solicitudes", token, nil, &out)
	return out.Requests, err
}

// MyAdoptionRequests returns the caller's own requests.
func (c *Client) MyAdoptionRequests(ctx context.Context, token string) ([]models.AdoptionRequest, error) {
	var out dto.AdoptionList
	err := c.do(ctx, http.MethodGet, "/api/solicitudes/mis-solicitudes", token, nil, &out)
	return out.Requests, err
}

// ApproveAdoption approves a pending request and returns the backend's message.
func (c *Client) ApproveAdoption(ctx context.Context, token string, id int64) (string, error) {
	return c.reviewAdoption(ctx, token, id, "aprobar")
}

// RejectAdoption rejects a pending request and returns the backend's message.
func (c *Client) RejectAdoption(ctx context.Context, token string, id int64) (string, error) {
	return c.reviewAdoption(ctx, token, id, "rechazar")
}

func (c *Client) reviewAdoption(ctx context.Context, token string, id int64, action string) (string, error) {
	var out dto.Message
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/solicitudes/%d/%s", id, action), token, struct{}{}, &out)
	return out.Msg, err
}

func (c *Client) ListInvoices(ctx context.Context, token string) ([]models.Invoice, error) {
	var out dto.InvoiceList
	err := c.do(ctx, http.MethodGet, "/api/facturas", token, nil, &out)
	return out.Invoices, err
}

func (c *Client) MyInvoices(ctx context.Context, token string) ([]models.Invoice, error) {
	var out dto.InvoiceList
	err := c.do(ctx, http.MethodGet, "/api/facturas/mis-facturas", token, nil, &out)
	return out.Invoices, err
}

// GetInvoice returns one invoice with its lines.
func (c *Client) GetInvoice(ctx context.Context, token string, id int64) (models.Invoice, error) {
	var out dto.InvoiceEnvelope
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/facturas/%d", id), token, nil, &out)
	return out.Invoice, err
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out dto.UserList
	err := c.do(ctx, http.MethodGet, "/users", token, nil, &out)
	return out.Users, err
}

// UpdateUser is the admin edit, which may change the role.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, in dto.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), token, in, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil, nil)
}

// UpdateProfile is the self-service edit of the caller's own profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, id int64, in dto.ProfileUpdate) error {
	in.Role = ""
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), token, in, nil)
}
