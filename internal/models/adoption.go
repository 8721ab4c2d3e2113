package models

// Adoption request states as the backend reports them.
const (
	AdoptionPending  = "pendiente"
	AdoptionApproved = "aprobada"
	AdoptionRejected = "rechazada"
)

// AdoptionRequest is a user's request to adopt a dog.
type AdoptionRequest struct {
	ID          int64  `json:"id"`
	DogID       int64  `json:"perro_id,omitempty"`
	DogName     string `json:"perro_nombre,omitempty"`
	UserName    string `json:"usuario_nombre,omitempty"`
	Message     string `json:"mensaje"`
	Status      string `json:"estado"`
	RequestedAt string `json:"fecha_solicitud,omitempty"`
}

// Pending reports whether an admin can still approve or reject the request.
func (r AdoptionRequest) Pending() bool {
	return r.Status == AdoptionPending
}

// Invoice is a purchase receipt. Lines are only populated on the detail call.
type Invoice struct {
	ID       int64         `json:"id"`
	UserName string        `json:"nombre_completo,omitempty"`
	Total    Number        `json:"total"`
	IssuedAt string        `json:"fecha"`
	Lines    []InvoiceLine `json:"detalle,omitempty"`
}

// InvoiceLine is one product row on an invoice.
type InvoiceLine struct {
	Name      string `json:"nombre"`
	Quantity  int    `json:"cantidad"`
	UnitPrice Number `json:"precio_unitario"`
}

// Notification is a message addressed to the logged-in user.
type Notification struct {
	ID      int64  `json:"id"`
	Message string `json:"mensaje"`
	Read    bool   `json:"leida"`
}
