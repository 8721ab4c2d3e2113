package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hongminglow/storefront/internal/models/dto"
)

// Notices for forms with blank required fields.
const (
	MsgProductIncomplete  = "Completa todos los campos requeridos"
	MsgAdoptionIncomplete = "Por favor completa todo el formulario."
)

// ProductForm is the raw product form. Name, price and stock are required.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Stock       string
	ImageURL    string
}

// Input validates the form and converts it to the request body.
func (f ProductForm) Input() (dto.ProductInput, error) {
	name := strings.TrimSpace(f.Name)
	price := strings.TrimSpace(f.Price)
	stock := strings.TrimSpace(f.Stock)
	if name == "" || price == "" || stock == "" {
		return dto.ProductInput{}, invalid("producto", MsgProductIncomplete)
	}
	p, err := strconv.ParseFloat(price, 64)
	if err != nil || p < 0 {
		return dto.ProductInput{}, invalid("precio", fmt.Sprintf("precio inválido: %q", price))
	}
	n, err := strconv.Atoi(stock)
	if err != nil || n < 0 {
		return dto.ProductInput{}, invalid("stock", fmt.Sprintf("stock inválido: %q", stock))
	}
	return dto.ProductInput{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Price:       p,
		Stock:       n,
		ImageURL:    strings.TrimSpace(f.ImageURL),
	}, nil
}

// DogForm is the raw dog form. Name and breed are required; a blank age is 0.
type DogForm struct {
	Name        string
	Breed       string
	Age         string
	ImageURL    string
	Description string
}

func (f DogForm) Input() (dto.DogInput, error) {
	name := strings.TrimSpace(f.Name)
	breed := strings.TrimSpace(f.Breed)
	if name == "" || breed == "" {
		return dto.DogInput{}, invalid("perro", "nombre y raza son obligatorios")
	}
	age := 0
	if raw := strings.TrimSpace(f.Age); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return dto.DogInput{}, invalid("edad", fmt.Sprintf("edad inválida: %q", raw))
		}
		age = n
	}
	return dto.DogInput{
		Name:        name,
		Breed:       breed,
		Age:         age,
		ImageURL:    strings.TrimSpace(f.ImageURL),
		Description: strings.TrimSpace(f.Description),
	}, nil
}

// AdoptionForm is the questionnaire attached to an adoption request. Every
// answer is required.
type AdoptionForm struct {
	Housing         string
	ChildrenUnder10 string
	Yard            string
	MoreThanTwoDogs string
	Reason          string
}

func (f AdoptionForm) complete() bool {
	for _, v := range []string{f.Housing, f.ChildrenUnder10, f.Yard, f.MoreThanTwoDogs, f.Reason} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Message renders the answers as the free-text message the backend stores.
func (f AdoptionForm) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tipo de vivienda: %s\n", strings.TrimSpace(f.Housing))
	fmt.Fprintf(&b, "¿Tiene niños menores de 10 años?: %s\n", strings.TrimSpace(f.ChildrenUnder10))
	fmt.Fprintf(&b, "¿Tiene patio?: %s\n", strings.TrimSpace(f.Yard))
	fmt.Fprintf(&b, "¿Tiene más de 2 perros?: %s\n", strings.TrimSpace(f.MoreThanTwoDogs))
	fmt.Fprintf(&b, "Motivo: %s", strings.TrimSpace(f.Reason))
	return b.String()
}
