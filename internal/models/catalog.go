package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a numeric field the backend may encode either as a JSON number or
// as a numeric string (Postgres NUMERIC columns come back quoted).
type Number float64

// UnmarshalJSON accepts 12.5, "12.5", "" and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse number %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float returns the value as a float64.
func (n Number) Float() float64 { return float64(n) }

// Product is a shop item. Price is tax-inclusive.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	Price       Number `json:"precio"`
	Stock       Number `json:"stock"`
	ImageURL    string `json:"imagen_url,omitempty"`
}

// Dog is an adoptable dog.
type Dog struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Breed       string `json:"raza"`
	Age         Number `json:"edad,omitempty"`
	ImageURL    string `json:"imagen_url,omitempty"`
	Description string `json:"descripcion,omitempty"`
	Adopted     bool   `json:"adoptado"`
}

// AgeLabel renders the age the way the dog grid shows it.
func (d Dog) AgeLabel() string {
	if d.Age <= 0 {
		return "No especificada"
	}
	age := strconv.FormatFloat(d.Age.Float(), 'f', -1, 64)
	if d.Age > 1 {
		return age + " años"
	}
	return age + " año"
}
