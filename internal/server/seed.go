package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/storefront/internal/http/handlers"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/storage"
)

// SeedAdmin creates the admin account unless one with that email exists.
func SeedAdmin(ctx context.Context, store storage.Shop, email, password string) (models.User, error) {
	if existing, err := store.FindUserByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := handlers.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash admin password: %w", err)
	}
	admin, err := store.CreateUser(ctx, models.User{
		FullName:     "Administrador",
		Email:        email,
		Role:         models.AdminUser,
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// SeedCatalog adds a few products and dogs so a fresh backend has
// something to browse.
func SeedCatalog(ctx context.Context, store storage.Shop) error {
	products := []models.Product{
		{Name: "Collar reflectivo", Description: "Collar ajustable para paseos nocturnos", Price: 11.5, Stock: 25},
		{Name: "Croquetas 5kg", Description: "Alimento balanceado para perro adulto", Price: 34.5, Stock: 10},
		{Name: "Cama acolchada", Description: "Cama lavable talla mediana", Price: 46, Stock: 5},
	}
	for _, p := range products {
		if _, err := store.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	dogs := []models.Dog{
		{Name: "Firulais", Breed: "Mestizo", Age: 3, Description: "Juguetón y sociable"},
		{Name: "Luna", Breed: "Labrador", Age: 1, Description: "Tranquila, ideal para familias"},
	}
	for _, d := range dogs {
		if _, err := store.CreateDog(ctx, d); err != nil {
			return fmt.Errorf("seed dog %q: %w", d.Name, err)
		}
	}
	return nil
}
