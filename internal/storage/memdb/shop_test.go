package memdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/storage"
)

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewShop()
	_, err := s.CreateUser(ctx, models.User{Email: "ana@x.com"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Email: "ANA@x.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestCreatePurchase_TakesStockAndInvoices(t *testing.T) {
	ctx := context.Background()
	s := NewShop()
	u, err := s.CreateUser(ctx, models.User{FullName: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	p, err := s.CreateProduct(ctx, models.Product{Name: "Collar", Price: 11.5, Stock: 3})
	require.NoError(t, err)

	inv, err := s.CreatePurchase(ctx, u.ID, []storage.PurchaseItem{{ProductID: p.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.InDelta(t, 23.0, inv.Total.Float(), 1e-9)
	assert.Equal(t, "Ana", inv.UserName)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, products[0].Stock.Float(), 1e-9)

	mine, err := s.ListInvoicesByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].Lines)

	full, owner, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)
	assert.Len(t, full.Lines, 1)
}

func TestCreatePurchase_OutOfStockChangesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewShop()
	u, _ := s.CreateUser(ctx, models.User{Email: "ana@x.com"})
	a, _ := s.CreateProduct(ctx, models.Product{Name: "A", Price: 1, Stock: 5})
	b, _ := s.CreateProduct(ctx, models.Product{Name: "B", Price: 1, Stock: 1})

	_, err := s.CreatePurchase(ctx, u.ID, []storage.PurchaseItem{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: b.ID, Quantity: 2},
	})
	assert.ErrorIs(t, err, storage.ErrOutOfStock)

	products, _ := s.ListProducts(ctx)
	assert.InDelta(t, 5.0, products[0].Stock.Float(), 1e-9)
	invoices, _ := s.ListInvoices(ctx)
	assert.Empty(t, invoices)
}

func TestReviewAdoptionRequest(t *testing.T) {
	ctx := context.Background()
	s := NewShop()
	u, _ := s.CreateUser(ctx, models.User{FullName: "Ana", Email: "ana@x.com"})
	d, _ := s.CreateDog(ctx, models.Dog{Name: "Firulais", Breed: "Mestizo"})

	req, err := s.CreateAdoptionRequest(ctx, u.ID, d.ID, "hola")
	require.NoError(t, err)
	assert.True(t, req.Pending())

	reviewed, owner, err := s.ReviewAdoptionRequest(ctx, req.ID, true)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)
	assert.Equal(t, models.AdoptionApproved, reviewed.Status)

	_, _, err = s.ReviewAdoptionRequest(ctx, req.ID, false)
	assert.ErrorIs(t, err, storage.ErrNotPending)

	_, err = s.CreateAdoptionRequest(ctx, u.ID, d.ID, "otra vez")
	assert.ErrorIs(t, err, storage.ErrAlreadyAdopted)
}

func TestNotifications_NewestFirstPerUser(t *testing.T) {
	ctx := context.Background()
	s := NewShop()
	require.NoError(t, s.AddNotification(ctx, 1, "uno"))
	require.NoError(t, s.AddNotification(ctx, 2, "otro"))
	require.NoError(t, s.AddNotification(ctx, 1, "dos"))

	got, err := s.ListNotifications(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dos", got[0].Message)
	assert.False(t, got[0].Read)
}
