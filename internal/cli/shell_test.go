package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/storefront/internal/api"
	"github.com/hongminglow/storefront/internal/app"
	"github.com/hongminglow/storefront/internal/cli"
	"github.com/hongminglow/storefront/internal/config"
	"github.com/hongminglow/storefront/internal/http/handlers"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/server"
	"github.com/hongminglow/storefront/internal/session"
	"github.com/hongminglow/storefront/internal/storage"
	"github.com/hongminglow/storefront/internal/storage/memdb"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin12345"
	userEmail     = "ana@example.com"
	userPassword  = "password1"
)

type fixture struct {
	store *app.Store
	kv    *storage.Memory
	shop  *memdb.Shop
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	shop := memdb.NewShop()
	_, err := server.SeedAdmin(ctx, shop, adminEmail, adminPassword)
	require.NoError(t, err)
	require.NoError(t, server.SeedCatalog(ctx, shop))

	hash, err := handlers.HashPassword(userPassword)
	require.NoError(t, err)
	_, err = shop.CreateUser(ctx, models.User{FullName: "Ana", Email: userEmail, Role: models.NormalUser, PasswordHash: hash})
	require.NoError(t, err)

	cfg := config.Config{JWTSecret: "test-secret", JWTIssuer: "test", JWTTTL: time.Hour, CORSOrigins: []string{"*"}}
	ts := httptest.NewServer(server.NewHandler(cfg, shop, nil))
	t.Cleanup(ts.Close)

	kv := storage.NewMemory()
	st := app.New(api.New(ts.URL, 5*time.Second, nil), session.NewStore(kv, nil), nil)
	st.Start(ctx)
	return &fixture{store: st, kv: kv, shop: shop}
}

// run feeds lines to a fresh shell over the fixture's store and returns
// everything it printed.
func (f *fixture) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	sh := cli.New(f.store, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, 5*time.Second, nil)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func (f *fixture) productID(t *testing.T, name string) string {
	t.Helper()
	products, err := f.shop.ListProducts(context.Background())
	require.NoError(t, err)
	for _, p := range products {
		if p.Name == name {
			return fmt.Sprint(p.ID)
		}
	}
	t.Fatalf("product %q not seeded", name)
	return ""
}

func (f *fixture) dogID(t *testing.T, name string) string {
	t.Helper()
	dogs, err := f.shop.ListDogs(context.Background())
	require.NoError(t, err)
	for _, d := range dogs {
		if d.Name == name {
			return fmt.Sprint(d.ID)
		}
	}
	t.Fatalf("dog %q not seeded", name)
	return ""
}

func TestShell_ListsCatalog(t *testing.T) {
	f := newFixture(t)
	out := f.run(t, "products", "dogs", "quit")

	assert.Contains(t, out, "Collar reflectivo")
	assert.Contains(t, out, "$11.50")
	assert.Contains(t, out, "Firulais")
	assert.Contains(t, out, "3 años")
	assert.Contains(t, out, "[perros] Invitado")
}

func TestShell_GuestAddRaisesLoginForm(t *testing.T) {
	f := newFixture(t)
	id := f.productID(t, "Collar reflectivo")

	out := f.run(t, "add "+id, "", "quit")

	assert.Contains(t, out, "🔒 Debes iniciar sesión.")
	assert.Contains(t, out, "🔐 Iniciar sesión")
	assert.Empty(t, f.store.Cart())
	assert.False(t, f.store.LoginPrompt())
}

func TestShell_LoginAndCheckout(t *testing.T) {
	f := newFixture(t)
	id := f.productID(t, "Collar reflectivo")

	out := f.run(t,
		"login", userEmail, userPassword,
		"add "+id,
		"add "+id,
		"qty "+id+" 3",
		"checkout",
		"yes",
		"quit",
	)

	assert.Contains(t, out, app.MsgLoginOK)
	assert.Contains(t, out, app.MsgAddedToCart)
	assert.Contains(t, out, app.MsgAlreadyInCart)
	assert.Contains(t, out, "$34.50")
	assert.Contains(t, out, app.MsgConfirmCheckout+" (yes/no)")
	assert.Contains(t, out, app.MsgCheckoutOK)
	assert.Empty(t, f.store.Cart())

	user, err := f.shop.FindUserByEmail(context.Background(), userEmail)
	require.NoError(t, err)
	invoices, err := f.shop.ListInvoicesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
}

func TestShell_CartTotals(t *testing.T) {
	f := newFixture(t)
	id := f.productID(t, "Cama acolchada")

	out := f.run(t, "login", userEmail, userPassword, "add "+id, "cart", "quit")

	assert.Contains(t, out, "$40.00")
	assert.Contains(t, out, "$6.00")
	assert.Contains(t, out, "$46.00")
	assert.True(t, f.store.CartOpen())
}

func TestShell_LogoutNeedsConfirmation(t *testing.T) {
	f := newFixture(t)

	f.run(t, "login", userEmail, userPassword, "logout", "no", "quit")
	assert.True(t, f.store.Session().Authenticated())

	out := f.run(t, "logout", "yes", "quit")
	assert.Contains(t, out, app.MsgConfirmLogout)
	assert.False(t, f.store.Session().Authenticated())
	_, err := f.kv.Get(context.Background(), session.TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestShell_FailedLoginKeepsForm(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "login", userEmail, "wrong", "", "quit")

	assert.Contains(t, out, app.MsgLoginFailed)
	assert.Equal(t, 2, strings.Count(out, "🔐 Iniciar sesión"))
	assert.False(t, f.store.Session().Authenticated())
}

func TestShell_RegisterThenLogin(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"register", "Luis Pérez", "luis@example.com", "0102030405", "M", "0999999999", "secret12", "secret12",
		"luis@example.com", "secret12",
		"quit",
	)

	assert.Contains(t, out, app.MsgRegisterOK)
	assert.Contains(t, out, app.MsgLoginOK)
	assert.Equal(t, "Luis Pérez", f.store.Header().DisplayName)
}

func TestShell_AdoptionReviewedByAdmin(t *testing.T) {
	f := newFixture(t)
	dog := f.dogID(t, "Luna")

	out := f.run(t,
		"login", userEmail, userPassword,
		"adopt "+dog, "casa", "no", "si", "no", "Quiero compañía",
		"quit",
	)
	assert.Contains(t, out, app.MsgAdoptionSent)

	reqs, err := f.shop.ListAdoptionRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	reqID := fmt.Sprint(reqs[0].ID)

	out = f.run(t,
		"logout", "yes",
		"login", adminEmail, adminPassword,
		"requests",
		"approve "+reqID,
		"approve "+reqID,
		"quit",
	)
	assert.Contains(t, out, "Luna")
	assert.Contains(t, out, "Solicitud aprobada y perro marcado como adoptado")
	assert.Contains(t, out, app.MsgRequestNotPending)

	out = f.run(t, "logout", "yes", "login", userEmail, userPassword, "notifications", "profile", "quit")
	assert.Contains(t, out, "fue aprobada")
	assert.Contains(t, out, "Mis solicitudes de adopción")
	assert.Contains(t, out, "aprobada")
}

func TestShell_AdoptionFormIncomplete(t *testing.T) {
	f := newFixture(t)
	dog := f.dogID(t, "Firulais")

	out := f.run(t, "login", userEmail, userPassword, "adopt "+dog, "casa", "", "", "", "", "quit")

	assert.Contains(t, out, app.MsgAdoptionIncomplete)
	reqs, err := f.shop.ListAdoptionRequests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestShell_AdminCreatesProduct(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"login", adminEmail, adminPassword,
		"product-new", "Pelota", "Pelota de goma", "4.6", "30", "",
		"view home",
		"quit",
	)

	assert.Contains(t, out, app.MsgProductCreated)
	assert.Contains(t, out, "✨ Productos nuevo")
	products, err := f.shop.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestShell_NonAdminCannotOpenAdminForms(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "login", userEmail, userPassword, "product-new", "dog-new", "users", "quit")

	assert.Equal(t, 3, strings.Count(out, "⛔ Solo un administrador puede hacer eso."))
}

func TestShell_ProfileAsGuestAsksForLogin(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "profile", "", "quit")

	assert.Contains(t, out, "🔒 Debes iniciar sesión.")
	assert.Contains(t, out, "🔐 Iniciar sesión")
	assert.Contains(t, out, "[home] Invitado")
}

func TestShell_UnknownCommandAndUsage(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "frobnicate", "add", "qty 2", "help", "quit")

	assert.Contains(t, out, `Comando desconocido "frobnicate"`)
	assert.Contains(t, out, "uso: add <id>")
	assert.Contains(t, out, "uso: qty <id> <cantidad>")
	assert.Contains(t, out, "approve <id>")
}

func TestShell_StopsAtEndOfInput(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	sh := cli.New(f.store, strings.NewReader("products"), &out, time.Second, nil)

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Collar reflectivo")
}

func TestShell_ExecRejectsUnknownCommand(t *testing.T) {
	f := newFixture(t)
	sh := cli.New(f.store, strings.NewReader(""), &bytes.Buffer{}, time.Second, nil)

	assert.Error(t, sh.Exec(context.Background(), "nope"))
	assert.NoError(t, sh.Exec(context.Background(), "view perros"))
	assert.Equal(t, "perros", string(f.store.View()))
}
