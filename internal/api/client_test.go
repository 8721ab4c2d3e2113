package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/storefront/internal/models/dto"
)

type recorded struct {
	method string
	path   string
	auth   string
	reqID  string
	body   []byte
}

func newTestServer(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		rec.reqID = r.Header.Get(RequestIDHeader)
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, nil), rec
}

func TestLogin_SendsCredentialsWithoutBearer(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"token":"tok","usuario":{"id":3,"nombre_completo":"Ana","correo":"ana@x.com","rol":"usuario"}}`)

	out, err := c.Login(context.Background(), "ana@x.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/users/login", rec.path)
	assert.Empty(t, rec.auth)
	assert.NotEmpty(t, rec.reqID)
	assert.JSONEq(t, `{"correo":"ana@x.com","password":"secret"}`, string(rec.body))
	assert.Equal(t, "tok", out.Token)
	assert.Equal(t, int64(3), out.User.ID)
	assert.Equal(t, "Ana", out.User.FullName)
}

func TestBearerHeaderOnlyWithToken(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"notificaciones":[{"id":1,"mensaje":"hola","leida":false}]}`)

	items, err := c.ListNotifications(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bearer abc", rec.auth)
	assert.Equal(t, "/notificaciones", rec.path)

	_, err = c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.auth)
}

func TestSubmitPurchase_Body(t *testing.T) {
	c, rec := newTestServer(t, http.StatusCreated, `{"msg":"ok"}`)

	err := c.SubmitPurchase(context.Background(), "tok", []dto.PurchaseLine{
		{ProductID: 7, Name: "Collar", Price: 11.5, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "/compras", rec.path)
	assert.JSONEq(t, `{"productos":[{"id":7,"nombre":"Collar","precio":11.5,"cantidad":2}]}`, string(rec.body))
}

func TestErrorStatusIsBackendFailure(t *testing.T) {
	c, _ := newTestServer(t, http.StatusForbidden, `{"msg":"Acceso denegado"}`)

	err := c.DeleteProduct(context.Background(), "tok", 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackend))
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Acceso denegado", apiErr.Message)
	assert.Equal(t, http.MethodDelete, apiErr.Method)
	assert.Equal(t, "/api/productos/9", apiErr.Path)
}

func TestUnreachableBackendIsBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil)
	_, err := c.ListDogs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackend))
	assert.Zero(t, StatusOf(err))
}

func TestMalformedBodyIsBackendFailure(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"perros":`)

	_, err := c.ListDogs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackend))
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListProducts(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, ErrBackend))
}

func TestReviewAdoption_Paths(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"msg":"Solicitud aprobada"}`)

	msg, err := c.ApproveAdoption(context.Background(), "tok", 4)
	require.NoError(t, err)
	assert.Equal(t, "Solicitud aprobada", msg)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/solicitudes/4/aprobar", rec.path)

	_, err = c.RejectAdoption(context.Background(), "tok", 5)
	require.NoError(t, err)
	assert.Equal(t, "/api/solicitudes/5/rechazar", rec.path)
}

func TestUpdateProfile_DropsRole(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"msg":"ok"}`)

	err := c.UpdateProfile(context.Background(), "tok", 3, dto.ProfileUpdate{FullName: "Ana", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/users/3", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.NotContains(t, body, "rol")
}

func TestGetInvoice_QuotedNumbers(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"factura":{"id":2,"total":"23.00","fecha":"2025-01-01","detalle":[{"nombre":"Collar","cantidad":2,"precio_unitario":"11.50"}]}}`)

	inv, err := c.GetInvoice(context.Background(), "tok", 2)
	require.NoError(t, err)
	assert.Equal(t, "/api/facturas/2", rec.path)
	assert.InDelta(t, 23.0, inv.Total.Float(), 1e-9)
	require.Len(t, inv.Lines, 1)
	assert.InDelta(t, 11.5, inv.Lines[0].UnitPrice.Float(), 1e-9)
}

func TestErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "a", errorMessage([]byte(`{"msg":"a"}`)))
	assert.Equal(t, "b", errorMessage([]byte(`{"error":"b"}`)))
	assert.Equal(t, "plain text", errorMessage([]byte("plain text\n")))
}

func TestErrorMessage_TruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", 199) + "ñandú ❌"

	got := errorMessage([]byte(body))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 200, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("a", 199)+"ñ", got)
}
