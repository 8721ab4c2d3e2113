package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/cart"
	"github.com/hongminglow/storefront/internal/confirm"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
)

// Notices raised by the cart.
const (
	MsgAddedToCart     = "✅ Producto añadido al carrito"
	MsgAlreadyInCart   = "Este producto ya está en el carrito"
	MsgCartCleared     = "✅ Carrito vaciado correctamente"
	MsgCartEmpty       = "El carrito está vacío"
	MsgConfirmCheckout = "¿Deseas confirmar la compra?"
	MsgCheckoutOK      = "🎉 Compra realizada con éxito"
	MsgCheckoutFailed  = "❌ Hubo un error al procesar la compra"
)

// Cart returns a copy of the cart lines.
func (s *Store) Cart() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cart.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Totals summarises the current cart.
func (s *Store) Totals() cart.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.ComputeTotals(s.lines)
}

// OpenCart shows the cart panel.
func (s *Store) OpenCart() {
	s.mu.Lock()
	s.cartOpen = true
	s.mu.Unlock()
}

// CloseCart hides the cart panel.
func (s *Store) CloseCart() {
	s.mu.Lock()
	s.cartOpen = false
	s.mu.Unlock()
}

// CartOpen reports whether the cart panel is showing.
func (s *Store) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

// AddToCart adds p with quantity 1. Guests get the login prompt and the cart
// is left alone.
func (s *Store) AddToCart(p models.Product) (cart.AddResult, error) {
	if _, err := s.requireSession(); err != nil {
		return cart.Added, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var res cart.AddResult
	s.lines, res = cart.Add(s.lines, p)
	if res == cart.AlreadyInCart {
		s.dialog = confirm.Notice(s.dialog, MsgAlreadyInCart)
	} else {
		s.dialog = confirm.Notice(s.dialog, MsgAddedToCart)
	}
	return res, nil
}

// SetQuantity changes a line's quantity; below 1 is ignored.
func (s *Store) SetQuantity(productID int64, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.lines, ok = cart.SetQuantity(s.lines, productID, quantity)
	return ok
}

// RemoveFromCart drops the line for productID if there is one.
func (s *Store) RemoveFromCart(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = cart.Remove(s.lines, productID)
}

// ClearCart empties the cart and says so.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = cart.Clear()
	s.dialog = confirm.Notice(s.dialog, MsgCartCleared)
}

// RequestCheckout asks the user to confirm the purchase. Guests and empty
// carts are turned away locally without touching the backend.
func (s *Store) RequestCheckout() error {
	if _, err := s.requireSession(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		s.dialog = confirm.Notice(s.dialog, MsgCartEmpty)
		return invalid("cart", MsgCartEmpty)
	}
	s.dialog = confirm.Request(s.dialog, MsgConfirmCheckout, confirm.EffectCheckout)
	return nil
}

// checkout submits the cart. The dialog stays up until this returns; success
// empties the cart and closes the panel, failure leaves both as they were.
func (s *Store) checkout(ctx context.Context) error {
	sess := s.sessions.Current()

	s.mu.Lock()
	if s.checkoutInFlight {
		s.mu.Unlock()
		return ErrCheckoutInFlight
	}
	if !sess.Authenticated() {
		s.dialog = confirm.Close(s.dialog)
		s.loginPrompt = true
		s.mu.Unlock()
		return ErrAuthRequired
	}
	if len(s.lines) == 0 {
		s.dialog = confirm.Notice(s.dialog, MsgCartEmpty)
		s.mu.Unlock()
		return invalid("cart", MsgCartEmpty)
	}
	purchase := purchaseLines(s.lines)
	s.checkoutInFlight = true
	s.mu.Unlock()

	err := s.backend.SubmitPurchase(ctx, sess.Token, purchase)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkoutInFlight = false
	if err != nil {
		s.log.Error("checkout failed", zap.Int("lines", len(purchase)), zap.Error(err))
		s.dialog = confirm.Notice(confirm.Close(s.dialog), MsgCheckoutFailed)
		return err
	}
	s.log.Info("checkout submitted", zap.Int("lines", len(purchase)))
	s.lines = cart.Clear()
	s.cartOpen = false
	s.dialog = confirm.Notice(confirm.Close(s.dialog), MsgCheckoutOK)
	return nil
}

func purchaseLines(lines []cart.Line) []dto.PurchaseLine {
	out := make([]dto.PurchaseLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.PurchaseLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPriceGross,
			Quantity:  l.Quantity,
		})
	}
	return out
}
