package view

import "fmt"

// View is the screen currently shown. There is no history stack.
type View string

const (
	Home     View = "home"
	Products View = "productos"
	Dogs     View = "perros"
	Profile  View = "perfil"
)

// Parse accepts the wire names and their English aliases.
func Parse(s string) (View, error) {
	switch s {
	case "home", "inicio":
		return Home, nil
	case "productos", "products":
		return Products, nil
	case "perros", "dogs":
		return Dogs, nil
	case "perfil", "profile":
		return Profile, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Router holds the current view and the new-product badge.
type Router struct {
	current    View
	newProduct bool
}

// NewRouter starts on Home.
func NewRouter() *Router {
	return &Router{current: Home}
}

func (r *Router) Current() View { return r.current }

// NewProductBadge reports whether a product was created since products was last opened.
func (r *Router) NewProductBadge() bool { return r.newProduct }

// Switch changes the view. Entering Products clears the new-product badge;
// nothing else is cleared.
func (r *Router) Switch(v View) {
	r.current = v
	if v == Products {
		r.newProduct = false
	}
}

// MarkProductCreated raises the new-product badge.
func (r *Router) MarkProductCreated() {
	r.newProduct = true
}

// Reset forces Home, as logout does.
func (r *Router) Reset() {
	r.current = Home
}
