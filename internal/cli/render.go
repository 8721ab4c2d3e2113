package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hongminglow/storefront/internal/app"
	"github.com/hongminglow/storefront/internal/cart"
	"github.com/hongminglow/storefront/internal/confirm"
	"github.com/hongminglow/storefront/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", cart.Round2(v))
}

func (s *Shell) renderHeader() {
	h := s.store.Header()
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] %s", h.View, h.DisplayName)
	if h.Admin {
		b.WriteString(" (admin)")
	}
	fmt.Fprintf(&b, " | 🛒 %d", h.CartCount)
	if h.HasNotifications {
		b.WriteString(" | 🔔 nuevas notificaciones")
	}
	if h.NewProduct {
		b.WriteString(" | ✨ Productos nuevo")
	}
	s.printf("%s\n", b.String())
}

// renderDialog shows the pending dialog. Informational notices are
// dismissed once printed; questions wait for yes or no.
func (s *Shell) renderDialog() {
	d := s.store.Dialog()
	if !d.Visible() {
		return
	}
	if d.Effect == confirm.EffectNone {
		s.printf("💬 %s\n", d.Message)
		_ = s.store.Confirm(context.Background())
		return
	}
	s.printf("❓ %s (yes/no)\n", d.Message)
}

func (s *Shell) renderProducts(products []models.Product) {
	if len(products) == 0 {
		s.printf("No hay productos disponibles.\n")
		return
	}
	tw := newTable(s.out)
	fmt.Fprintf(tw, "ID\tNOMBRE\tPRECIO\tSTOCK\tDESCRIPCIÓN\n")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%s\n", p.ID, p.Name, money(p.Price.Float()), p.Stock.Float(), p.Description)
	}
	_ = tw.Flush()
}

func (s *Shell) renderDogs(dogs []models.Dog) {
	if len(dogs) == 0 {
		s.printf("No hay perros registrados.\n")
		return
	}
	tw := newTable(s.out)
	fmt.Fprintf(tw, "ID\tNOMBRE\tRAZA\tEDAD\tESTADO\n")
	for _, d := range dogs {
		state := "Disponible"
		if d.Adopted {
			state = "Adoptado"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Breed, d.AgeLabel(), state)
	}
	_ = tw.Flush()
}

func (s *Shell) renderCart() {
	lines := s.store.Cart()
	if len(lines) == 0 {
		s.printf("🛒 %s\n", app.MsgCartEmpty)
		return
	}
	tw := newTable(s.out)
	fmt.Fprintf(tw, "ID\tPRODUCTO\tPRECIO S/IVA\tCANT.\tTOTAL\n")
	for _, l := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			l.ProductID, l.Name, money(cart.NetUnitPrice(l)), l.Quantity, money(cart.LineTotal(l)))
	}
	t := s.store.Totals()
	fmt.Fprintf(tw, "\t\tSubtotal\t\t%s\n", money(t.Subtotal))
	fmt.Fprintf(tw, "\t\tIVA (15%%)\t\t%s\n", money(t.Tax))
	fmt.Fprintf(tw, "\t\tTotal\t\t%s\n", money(t.Total))
	_ = tw.Flush()
}

func (s *Shell) renderNotifications(items []models.Notification) {
	if len(items) == 0 {
		s.printf("🔔 No tienes notificaciones.\n")
		return
	}
	for _, n := range items {
		mark := "•"
		if n.Read {
			mark = " "
		}
		s.printf("%s %s\n", mark, n.Message)
	}
}

func (s *Shell) renderUser(u *models.User) {
	tw := newTable(s.out)
	fmt.Fprintf(tw, "Nombre\t%s\n", u.FullName)
	fmt.Fprintf(tw, "Correo\t%s\n", u.Email)
	fmt.Fprintf(tw, "Cédula\t%s\n", u.NationalID)
	fmt.Fprintf(tw, "Sexo\t%s\n", u.Sex)
	fmt.Fprintf(tw, "Teléfono\t%s\n", u.Phone)
	fmt.Fprintf(tw, "Rol\t%s\n", u.Role)
	_ = tw.Flush()
}

func (s *Shell) renderRequests(reqs []models.AdoptionRequest, withUser bool) {
	if len(reqs) == 0 {
		s.printf("No hay solicitudes de adopción.\n")
		return
	}
	tw := newTable(s.out)
	if withUser {
		fmt.Fprintf(tw, "ID\tUSUARIO\tPERRO\tESTADO\tFECHA\n")
	} else {
		fmt.Fprintf(tw, "ID\tPERRO\tESTADO\tFECHA\n")
	}
	for _, r := range reqs {
		if withUser {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.UserName, r.DogName, r.Status, r.RequestedAt)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.DogName, r.Status, r.RequestedAt)
		}
	}
	_ = tw.Flush()
}

func (s *Shell) renderInvoices(invoices []models.Invoice, withUser bool) {
	if len(invoices) == 0 {
		s.printf("No hay facturas.\n")
		return
	}
	tw := newTable(s.out)
	if withUser {
		fmt.Fprintf(tw, "ID\tCLIENTE\tTOTAL\tFECHA\n")
	} else {
		fmt.Fprintf(tw, "ID\tTOTAL\tFECHA\n")
	}
	for _, inv := range invoices {
		if withUser {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", inv.ID, inv.UserName, money(inv.Total.Float()), inv.IssuedAt)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", inv.ID, money(inv.Total.Float()), inv.IssuedAt)
		}
	}
	_ = tw.Flush()
}

func (s *Shell) renderInvoice(inv models.Invoice) {
	s.printf("Factura #%d  %s\n", inv.ID, inv.IssuedAt)
	tw := newTable(s.out)
	fmt.Fprintf(tw, "PRODUCTO\tCANT.\tPRECIO\n")
	for _, l := range inv.Lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", l.Name, l.Quantity, money(l.UnitPrice.Float()))
	}
	fmt.Fprintf(tw, "Total\t\t%s\n", money(inv.Total.Float()))
	_ = tw.Flush()
}

func (s *Shell) renderUsers(users []models.User) {
	if len(users) == 0 {
		s.printf("No hay usuarios.\n")
		return
	}
	tw := newTable(s.out)
	fmt.Fprintf(tw, "ID\tNOMBRE\tCORREO\tROL\n")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, u.Role)
	}
	_ = tw.Flush()
}
