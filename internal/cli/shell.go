// Package cli is the terminal front end: it renders the store's state and
// turns typed commands into store calls.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/api"
	"github.com/hongminglow/storefront/internal/app"
	"github.com/hongminglow/storefront/internal/models"
)

// Shell is an interactive session over one app.Store.
type Shell struct {
	store   *app.Store
	in      *bufio.Scanner
	out     io.Writer
	timeout time.Duration
	log     *zap.Logger

	products []models.Product
	dogs     []models.Dog
	requests []models.AdoptionRequest
	users    []models.User
}

// New builds a shell reading commands from in and writing to out.
func New(store *app.Store, in io.Reader, out io.Writer, timeout time.Duration, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Shell{
		store:   store,
		in:      bufio.NewScanner(in),
		out:     out,
		timeout: timeout,
		log:     log,
	}
}

type command struct {
	usage string
	help  string
	run   func(s *Shell, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":          {"help", "lista los comandos", (*Shell).cmdHelp},
		"view":          {"view <home|productos|perros|perfil>", "cambia de vista", (*Shell).cmdView},
		"login":         {"login", "inicia sesión", (*Shell).cmdLogin},
		"register":      {"register", "crea una cuenta", (*Shell).cmdRegister},
		"logout":        {"logout", "cierra sesión", (*Shell).cmdLogout},
		"yes":           {"yes", "confirma el diálogo", (*Shell).cmdYes},
		"no":            {"no", "cancela el diálogo", (*Shell).cmdNo},
		"notifications": {"notifications", "muestra las notificaciones", (*Shell).cmdNotifications},
		"products":      {"products", "lista productos", (*Shell).cmdProducts},
		"add":           {"add <id>", "añade un producto al carrito", (*Shell).cmdAdd},
		"cart":          {"cart", "abre el carrito", (*Shell).cmdCart},
		"qty":           {"qty <id> <cantidad>", "cambia la cantidad de una línea", (*Shell).cmdQty},
		"remove":        {"remove <id>", "quita una línea del carrito", (*Shell).cmdRemove},
		"clear":         {"clear", "vacía el carrito", (*Shell).cmdClear},
		"checkout":      {"checkout", "compra el carrito", (*Shell).cmdCheckout},
		"close":         {"close", "cierra el carrito", (*Shell).cmdClose},
		"dogs":          {"dogs", "lista perros en adopción", (*Shell).cmdDogs},
		"adopt":         {"adopt <id>", "solicita adoptar un perro", (*Shell).cmdAdopt},
		"profile":       {"profile", "muestra tu perfil", (*Shell).cmdProfile},
		"edit-profile":  {"edit-profile", "edita tus datos", (*Shell).cmdEditProfile},
		"invoice":       {"invoice <id>", "detalle de una factura", (*Shell).cmdInvoice},
		"users":         {"users", "[admin] lista usuarios", (*Shell).cmdUsers},
		"user-edit":     {"user-edit <id>", "[admin] edita un usuario", (*Shell).cmdUserEdit},
		"user-delete":   {"user-delete <id>", "[admin] elimina un usuario", (*Shell).cmdUserDelete},
		"invoices":      {"invoices", "[admin] lista facturas", (*Shell).cmdInvoices},
		"requests":      {"requests", "[admin] lista solicitudes", (*Shell).cmdRequests},
		"approve":       {"approve <id>", "[admin] aprueba una solicitud", (*Shell).cmdApprove},
		"reject":        {"reject <id>", "[admin] rechaza una solicitud", (*Shell).cmdReject},
		"product-new":   {"product-new", "[admin] crea un producto", (*Shell).cmdProductNew},
		"product-edit":  {"product-edit <id>", "[admin] edita un producto", (*Shell).cmdProductEdit},
		"product-del":   {"product-del <id>", "[admin] elimina un producto", (*Shell).cmdProductDelete},
		"dog-new":       {"dog-new", "[admin] registra un perro", (*Shell).cmdDogNew},
		"dog-edit":      {"dog-edit <id>", "[admin] edita un perro", (*Shell).cmdDogEdit},
		"dog-del":       {"dog-del <id>", "[admin] elimina un perro", (*Shell).cmdDogDelete},
	}
}

// Run reads commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("🐾 Tienda y adopciones. Escribe 'help' para ver los comandos.\n")
	for {
		s.renderHeader()
		s.renderDialog()
		if s.store.LoginPrompt() {
			if err := s.loginForm(ctx); err != nil {
				if errors.Is(err, errInputClosed) {
					return nil
				}
				s.report(err)
			}
			continue
		}
		s.printf("> ")

		line, ok := s.readLine()
		if !ok {
			s.printf("\n")
			return s.in.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name, args := strings.ToLower(fields[0]), fields[1:]
		if name == "quit" || name == "exit" {
			return nil
		}
		cmd, found := commands[name]
		if !found {
			s.printf("Comando desconocido %q. Escribe 'help'.\n", name)
			continue
		}
		if err := cmd.run(s, ctx, args); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			s.report(err)
		}
	}
}

// Exec runs one command line without the prompt loop.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, found := commands[strings.ToLower(fields[0])]
	if !found {
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return cmd.run(s, ctx, fields[1:])
}

// report prints what the user needs to know about err. Notices raised by
// the store are shown by renderDialog, so most errors only need logging.
func (s *Shell) report(err error) {
	var ve *app.ValidationError
	switch {
	case errors.Is(err, app.ErrAuthRequired):
		s.printf("🔒 Debes iniciar sesión.\n")
	case errors.Is(err, app.ErrAdminRequired):
		s.printf("⛔ Solo un administrador puede hacer eso.\n")
	case errors.Is(err, app.ErrCheckoutInFlight):
		s.printf("⏳ La compra ya se está procesando.\n")
	case errors.Is(err, app.ErrStale):
	case errors.As(err, &ve):
		s.log.Debug("rejected locally", zap.String("field", ve.Field), zap.String("msg", ve.Msg))
		if !s.store.Dialog().Visible() {
			s.printf("⚠️  %s\n", ve.Msg)
		}
	case errors.Is(err, api.ErrBackend):
		s.log.Debug("backend call failed", zap.Error(err))
	case errors.Is(err, errUsage):
		s.printf("%v\n", err)
	default:
		s.printf("Error: %v\n", err)
	}
}

var errUsage = errors.New("uso")

func usage(name string) error {
	return fmt.Errorf("%w: %s", errUsage, commands[name].usage)
}

func (s *Shell) cmdHelp(_ context.Context, _ []string) error {
	names := []string{
		"view", "login", "register", "logout", "notifications",
		"products", "add", "cart", "qty", "remove", "clear", "checkout", "close",
		"dogs", "adopt", "profile", "edit-profile", "invoice", "yes", "no",
		"users", "user-edit", "user-delete", "invoices", "requests", "approve", "reject",
		"product-new", "product-edit", "product-del", "dog-new", "dog-edit", "dog-del",
	}
	tw := newTable(s.out)
	for _, n := range names {
		c := commands[n]
		fmt.Fprintf(tw, "  %s\t%s\n", c.usage, c.help)
	}
	fmt.Fprintf(tw, "  quit\tsale\n")
	return tw.Flush()
}

// callCtx bounds one backend call.
func (s *Shell) callCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.timeout)
}

// screenCtx bounds a screen load; it is also cancelled when the view changes.
func (s *Shell) screenCtx(parent context.Context) (context.Context, context.CancelFunc) {
	screen := s.store.ScreenContext()
	ctx, cancel := context.WithTimeout(screen, s.timeout)
	stop := context.AfterFunc(parent, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// ask prompts for one value; def is returned for an empty answer.
func (s *Shell) ask(label, def string) (string, bool) {
	if def != "" {
		s.printf("%s [%s]: ", label, def)
	} else {
		s.printf("%s: ", label)
	}
	v, ok := s.readLine()
	if !ok {
		return "", false
	}
	if v == "" {
		return def, true
	}
	return v, true
}

func (s *Shell) askYesNo(question string) bool {
	v, ok := s.ask(question+" (s/n)", "")
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

func parseID(args []string, name string) (int64, error) {
	if len(args) < 1 {
		return 0, usage(name)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usage(name)
	}
	return id, nil
}

var errInputClosed = errors.New("input closed")
