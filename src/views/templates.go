package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"bankweb/src/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
	PageHistory   = "history"
	PageTransfer  = "transfer"
)

var pageNames = []string{PageLogin, PageRegister, PageDashboard, PageHistory, PageTransfer}

// Page carries what the shared layout needs.
type Page struct {
	Title    string
	Username string
	Scripts  []string
}

type LoginPage struct {
	Page
}

type RegisterPage struct {
	Page
	MinStrongLength int
	WeakMessage     string
	StrongMessage   string
}

type DashboardPage struct {
	Page
	Accounts  []models.Account
	Shortcuts []Shortcut
}

type HistoryPage struct {
	Page
	Filter       models.TransactionFilter
	Types        []models.TransactionType
	Rows         []Row
	EmptyMessage string
	Columns      int
}

type TransferPage struct {
	Page
	Form        *TransferForm
	Frequencies []models.Frequency
}

// Renderer holds one parsed template set per page, each combined with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatAmount": FormatAmount,
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Static serves the embedded page scripts.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
