// Package view renders the portal's HTML pages through echo's Renderer.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"medisecure/internal/flash"
	"medisecure/internal/model"
	"medisecure/internal/session"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// 頁面名稱即 templates/ 下的檔名
const (
	Index             = "index"
	Signup            = "signup"
	Login             = "login"
	DashboardDonor    = "dashboard_donor"
	DashboardReceiver = "dashboard_receiver"
	DashboardHospital = "dashboard_hospital"
	DashboardClub     = "dashboard_club"
	DonorForm         = "donor_form"
)

// Page is what every template sees. Handlers only provide Data; the renderer
// fills in the caller and the pending flash notice.
type Page struct {
	User  *session.Identity
	Flash *flash.Notice
	Data  any
}

type SignupData struct {
	UserType            model.UserType
	Label               string
	NeedsRegistrationID bool
	IsDonor             bool
}

type DonorDashboardData struct {
	Pending  []model.DonorInboxItem
	Accepted []model.DonorInboxItem
}

type ReceiverDashboardData struct {
	BloodGroup string
	Donors     []model.DonorListing
	Requests   []model.SentRequestItem
}

var funcs = template.FuncMap{
	"bloodGroups": func() []string { return model.BloodGroups },
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	return parse(templateFS)
}

func parse(fsys fs.FS) (*Renderer, error) {
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range names {
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		if name == "layout" {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer. Reading the flash cookie here clears it,
// so a notice shows exactly once.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	page := Page{Data: data}
	if id, ok := session.FromContext(c); ok {
		page.User = &id
	}
	if n, ok := flash.Pop(c); ok {
		page.Flash = &n
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
