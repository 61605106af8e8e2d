package frontend

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/finance-planner/internal/client"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/web"
)

//go:generate mockgen -source=server.go -destination=server_mock.go -package=frontend

// BackendURLPlaceholder is replaced in vars.js with the configured backend base URL.
const BackendURLPlaceholder = "[[REPLACE.BACKEND_BASE_URL]]"

// AlertEmptyProfile is shown when the login form is submitted without a name.
const AlertEmptyProfile = "Please enter a profile name"

// OverviewLoader fetches the transactions and stats of a profile together.
type OverviewLoader interface {
	LoadOverview(ctx context.Context, profile string) (*client.Overview, error)
}

// Server renders the budgeting UI and serves its assets.
type Server struct {
	templates *template.Template
	static    fs.FS
	varsJS    []byte
	loader    OverviewLoader
}

type pageData struct {
	Pages    *Pages
	Alert    string
	Profile  string
	Overview *OverviewView
}

// NewServer parses the embedded templates and prepares vars.js for backendBaseURL.
func NewServer(loader OverviewLoader, backendBaseURL string) (*Server, error) {
	templates, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	varsJS, err := fs.ReadFile(static, "vars.js")
	if err != nil {
		return nil, err
	}
	varsJS = bytes.ReplaceAll(varsJS, []byte(BackendURLPlaceholder), []byte(strings.TrimRight(backendBaseURL, "/")))

	return &Server{
		templates: templates,
		static:    static,
		varsJS:    varsJS,
		loader:    loader,
	}, nil
}

// RegisterRoutes mounts the frontend routes on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Post("/login", s.handleLogin)
	r.Get("/profiles/{profile}", s.handleProfile)
	r.Get("/vars.js", s.handleVarsJS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.static))))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, http.StatusOK, "", "")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, http.StatusBadRequest, "", "Invalid form")
		return
	}

	profile := r.PostFormValue("profile")
	if profile == "" {
		s.renderLogin(w, http.StatusBadRequest, "", AlertEmptyProfile)
		return
	}

	s.renderOverview(w, r, profile)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.renderOverview(w, r, chi.URLParam(r, "profile"))
}

func (s *Server) handleVarsJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript")
	w.WriteHeader(http.StatusOK)
	w.Write(s.varsJS)
}

// renderOverview shows the profile-overview page once both fetches have completed.
func (s *Server) renderOverview(w http.ResponseWriter, r *http.Request, profile string) {
	overview, err := s.loader.LoadOverview(r.Context(), profile)
	if err != nil {
		logger.Log.Errorw("failed to refresh profile overview", "profile", profile, "error", err)
		s.renderLogin(w, http.StatusBadGateway, profile, err.Error())
		return
	}

	pages := newAppPages()
	pages.Show(PageProfileOverview)

	s.render(w, http.StatusOK, pageData{
		Pages:    pages,
		Profile:  profile,
		Overview: BuildOverview(profile, overview.Transactions, overview.Stats),
	})
}

func (s *Server) renderLogin(w http.ResponseWriter, status int, profile, alert string) {
	pages := newAppPages()
	pages.Show(PageLogin)

	s.render(w, status, pageData{Pages: pages, Profile: profile, Alert: alert})
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logger.Log.Errorw("index template execution failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
