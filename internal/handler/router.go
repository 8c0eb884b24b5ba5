package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/portfolio-dev/portfolio-server/internal/auth"
	"github.com/portfolio-dev/portfolio-server/internal/config"
	"github.com/portfolio-dev/portfolio-server/internal/media"
	"github.com/portfolio-dev/portfolio-server/internal/middleware"
	"github.com/portfolio-dev/portfolio-server/internal/service"
)

// multipartOverhead leaves room for part headers around a maximum-size file.
const multipartOverhead = 1 << 20

type RouterDeps struct {
	Issuer   *auth.Issuer
	Guard    *auth.Guard
	Content  *service.ContentService
	Contacts *service.ContactService
	Uploader media.Uploader

	StaticDir            string
	IsProduction         bool
	RequireAuthForWrites bool
	ImageHosts           []string
}

// NewRouter assembles the JSON API under /api, the gated admin app under
// /admin and the public app everywhere else.
func NewRouter(d RouterDeps) http.Handler {
	sessions := middleware.NewSessionMiddleware(d.Guard)
	securityHeaders := middleware.NewSecurityHeadersMiddleware(d.IsProduction, d.ImageHosts...)
	jsonLimit := middleware.NewBodyLimitMiddleware(config.MaxJSONBodySize)
	uploadLimit := middleware.NewBodyLimitMiddleware(config.MaxUploadBodySize + multipartOverhead)

	writeGate := func(next http.Handler) http.Handler { return next }
	if d.RequireAuthForWrites {
		writeGate = sessions.RequireSession
	}

	authHandler := NewAuthHandler(d.Issuer, d.Guard, d.IsProduction)
	profileHandler := NewProfileHandler(d.Content, writeGate)
	projectHandler := NewProjectHandler(d.Content, writeGate)
	skillHandler := NewSkillHandler(d.Content, writeGate)
	contactHandler := NewContactHandler(d.Contacts, sessions.RequireSession)
	uploadHandler := NewUploadHandler(d.Uploader, config.MaxUploadBodySize)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(securityHeaders.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jsonLimit.Handler)
			r.Mount("/auth", authHandler.Routes())
			r.Mount("/profile", profileHandler.Routes())
			r.Mount("/projects", projectHandler.Routes())
			r.Mount("/skills", skillHandler.Routes())
			r.Mount("/contact", contactHandler.Routes())
		})

		r.Group(func(r chi.Router) {
			r.Use(uploadLimit.Handler)
			r.Use(writeGate)
			r.Mount("/upload", uploadHandler.Routes())
		})
	})

	// The login page needs its bundle before a session exists, so only the
	// admin pages sit behind the edge gate.
	adminApp := NewSPAHandler(filepath.Join(d.StaticDir, "admin"), "/admin").PublicAssets(sessions.EdgeGate)
	r.Handle("/admin", adminApp)
	r.Handle("/admin/*", adminApp)

	r.Handle("/*", StaticFileServer(filepath.Join(d.StaticDir, "public"), ""))

	return r
}
