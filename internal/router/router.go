package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/chat-widget/internal/handlers"
	"github.com/GregMSThompson/chat-widget/internal/middleware"
)

type Options struct {
	MaxUploadBytes int64
	// UploadDir is served under /uploads when images are hosted on disk.
	UploadDir string
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	wh := handlers.NewWidgetHandlers(deps)
	ph := handlers.NewPublicHandlers(deps)
	sh := handlers.NewScriptHandlers(deps)
	uh := handlers.NewUploadHandlers(deps, opts.MaxUploadBytes)
	plh := handlers.NewPlatformHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(middleware.PublicCORS(true))
		r.Get("/widget.js", sh.ServeScript)
		r.Head("/widget.js", sh.ServeScript)
		r.Options("/widget.js", sh.ServeScriptOptions)
	})
	r.Get("/chat-bg.svg", sh.ChatBackground)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.PublicCORS(false))
			r.Mount("/public", ph.PublicRoutes())
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireJSON(deps.ResponseHandler))
			r.Mount("/widgets", wh.WidgetRoutes())
			r.Mount("/uploads", uh.UploadRoutes())
		})
		r.Mount("/platforms", plh.PlatformRoutes())
	})

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
