package api

import (
	"fmt"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/rohits-web03/docdrop/docs"

	"github.com/rohits-web03/docdrop/internal/api/handlers"
	"github.com/rohits-web03/docdrop/internal/api/middleware"
	"github.com/rohits-web03/docdrop/internal/config"
	"github.com/rs/cors"
)

// SetupRouter wires every endpoint to its handler and gate chain. Route
// access rules:
//   - upload-file: ops users (active not required)
//   - download-file: active ops users, checked after the id lookup
//   - download: active non-ops users, checked after the token lookup
//   - files: any active user
func SetupRouter(cfg config.Config, h *handlers.Handler, gate *middleware.Gate) http.Handler {
	mux := http.NewServeMux()
	c := cors.New(cfg.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.Handle("GET /docs/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /verify-email/{token}", h.VerifyEmail)
	mux.HandleFunc("POST /token", h.Login)

	// ---------- PROTECTED ROUTES ----------
	mux.Handle("POST /upload-file/",
		gate.RequireUser(middleware.RequireOps(http.HandlerFunc(h.UploadFile))),
	)
	mux.Handle("GET /download-file/{file_id}",
		gate.RequireUser(middleware.RequireActive(http.HandlerFunc(h.GetDownloadLink))),
	)
	mux.Handle("GET /download/{token}",
		gate.RequireUser(middleware.RequireActive(http.HandlerFunc(h.DownloadFile))),
	)
	mux.Handle("GET /files",
		gate.RequireUser(middleware.RequireActive(http.HandlerFunc(h.ListFiles))),
	)

	handler := c.Handler(mux)
	handler = middleware.Logger(handler)
	return handler
}
