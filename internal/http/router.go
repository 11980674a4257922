package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard mux. Path parameters are handled inside the
// handlers so no third-party router is needed.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{mux: http.NewServeMux(), logger: logger}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handlers everything the router wires up.
type Handlers struct {
	Auth       *AuthHandler
	Templates  *TemplateHandler
	Properties *PropertyHandler
	Renders    *RenderHandler
	Company    *CompanyHandler
	Users      *UserHandler
	Exports    *ExportHandler
	Dashboard  *DashboardHandler
}

// RegisterRoutes mounts the API. Everything but login and health requires a
// session; user administration additionally requires the admin role.
func (r *Router) RegisterRoutes(h Handlers, mw *AuthMiddleware) {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// auth
	r.Handle("/api/v1/auth/login", methodOnly(http.MethodPost, h.Auth.Login))
	r.Handle("/api/v1/auth/logout", methodOnly(http.MethodPost, mw.Require(h.Auth.Logout)))
	r.Handle("/api/v1/auth/me", methodOnly(http.MethodGet, mw.Require(h.Auth.Me)))

	// templates (editing is an admin concern; listing is open to agents for pickers)
	r.Handle("/api/v1/templates", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			mw.Require(h.Templates.List)(w, req)
		case http.MethodPost:
			mw.RequireAdmin(h.Templates.Create)(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/api/v1/templates/default", methodOnly(http.MethodGet, mw.Require(h.Templates.GetDefault)))
	r.Handle("/api/v1/templates/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			mw.Require(h.Templates.ServeByID)(w, req)
			return
		}
		mw.RequireAdmin(h.Templates.ServeByID)(w, req)
	})

	// properties
	r.Handle("/api/v1/properties", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			mw.Require(h.Properties.List)(w, req)
		case http.MethodPost:
			mw.Require(h.Properties.Create)(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/api/v1/properties/export", mw.Require(h.Exports.Export))
	r.Handle("/api/v1/properties/", mw.Require(h.Properties.ServeByID))

	// render pipeline
	r.Handle("/api/v1/render/preview", methodOnly(http.MethodPost, mw.Require(h.Renders.Preview)))
	r.Handle("/api/v1/share", methodOnly(http.MethodPost, mw.Require(h.Renders.Share)))
	r.Handle("/api/v1/print", methodOnly(http.MethodPost, mw.Require(h.Renders.Print)))

	// company profile
	r.Handle("/api/v1/company", mw.Require(h.Company.ServeHTTP))

	// user administration
	r.Handle("/api/v1/users", mw.RequireAdmin(h.Users.ServeCollection))
	r.Handle("/api/v1/users/", mw.RequireAdmin(h.Users.ServeByID))

	// dashboard
	r.Handle("/api/v1/dashboard", mw.Require(h.Dashboard.Metrics))
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
