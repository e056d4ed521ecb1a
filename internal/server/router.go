// Package server assembles the HTTP router and its middleware chain.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"restaurant-inventory/backend/internal/auth/handler"
	"restaurant-inventory/backend/internal/security"
	"restaurant-inventory/backend/internal/server/middleware"
	"restaurant-inventory/backend/internal/server/respond"
	userdomain "restaurant-inventory/backend/internal/user/domain"
)

// NewRouter wires the auth routes under /api/v1/auth plus the health probe.
// Business-entity routers (ingredients, stock, ...) mount their handlers on
// the returned router and compose the same guard middleware.
func NewRouter(h *handler.Handler, codec *security.TokenCodec, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"}, "")
	}).Methods(http.MethodGet)

	authn := middleware.Authenticate(codec)
	adminOnly := middleware.RequireRoles(userdomain.RoleAdmin)

	a := r.PathPrefix("/api/v1/auth").Subrouter()
	a.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	a.Handle("/register", authn(adminOnly(http.HandlerFunc(h.Register)))).Methods(http.MethodPost)
	a.HandleFunc("/refresh", h.Refresh).Methods(http.MethodPost)
	a.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	a.Handle("/logout-all", authn(http.HandlerFunc(h.LogoutAll))).Methods(http.MethodPost)
	a.Handle("/profile", authn(http.HandlerFunc(h.Profile))).Methods(http.MethodGet)
	a.Handle("/change-password", authn(http.HandlerFunc(h.ChangePassword))).Methods(http.MethodPut)

	return r
}
