package handler

import (
	"net/http"

	"github.com/civreg/civreg/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
//
// The auth gate is applied per route group, not globally: /users/register and
// /users/login are reachable without a token by construction, every /citizens
// route is wrapped in RequireAuth. This makes the exemption explicit instead
// of depending on route registration order.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, citizens *service.CitizenService, tokens *service.TokenService) {
	users := NewUserHandler(auth)
	mux.HandleFunc("POST /users/register", users.HandleRegister)
	mux.HandleFunc("POST /users/login", users.HandleLogin)

	records := NewCitizenHandler(citizens)
	mux.Handle("POST /citizens", RequireAuth(tokens, http.HandlerFunc(records.HandleCreate)))
	mux.Handle("GET /citizens", RequireAuth(tokens, http.HandlerFunc(records.HandleList)))
	mux.Handle("PUT /citizens/{id}", RequireAuth(tokens, http.HandlerFunc(records.HandleUpdate)))
	mux.Handle("DELETE /citizens/{id}", RequireAuth(tokens, http.HandlerFunc(records.HandleDelete)))

	mux.HandleFunc("GET /healthz", HandleHealthz)
}
