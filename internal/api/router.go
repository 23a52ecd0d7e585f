package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/razdelilnica/internal/model"
	"github.com/erazemk/razdelilnica/internal/policy"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	recipientsHandler := &RecipientsHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	donationsHandler := &DonationsHandler{DB: db}
	distributionsHandler := &DistributionsHandler{DB: db, Policies: policy.ForKind}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Recipients: read (all roles), write (manager+).
	mux.Handle("GET /api/recipients", authMW(http.HandlerFunc(recipientsHandler.List)))
	mux.Handle("POST /api/recipients", authMW(requireManager(http.HandlerFunc(recipientsHandler.Create))))
	mux.Handle("GET /api/recipients/{id}", authMW(http.HandlerFunc(recipientsHandler.Get)))
	mux.Handle("PUT /api/recipients/{id}", authMW(requireManager(http.HandlerFunc(recipientsHandler.Update))))
	mux.Handle("DELETE /api/recipients/{id}", authMW(requireManager(http.HandlerFunc(recipientsHandler.Delete))))
	mux.Handle("GET /api/recipients/{id}/distributions", authMW(http.HandlerFunc(recipientsHandler.GetDistributions)))

	// Items: read (all roles), write (manager+).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireManager(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}/stock", authMW(requireManager(http.HandlerFunc(itemsHandler.SetStock))))
	mux.Handle("DELETE /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Delete))))
	mux.Handle("PUT /api/items/{id}/photo", authMW(requireManager(http.HandlerFunc(itemsHandler.UploadPhoto))))
	mux.Handle("GET /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.GetPhoto)))
	mux.Handle("GET /api/items/{id}/distributions", authMW(http.HandlerFunc(itemsHandler.GetDistributions)))

	// Donations: read (all roles), write (manager+).
	mux.Handle("GET /api/donations", authMW(http.HandlerFunc(donationsHandler.List)))
	mux.Handle("POST /api/donations", authMW(requireManager(http.HandlerFunc(donationsHandler.Create))))
	mux.Handle("GET /api/donations/{id}", authMW(http.HandlerFunc(donationsHandler.Get)))

	// Distribution ledger (all roles).
	mux.Handle("POST /api/distributions", authMW(http.HandlerFunc(distributionsHandler.Assign)))
	mux.Handle("GET /api/distributions", authMW(http.HandlerFunc(distributionsHandler.List)))
	mux.Handle("DELETE /api/distributions/{item_id}/{recipient_id}", authMW(http.HandlerFunc(distributionsHandler.Reverse)))

	return mux
}
