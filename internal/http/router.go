package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pg-backend/internal/handlers"
	"pg-backend/internal/middleware"
)

type RouterDeps struct {
	Auth            *handlers.AuthHandler
	Users           *handlers.UserHandler
	Tenants         *handlers.TenantHandler
	Rooms           *handlers.RoomHandler
	RentPayments    *handlers.RentPaymentHandler
	AdvancePayments *handlers.AdvancePaymentHandler
	Settings        *handlers.SystemSettingHandler
	Subscriptions   *handlers.SubscriptionHandler
	TOTP            *handlers.TOTPHandler
	Health          *handlers.HealthHandler
	AuthMW          *middleware.AuthMiddleware
}

// NewRouter wires all routes. Payment-recording routes sit behind accountant
// access; staff management behind admin.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)

	// Probes and metrics, unauthenticated
	r.HandleFunc("/health", deps.Health.Check).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Auth, public
	api.HandleFunc("/auth/signup", deps.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-2fa", deps.Auth.Verify2FA).Methods(http.MethodPost)

	// Razorpay server-to-server webhook, signature-authenticated
	api.HandleFunc("/subscriptions/webhook", deps.Subscriptions.Webhook).Methods(http.MethodPost)

	// Any authenticated staff
	authed := api.NewRoute().Subrouter()
	authed.Use(deps.AuthMW.Authenticate)
	authed.HandleFunc("/auth/me", deps.Auth.Me).Methods(http.MethodGet)
	authed.HandleFunc("/2fa/setup", deps.TOTP.Setup).Methods(http.MethodPost)
	authed.HandleFunc("/2fa/enable", deps.TOTP.Enable).Methods(http.MethodPost)
	authed.HandleFunc("/2fa/disable", deps.TOTP.Disable).Methods(http.MethodPost)

	authed.HandleFunc("/tenants", deps.Tenants.List).Methods(http.MethodGet)
	authed.HandleFunc("/tenants/summaries", deps.Tenants.Summaries).Methods(http.MethodGet)
	authed.HandleFunc("/tenants/{id:[0-9]+}", deps.Tenants.Get).Methods(http.MethodGet)
	authed.HandleFunc("/tenants/{id:[0-9]+}/summary", deps.Tenants.Summary).Methods(http.MethodGet)

	authed.HandleFunc("/rooms", deps.Rooms.List).Methods(http.MethodGet)
	authed.HandleFunc("/rooms/occupancy", deps.Rooms.Occupancy).Methods(http.MethodGet)
	authed.HandleFunc("/rooms/{id:[0-9]+}", deps.Rooms.Get).Methods(http.MethodGet)

	authed.HandleFunc("/rent-payments", deps.RentPayments.List).Methods(http.MethodGet)
	authed.HandleFunc("/rent-payments/gaps/{tenant_id:[0-9]+}", deps.RentPayments.Gaps).Methods(http.MethodGet)
	authed.HandleFunc("/rent-payments/next-dates/{tenant_id:[0-9]+}", deps.RentPayments.NextDates).Methods(http.MethodGet)
	authed.HandleFunc("/rent-payments/tenant/{tenant_id:[0-9]+}", deps.RentPayments.ListByTenant).Methods(http.MethodGet)
	authed.HandleFunc("/rent-payments/{id:[0-9]+}", deps.RentPayments.Get).Methods(http.MethodGet)
	authed.HandleFunc("/rent-payments/{id:[0-9]+}/receipt", deps.RentPayments.Receipt).Methods(http.MethodGet)

	authed.HandleFunc("/advance-payments/tenant/{tenant_id:[0-9]+}", deps.AdvancePayments.ListByTenant).Methods(http.MethodGet)

	authed.HandleFunc("/settings", deps.Settings.List).Methods(http.MethodGet)
	authed.HandleFunc("/settings/{key}", deps.Settings.Get).Methods(http.MethodGet)

	authed.HandleFunc("/subscriptions/orders", deps.Subscriptions.List).Methods(http.MethodGet)
	authed.HandleFunc("/subscriptions/orders", deps.Subscriptions.CreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/subscriptions/verify", deps.Subscriptions.Verify).Methods(http.MethodPost)

	// Money-touching writes need accountant access
	accountant := api.NewRoute().Subrouter()
	accountant.Use(deps.AuthMW.RequireAccountantAccess)
	accountant.HandleFunc("/rent-payments", deps.RentPayments.Create).Methods(http.MethodPost)
	accountant.HandleFunc("/rent-payments/{id:[0-9]+}/status", deps.RentPayments.UpdateStatus).Methods(http.MethodPatch)
	accountant.HandleFunc("/rent-payments/{id:[0-9]+}/void", deps.RentPayments.Void).Methods(http.MethodPost)
	accountant.HandleFunc("/advance-payments", deps.AdvancePayments.Create).Methods(http.MethodPost)
	accountant.HandleFunc("/advance-payments/{id:[0-9]+}/refund", deps.AdvancePayments.Refund).Methods(http.MethodPost)

	// Tenant and room management: admin or manager
	manager := api.NewRoute().Subrouter()
	manager.Use(deps.AuthMW.RequireRole("admin", "manager"))
	manager.HandleFunc("/tenants", deps.Tenants.Create).Methods(http.MethodPost)
	manager.HandleFunc("/tenants/{id:[0-9]+}", deps.Tenants.Update).Methods(http.MethodPut)
	manager.HandleFunc("/tenants/{id:[0-9]+}/bed", deps.Tenants.ReassignBed).Methods(http.MethodPost)
	manager.HandleFunc("/tenants/{id:[0-9]+}/move-out", deps.Tenants.MoveOut).Methods(http.MethodPost)
	manager.HandleFunc("/rooms", deps.Rooms.Create).Methods(http.MethodPost)

	// Staff and settings management: admin only
	admin := api.NewRoute().Subrouter()
	admin.Use(deps.AuthMW.RequireAdmin)
	admin.HandleFunc("/users", deps.Users.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", deps.Users.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}", deps.Users.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id:[0-9]+}/toggle-active", deps.Users.ToggleActive).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}", deps.Users.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/settings/{key}", deps.Settings.Update).Methods(http.MethodPut)
	r.Handle("/health/detailed", deps.AuthMW.RequireAdmin(http.HandlerFunc(deps.Health.Detailed))).Methods(http.MethodGet)

	return r
}
