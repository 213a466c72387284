package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter constructs the chi router with all API endpoints registered.
func NewRouter(engine Engine) http.Handler {
	h := NewHandler(engine)
	r := chi.NewRouter()

	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/user/{userId}", func(r chi.Router) {
		r.Get("/balance", h.GetBalanceHandler)
		r.Post("/transfer", h.TransferHandler)
		r.Post("/purchase", h.PurchaseHandler)
		r.Get("/appliances", h.ListAppliancesHandler)
		r.Post("/appliances/deduct", h.DeductHandler)
		r.Post("/appliances/{applianceId}/toggle", h.ToggleApplianceHandler)
		r.Get("/transactions", h.ListTransactionsHandler)
	})

	r.Get("/products", h.ListProductsHandler)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/mint", h.MintHandler)
		r.Get("/accounts", h.ListAccountsHandler)
		r.Post("/products", h.CreateProductHandler)
		r.Patch("/products/{productId}", h.UpdateProductHandler)
		r.Delete("/products/{productId}", h.DeleteProductHandler)
	})

	return r
}
