package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wattmarket/wattmarket/internal/services/ledger"
)

// GetBalanceHandler handles GET /user/{userId}/balance.
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	bal, err := h.engine.GetBalance(r.Context(), userID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceResponse(bal))
}

type transferRequest struct {
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
}

// TransferHandler handles POST /user/{userId}/transfer.
func (h *HandlerProvider) TransferHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var kind ledger.TransferKind

	switch req.Kind {
	case string(ledger.BuyCredits):
		kind = ledger.BuyCredits
	case string(ledger.BuyTokens):
		kind = ledger.BuyTokens
	case string(ledger.SellTokens):
		kind = ledger.SellTokens
	default:
		writeError(w, http.StatusBadRequest, "invalid transfer kind")
		return
	}

	bal, err := h.engine.Transfer(r.Context(), userID, kind, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceResponse(bal))
}

type purchaseRequest struct {
	ProductID string `json:"productId"`
}

// PurchaseHandler handles POST /user/{userId}/purchase.
func (h *HandlerProvider) PurchaseHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	var req purchaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId required")
		return
	}

	err := h.engine.Purchase(r.Context(), userID, req.ProductID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "product purchased"})
}

// ListAppliancesHandler handles GET /user/{userId}/appliances.
func (h *HandlerProvider) ListAppliancesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	apps, err := h.engine.ListAppliances(r.Context(), userID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	resp := make([]applianceResponse, 0, len(apps))
	for _, a := range apps {
		resp = append(resp, toApplianceResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ToggleApplianceHandler handles POST /user/{userId}/appliances/{applianceId}/toggle.
func (h *HandlerProvider) ToggleApplianceHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	applianceID := chi.URLParam(r, "applianceId")
	if applianceID == "" {
		writeError(w, http.StatusBadRequest, "missing applianceId in path")
		return
	}

	app, err := h.engine.ToggleAppliance(r.Context(), userID, applianceID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplianceResponse(app))
}

type deductRequest struct {
	Count int64 `json:"count"`
}

// DeductHandler handles POST /user/{userId}/appliances/deduct.
func (h *HandlerProvider) DeductHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	var req deductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	bal, err := h.engine.DeductConsumption(r.Context(), userID, req.Count)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "consumption deducted",
		"energyBalance": bal.EnergyBalance,
	})
}

// ListTransactionsHandler handles GET /user/{userId}/transactions.
func (h *HandlerProvider) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	entries, err := h.engine.ListTransactions(r.Context(), userID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toTransactionResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListProductsHandler handles GET /products.
func (h *HandlerProvider) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.engine.ListProducts(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toProductResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}
