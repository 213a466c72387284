package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wattmarket/wattmarket/internal/repos/appliances"
	"github.com/wattmarket/wattmarket/internal/repos/balances"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
	"github.com/wattmarket/wattmarket/internal/repos/products"
	"github.com/wattmarket/wattmarket/internal/services/ledger"
)

// Engine is the slice of the ledger the HTTP layer needs. *ledger.Ledger
// satisfies it; tests substitute a stub.
type Engine interface {
	GetBalance(ctx context.Context, userID string) (balances.Balance, error)
	Transfer(ctx context.Context, userID string, kind ledger.TransferKind, amount int64) (balances.Balance, error)
	Purchase(ctx context.Context, userID, productID string) error
	ListAppliances(ctx context.Context, userID string) ([]appliances.Appliance, error)
	ToggleAppliance(ctx context.Context, userID, applianceID string) (appliances.Appliance, error)
	DeductConsumption(ctx context.Context, userID string, count int64) (balances.Balance, error)
	ListTransactions(ctx context.Context, userID string) ([]ledgerlog.Entry, error)
	ListProducts(ctx context.Context) ([]products.Product, error)

	Mint(ctx context.Context, callerID string, credits, tokens int64) error
	ListAccounts(ctx context.Context, callerID string) ([]balances.Balance, error)
	CreateProduct(ctx context.Context, callerID string, p products.Product) (products.Product, error)
	UpdateProduct(ctx context.Context, callerID string, p products.Product) (products.Product, error)
	DeleteProduct(ctx context.Context, callerID, productID string) error
}

// HandlerProvider exposes the ledger engine as HTTP handlers.
type HandlerProvider struct {
	engine Engine
}

// NewHandler returns a new handler provider.
func NewHandler(engine Engine) *HandlerProvider {
	return &HandlerProvider{engine: engine}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeLedgerError maps the engine's error taxonomy onto HTTP statuses.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, balances.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, appliances.ErrApplianceNotFound):
		writeError(w, http.StatusNotFound, "appliance not found")
	case errors.Is(err, products.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, ledger.ErrInvalidInput), errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, balances.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.Is(err, products.ErrOutOfStock):
		writeError(w, http.StatusConflict, "product out of stock")
	case errors.Is(err, ledger.ErrApplianceCountMismatch):
		writeError(w, http.StatusConflict, "fewer active appliances than requested")
	case errors.Is(err, ledger.ErrConflict):
		writeError(w, http.StatusConflict, "conflict, retry")
	default:
		slog.Error("ledger operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return false
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}

	return true
}

func userIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "userId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing userId in path")
		return "", false
	}

	return id, true
}

// callerID identifies the acting account on admin routes. Authentication is
// an upstream concern; the id arriving here is already trusted.
func callerID(r *http.Request) string {
	return r.Header.Get("X-Account-Id")
}

// --- Response shapes ---

type balanceResponse struct {
	CreditBalance int64 `json:"creditBalance"`
	EnergyBalance int64 `json:"energyBalance"`
}

type applianceResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EnergyBalance int64  `json:"energyBalance"`
}

type productResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       int64  `json:"price"`
	InStock     int64  `json:"inStock"`
}

type transactionProduct struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type transactionResponse struct {
	TransactionID string              `json:"transactionId"`
	SenderID      string              `json:"senderId"`
	ReceiverID    string              `json:"receiverId"`
	Type          string              `json:"type"`
	Amount        int64               `json:"amount"`
	CreatedAt     string              `json:"createdAt"`
	Product       *transactionProduct `json:"product,omitempty"`
}

func toBalanceResponse(b balances.Balance) balanceResponse {
	return balanceResponse{CreditBalance: b.CreditBalance, EnergyBalance: b.EnergyBalance}
}

func toApplianceResponse(a appliances.Appliance) applianceResponse {
	return applianceResponse{ID: a.ID, Name: a.Name, EnergyBalance: a.EnergyBalance}
}

func toProductResponse(p products.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		InStock:     p.InStock,
	}
}

func toTransactionResponse(e ledgerlog.Entry) transactionResponse {
	resp := transactionResponse{
		TransactionID: e.TransactionID,
		SenderID:      e.SenderID,
		ReceiverID:    e.ReceiverID,
		Type:          e.Type,
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}

	if e.ProductID != nil {
		resp.Product = &transactionProduct{ID: *e.ProductID}
		if e.ProductName != nil {
			resp.Product.Name = *e.ProductName
		}
	}

	return resp
}
