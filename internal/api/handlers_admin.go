package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wattmarket/wattmarket/internal/repos/products"
)

type mintRequest struct {
	Credits int64 `json:"credits"`
	Tokens  int64 `json:"tokens"`
}

// MintHandler handles POST /admin/mint.
func (h *HandlerProvider) MintHandler(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.engine.Mint(r.Context(), callerID(r), req.Credits, req.Tokens)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "minting successful"})
}

type accountResponse struct {
	AccountID     string `json:"accountId"`
	CreditBalance int64  `json:"creditBalance"`
	EnergyBalance int64  `json:"energyBalance"`
	IsBank        bool   `json:"isBank"`
}

// ListAccountsHandler handles GET /admin/accounts.
func (h *HandlerProvider) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.engine.ListAccounts(r.Context(), callerID(r))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	resp := make([]accountResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, accountResponse{
			AccountID:     b.AccountID,
			CreditBalance: b.CreditBalance,
			EnergyBalance: b.EnergyBalance,
			IsBank:        b.IsBank,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       int64  `json:"price"`
	InStock     int64  `json:"inStock"`
}

// CreateProductHandler handles POST /admin/products.
func (h *HandlerProvider) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.engine.CreateProduct(r.Context(), callerID(r), products.Product{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		InStock:     req.InStock,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// UpdateProductHandler handles PATCH /admin/products/{productId}.
func (h *HandlerProvider) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId in path")
		return
	}

	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.engine.UpdateProduct(r.Context(), callerID(r), products.Product{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		InStock:     req.InStock,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler handles DELETE /admin/products/{productId}.
func (h *HandlerProvider) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId in path")
		return
	}

	err := h.engine.DeleteProduct(r.Context(), callerID(r), productID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
