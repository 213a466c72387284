package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wattmarket/wattmarket/internal/repos/appliances"
	"github.com/wattmarket/wattmarket/internal/repos/balances"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
	"github.com/wattmarket/wattmarket/internal/repos/products"
	"github.com/wattmarket/wattmarket/internal/services/ledger"
)

// stubEngine satisfies Engine with overridable per-method funcs. Methods
// without an override fail the request loudly via a nil dereference, which a
// test would catch immediately.
type stubEngine struct {
	getBalance        func(ctx context.Context, userID string) (balances.Balance, error)
	transfer          func(ctx context.Context, userID string, kind ledger.TransferKind, amount int64) (balances.Balance, error)
	purchase          func(ctx context.Context, userID, productID string) error
	listAppliances    func(ctx context.Context, userID string) ([]appliances.Appliance, error)
	toggleAppliance   func(ctx context.Context, userID, applianceID string) (appliances.Appliance, error)
	deductConsumption func(ctx context.Context, userID string, count int64) (balances.Balance, error)
	listTransactions  func(ctx context.Context, userID string) ([]ledgerlog.Entry, error)
	listProducts      func(ctx context.Context) ([]products.Product, error)
	mint              func(ctx context.Context, callerID string, credits, tokens int64) error
	listAccounts      func(ctx context.Context, callerID string) ([]balances.Balance, error)
	createProduct     func(ctx context.Context, callerID string, p products.Product) (products.Product, error)
	updateProduct     func(ctx context.Context, callerID string, p products.Product) (products.Product, error)
	deleteProduct     func(ctx context.Context, callerID, productID string) error
}

func (s *stubEngine) GetBalance(ctx context.Context, userID string) (balances.Balance, error) {
	return s.getBalance(ctx, userID)
}

func (s *stubEngine) Transfer(ctx context.Context, userID string, kind ledger.TransferKind, amount int64) (balances.Balance, error) {
	return s.transfer(ctx, userID, kind, amount)
}

func (s *stubEngine) Purchase(ctx context.Context, userID, productID string) error {
	return s.purchase(ctx, userID, productID)
}

func (s *stubEngine) ListAppliances(ctx context.Context, userID string) ([]appliances.Appliance, error) {
	return s.listAppliances(ctx, userID)
}

func (s *stubEngine) ToggleAppliance(ctx context.Context, userID, applianceID string) (appliances.Appliance, error) {
	return s.toggleAppliance(ctx, userID, applianceID)
}

func (s *stubEngine) DeductConsumption(ctx context.Context, userID string, count int64) (balances.Balance, error) {
	return s.deductConsumption(ctx, userID, count)
}

func (s *stubEngine) ListTransactions(ctx context.Context, userID string) ([]ledgerlog.Entry, error) {
	return s.listTransactions(ctx, userID)
}

func (s *stubEngine) ListProducts(ctx context.Context) ([]products.Product, error) {
	return s.listProducts(ctx)
}

func (s *stubEngine) Mint(ctx context.Context, callerID string, credits, tokens int64) error {
	return s.mint(ctx, callerID, credits, tokens)
}

func (s *stubEngine) ListAccounts(ctx context.Context, callerID string) ([]balances.Balance, error) {
	return s.listAccounts(ctx, callerID)
}

func (s *stubEngine) CreateProduct(ctx context.Context, callerID string, p products.Product) (products.Product, error) {
	return s.createProduct(ctx, callerID, p)
}

func (s *stubEngine) UpdateProduct(ctx context.Context, callerID string, p products.Product) (products.Product, error) {
	return s.updateProduct(ctx, callerID, p)
}

func (s *stubEngine) DeleteProduct(ctx context.Context, callerID, productID string) error {
	return s.deleteProduct(ctx, callerID, productID)
}

func doRequest(t *testing.T, engine Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	NewRouter(engine).ServeHTTP(rec, req)

	return rec
}

func TestGetBalanceHandler(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{
		getBalance: func(_ context.Context, userID string) (balances.Balance, error) {
			if userID != "alice" {
				t.Errorf("unexpected user id: %s", userID)
			}
			return balances.Balance{AccountID: userID, CreditBalance: 190, EnergyBalance: 100}, nil
		},
	}

	rec := doRequest(t, engine, http.MethodGet, "/user/alice/balance", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp balanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CreditBalance != 190 || resp.EnergyBalance != 100 {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestTransferHandler(t *testing.T) {
	t.Parallel()

	type tc struct {
		name       string
		body       string
		engineErr  error
		wantStatus int
	}

	tests := []tc{
		{name: "ok", body: `{"kind":"BuyTokens","amount":100}`, wantStatus: http.StatusOK},
		{name: "unknown_kind", body: `{"kind":"Barter","amount":100}`, wantStatus: http.StatusBadRequest},
		{name: "empty_body", body: "", wantStatus: http.StatusBadRequest},
		{name: "unknown_field", body: `{"kind":"BuyTokens","amount":100,"extra":1}`, wantStatus: http.StatusBadRequest},
		{name: "invalid_amount", body: `{"kind":"BuyTokens","amount":15}`, engineErr: ledger.ErrInvalidAmount, wantStatus: http.StatusBadRequest},
		{name: "insufficient", body: `{"kind":"BuyTokens","amount":100}`, engineErr: balances.ErrInsufficientFunds, wantStatus: http.StatusConflict},
		{name: "conflict", body: `{"kind":"BuyTokens","amount":100}`, engineErr: ledger.ErrConflict, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &stubEngine{
				transfer: func(_ context.Context, userID string, kind ledger.TransferKind, amount int64) (balances.Balance, error) {
					if tt.engineErr != nil {
						return balances.Balance{}, tt.engineErr
					}
					return balances.Balance{AccountID: userID, CreditBalance: 190, EnergyBalance: amount}, nil
				},
			}

			rec := doRequest(t, engine, http.MethodPost, "/user/alice/transfer", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status: want %d, got %d, body: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPurchaseHandler(t *testing.T) {
	t.Parallel()

	type tc struct {
		name       string
		body       string
		engineErr  error
		wantStatus int
	}

	tests := []tc{
		{name: "ok", body: `{"productId":"p1"}`, wantStatus: http.StatusOK},
		{name: "missing_product", body: `{"productId":""}`, wantStatus: http.StatusBadRequest},
		{name: "not_found", body: `{"productId":"p1"}`, engineErr: products.ErrProductNotFound, wantStatus: http.StatusNotFound},
		{name: "out_of_stock", body: `{"productId":"p1"}`, engineErr: products.ErrOutOfStock, wantStatus: http.StatusConflict},
		{name: "insufficient", body: `{"productId":"p1"}`, engineErr: balances.ErrInsufficientFunds, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &stubEngine{
				purchase: func(_ context.Context, _, _ string) error { return tt.engineErr },
			}

			rec := doRequest(t, engine, http.MethodPost, "/user/alice/purchase", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status: want %d, got %d, body: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestToggleApplianceHandler(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{
		toggleAppliance: func(_ context.Context, userID, applianceID string) (appliances.Appliance, error) {
			return appliances.Appliance{ID: applianceID, AccountID: userID, Name: "Light", EnergyBalance: 1}, nil
		},
	}

	rec := doRequest(t, engine, http.MethodPost, "/user/alice/appliances/app-1/toggle", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var resp applianceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "app-1" || resp.EnergyBalance != 1 {
		t.Fatalf("unexpected body: %+v", resp)
	}

	engine.toggleAppliance = func(_ context.Context, _, _ string) (appliances.Appliance, error) {
		return appliances.Appliance{}, appliances.ErrApplianceNotFound
	}

	rec = doRequest(t, engine, http.MethodPost, "/user/alice/appliances/app-404/toggle", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: want 404, got %d", rec.Code)
	}
}

func TestDeductHandler(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{
		deductConsumption: func(_ context.Context, _ string, count int64) (balances.Balance, error) {
			if count != 2 {
				return balances.Balance{}, ledger.ErrApplianceCountMismatch
			}
			return balances.Balance{EnergyBalance: 98}, nil
		},
	}

	rec := doRequest(t, engine, http.MethodPost, "/user/alice/appliances/deduct", `{"count":2}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d, body: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, engine, http.MethodPost, "/user/alice/appliances/deduct", `{"count":3}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: want 409 on count mismatch, got %d", rec.Code)
	}
}

func TestMintHandler(t *testing.T) {
	t.Parallel()

	type tc struct {
		name       string
		caller     string
		body       string
		engineErr  error
		wantStatus int
	}

	tests := []tc{
		{name: "ok", caller: "bank", body: `{"credits":100,"tokens":100}`, wantStatus: http.StatusOK},
		{name: "unauthorized", caller: "alice", body: `{"credits":100,"tokens":100}`, engineErr: ledger.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "no_caller_header", caller: "", body: `{"credits":100,"tokens":100}`, engineErr: ledger.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "invalid_amount", caller: "bank", body: `{"credits":0,"tokens":100}`, engineErr: ledger.ErrInvalidAmount, wantStatus: http.StatusBadRequest},
		{name: "bad_json", caller: "bank", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &stubEngine{
				mint: func(_ context.Context, callerID string, _, _ int64) error {
					if callerID != tt.caller {
						t.Errorf("caller id: want %q, got %q", tt.caller, callerID)
					}
					return tt.engineErr
				},
			}

			var headers map[string]string
			if tt.caller != "" {
				headers = map[string]string{"X-Account-Id": tt.caller}
			}

			rec := doRequest(t, engine, http.MethodPost, "/admin/mint", tt.body, headers)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status: want %d, got %d, body: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestProductAdminHandlers(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{
		createProduct: func(_ context.Context, callerID string, p products.Product) (products.Product, error) {
			if callerID != "bank" {
				return products.Product{}, ledger.ErrUnauthorized
			}
			p.ID = "prod-1"
			return p, nil
		},
		updateProduct: func(_ context.Context, callerID string, p products.Product) (products.Product, error) {
			if p.ID != "prod-1" {
				t.Errorf("update id: want prod-1, got %s", p.ID)
			}
			return p, nil
		},
		deleteProduct: func(_ context.Context, _, productID string) error {
			if productID != "prod-1" {
				return products.ErrProductNotFound
			}
			return nil
		},
	}

	admin := map[string]string{"X-Account-Id": "bank"}

	rec := doRequest(t, engine, http.MethodPost, "/admin/products", `{"name":"Smart Plug","price":30,"inStock":5}`, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: want 201, got %d, body: %s", rec.Code, rec.Body.String())
	}

	var created productResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID != "prod-1" || created.Name != "Smart Plug" {
		t.Fatalf("unexpected created product: %+v", created)
	}

	rec = doRequest(t, engine, http.MethodPost, "/admin/products", `{"name":"Smart Plug","price":30,"inStock":5}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("create without caller: want 401, got %d", rec.Code)
	}

	rec = doRequest(t, engine, http.MethodPatch, "/admin/products/prod-1", `{"name":"Smart Plug v2","price":35,"inStock":5}`, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: want 200, got %d, body: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, engine, http.MethodDelete, "/admin/products/prod-1", "", admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: want 200, got %d", rec.Code)
	}

	rec = doRequest(t, engine, http.MethodDelete, "/admin/products/prod-404", "", admin)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: want 404, got %d", rec.Code)
	}
}

func TestListTransactionsHandler(t *testing.T) {
	t.Parallel()

	productID := "prod-1"
	productName := "Smart Plug"

	engine := &stubEngine{
		listTransactions: func(_ context.Context, _ string) ([]ledgerlog.Entry, error) {
			return []ledgerlog.Entry{
				{
					Record: ledgerlog.Record{
						TransactionID: "tx-2",
						SenderID:      "alice",
						ReceiverID:    "bank",
						Type:          "Purchase",
						Amount:        30,
						ProductID:     &productID,
					},
					Seq:         2,
					ProductName: &productName,
				},
				{
					Record: ledgerlog.Record{
						TransactionID: "tx-1",
						SenderID:      "alice",
						ReceiverID:    "bank",
						Type:          "BuyTokens",
						Amount:        100,
					},
					Seq: 1,
				},
			}, nil
		},
	}

	rec := doRequest(t, engine, http.MethodGet, "/user/alice/transactions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var resp []transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("want 2 transactions, got %d", len(resp))
	}
	if resp[0].Product == nil || resp[0].Product.Name != "Smart Plug" {
		t.Fatalf("purchase entry missing product: %+v", resp[0])
	}
	if resp[1].Product != nil {
		t.Fatalf("trade entry should carry no product: %+v", resp[1])
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &stubEngine{}, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}
}
