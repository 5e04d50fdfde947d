package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/usecasetest"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *usecasetest.Engine
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	e := usecasetest.NewEngine(t)
	h := NewHandler(e.Orders, e.Disputes, e.Escrow, e.Risk, e.Policy)
	return &testServer{engine: e, router: NewRouter(h, e.Registry)}
}

func (s *testServer) do(t *testing.T, method, path, actor, key string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(HeaderActorID, actor)
	}
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body %s", w.Code, want, w.Body.String())
	}
}

func createOrder(t *testing.T, s *testServer, amount string) *orderdto.OrderOutput {
	t.Helper()
	w := s.do(t, http.MethodPost, "/v1/orders", "buyer-1", "", map[string]any{
		"seller_id":  "seller-1",
		"service_id": "logo-design",
		"amount":     amount,
		"currency":   "USD",
	})
	expectStatus(t, w, http.StatusCreated)
	return decode[*orderdto.OrderOutput](t, w)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	order := createOrder(t, s, "150.00")
	base := "/v1/orders/" + order.ID

	expectStatus(t, s.do(t, http.MethodPost, base+"/payment-captured", "", "", map[string]string{"amount": "150.00"}), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodPost, base+"/accept", "seller-1", "", nil), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodPost, base+"/deliver", "seller-1", "", map[string]string{"note": "final files"}), http.StatusOK)

	w := s.do(t, http.MethodPost, base+"/confirm", "buyer-1", "", nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[*orderdto.OrderOutput](t, w); got.Status != domain.StatusCompleted {
		t.Fatalf("status = %s", got.Status)
	}

	w = s.do(t, http.MethodGet, "/v1/accounts/seller-1/balance", "", "", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"available":"150"`) {
		t.Fatalf("balance = %s", w.Body.String())
	}

	w = s.do(t, http.MethodGet, base+"/history", "", "", nil)
	expectStatus(t, w, http.StatusOK)
	history := decode[map[string][]orderdto.TransitionOutput](t, w)
	if len(history["transitions"]) != 5 {
		t.Fatalf("history = %+v", history)
	}

	w = s.do(t, http.MethodGet, "/v1/admin/reconciliation", "", "", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"balanced":true`) {
		t.Fatalf("reconciliation = %s", w.Body.String())
	}
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	order := createOrder(t, s, "20")
	base := "/v1/orders/" + order.ID

	expectStatus(t, s.do(t, http.MethodGet, "/v1/orders/missing", "", "", nil), http.StatusNotFound)
	expectStatus(t, s.do(t, http.MethodPost, base+"/accept", "buyer-1", "", nil), http.StatusForbidden)
	expectStatus(t, s.do(t, http.MethodPost, base+"/accept", "seller-1", "", nil), http.StatusConflict)
	expectStatus(t, s.do(t, http.MethodPost, base+"/payment-captured", "", "", map[string]string{"amount": "19.99"}), http.StatusBadRequest)
	expectStatus(t, s.do(t, http.MethodPost, "/v1/orders", "buyer-1", "", map[string]any{"seller_id": "seller-1"}), http.StatusBadRequest)
	expectStatus(t, s.do(t, http.MethodPost, base+"/disputes", "buyer-1", "", map[string]string{}), http.StatusBadRequest)
}

func TestAdmissionRejectionCarriesReason(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPut, "/v1/sellers/seller-1/risk-policy", "seller-1", "", map[string]any{
		"block_new_buyers":       true,
		"new_buyer_min_age_days": 30,
	})
	expectStatus(t, w, http.StatusOK)

	w = s.do(t, http.MethodPost, "/v1/orders", "buyer-1", "", map[string]any{
		"seller_id": "seller-1", "service_id": "logo", "amount": "10", "currency": "USD",
	})
	expectStatus(t, w, http.StatusUnprocessableEntity)
	body := decode[response.ErrorResponse](t, w)
	if body.Reason != string(domain.ReasonAccountTooNew) || body.Error != "account too new" {
		t.Fatalf("body = %+v", body)
	}
}

func TestOnlySellerChangesPolicy(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPut, "/v1/sellers/seller-1/risk-policy", "seller-2", "", map[string]any{"max_disputes": 1})
	expectStatus(t, w, http.StatusForbidden)
}

func TestResolveConflictsAreGeneric(t *testing.T) {
	s := newTestServer(t)
	s.engine.SyncUser(t, "admin-1", domain.RoleAdmin)
	order := s.engine.DisputedOrder(t, "buyer-1", "seller-1", "40")
	path := "/v1/orders/" + order.ID + "/disputes/resolve"

	w := s.do(t, http.MethodPost, path, "admin-1", "", map[string]any{"outcome": "split"})
	expectStatus(t, w, http.StatusBadRequest)
	if got := s.engine.Order(t, order.ID).Status; got != domain.StatusDisputed {
		t.Fatalf("split without a share changed the order to %s", got)
	}

	w = s.do(t, http.MethodPost, path, "admin-1", "", map[string]any{"outcome": "split", "seller_share": "10.00"})
	expectStatus(t, w, http.StatusOK)
	result := decode[domain.SettlementResult](t, w)
	if !result.BuyerShare.Equal(usecasetest.Dec("30")) {
		t.Fatalf("result = %+v", result)
	}

	w = s.do(t, http.MethodPost, path, "admin-1", "", map[string]any{"outcome": "buyer"})
	expectStatus(t, w, http.StatusConflict)
	if body := decode[response.ErrorResponse](t, w); body.Error != msgAlreadyResolved {
		t.Fatalf("body = %+v", body)
	}

	expectStatus(t, s.do(t, http.MethodPost, path, "admin-1", "", map[string]any{"outcome": "coin_flip"}), http.StatusBadRequest)
	expectStatus(t, s.do(t, http.MethodPost, path, "buyer-1", "", map[string]any{"outcome": "buyer"}), http.StatusForbidden)
}

func TestIdempotencyKeyHeader(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"seller_id": "seller-1", "service_id": "logo", "amount": "10", "currency": "USD"}

	first := s.do(t, http.MethodPost, "/v1/orders", "buyer-1", "key-1", body)
	expectStatus(t, first, http.StatusCreated)
	second := s.do(t, http.MethodPost, "/v1/orders", "buyer-1", "key-1", body)
	expectStatus(t, second, http.StatusCreated)

	a := decode[*orderdto.OrderOutput](t, first)
	b := decode[*orderdto.OrderOutput](t, second)
	if a.ID != b.ID {
		t.Fatalf("retry created a second order: %s and %s", a.ID, b.ID)
	}
}

func TestOpsEndpoints(t *testing.T) {
	s := newTestServer(t)
	createOrder(t, s, "10")

	expectStatus(t, s.do(t, http.MethodGet, "/healthz", "", "", nil), http.StatusOK)
	w := s.do(t, http.MethodGet, "/metrics", "", "", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "escrow_orders_created_total") {
		t.Fatalf("metrics output misses engine counters")
	}
}
