package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/zenkart/checkout/src/configuration"
	"github.com/zenkart/checkout/src/configuration/storage"
	"github.com/zenkart/checkout/src/domain"
	"github.com/zenkart/checkout/src/ratelimit"
	"github.com/zenkart/checkout/src/repository"
	"github.com/zenkart/checkout/src/verification"
)

type stubGateway struct {
	order domain.GatewayOrder
	err   error
	calls int
}

func (s *stubGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (domain.GatewayOrder, error) {
	s.calls++
	if s.err != nil {
		return domain.GatewayOrder{}, s.err
	}
	return s.order, nil
}

var testCreds = configuration.Credentials{KeyID: "rzp_test_key", KeySecret: "secret"}

func newTestApp(gw *stubGateway, creds configuration.Credentials) (*testApp, repository.OrderRepository) {
	repo := repository.NewOrderRepository(storage.NewInMemoryStorage())
	app := New(Deps{
		Credentials: creds,
		Gateway:     gw,
		Orders:      repo,
		Verifier:    verification.NewService(verification.NewStaticResolver(nil, "Test Holder"), 0),
		Limiter:     ratelimit.NewMemoryLimiter(),
	})
	return &testApp{app}, repo
}

type testApp struct {
	app *fiber.App
}

func (a *testApp) do(t *testing.T, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestCreateOrderInvalidAmount(t *testing.T) {
	gw := &stubGateway{}
	app, _ := newTestApp(gw, testCreds)

	for _, body := range []string{`{"amount": 0}`, `{"amount": -5}`, `{}`, `not json`} {
		resp := app.do(t, http.MethodPost, "/orders", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.StatusCode)
		}
		var payload map[string]string
		decodeBody(t, resp, &payload)
		if payload["error"] != "Invalid amount" {
			t.Fatalf("body %q: unexpected error %q", body, payload["error"])
		}
	}
	if gw.calls != 0 {
		t.Fatal("invalid requests must not reach the gateway")
	}
}

func TestCreateOrderMissingCredentials(t *testing.T) {
	gw := &stubGateway{}
	for _, creds := range []configuration.Credentials{
		{},
		{KeyID: "rzp_test_key"},
		{KeySecret: "secret"},
	} {
		app, _ := newTestApp(gw, creds)
		resp := app.do(t, http.MethodPost, "/orders", `{"amount": 500}`)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		var payload map[string]string
		decodeBody(t, resp, &payload)
		if payload["error"] != "Payment service configuration error" {
			t.Fatalf("unexpected error %q", payload["error"])
		}
	}
	if gw.calls != 0 {
		t.Fatal("no gateway call may be attempted without credentials")
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	gw := &stubGateway{order: domain.GatewayOrder{ID: "order_abc", Amount: 50000, Currency: "INR", Status: "created"}}
	app, repo := newTestApp(gw, testCreds)

	resp := app.do(t, http.MethodPost, "/orders", `{"amount": 500}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS header, got %q", got)
	}

	var order domain.OrderResponse
	decodeBody(t, resp, &order)
	if order.OrderID != "order_abc" || order.Amount != 50000 || order.Currency != "INR" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.KeyID != "rzp_test_key" {
		t.Fatalf("public key id must be returned, got %q", order.KeyID)
	}

	summary, err := repo.GetSummary(context.Background(), time.Time{}, time.Now().UTC())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Created.TotalRequests != 1 || summary.Created.TotalAmount != 50000 {
		t.Fatalf("order was not recorded: %+v", summary)
	}
}

func TestCreateOrderGatewayFailureIsGeneric(t *testing.T) {
	gw := &stubGateway{err: context.DeadlineExceeded}
	app, _ := newTestApp(gw, testCreds)

	resp := app.do(t, http.MethodPost, "/orders", `{"amount": 500}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	var payload map[string]string
	decodeBody(t, resp, &payload)
	if payload["error"] != "Failed to create payment order" {
		t.Fatalf("gateway internals must not leak, got %q", payload["error"])
	}
}

func TestOrdersPreflight(t *testing.T) {
	gw := &stubGateway{}
	app, _ := newTestApp(gw, testCreds)

	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := app.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.Fatalf("expected 2xx preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("preflight must carry CORS headers")
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Fatalf("preflight body must be empty, got %q", body)
	}
	if gw.calls != 0 {
		t.Fatal("preflight must not reach the gateway")
	}
}

func TestRecordOutcome(t *testing.T) {
	gw := &stubGateway{order: domain.GatewayOrder{ID: "order_abc", Amount: 50000, Currency: "INR"}}
	app, repo := newTestApp(gw, testCreds)

	app.do(t, http.MethodPost, "/orders", `{"amount": 500}`)
	resp := app.do(t, http.MethodPost, "/payment-outcomes", `{"orderId":"order_abc","status":"paid"}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	summary, _ := repo.GetSummary(context.Background(), time.Time{}, time.Now().UTC())
	if summary.Paid.TotalRequests != 1 || summary.Created.TotalRequests != 0 {
		t.Fatalf("outcome not applied: %+v", summary)
	}

	resp = app.do(t, http.MethodPost, "/payment-outcomes", `{"orderId":"order_abc","status":"exploded"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status must be rejected, got %d", resp.StatusCode)
	}
}

func TestVerifyUPIEndpoint(t *testing.T) {
	app, _ := newTestApp(&stubGateway{}, testCreds)

	resp := app.do(t, http.MethodPost, "/verify/upi", `{"vpa":"user@upi"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var res domain.VerificationResult
	decodeBody(t, resp, &res)
	if !res.Success || res.BankName != "UPI" {
		t.Fatalf("unexpected result: %+v", res)
	}

	resp = app.do(t, http.MethodPost, "/verify/upi", `{"vpa":"not-an-id"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &res)
	if res.Error != "Invalid UPI ID format" {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}

func TestVerifyRateLimited(t *testing.T) {
	app, _ := newTestApp(&stubGateway{}, testCreds)

	for i := 0; i < 5; i++ {
		resp := app.do(t, http.MethodPost, "/verify/mobile", `{"number":"9123456789"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := app.do(t, http.MethodPost, "/verify/mobile", `{"number":"9123456789"}`)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	var payload map[string]string
	decodeBody(t, resp, &payload)
	if !strings.HasPrefix(payload["error"], "Too many attempts.") {
		t.Fatalf("unexpected message: %q", payload["error"])
	}
}

func TestOrdersSummaryAndPurge(t *testing.T) {
	gw := &stubGateway{order: domain.GatewayOrder{ID: "order_abc", Amount: 50000, Currency: "INR"}}
	app, _ := newTestApp(gw, testCreds)

	app.do(t, http.MethodPost, "/orders", `{"amount": 500}`)

	resp := app.do(t, http.MethodGet, "/orders-summary", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var summary domain.OrderSummary
	decodeBody(t, resp, &summary)
	if summary.Created.TotalRequests != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	resp = app.do(t, http.MethodGet, "/orders-summary?from=bogus", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad from filter, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = app.do(t, http.MethodPost, "/purge-orders", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = app.do(t, http.MethodGet, "/orders-summary", "")
	decodeBody(t, resp, &summary)
	if summary.Created.TotalRequests != 0 {
		t.Fatalf("purge left orders behind: %+v", summary)
	}
}
