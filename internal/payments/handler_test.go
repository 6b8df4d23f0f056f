package payments

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cherishcafe/orderflow/internal/provider"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T, upstream http.HandlerFunc, secret string) (*Handler, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		upstream(w, r)
	}))
	t.Cleanup(server.Close)

	p := provider.NewClient(server.URL, secret, server.Client(), discardLogger())
	return NewHandler(p, "https://cafe.example", discardLogger()), &calls
}

func TestHandler_HandleInitiate(t *testing.T) {
	t.Run("returns checkout url on provider success", func(t *testing.T) {
		handler, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/transaction/initialize" {
				t.Errorf("expected /v1/transaction/initialize, got %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
				t.Errorf("unexpected authorization header %q", auth)
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode provider request: %v", err)
			}
			if body["amount"] != "100" {
				t.Errorf("expected amount as string \"100\", got %v", body["amount"])
			}
			if body["currency"] != "ETB" {
				t.Errorf("expected currency ETB, got %v", body["currency"])
			}
			if body["return_url"] != "https://cafe.example/payment-success?tx_ref=t1" {
				t.Errorf("unexpected return_url %v", body["return_url"])
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":{"checkout_url":"https://checkout.example/pay/abc"}}`))
		}, "sk-test")

		req := httptest.NewRequest(http.MethodPost, "/payment/initiate",
			strings.NewReader(`{"amount":100,"email":"a@b.com","first_name":"A","tx_ref":"t1"}`))
		rec := httptest.NewRecorder()
		handler.HandleInitiate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["status"] != "success" {
			t.Errorf("expected status success, got %s", resp["status"])
		}
		if resp["checkout_url"] != "https://checkout.example/pay/abc" {
			t.Errorf("unexpected checkout_url %s", resp["checkout_url"])
		}
		if resp["tx_ref"] != "t1" {
			t.Errorf("expected tx_ref t1, got %s", resp["tx_ref"])
		}
	})

	t.Run("missing tx_ref is rejected without calling the provider", func(t *testing.T) {
		handler, calls := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, "sk-test")

		req := httptest.NewRequest(http.MethodPost, "/payment/initiate",
			strings.NewReader(`{"amount":100,"email":"a@b.com","first_name":"A"}`))
		rec := httptest.NewRecorder()
		handler.HandleInitiate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !strings.Contains(resp["error"], "tx_ref") {
			t.Errorf("expected error mentioning tx_ref, got %q", resp["error"])
		}
		if got := calls.Load(); got != 0 {
			t.Errorf("expected zero provider calls, got %d", got)
		}
	})

	t.Run("missing credential is a configuration error, no provider call", func(t *testing.T) {
		handler, calls := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, "")

		req := httptest.NewRequest(http.MethodPost, "/payment/initiate",
			strings.NewReader(`{"amount":100,"email":"a@b.com","first_name":"A","tx_ref":"t1"}`))
		rec := httptest.NewRecorder()
		handler.HandleInitiate(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
		if got := calls.Load(); got != 0 {
			t.Errorf("expected zero provider calls, got %d", got)
		}
	})

	t.Run("non-JSON provider body is an upstream protocol error", func(t *testing.T) {
		handler, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>gateway timeout</html>"))
		}, "sk-test")

		req := httptest.NewRequest(http.MethodPost, "/payment/initiate",
			strings.NewReader(`{"amount":100,"email":"a@b.com","first_name":"A","tx_ref":"t1"}`))
		rec := httptest.NewRecorder()
		handler.HandleInitiate(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "gateway timeout") {
			t.Error("raw upstream body must not leak to the caller")
		}
	})

	t.Run("provider business failure surfaces its message", func(t *testing.T) {
		handler, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"failed","message":"Insufficient funds"}`))
		}, "sk-test")

		req := httptest.NewRequest(http.MethodPost, "/payment/initiate",
			strings.NewReader(`{"amount":100,"email":"a@b.com","first_name":"A","tx_ref":"t1"}`))
		rec := httptest.NewRecorder()
		handler.HandleInitiate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["status"] != "failed" || resp["error"] != "Insufficient funds" {
			t.Errorf("unexpected response %v", resp)
		}
	})

	t.Run("provider connection failure is a generic unavailable error", func(t *testing.T) {
		p := provider.NewClient("http://127.0.0.1:1", "sk-test", &http.Client{}, discardLogger())
		handler := NewHandler(p, "https://cafe.example", discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/payment/initiate",
			strings.NewReader(`{"amount":100,"email":"a@b.com","first_name":"A","tx_ref":"t1"}`))
		rec := httptest.NewRecorder()
		handler.HandleInitiate(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "127.0.0.1") {
			t.Error("internal error detail must not leak to the caller")
		}
	})
}

func TestHandler_HandleVerify(t *testing.T) {
	t.Run("verified only when outer and inner statuses succeed", func(t *testing.T) {
		cases := []struct {
			name     string
			body     string
			verified bool
		}{
			{"both success", `{"status":"success","data":{"status":"success"}}`, true},
			{"inner pending", `{"status":"success","data":{"status":"pending"}}`, false},
			{"outer failed", `{"status":"failed","data":{"status":"success"}}`, false},
			{"data missing", `{"status":"success"}`, false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				handler, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
					if r.URL.Path != "/v1/transaction/verify/t1" {
						t.Errorf("expected /v1/transaction/verify/t1, got %s", r.URL.Path)
					}
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(tc.body))
				}, "sk-test")

				req := httptest.NewRequest(http.MethodPost, "/payment/verify",
					strings.NewReader(`{"tx_ref":"t1"}`))
				rec := httptest.NewRecorder()
				handler.HandleVerify(rec, req)

				if rec.Code != http.StatusOK {
					t.Fatalf("expected status 200, got %d", rec.Code)
				}
				var resp struct {
					Verified bool   `json:"verified"`
					Message  string `json:"message"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Verified != tc.verified {
					t.Errorf("expected verified=%v, got %v", tc.verified, resp.Verified)
				}
				wantMsg := "Payment not verified"
				if tc.verified {
					wantMsg = "Payment verified successfully"
				}
				if resp.Message != wantMsg {
					t.Errorf("expected message %q, got %q", wantMsg, resp.Message)
				}
			})
		}
	})

	t.Run("missing tx_ref is rejected without calling the provider", func(t *testing.T) {
		handler, calls := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, "sk-test")

		req := httptest.NewRequest(http.MethodPost, "/payment/verify", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handler.HandleVerify(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if got := calls.Load(); got != 0 {
			t.Errorf("expected zero provider calls, got %d", got)
		}
	})

	t.Run("null data stays null in the response", func(t *testing.T) {
		handler, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"failed","message":"not found"}`))
		}, "sk-test")

		req := httptest.NewRequest(http.MethodPost, "/payment/verify",
			strings.NewReader(`{"tx_ref":"missing"}`))
		rec := httptest.NewRecorder()
		handler.HandleVerify(rec, req)

		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["data"] != nil {
			t.Errorf("expected null data, got %v", resp["data"])
		}
	})
}

func TestEndpoint(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("answers preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/payment/initiate", nil)
		rec := httptest.NewRecorder()
		Endpoint(handler, discardLogger())(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected CORS allow-origin header")
		}
	})

	t.Run("rejects non-POST methods", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payment/initiate", nil)
		rec := httptest.NewRecorder()
		Endpoint(handler, discardLogger())(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status 405, got %d", rec.Code)
		}
	})

	t.Run("converts panics into a generic failure", func(t *testing.T) {
		panicking := func(w http.ResponseWriter, r *http.Request) {
			panic("secret internal state")
		}
		req := httptest.NewRequest(http.MethodPost, "/payment/initiate", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		Endpoint(panicking, discardLogger())(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "secret internal state") {
			t.Error("panic detail must not leak to the caller")
		}
	})
}
