package payments

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPaystackClient_InitializeTransaction(t *testing.T) {
	t.Run("sends the amount in minor units and returns the redirect", func(t *testing.T) {
		var got initializeRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/transaction/initialize" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer sk_test_key" {
				t.Errorf("unexpected auth header %q", auth)
			}
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": true,
				"data": map[string]string{
					"authorization_url": "https://checkout.paystack.com/abc",
					"reference":         "ref-001",
				},
			})
		}))
		defer server.Close()

		client := NewPaystackClientWith("sk_test_key", server.URL)
		result, err := client.InitializeTransaction("a@x.com", 500)
		if err != nil {
			t.Fatalf("InitializeTransaction failed: %v", err)
		}

		if got.Amount != 50000 {
			t.Errorf("expected 500 naira to be sent as 50000 kobo, got %d", got.Amount)
		}
		if result.Reference != "ref-001" {
			t.Errorf("unexpected reference %s", result.Reference)
		}
		if result.AuthorizationURL == "" {
			t.Error("expected a redirect URL")
		}
	})

	t.Run("surfaces a provider error with the raw body on non-2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
		}))
		defer server.Close()

		client := NewPaystackClientWith("bad", server.URL)
		_, err := client.InitializeTransaction("a@x.com", 500)

		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			t.Fatalf("expected a ProviderError, got %v", err)
		}
		if provErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", provErr.StatusCode)
		}
		if !strings.Contains(provErr.Body, "Invalid key") {
			t.Errorf("expected the raw payload preserved, got %q", provErr.Body)
		}
	})
}

func TestPaystackClient_VerifyTransaction(t *testing.T) {
	t.Run("returns the provider status and minor-unit amount", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/transaction/verify/ref-001" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": true,
				"data":   map[string]interface{}{"status": "success", "amount": 50000},
			})
		}))
		defer server.Close()

		client := NewPaystackClientWith("sk_test_key", server.URL)
		result, err := client.VerifyTransaction("ref-001")
		if err != nil {
			t.Fatalf("VerifyTransaction failed: %v", err)
		}
		if result.Status != "success" || result.AmountMinor != 50000 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("treats a malformed body as a provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewPaystackClientWith("sk_test_key", server.URL)
		_, err := client.VerifyTransaction("ref-001")

		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			t.Fatalf("expected a ProviderError, got %v", err)
		}
	})
}

func TestPaystackClient_CreateSplit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req splitRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Type != "percentage" || req.Currency != "NGN" {
			t.Errorf("unexpected split payload %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   map[string]interface{}{"split_code": "SPL_001"},
		})
	}))
	defer server.Close()

	client := NewPaystackClientWith("sk_test_key", server.URL)
	result, err := client.CreateSplit("Token Split", "ACCT_123", 70)
	if err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}
	if result.SplitCode != "SPL_001" {
		t.Errorf("unexpected split code %s", result.SplitCode)
	}
}
