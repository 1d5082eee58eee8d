package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	config "github.com/ictcert/cert_portal/configs"
)

const defaultPaystackBaseURL = "https://api.paystack.co"

// ProviderError carries the raw Paystack response for any non-2xx or
// malformed reply. Callers must never treat the transaction as successful
// when one of these is returned.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("paystack returned status %d: %s", e.StatusCode, e.Body)
}

type InitializeResult struct {
	AuthorizationURL string
	Reference        string
}

type VerifyResult struct {
	Status      string
	AmountMinor int64
}

type SplitResult struct {
	SplitCode string
	Raw       json.RawMessage
}

type initializeRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

type initializeResponse struct {
	Status bool `json:"status"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	} `json:"data"`
}

type splitRequest struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Currency    string           `json:"currency"`
	Subaccounts []splitShare     `json:"subaccounts"`
	BearerType  string           `json:"bearer_type"`
	BearerSub   string           `json:"bearer_subaccount"`
}

type splitShare struct {
	Subaccount string `json:"subaccount"`
	Share      int    `json:"share"`
}

type splitResponse struct {
	Status bool            `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type PaystackClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackClient() *PaystackClient {
	return &PaystackClient{
		secretKey: config.Config("PAYSTACK_SECRET_KEY"),
		baseURL:   config.ConfigDefault("PAYSTACK_BASE_URL", defaultPaystackBaseURL),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewPaystackClientWith is used by tests to point the client at a stub server.
func NewPaystackClientWith(secretKey, baseURL string) *PaystackClient {
	return &PaystackClient{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// InitializeTransaction starts a checkout for the given amount in major
// currency units. The x100 conversion to kobo happens here and only here.
func (p *PaystackClient) InitializeTransaction(email string, amountMajor int64) (*InitializeResult, error) {
	payload := initializeRequest{Email: email, Amount: amountMajor * 100}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize payload: %v", err)
	}

	req, err := http.NewRequest("POST", p.baseURL+"/transaction/initialize", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed initializeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || !parsed.Status {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &InitializeResult{
		AuthorizationURL: parsed.Data.AuthorizationURL,
		Reference:        parsed.Data.Reference,
	}, nil
}

// VerifyTransaction asks Paystack for the final state of a reference. The
// returned amount is in minor units exactly as the provider reports it.
func (p *PaystackClient) VerifyTransaction(reference string) (*VerifyResult, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/transaction/verify/%s", p.baseURL, reference), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed verifyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || !parsed.Status {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &VerifyResult{
		Status:      parsed.Data.Status,
		AmountMinor: parsed.Data.Amount,
	}, nil
}

// CreateSplit creates a reusable percentage split group so a subaccount can
// take part of every token payment.
func (p *PaystackClient) CreateSplit(name, subaccount string, share int) (*SplitResult, error) {
	payload := splitRequest{
		Name:        name,
		Type:        "percentage",
		Currency:    "NGN",
		Subaccounts: []splitShare{{Subaccount: subaccount, Share: share}},
		BearerType:  "subaccount",
		BearerSub:   subaccount,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal split payload: %v", err)
	}

	req, err := http.NewRequest("POST", p.baseURL+"/split", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack split request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed splitResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || !parsed.Status {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var data struct {
		SplitCode string `json:"split_code"`
	}
	if err := json.Unmarshal(parsed.Data, &data); err != nil {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &SplitResult{SplitCode: data.SplitCode, Raw: parsed.Data}, nil
}
