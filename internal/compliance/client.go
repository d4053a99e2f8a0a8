package compliance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// Client calls the receipt analysis endpoint. The service behind it runs a
// vision model over the receipt image and the expected payment facts; a
// failure here is transient, never fatal to the order.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*domain.ComplianceVerdict]
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker[*domain.ComplianceVerdict](gobreaker.Settings{
		Name:    "receipt-compliance",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

type analyzeRequest struct {
	ReceiptImageURL       string  `json:"receiptImageUrl"`
	PaymentAmount         float64 `json:"paymentAmount"`
	PaymentMethod         string  `json:"paymentMethod"`
	ExpectedAccountNumber string  `json:"expectedAccountNumber"`
}

func (c *Client) Analyze(ctx context.Context, receiptImageURL string, expectedAmount float64, paymentMethod, expectedAccountNumber string) (*domain.ComplianceVerdict, error) {
	payload := analyzeRequest{
		ReceiptImageURL:       receiptImageURL,
		PaymentAmount:         expectedAmount,
		PaymentMethod:         paymentMethod,
		ExpectedAccountNumber: expectedAccountNumber,
	}

	return c.breaker.Execute(func() (*domain.ComplianceVerdict, error) {
		return c.doAnalyze(ctx, payload)
	})
}

func (c *Client) doAnalyze(ctx context.Context, payload analyzeRequest) (*domain.ComplianceVerdict, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analyze request returned %d: %s", resp.StatusCode, msg)
	}

	var verdict domain.ComplianceVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}

	if verdict.ConfidenceScore < 0 || verdict.ConfidenceScore > 1 {
		return nil, fmt.Errorf("analyze response confidence %f out of range", verdict.ConfidenceScore)
	}
	if verdict.Violations == nil {
		verdict.Violations = []string{}
	}
	return &verdict, nil
}
