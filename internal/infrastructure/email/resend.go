package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/balmstore/backend/internal/domain/order"
	"github.com/balmstore/backend/internal/infrastructure/config"
)

const (
	resendEndpoint = "https://api.resend.com/emails"

	// maxResendResponseSize limits the response body size
	maxResendResponseSize = 256 * 1024
)

// ResendMailer sends transactional email through the Resend API
type ResendMailer struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	logger     *zap.Logger

	// overridable in tests
	endpoint string
}

// NewResendMailer creates a mailer from configuration. Returns nil when
// the integration is not configured so callers can treat email as optional.
func NewResendMailer(cfg config.EmailConfig, logger *zap.Logger) *ResendMailer {
	if !cfg.Enabled() {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResendMailer{
		apiKey:     cfg.APIKey,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		endpoint:   resendEndpoint,
	}
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendOrderConfirmation emails the customer a summary of their order
func (m *ResendMailer) SendOrderConfirmation(ctx context.Context, ord *order.Order) error {
	payload := resendRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail),
		To:      ord.Email,
		Subject: fmt.Sprintf("Order confirmation %s", ord.OrderNumber),
		HTML:    renderOrderConfirmation(ord),
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("email: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("email: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResendResponseSize))
	if err != nil {
		return fmt.Errorf("email: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("email: HTTP %d: %s", resp.StatusCode, string(body))
	}

	m.logger.Info("Order confirmation sent",
		zap.String("order_number", ord.OrderNumber),
		zap.String("email", ord.Email))
	return nil
}

func renderOrderConfirmation(ord *order.Order) string {
	var b strings.Builder
	b.WriteString("<h1>Thanks for your order!</h1>")
	fmt.Fprintf(&b, "<p>Order <strong>%s</strong> has been received.</p>", html.EscapeString(ord.OrderNumber))
	b.WriteString("<table><tr><th>Item</th><th>Qty</th><th>Price</th></tr>")
	for _, item := range ord.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(item.Title), item.Quantity, item.UnitPrice.StringFixed(2))
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Subtotal: %s</p>", ord.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "<p>Shipping: %s</p>", ord.Shipping.StringFixed(2))
	fmt.Fprintf(&b, "<p>Tax: %s</p>", ord.Tax.StringFixed(2))
	fmt.Fprintf(&b, "<p><strong>Total: %s</strong></p>", ord.Total.StringFixed(2))
	return b.String()
}
