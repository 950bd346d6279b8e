package paymongo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tourism/shared/constant"
)

var ErrInvalidSignature = errors.New("invalid paymongo signature")

const (
	signatureTimestamp = "t"
	signatureTest      = "te"
	signatureLive      = "li"
)

// VerifyWebhookSignature checks a Paymongo-Signature header of the form
// t=<unix>,te=<test sig>,li=<live sig> against HMAC-SHA256("<t>.<body>").
func (c *client) VerifyWebhookSignature(header string, body []byte, live bool) error {
	return VerifySignature(c.webhookSecret, header, body, live)
}

func VerifySignature(secret, header string, body []byte, live bool) error {
	parts := map[string]string{}

	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok {
			parts[key] = value
		}
	}

	timestamp := parts[signatureTimestamp]
	signature := parts[signatureTest]

	if live {
		signature = parts[signatureLive]
	}

	if secret == constant.Empty || timestamp == constant.Empty || signature == constant.Empty {
		return ErrInvalidSignature
	}

	expected := Sign(secret, timestamp, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// Sign returns the hex HMAC PayMongo sends for timestamp and body.
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + string(body)))

	return hex.EncodeToString(mac.Sum(nil))
}

// WebhookEvent is the subset of an event payload the payment flow reads.
type WebhookEvent struct {
	ID       string
	Type     string
	Livemode bool
	Payment  WebhookPayment
}

type WebhookPayment struct {
	ID              string
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
	PaymentIntentID string `json:"payment_intent_id"`
	FailedMessage   string `json:"failed_message"`
}

func ParseWebhookEvent(body []byte) (WebhookEvent, error) {
	var payload resource[struct {
		Type     string                 `json:"type"`
		Livemode bool                   `json:"livemode"`
		Data     object[WebhookPayment] `json:"data"`
	}]

	if err := json.Unmarshal(body, &payload); err != nil {
		return WebhookEvent{}, fmt.Errorf("failed to decode paymongo event: %w", err)
	}

	attrs := payload.Data.Attributes
	payment := attrs.Data.Attributes
	payment.ID = attrs.Data.ID

	return WebhookEvent{
		ID:       payload.Data.ID,
		Type:     attrs.Type,
		Livemode: attrs.Livemode,
		Payment:  payment,
	}, nil
}
