package paymongo_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourism/config"
	"tourism/infras/otel/mocks"
	"tourism/infras/paymongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) paymongo.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.External.PayMongo.BaseURL = server.URL + "/"
	cfg.External.PayMongo.SecretKey = "sk_test"
	cfg.External.PayMongo.WebhookSecret = "whsk_test"
	cfg.External.PayMongo.TimeoutSeconds = 5

	return paymongo.New(cfg, mocks.NewOtel())
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test", user)
		assert.Empty(t, pass)
		assert.Equal(t, "/payment_intents", r.URL.Path)

		var body struct {
			Data struct {
				Attributes map[string]any `json:"attributes"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(150000), body.Data.Attributes["amount"])
		assert.Equal(t, "PHP", body.Data.Attributes["currency"])
		assert.Equal(t, []any{"gcash"}, body.Data.Attributes["payment_method_allowed"])

		_, _ = io.WriteString(w, `{"data":{"id":"pi_1","type":"payment_intent","attributes":
			{"amount":150000,"currency":"PHP","status":"awaiting_payment_method","client_key":"pi_1_client"}}}`)
	})

	intent, err := client.CreatePaymentIntent(context.Background(), paymongo.CreateIntentParams{
		Amount:     150000,
		MethodType: paymongo.MethodGCash,
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_client", intent.ClientKey)
	assert.Equal(t, paymongo.IntentAwaitingPaymentMethod, intent.Status)
}

func TestClient_AttachPaymentIntent(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_1/attach", r.URL.Path)

		_, _ = io.WriteString(w, `{"data":{"id":"pi_1","attributes":{"status":"awaiting_next_action",
			"next_action":{"type":"redirect","redirect":{"url":"https://pay.example/checkout","return_url":"x"}}}}}`)
	})

	intent, err := client.AttachPaymentIntent(context.Background(), "pi_1", "pm_1", "pi_1_client", "https://app/return")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/checkout", intent.RedirectURL())
}

func TestClient_Error(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"errors":[{"code":"parameter_invalid","detail":"amount is too low"}]}`)
	})

	_, err := client.RetrievePaymentIntent(context.Background(), "pi_1")

	var apiErr *paymongo.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "amount is too low", apiErr.Detail)
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"data":{}}`)
	good := paymongo.Sign("secret", "1700000000", body)

	tests := []struct {
		name    string
		header  string
		live    bool
		wantErr bool
	}{
		{name: "test signature", header: "t=1700000000,te=" + good + ",li="},
		{name: "live signature", header: "t=1700000000,te=,li=" + good, live: true},
		{name: "live mode ignores test signature", header: "t=1700000000,te=" + good + ",li=", live: true, wantErr: true},
		{name: "tampered", header: "t=1700000001,te=" + good, wantErr: true},
		{name: "missing timestamp", header: "te=" + good, wantErr: true},
		{name: "empty", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paymongo.VerifySignature("secret", tt.header, body, tt.live)
			if tt.wantErr {
				assert.ErrorIs(t, err, paymongo.ErrInvalidSignature)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{"data":{"id":"evt_1","type":"event","attributes":{"type":"payment.paid","livemode":false,
		"data":{"id":"pay_1","type":"payment","attributes":{"amount":150000,"status":"paid","payment_intent_id":"pi_1"}}}}}`)

	event, err := paymongo.ParseWebhookEvent(body)

	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, paymongo.EventPaymentPaid, event.Type)
	assert.Equal(t, "pay_1", event.Payment.ID)
	assert.Equal(t, "pi_1", event.Payment.PaymentIntentID)
	assert.Equal(t, int64(150000), event.Payment.Amount)
}
