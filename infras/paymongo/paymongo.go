package paymongo

//go:generate go run go.uber.org/mock/mockgen -source=./paymongo.go -destination=./mocks/paymongo_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tourism/config"
	"tourism/infras/otel"
	"tourism/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	CurrencyPHP = "PHP"

	MethodGCash   = "gcash"
	MethodPayMaya = "paymaya"
	MethodGrabPay = "grab_pay"
	MethodCard    = "card"

	IntentSucceeded             = "succeeded"
	IntentAwaitingPaymentMethod = "awaiting_payment_method"
	IntentAwaitingNextAction    = "awaiting_next_action"
	IntentProcessing            = "processing"

	EventPaymentPaid   = "payment.paid"
	EventPaymentFailed = "payment.failed"

	otelAttrPath   = "paymongo.path"
	otelAttrStatus = "paymongo.status"
)

// AllowedMethods are the method types offered at checkout.
var AllowedMethods = []string{MethodGCash, MethodPayMaya, MethodGrabPay, MethodCard}

type Billing struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type CreateIntentParams struct {
	Amount      int64
	MethodType  string
	Description string
	Metadata    map[string]string
}

type Redirect struct {
	URL       string `json:"url"`
	ReturnURL string `json:"return_url"`
}

type NextAction struct {
	Type     string    `json:"type"`
	Redirect *Redirect `json:"redirect,omitempty"`
}

type LastPaymentError struct {
	Code   string `json:"code"`
	Detail string `json:"failed_message"`
}

type PaymentIntent struct {
	ID               string
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	ClientKey        string            `json:"client_key"`
	NextAction       *NextAction       `json:"next_action"`
	LastPaymentError *LastPaymentError `json:"last_payment_error"`
	Metadata         map[string]string `json:"metadata"`
}

// RedirectURL is where the customer completes the payment, if anywhere.
func (p PaymentIntent) RedirectURL() string {
	if p.NextAction == nil || p.NextAction.Redirect == nil {
		return constant.Empty
	}

	return p.NextAction.Redirect.URL
}

type PaymentMethod struct {
	ID   string
	Type string `json:"type"`
}

type Client interface {
	CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (PaymentIntent, error)
	CreatePaymentMethod(ctx context.Context, methodType string, billing Billing) (PaymentMethod, error)
	AttachPaymentIntent(ctx context.Context, intentID, methodID, clientKey, returnURL string) (PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (PaymentIntent, error)
	VerifyWebhookSignature(header string, body []byte, live bool) error
}

type client struct {
	http          *http.Client
	baseURL       string
	secretKey     string
	webhookSecret string
	otel          otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	conf := cfg.External.PayMongo

	return &client{
		http:          &http.Client{Timeout: time.Duration(conf.TimeoutSeconds) * time.Second},
		baseURL:       strings.TrimRight(conf.BaseURL, "/"),
		secretKey:     conf.SecretKey,
		webhookSecret: conf.WebhookSecret,
		otel:          otel,
	}
}

// object is how PayMongo serializes every resource.
type object[T any] struct {
	ID         string `json:"id,omitempty"`
	Type       string `json:"type,omitempty"`
	Attributes T      `json:"attributes"`
}

type resource[T any] struct {
	Data object[T] `json:"data"`
}

func envelope[T any](attributes T) resource[T] {
	var r resource[T]
	r.Data.Attributes = attributes

	return r
}

type apiError struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (c *client) CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (intent PaymentIntent, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPayMongoScopeName, constant.OtelPayMongoScopeName+".CreatePaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := envelope(struct {
		Amount               int64             `json:"amount"`
		Currency             string            `json:"currency"`
		PaymentMethodAllowed []string          `json:"payment_method_allowed"`
		CaptureType          string            `json:"capture_type"`
		Description          string            `json:"description,omitempty"`
		Metadata             map[string]string `json:"metadata,omitempty"`
	}{
		Amount:               params.Amount,
		Currency:             CurrencyPHP,
		PaymentMethodAllowed: []string{params.MethodType},
		CaptureType:          "automatic",
		Description:          params.Description,
		Metadata:             params.Metadata,
	})

	var res resource[PaymentIntent]
	if err = c.do(ctx, http.MethodPost, "/payment_intents", body, &res); err != nil {
		return intent, err
	}

	intent = res.Data.Attributes
	intent.ID = res.Data.ID

	return intent, nil
}

func (c *client) CreatePaymentMethod(ctx context.Context, methodType string, billing Billing) (method PaymentMethod, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPayMongoScopeName, constant.OtelPayMongoScopeName+".CreatePaymentMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := envelope(struct {
		Type    string  `json:"type"`
		Billing Billing `json:"billing"`
	}{methodType, billing})

	var res resource[PaymentMethod]
	if err = c.do(ctx, http.MethodPost, "/payment_methods", body, &res); err != nil {
		return method, err
	}

	method = res.Data.Attributes
	method.ID = res.Data.ID

	return method, nil
}

func (c *client) AttachPaymentIntent(ctx context.Context, intentID, methodID, clientKey, returnURL string) (intent PaymentIntent, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPayMongoScopeName, constant.OtelPayMongoScopeName+".AttachPaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := envelope(struct {
		PaymentMethod string `json:"payment_method"`
		ClientKey     string `json:"client_key,omitempty"`
		ReturnURL     string `json:"return_url"`
	}{methodID, clientKey, returnURL})

	var res resource[PaymentIntent]
	if err = c.do(ctx, http.MethodPost, "/payment_intents/"+intentID+"/attach", body, &res); err != nil {
		return intent, err
	}

	intent = res.Data.Attributes
	intent.ID = res.Data.ID

	return intent, nil
}

func (c *client) RetrievePaymentIntent(ctx context.Context, intentID string) (intent PaymentIntent, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPayMongoScopeName, constant.OtelPayMongoScopeName+".RetrievePaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	var res resource[PaymentIntent]
	if err = c.do(ctx, http.MethodGet, "/payment_intents/"+intentID, nil, &res); err != nil {
		return intent, err
	}

	intent = res.Data.Attributes
	intent.ID = res.Data.ID

	return intent, nil
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal paymongo request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build paymongo request: %w", err)
	}

	req.SetBasicAuth(c.secretKey, constant.Empty)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("paymongo request failed")

		return fmt.Errorf("failed to call paymongo: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read paymongo response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)

		detail := http.StatusText(resp.StatusCode)
		if len(apiErr.Errors) > 0 {
			detail = apiErr.Errors[0].Detail
		}

		log.Error().Int(otelAttrStatus, resp.StatusCode).Str(otelAttrPath, path).Str("detail", detail).
			Msg("paymongo rejected request")

		return &Error{StatusCode: resp.StatusCode, Detail: detail}
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode paymongo response: %w", err)
	}

	return nil
}

// Error is a non-2xx answer from PayMongo.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("paymongo: %d %s", e.StatusCode, e.Detail)
}
