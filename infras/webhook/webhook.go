package webhook

//go:generate go run go.uber.org/mock/mockgen -source=./webhook.go -destination=./mocks/webhook_mock.go -package=mocks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	headerEventType = "X-Hotel-Event"
	retryCount      = 3
	retryWait       = time.Second
	retryMaxWait    = 5 * time.Second
)

var ErrNotConfigured = errors.New("webhook url is not configured")

// Client forwards event payloads to the configured HTTP endpoint.
type Client interface {
	Deliver(ctx context.Context, eventType string, payload []byte) error
}

type client struct {
	http   *resty.Client
	url    string
	secret string
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	hook := cfg.External.Webhook

	httpClient := resty.New().
		SetTimeout(time.Duration(hook.TimeoutSeconds) * time.Second).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= 500
		}).
		SetHeader(constant.RequestHeaderContentType, constant.ContentTypeJSON).
		SetHeader(constant.RequestHeaderUserAgent, cfg.App.Name)

	return &client{
		http:   httpClient,
		url:    hook.URL,
		secret: hook.Secret,
		otel:   otl,
	}
}

func (c *client) Deliver(ctx context.Context, eventType string, payload []byte) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".webhook.Deliver")
	defer scope.End()

	if c.url == constant.Empty {
		return ErrNotConfigured
	}

	scope.SetAttribute("event.type", eventType)

	request := c.http.R().
		SetContext(ctx).
		SetHeader(headerEventType, eventType).
		SetBody(payload)

	if c.secret != constant.Empty {
		request.SetHeader(constant.RequestHeaderSignature, Sign(c.secret, payload))
	}

	resp, err := request.Post(c.url)
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to call webhook")
		scope.TraceError(err)

		return fmt.Errorf("failed to call webhook: %w", err)
	}

	if resp.IsError() {
		err = fmt.Errorf("webhook responded with status %d", resp.StatusCode())

		log.Error().Err(err).Str("event", eventType).Str("body", resp.String()).Msg("webhook rejected event")
		scope.TraceError(err)

		return err
	}

	log.Info().Str("event", eventType).Int("status", resp.StatusCode()).Msg("webhook delivered")

	return nil
}

// Sign returns the hex encoded HMAC-SHA256 of payload, sent in the signature header so the
// receiver can verify the sender.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}
