package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
)

// UserAgent identifies delivery requests.
const UserAgent = "Drydock-Hookshot"

// Client posts webhook payloads to subscription URLs.
type Client struct {
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient returns a delivery client configured from the webhook
// section of the config.
func NewClient(cfg *config.Config, logger *log.Logger) *Client {
	var allowed []glob.Glob
	for _, pattern := range cfg.Webhook.AllowedHosts {
		g, err := glob.Compile(pattern)
		if err != nil {
			// Patterns are checked by config validation.
			continue
		}
		allowed = append(allowed, g)
	}

	c := &Client{logger: logger}
	c.httpClient = &http.Client{
		Timeout: cfg.Webhook.RequestTimeout(),
		Transport: &http.Transport{
			DialContext:           c.dialContext(allowed, cfg.Webhook.AllowInternal),
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
		// Don't follow redirects, they could bypass address validation.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return c
}

// dialContext returns a dialer that validates destinations before
// connecting.
func (c *Client) dialContext(allowed []glob.Glob, allowInternal bool) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		if !hostAllowed(host, allowed) {
			return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
		}

		dialer := &net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}

		if allowInternal {
			return dialer.DialContext(ctx, network, addr)
		}

		if isLocalhost(host) {
			return nil, fmt.Errorf("blocked connection to private address: %w", ErrPrivateAddress)
		}

		if ip := net.ParseIP(host); ip != nil {
			if err := validateAddr(ip); err != nil {
				return nil, fmt.Errorf("blocked connection to private address: %w", err)
			}
			return dialer.DialContext(ctx, network, addr)
		}

		// Resolve here and dial the validated address, so a DNS record
		// cannot change between validation and connect.
		ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		for _, ip := range ips {
			if err := validateAddr(ip.IP); err != nil {
				return nil, fmt.Errorf("blocked connection to private address: %w", err)
			}
		}

		return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
	}
}

// Deliver posts body to the subscription's payload URL. Outcomes are
// logged and counted, never returned: a delivery failure must not reach
// the triggering operation or affect another subscription.
func (c *Client) Deliver(ctx context.Context, sub models.Webhook, body []byte) {
	logger := c.logger.With("delivery", uuid.NewString(), "webhook", sub.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		deliveryErrorsCounter.WithLabelValues("request").Inc()
		deliveriesCounter.WithLabelValues("failed").Inc()
		logger.Info("[Webhook] Request failed at given payload URL: " + sub.URL)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		deliveryErrorsCounter.WithLabelValues("transport").Inc()
		deliveriesCounter.WithLabelValues("failed").Inc()
		logger.Info("[Webhook] Request failed at given payload URL: " + sub.URL)
		logger.Debug("delivery failed", "url", sub.URL, "err", err)
		return
	}
	// Drain a bounded amount so the connection can be reused.
	defer res.Body.Close() // nolint: errcheck
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64*1024))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		deliveriesCounter.WithLabelValues("rejected").Inc()
		logger.Infof("[Webhook] Request responded code %d: %s", res.StatusCode, http.StatusText(res.StatusCode))
		logger.Infof("[Webhook] Request payload: %s", body)
		return
	}

	deliveriesCounter.WithLabelValues("ok").Inc()
	logger.Debug("delivery completed", "url", sub.URL, "status", res.StatusCode)
}
