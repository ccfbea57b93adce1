package proxy

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/metrics"
)

// requestHeaders are the only browser headers re-issued upstream.
var requestHeaders = []string{
	echo.HeaderContentType,
	echo.HeaderAccept,
	echo.HeaderAuthorization,
	"Cookie",
}

// responseHeaders are copied back besides Set-Cookie.
var responseHeaders = []string{
	echo.HeaderContentType,
	"Retry-After",
}

// DefaultTimeout bounds one upstream round trip.
const DefaultTimeout = 30 * time.Second

// Proxy forwards browser API calls to the internal service.
type Proxy struct {
	upstream *url.URL
	client   *http.Client
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewClient returns an HTTP client whose transport is traced with otelhttp.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		// Redirects belong to the browser.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// New creates a proxy for the service at upstream, e.g. "http://api:8080/api".
func New(upstream string, client *http.Client, m *metrics.Metrics, logger *slog.Logger) (*Proxy, error) {
	u, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid upstream url: %v", apperrors.ErrConfig, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: upstream url %q needs a scheme and host", apperrors.ErrConfig, upstream)
	}
	if client == nil {
		client = NewClient(DefaultTimeout)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Proxy{upstream: u, client: client, metrics: m, logger: logger}, nil
}

// target joins the wildcard path and query onto the upstream base.
func (p *Proxy) target(path, rawQuery string) string {
	u := *p.upstream
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	u.RawQuery = rawQuery
	return u.String()
}

// Forward re-issues the request under the route's "*" parameter to the upstream service.
func (p *Proxy) Forward(c echo.Context) error {
	in := c.Request()

	var body io.Reader
	if in.Method != http.MethodGet && in.Method != http.MethodHead {
		body = in.Body
	}

	out, err := http.NewRequestWithContext(in.Context(), in.Method, p.target(c.Param("*"), in.URL.RawQuery), body)
	if err != nil {
		return fmt.Errorf("build upstream request: %w", err)
	}
	for _, h := range requestHeaders {
		for _, v := range in.Header.Values(h) {
			out.Header.Add(h, v)
		}
	}
	out.Header.Set(echo.HeaderXForwardedFor, c.RealIP())
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		out.Header.Set(echo.HeaderXRequestID, id)
	}

	resp, err := p.client.Do(out)
	if err != nil {
		p.observe(http.StatusBadGateway)
		p.logger.ErrorContext(in.Context(), "upstream request failed",
			slog.String("method", in.Method),
			slog.String("path", in.URL.Path),
			slog.Any("error", err),
		)
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.JSON(http.StatusBadGateway, apperrors.ErrorResponse{
			Error:     "Upstream service unavailable",
			Code:      "BAD_GATEWAY",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	defer resp.Body.Close()
	p.observe(resp.StatusCode)

	header := c.Response().Header()
	for _, h := range responseHeaders {
		if v := resp.Header.Get(h); v != "" {
			header.Set(h, v)
		}
	}
	for _, cookie := range resp.Header.Values("Set-Cookie") {
		header.Add("Set-Cookie", cookie)
	}
	header.Set(echo.HeaderCacheControl, "no-store")

	c.Response().WriteHeader(resp.StatusCode)
	if in.Method == http.MethodHead {
		return nil
	}
	if _, err := io.Copy(c.Response(), resp.Body); err != nil {
		p.logger.WarnContext(in.Context(), "copy upstream body", slog.Any("error", err))
	}
	return nil
}

func (p *Proxy) observe(status int) {
	if p.metrics == nil {
		return
	}
	p.metrics.ProxyRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}
