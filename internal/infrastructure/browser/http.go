package browser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"KenyaNews/internal/ports"
)

const maxBodyBytes = 10 << 20

// HTTP fetches server-rendered HTML without running scripts.
type HTTP struct {
	client *http.Client
	opts   Options
	logger *slog.Logger
}

var _ ports.Browser = (*HTTP)(nil)

// NewHTTP wires an HTTP client; nil uses one with the configured timeout.
func NewHTTP(client *http.Client, opts Options, logger *slog.Logger) *HTTP {
	opts = opts.withDefaults()
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTP{client: client, opts: opts, logger: logger}
}

// Open returns a session sharing the client.
func (h *HTTP) Open(ctx context.Context) (ports.RenderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &httpSession{HTTP: h}, nil
}

type httpSession struct {
	*HTTP
}

func (s *httpSession) Render(ctx context.Context, url string, wait time.Duration) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept-Language", s.opts.AcceptLanguage)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	s.logger.Debug("loading url", "url", url)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned %s", url, resp.Status)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	if err := sleep(ctx, s.opts.wait(wait)); err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *httpSession) Close() error {
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
