package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

// Fetcher downloads JSON samples over HTTP GET.
type Fetcher struct {
	client    *http.Client
	maxBody   int64
	userAgent string
}

func NewFetcher(cfg Config) *Fetcher {
	return &Fetcher{client: New(cfg), maxBody: cfg.MaxBodyBytes, userAgent: cfg.UserAgent}
}

var _ ports.SampleFetcher = (*Fetcher)(nil)

func (f *Fetcher) Fetch(ctx context.Context, url string) (domain.Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Sample{}, &domain.OpError{
			Op:   "httpclient.fetch",
			Kind: domain.KindInvalidInput,
			Path: url,
			Err:  err,
		}
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Sample{}, &domain.OpError{
			Op:   "httpclient.fetch",
			Kind: domain.KindExecution,
			Path: url,
			Err:  err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.Sample{}, &domain.OpError{
			Op:   "httpclient.fetch",
			Kind: domain.KindExecution,
			Path: url,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body := io.Reader(resp.Body)
	if f.maxBody > 0 {
		body = io.LimitReader(resp.Body, f.maxBody+1)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return domain.Sample{}, &domain.OpError{
			Op:   "httpclient.read",
			Kind: domain.KindExecution,
			Path: url,
			Err:  err,
		}
	}
	if f.maxBody > 0 && int64(len(b)) > f.maxBody {
		return domain.Sample{}, &domain.OpError{
			Op:   "httpclient.read",
			Kind: domain.KindInvalidInput,
			Path: url,
			Err:  fmt.Errorf("response body exceeds %d bytes", f.maxBody),
		}
	}

	return domain.Sample{Source: strings.TrimSpace(url), Data: b}, nil
}
