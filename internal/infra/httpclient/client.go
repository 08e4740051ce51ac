package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/Absolentia/aif-core/internal/buildinfo"
)

// Config tunes the client used to fetch remote samples.
type Config struct {
	// Timeout bounds the whole request including the body read.
	Timeout time.Duration

	DialTimeout           time.Duration
	ResponseHeaderTimeout time.Duration

	// MaxBodyBytes caps a sample body; zero disables the limit.
	MaxBodyBytes int64

	UserAgent string
}

func DefaultConfig() Config {
	return Config{
		Timeout:               30 * time.Second,
		DialTimeout:           5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		MaxBodyBytes:          32 << 20,
		UserAgent:             "aif/" + buildinfo.ResolvedVersion(),
	}
}

// New builds a client on a clone of the default transport, so proxy settings
// from the environment still apply.
func New(cfg Config) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.DialTimeout > 0 {
		tr.DialContext = (&net.Dialer{Timeout: cfg.DialTimeout, KeepAlive: 30 * time.Second}).DialContext
	}
	if cfg.ResponseHeaderTimeout > 0 {
		tr.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout
	}
	return &http.Client{Transport: tr, Timeout: cfg.Timeout}
}
