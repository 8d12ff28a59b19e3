package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"wallet_config/internal/domain/entity"
	"wallet_config/internal/pkg/logger"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestProber(maxRetries int) *Prober {
	return NewProber(time.Second, maxRetries, time.Millisecond, logger.NewNop())
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		maxRetries  int
		wantHealthy bool
		wantHits    int32
		wantErr     string
	}{
		{
			name:        "healthy",
			status:      http.StatusOK,
			body:        `{"jsonrpc":"2.0","id":1,"result":"0x7a69"}`,
			wantHealthy: true,
			wantHits:    1,
		},
		{
			name:     "chain id mismatch",
			status:   http.StatusOK,
			body:     `{"jsonrpc":"2.0","id":1,"result":"0x1"}`,
			wantHits: 1,
			wantErr:  "mismatch",
		},
		{
			name:       "rpc error is not retried",
			status:     http.StatusOK,
			body:       `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`,
			maxRetries: 3,
			wantHits:   1,
			wantErr:    "method not found",
		},
		{
			name:       "unauthorized is not retried",
			status:     http.StatusUnauthorized,
			body:       `{}`,
			maxRetries: 3,
			wantHits:   1,
			wantErr:    "401",
		},
		{
			name:       "server errors are retried",
			status:     http.StatusBadGateway,
			body:       `bad gateway`,
			maxRetries: 2,
			wantHits:   3,
			wantErr:    "502",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := newServer(t, tt.status, tt.body)
			h := newTestProber(tt.maxRetries).Probe(context.Background(), 31337, entity.TransportConfig{URL: srv.URL})

			if h.Healthy != tt.wantHealthy {
				t.Errorf("expected healthy=%v, got %+v", tt.wantHealthy, h)
			}
			if got := hits.Load(); got != tt.wantHits {
				t.Errorf("expected %d requests, got %d", tt.wantHits, got)
			}
			if tt.wantErr != "" && !strings.Contains(h.Error, tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, h.Error)
			}
			if h.ChainID != 31337 || h.CheckedAt.IsZero() {
				t.Errorf("result not populated: %+v", h)
			}
		})
	}
}

func TestProbeRedactsURL(t *testing.T) {
	h := newTestProber(0).Probe(context.Background(), 11155111, entity.TransportConfig{URL: "http://127.0.0.1:1/v3/secret-key"})
	if strings.Contains(h.URL, "secret-key") {
		t.Fatalf("URL not redacted: %s", h.URL)
	}
	if h.Healthy {
		t.Fatal("unreachable endpoint reported healthy")
	}
}

func TestProbeRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newTestProber(5).Probe(ctx, 31337, entity.TransportConfig{URL: "http://127.0.0.1:1"})
	if h.Healthy || h.Error == "" {
		t.Fatalf("expected failure on cancelled context, got %+v", h)
	}
}

func TestAttemptTimeout(t *testing.T) {
	p := NewProber(5*time.Second, 0, time.Millisecond, logger.NewNop())
	tests := []struct {
		transport time.Duration
		want      time.Duration
	}{
		{0, 5 * time.Second},
		{time.Second, time.Second},
		{60 * time.Second, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := p.attemptTimeout(entity.TransportConfig{Timeout: tt.transport}); got != tt.want {
			t.Errorf("transport timeout %v: expected %v, got %v", tt.transport, tt.want, got)
		}
	}
}

func TestProbeHonorsTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x7a69"}`))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	p := NewProber(10*time.Second, 0, time.Millisecond, logger.NewNop())
	start := time.Now()
	h := p.Probe(context.Background(), 31337, entity.TransportConfig{URL: srv.URL, Timeout: 100 * time.Millisecond})
	if h.Healthy {
		t.Fatal("slow endpoint reported healthy")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("transport timeout not applied, probe took %v", elapsed)
	}
}
