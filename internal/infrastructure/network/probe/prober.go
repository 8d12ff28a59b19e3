package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet_config/internal/app/port"
	"wallet_config/internal/domain/entity"
	"wallet_config/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int       `json:"id"`
	Result  string    `json:"result"`
	Error   *rpcError `json:"error,omitempty"`
}

var chainIDRequest = mustMarshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: "eth_chainId", Params: []any{}})

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal probe request: %v", err))
	}
	return b
}

// errPermanent marks failures that retrying cannot fix.
var errPermanent = errors.New("permanent probe failure")

// Prober implements port.EndpointProber with a raw eth_chainId request.
type Prober struct {
	client     *fasthttp.Client
	timeout    time.Duration
	maxRetries uint64
	retryDelay time.Duration
	logger     port.Logger
}

// NewProber creates a new Prober. timeout bounds each attempt; a shorter transport timeout
// or an earlier ctx deadline takes precedence.
func NewProber(timeout time.Duration, maxRetries int, retryDelay time.Duration, logger port.Logger) *Prober {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Prober{
		client:     &fasthttp.Client{Name: "walletconfig-probe"},
		timeout:    timeout,
		maxRetries: uint64(maxRetries),
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Probe sends eth_chainId to the transport URL and checks the answer against chainID.
func (p *Prober) Probe(ctx context.Context, chainID uint64, transport entity.TransportConfig) entity.EndpointHealth {
	health := entity.EndpointHealth{
		ChainID: chainID,
		URL:     utils.RedactURL(transport.URL),
	}
	timeout := p.attemptTimeout(transport)

	start := time.Now()
	var reported uint64
	backoff := retry.WithMaxRetries(p.maxRetries, retry.NewFibonacci(p.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		id, err := p.fetchChainID(ctx, transport.URL, timeout)
		if err != nil {
			if errors.Is(err, errPermanent) {
				return err
			}
			p.logger.Debug("Probe attempt failed", "chain_id", chainID, "url", health.URL, "error", err)
			return retry.RetryableError(err)
		}
		reported = id
		return nil
	})

	health.Latency = time.Since(start)
	health.CheckedAt = time.Now().UTC()
	health.ReportedChainID = reported

	switch {
	case err != nil:
		health.Error = err.Error()
	case reported != chainID:
		health.Error = fmt.Sprintf("chain ID mismatch: expected %d, got %d", chainID, reported)
	default:
		health.Healthy = true
	}
	return health
}

// attemptTimeout is the shorter of the prober timeout and the transport timeout, ignoring unset values.
func (p *Prober) attemptTimeout(transport entity.TransportConfig) time.Duration {
	timeout := p.timeout
	if transport.Timeout > 0 && (timeout <= 0 || transport.Timeout < timeout) {
		timeout = transport.Timeout
	}
	return timeout
}

func (p *Prober) fetchChainID(ctx context.Context, url string, timeout time.Duration) (uint64, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(chainIDRequest)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, hasDeadline := ctx.Deadline()
	if timeout > 0 {
		if attempt := time.Now().Add(timeout); !hasDeadline || attempt.Before(deadline) {
			deadline, hasDeadline = attempt, true
		}
	}

	var err error
	if hasDeadline {
		err = p.client.DoDeadline(req, resp, deadline)
	} else {
		err = p.client.Do(req, resp)
	}
	if err != nil {
		return 0, fmt.Errorf("request to %s failed: %w", utils.RedactURL(url), err)
	}

	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		err := fmt.Errorf("unexpected status %d from %s", code, utils.RedactURL(url))
		if code >= 400 && code < 500 && code != fasthttp.StatusTooManyRequests {
			return 0, fmt.Errorf("%w: %w", errPermanent, err)
		}
		return 0, err
	}

	var out rpcResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return 0, fmt.Errorf("%w: failed to decode eth_chainId response: %w", errPermanent, err)
	}
	if out.Error != nil {
		return 0, fmt.Errorf("%w: eth_chainId returned error %d: %s", errPermanent, out.Error.Code, out.Error.Message)
	}
	id, err := hexutil.DecodeUint64(out.Result)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid chain ID %q: %w", errPermanent, out.Result, err)
	}
	return id, nil
}
