package bnf

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tradebot/config"
	bnfhttp "tradebot/pkg/http"
	"tradebot/pkg/logger"
	"tradebot/pkg/types"

	log "github.com/sirupsen/logrus"
)

type BnfExchange struct {
	baseUrl     string
	recvWindow  time.Duration
	credentials types.Credentials

	client *http.Client
	now    func() time.Time
	logger *log.Entry
}

func New(exchgConfig *config.ExchangeConfig, credentials types.Credentials, l log.FieldLogger) (*BnfExchange, error) {
	// (1) credentials
	if credentials.IsEmpty() {
		return nil, fmt.Errorf("%w: prefix %v", config.ErrMissingCredentials, exchgConfig.EnvPrefix)
	}

	// (2) endpoint
	baseUrl := strings.TrimRight(exchgConfig.BaseUrl, "/")
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("bad base url '%s': %w", exchgConfig.BaseUrl, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("bad base url '%s': scheme and host are required", exchgConfig.BaseUrl)
	}

	// (3) limits
	timeout := DefaultTimeout
	if exchgConfig.TimeoutMs > 0 {
		timeout = time.Duration(exchgConfig.TimeoutMs) * time.Millisecond
	}
	recvWindow := DefaultRecvWindow
	if exchgConfig.RecvWindowMs > 0 {
		recvWindow = time.Duration(exchgConfig.RecvWindowMs) * time.Millisecond
	}

	return &BnfExchange{
		baseUrl:     baseUrl,
		recvWindow:  recvWindow,
		credentials: credentials,
		client:      &http.Client{Timeout: timeout},
		now:         time.Now,
		logger:      l.WithField("exchange", types.ExchangeBnf),
	}, nil
}

func (e *BnfExchange) Name() types.ExchangeName {
	return types.ExchangeBnf
}

// ╔═════════════╗
//      Order
// ╚═════════════╝

// PlaceOrder sends params as a signed POST /fapi/v1/order. One attempt, one
// outcome: a raw reply, a *TransportError or an *ExchangeError.
func (e *BnfExchange) PlaceOrder(ctx context.Context, params types.OrderParams) (types.RawResponse, error) {
	return e.signedRequest(ctx, http.MethodPost, orderEndpoint, params)
}

func (e *BnfExchange) signedRequest(ctx context.Context, method string, endpoint string, params types.OrderParams) (types.RawResponse, error) {
	payload := RequestPayload{
		Params:     params,
		Timestamp:  e.now().UnixMilli(),
		RecvWindow: e.recvWindow.Milliseconds(),
	}
	signed, query, err := payload.Sign(e.credentials.APISecret)
	if err != nil {
		return types.RawResponse{}, fmt.Errorf("fail to build request: %w", err)
	}

	target := e.baseUrl + endpoint
	reqLogger := e.logger.WithFields(log.Fields{"method": method, "url": target})
	reqLogger.WithField("params", logger.Sanitize(signed.Fields())).Debug("API request")

	headers := map[string]string{
		apiKeyHeader:   e.credentials.APIKey,
		"Content-Type": contentType,
	}

	start := time.Now()
	status, body, err := bnfhttp.PostRequest(ctx, e.client, target+"?"+query, headers, nil)
	elapsed := time.Since(start)
	if err != nil {
		tErr := newTransportError(method, endpoint, err)
		reqLogger.WithError(tErr).Error("network error")
		return types.RawResponse{}, tErr
	}

	reqLogger.WithFields(log.Fields{
		"status":    status,
		"elapsedMs": elapsed.Milliseconds(),
		"body":      string(body),
	}).Debug("API response")

	raw, err := parseResponse(status, body)
	if err != nil {
		reqLogger.WithError(err).Error("exchange rejected request")
		return types.RawResponse{}, err
	}
	return raw, nil
}
