package bnf

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"

	bnfhttp "tradebot/pkg/http"
	"tradebot/pkg/types"
	"tradebot/pkg/utils"

	"github.com/adshao/go-binance/v2/common"
)

const (
	// SentinelCode marks a reply that could not be read as a JSON object.
	SentinelCode int64 = -1

	successCode     int64 = 200
	maxDiagBodySize       = 200
	unknownErrorMsg       = "Unknown error"
)

const (
	OpConnection = "connection failed"
	OpTimeout    = "request timed out"
	OpRead       = "response read failed"
	OpRequest    = "request failed"
)

// TransportError is a failure before a complete reply was received: DNS,
// TLS, refused connections, timeouts. Err is the underlying cause.
type TransportError struct {
	Op       string
	Method   string
	Endpoint string // path only, never the signed query
	Timeout  bool
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExchangeError is a reply the exchange marked as failed, or one that could
// not be parsed (Code == SentinelCode).
type ExchangeError struct {
	Code       int64
	Message    string
	HTTPStatus int
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("binance api error %d: %s (http %d)", e.Code, e.Message, e.HTTPStatus)
}

// Unwrap exposes the go-binance representation so callers already matching
// on *common.APIError keep working.
func (e *ExchangeError) Unwrap() error {
	return &common.APIError{Code: e.Code, Message: e.Message}
}

func newTransportError(method, endpoint string, err error) *TransportError {
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())

	// *url.Error repeats the full URL, signature included
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}

	var (
		readErr *bnfhttp.ReadError
		opErr   *net.OpError
		dnsErr  *net.DNSError
		certErr *tls.CertificateVerificationError
		hdrErr  tls.RecordHeaderError
	)
	op := OpRequest
	switch {
	case timeout:
		op = OpTimeout
	case errors.As(err, &readErr):
		op = OpRead
	case errors.As(err, &opErr), errors.As(err, &dnsErr), errors.As(err, &certErr), errors.As(err, &hdrErr):
		op = OpConnection
	}
	return &TransportError{
		Op:       op,
		Method:   method,
		Endpoint: endpoint,
		Timeout:  timeout,
		Err:      cause,
	}
}

// parseResponse classifies a complete HTTP reply.
func parseResponse(status int, body []byte) (types.RawResponse, error) {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		return types.RawResponse{}, &ExchangeError{
			Code:       SentinelCode,
			Message:    "unexpected non-JSON response: " + utils.TruncateStr(string(body), maxDiagBodySize),
			HTTPStatus: status,
		}
	}

	if rawCode, ok := data["code"]; ok {
		var code int64
		if err := json.Unmarshal(rawCode, &code); err != nil {
			code = SentinelCode
		}
		if code != successCode {
			msg := unknownErrorMsg
			if rawMsg, ok := data["msg"]; ok {
				var m string
				if err := json.Unmarshal(rawMsg, &m); err == nil && m != "" {
					msg = m
				}
			}
			return types.RawResponse{}, &ExchangeError{Code: code, Message: msg, HTTPStatus: status}
		}
	}

	return types.RawResponse{HTTPStatus: status, Body: json.RawMessage(body)}, nil
}
