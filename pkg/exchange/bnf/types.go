package bnf

import (
	"time"

	"tradebot/pkg/types"
)

const (
	DefaultRecvWindow = 5000 * time.Millisecond
	DefaultTimeout    = 10 * time.Second
)

const (
	orderEndpoint = "/fapi/v1/order"
	apiKeyHeader  = "X-MBX-APIKEY"
	contentType   = "application/x-www-form-urlencoded"
)

// RequestPayload is one signed attempt. Timestamp and Signature bind it to a
// single send; a new attempt needs a new payload.
type RequestPayload struct {
	Params     types.OrderParams
	Timestamp  int64 // ms since epoch, client clock
	RecvWindow int64 // ms
	Signature  string
}
