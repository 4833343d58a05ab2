package types

import "encoding/json"

type ExchangeName string

const (
	ExchangeBnf = ExchangeName("bnf") // binance usdt-m futures
)

// RawResponse is a successful exchange reply, body kept as-is.
type RawResponse struct {
	HTTPStatus int
	Body       json.RawMessage
}
