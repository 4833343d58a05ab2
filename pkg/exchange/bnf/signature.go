package bnf

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/adshao/go-binance/v2/common"
)

// values holds every field except the signature.
func (p RequestPayload) values() (url.Values, error) {
	side, err := convertOrderSide(p.Params.Side)
	if err != nil {
		return nil, err
	}
	orderType, err := convertOrderType(p.Params.Type)
	if err != nil {
		return nil, err
	}
	if p.Params.Symbol == "" || p.Params.Quantity == "" {
		return nil, fmt.Errorf("symbol and quantity are required")
	}

	v := url.Values{}
	v.Set("symbol", p.Params.Symbol)
	v.Set("side", string(side))
	v.Set("type", string(orderType))
	v.Set("quantity", p.Params.Quantity)
	if p.Params.TimeInForce != "" {
		tif, err := convertOrderTIF(p.Params.TimeInForce)
		if err != nil {
			return nil, err
		}
		v.Set("timeInForce", string(tif))
	}
	if p.Params.Price != "" {
		v.Set("price", p.Params.Price)
	}
	v.Set("timestamp", strconv.FormatInt(p.Timestamp, 10))
	v.Set("recvWindow", strconv.FormatInt(p.RecvWindow, 10))
	return v, nil
}

// Canonical is the exact byte sequence that is both signed and sent.
func (p RequestPayload) Canonical() (string, error) {
	v, err := p.values()
	if err != nil {
		return "", err
	}
	return v.Encode(), nil
}

// Sign returns a signed copy of p together with the full query string to
// send. p itself is not modified.
func (p RequestPayload) Sign(secret string) (RequestPayload, string, error) {
	canonical, err := p.Canonical()
	if err != nil {
		return RequestPayload{}, "", err
	}
	signature, err := common.Hmac(secret, canonical)
	if err != nil {
		return RequestPayload{}, "", fmt.Errorf("fail to sign request: %w", err)
	}
	p.Signature = *signature
	return p, canonical + "&signature=" + p.Signature, nil
}

// Fields lists every field of p, signature included. Pass it through
// logger.Sanitize before logging.
func (p RequestPayload) Fields() map[string]string {
	fields := map[string]string{
		"symbol":     p.Params.Symbol,
		"side":       string(p.Params.Side),
		"type":       string(p.Params.Type),
		"quantity":   p.Params.Quantity,
		"timestamp":  strconv.FormatInt(p.Timestamp, 10),
		"recvWindow": strconv.FormatInt(p.RecvWindow, 10),
		"signature":  p.Signature,
	}
	if p.Params.TimeInForce != "" {
		fields["timeInForce"] = string(p.Params.TimeInForce)
	}
	if p.Params.Price != "" {
		fields["price"] = p.Params.Price
	}
	return fields
}
