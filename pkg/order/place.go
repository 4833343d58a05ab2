package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tradebot/pkg/types"
	"tradebot/pkg/utils"

	log "github.com/sirupsen/logrus"
)

// defaultQty is reported when the exchange omits a quantity or price field.
const defaultQty = "0"

var ErrInvalidIntent = errors.New("order: intent was not built by Validate")

// Placer sends one signed order and returns the exchange reply untouched.
type Placer interface {
	PlaceOrder(ctx context.Context, params types.OrderParams) (types.RawResponse, error)
}

// Result is the stable projection of an order placement reply.
type Result struct {
	OrderID     int64  `json:"orderId"`
	Status      string `json:"status"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	ExecutedQty string `json:"executedQty"`
	AvgPrice    string `json:"avgPrice"`
}

// BuildParams turns an intent into wire params. Limit orders are always
// sent good-til-canceled.
func BuildParams(intent Intent) types.OrderParams {
	params := types.OrderParams{
		Symbol:   intent.Symbol(),
		Side:     intent.Side(),
		Type:     intent.Type(),
		Quantity: utils.DecimalToStr(intent.Quantity()),
	}
	if intent.Type() == types.OrderLimit {
		params.TimeInForce = types.OrderTIFGTC
		params.Price = utils.DecimalToStr(intent.Price())
	}
	return params
}

// Place submits intent through placer. Transport and exchange failures are
// returned exactly as the placer produced them.
func Place(ctx context.Context, logger log.FieldLogger, placer Placer, intent Intent) (Result, error) {
	if intent.Symbol() == "" {
		return Result{}, ErrInvalidIntent
	}
	params := BuildParams(intent)

	logger.WithFields(log.Fields{
		"symbol": params.Symbol,
		"side":   params.Side,
		"type":   params.Type,
		"qty":    params.Quantity,
		"price":  priceField(intent),
	}).Info("placing order")

	raw, err := placer.PlaceOrder(ctx, params)
	if err != nil {
		return Result{}, err
	}

	result, err := ParseResult(raw.Body)
	if err != nil {
		return Result{}, err
	}

	logger.WithFields(log.Fields{
		"orderId":     result.OrderID,
		"status":      result.Status,
		"executedQty": result.ExecutedQty,
		"avgPrice":    result.AvgPrice,
	}).Info("order placed successfully")
	return result, nil
}

// ParseResult projects a raw order reply onto Result, filling the documented
// defaults for fields the exchange left out. Fields outside the projection
// are not decoded, so their shape never fails an accepted order.
func ParseResult(body json.RawMessage) (Result, error) {
	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return Result{}, fmt.Errorf("fail to decode order response: %w", err)
	}
	res.ExecutedQty = withDefault(res.ExecutedQty, defaultQty)
	res.AvgPrice = withDefault(res.AvgPrice, defaultQty)
	return res, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
