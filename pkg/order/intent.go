package order

import (
	"fmt"
	"strings"

	"tradebot/pkg/types"
	"tradebot/pkg/utils"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	FieldSymbol    = "symbol"
	FieldSide      = "side"
	FieldOrderType = "order_type"
	FieldQuantity  = "quantity"
	FieldPrice     = "price"
)

// Intent is a validated order. The zero value is not a valid intent; only
// Validate builds one.
type Intent struct {
	symbol    string
	side      types.OrderSide
	orderType types.OrderType
	quantity  decimal.Decimal
	price     decimal.Decimal
	hasPrice  bool
}

func (i Intent) Symbol() string { return i.symbol }
func (i Intent) Side() types.OrderSide { return i.side }
func (i Intent) Type() types.OrderType { return i.orderType }
func (i Intent) Quantity() decimal.Decimal { return i.quantity }
func (i Intent) HasPrice() bool { return i.hasPrice }

// Price is zero when HasPrice is false.
func (i Intent) Price() decimal.Decimal { return i.price }

func (i Intent) String() string {
	price := "none"
	if i.hasPrice {
		price = i.price.String()
	}
	return fmt.Sprintf("%s %s %s qty=%s price=%s", i.side, i.orderType, i.symbol, i.quantity, price)
}

var (
	validSides      = []types.OrderSide{types.OrderSideBuy, types.OrderSideSell}
	validOrderTypes = []types.OrderType{types.OrderLimit, types.OrderMarket}
)

// Validate normalizes raw operator input into an Intent. Rules run in order
// and the first failure is returned as a *ValidationError. A nil price means
// the operator did not supply one; market orders ignore price entirely.
func Validate(logger log.FieldLogger, symbol, side, orderType, quantity string, price *string) (Intent, error) {
	// (1) symbol
	cleanSymbol := strings.ToUpper(strings.TrimSpace(symbol))
	if cleanSymbol == "" {
		return Intent{}, newValidationError(FieldSymbol, symbol, "Symbol must be a non-empty string.")
	}

	// (2) side
	cleanSide := types.OrderSide(normalize(side))
	if !contains(validSides, cleanSide) {
		return Intent{}, newValidationError(FieldSide, side, "Expected one of: BUY, SELL.")
	}

	// (3) order type
	cleanType := types.OrderType(normalize(orderType))
	if !contains(validOrderTypes, cleanType) {
		return Intent{}, newValidationError(FieldOrderType, orderType, "Expected one of: LIMIT, MARKET.")
	}

	// (4) quantity
	qty, err := parsePositive(FieldQuantity, quantity, "Must be a valid positive number (e.g. 0.01).")
	if err != nil {
		return Intent{}, err
	}

	intent := Intent{
		symbol:    cleanSymbol,
		side:      cleanSide,
		orderType: cleanType,
		quantity:  qty,
	}

	// (5) price, only for limit orders
	switch cleanType {
	case types.OrderLimit:
		if price == nil || strings.TrimSpace(*price) == "" {
			raw := ""
			if price != nil {
				raw = *price
			}
			return Intent{}, newValidationError(FieldPrice, raw, "Price is required for LIMIT orders.")
		}
		p, err := parsePositive(FieldPrice, *price, "Must be a valid positive number (e.g. 30000).")
		if err != nil {
			return Intent{}, err
		}
		intent.price = p
		intent.hasPrice = true
	case types.OrderMarket:
		if price != nil && strings.TrimSpace(*price) != "" {
			logger.WithField("price", *price).Debug("price ignored for MARKET order")
		}
	}

	logger.WithFields(log.Fields{
		"symbol": intent.symbol,
		"side":   intent.side,
		"type":   intent.orderType,
		"qty":    intent.quantity.String(),
		"price":  priceField(intent),
	}).Debug("validation passed")
	return intent, nil
}

func parsePositive(field, raw, invalidReason string) (decimal.Decimal, error) {
	d, err := utils.StrToDecimal(raw)
	if err != nil {
		return decimal.Decimal{}, newValidationError(field, raw, invalidReason)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, newValidationError(field, raw, "Must be strictly greater than zero.")
	}
	return d, nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func priceField(i Intent) string {
	if !i.hasPrice {
		return "none"
	}
	return i.price.String()
}
