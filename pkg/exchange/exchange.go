package exchange

import (
	"context"
	"errors"

	"tradebot/config"
	"tradebot/pkg/exchange/bnf"
	"tradebot/pkg/types"

	log "github.com/sirupsen/logrus"
)

type Exchange interface {
	Name() types.ExchangeName

	// PlaceOrder sends exactly one signed order request. It never retries.
	PlaceOrder(ctx context.Context, params types.OrderParams) (types.RawResponse, error)
}

var ErrUnsupportedExchange = errors.New("unsupported exchange")

// creates a new exchange instance based on the provided config and credentials
func NewExchange(exchgConfig *config.ExchangeConfig, credentials types.Credentials, logger log.FieldLogger) (Exchange, error) {
	switch exchgConfig.ExchangeName {
	case types.ExchangeBnf:
		e, err := bnf.New(exchgConfig, credentials, logger)
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, ErrUnsupportedExchange
	}
}
