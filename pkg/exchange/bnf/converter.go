package bnf

import (
	"fmt"

	"tradebot/pkg/types"

	"github.com/adshao/go-binance/v2/futures"
)

func convertOrderSide(side types.OrderSide) (futures.SideType, error) {
	switch side {
	case types.OrderSideBuy:
		return futures.SideTypeBuy, nil
	case types.OrderSideSell:
		return futures.SideTypeSell, nil
	default:
		return "", fmt.Errorf("unknown order side: %s", side)
	}
}

func convertOrderType(orderType types.OrderType) (futures.OrderType, error) {
	switch orderType {
	case types.OrderMarket:
		return futures.OrderTypeMarket, nil
	case types.OrderLimit:
		return futures.OrderTypeLimit, nil
	default:
		return "", fmt.Errorf("unknown order type: %s", orderType)
	}
}

func convertOrderTIF(tif types.OrderTIF) (futures.TimeInForceType, error) {
	switch tif {
	case types.OrderTIFGTC:
		return futures.TimeInForceTypeGTC, nil
	default:
		return "", fmt.Errorf("unknown tif: %s", tif)
	}
}
