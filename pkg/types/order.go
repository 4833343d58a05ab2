package types

type OrderSide string

const (
	OrderSideBuy  = OrderSide("BUY")
	OrderSideSell = OrderSide("SELL")
)

type OrderTIF string // TimeInForce

const (
	OrderTIFGTC = OrderTIF("GTC") // Good 'Til Canceled
)

type OrderType string

const (
	OrderLimit  = OrderType("LIMIT")
	OrderMarket = OrderType("MARKET")
)

// OrderParams is the venue-neutral wire form of one order. Quantity and Price
// hold exact decimal text; Price and TimeInForce are empty for market orders.
type OrderParams struct {
	Symbol      string
	Side        OrderSide
	Type        OrderType
	Quantity    string
	TimeInForce OrderTIF
	Price       string
}
