package core

import (
	"context"

	"tradebot/pkg/order"

	log "github.com/sirupsen/logrus"
)

// Input is the operator's order exactly as typed. A nil Price means the flag
// was not given at all.
type Input struct {
	Symbol    string
	Side      string
	OrderType string
	Quantity  string
	Price     *string
}

// Pipeline validates one order and, if it is valid, sends it once.
type Pipeline struct {
	Logger log.FieldLogger

	// Connect is called only after validation succeeded, so bad input is
	// reported before credentials are looked at.
	Connect func() (order.Placer, error)

	// OnValidated, if set, sees the intent right before it is sent.
	OnValidated func(order.Intent)
}

func (p *Pipeline) Run(ctx context.Context, in Input) Outcome {
	out := Outcome{State: StateStart}
	logger := p.Logger.WithField("state", StateValidating)

	// (1) validate
	out.State = StateValidating
	intent, err := order.Validate(logger.WithField("component", "validators"), in.Symbol, in.Side, in.OrderType, in.Quantity, in.Price)
	if err != nil {
		out.State = StateRejected
		out.Err = err
		logger.WithError(err).Warn("validation failed")
		return out
	}
	out.Intent = intent
	out.State = StateValidated
	if p.OnValidated != nil {
		p.OnValidated(intent)
	}

	// (2) connect
	placer, err := p.Connect()
	if err != nil {
		out.State = StateFailed
		out.Err = err
		p.Logger.WithError(err).Error("fail to set up exchange client")
		return out
	}

	// (3) send, exactly once
	out.State = StateSending
	result, err := order.Place(ctx, p.Logger.WithField("component", "orders"), placer, intent)
	if err != nil {
		out.State = classify(err)
		out.Err = err
		p.Logger.WithError(err).WithField("state", out.State).Error("order failed")
		return out
	}
	out.State = StateSent
	out.Result = result
	p.Logger.WithField("state", out.State).Info("order finished")
	return out
}
