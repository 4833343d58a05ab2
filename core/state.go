package core

import (
	"errors"

	"tradebot/pkg/exchange/bnf"
	"tradebot/pkg/order"
)

// State is a step of the single-order pipeline. States only move forward;
// there is no edge back to Sending.
type State int

const (
	StateStart State = iota
	StateValidating
	StateRejected
	StateValidated
	StateSending
	StateSent
	StateTransportFailed
	StateExchangeRejected
	StateFailed // anything unclassified, including missing credentials
)

var stateNames = map[State]string{
	StateStart:            "start",
	StateValidating:       "validating",
	StateRejected:         "rejected",
	StateValidated:        "validated",
	StateSending:          "sending",
	StateSent:             "sent",
	StateTransportFailed:  "transport_failed",
	StateExchangeRejected: "exchange_rejected",
	StateFailed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Outcome is the one result of a run. Exactly one of Result (State ==
// StateSent) or Err (any other terminal state) is meaningful.
type Outcome struct {
	State  State
	Intent order.Intent
	Result order.Result
	Err    error
}

func (o Outcome) ExitCode() int {
	if o.State == StateSent {
		return 0
	}
	return 1
}

// classify maps a send error onto its terminal state.
func classify(err error) State {
	var tErr *bnf.TransportError
	var exErr *bnf.ExchangeError
	var vErr *order.ValidationError
	switch {
	case errors.As(err, &tErr):
		return StateTransportFailed
	case errors.As(err, &exErr):
		return StateExchangeRejected
	case errors.As(err, &vErr):
		return StateRejected
	default:
		return StateFailed
	}
}
