// Package events defines the three outbound event kinds the engine emits
// and the Observer capability set that receives them.
package events

import (
	"fmt"

	"quayside/internal/common"
)

// NewOrderEvent reports a freshly accepted order before any matching runs
// against it.
type NewOrderEvent struct {
	OrderID common.OrderID
	Order   common.Order
}

func (e NewOrderEvent) String() string {
	return fmt.Sprintf("NewOrder(id=%d, %s)", e.OrderID, e.Order)
}

// CancelEvent reports a resting order's removal by explicit cancel.
type CancelEvent struct {
	OrderID common.OrderID
}

func (e CancelEvent) String() string {
	return fmt.Sprintf("Cancelled(id=%d)", e.OrderID)
}

// MatchEvent reports one execution between a resting bid and a resting
// ask. Side names the passive (resting, older) counterparty's side, not
// the newly placed aggressor's side — see the engine package for why.
type MatchEvent struct {
	Market string
	BidID  common.OrderID
	AskID  common.OrderID
	Price  common.Price
	Volume common.Volume
	Side   common.Side
}

func (e MatchEvent) String() string {
	return fmt.Sprintf(
		"Matched(market=%s, bid=%d, ask=%d, price=%d, vol=%d, side=%s)",
		e.Market, e.BidID, e.AskID, e.Price, e.Volume, e.Side,
	)
}

// Observer is the capability set an external collaborator implements to
// watch engine activity. Implementations must be infallible: the engine
// does not isolate a faulting observer from the rest of the dispatch
// chain (spec §7).
type Observer interface {
	OnNewOrder(NewOrderEvent)
	OnOrderCancelled(CancelEvent)
	OnOrderMatched(MatchEvent)
}
