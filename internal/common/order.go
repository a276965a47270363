// Package common holds the value types shared across the book, events and
// engine packages: the vocabulary of a place/cancel request and its
// outcomes.
package common

import "fmt"

// Side identifies which half of a market's book an order rests on.
type Side int

const (
	// Bid is a buy order.
	Bid Side = iota
	// Ask is a sell order.
	Ask
)

func (s Side) String() string {
	switch s {
	case Bid:
		return "Bid"
	case Ask:
		return "Ask"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

// Price is a discrete integer tick. Zero is never a valid resting price.
type Price uint64

// Volume is a discrete integer unit count. Zero is never a valid resting
// volume.
type Volume uint64

// OrderID is the engine's opaque, monotonically increasing order
// identifier. It is assigned on acceptance and never reused.
type OrderID uint64

// Order is an inbound place request. It is discarded once accepted; the
// book only ever stores the narrower RestingOrder.
type Order struct {
	Market string
	Side   Side
	Price  Price
	Volume Volume
}

func (o Order) String() string {
	return fmt.Sprintf("%s %s %d@%d", o.Market, o.Side, o.Volume, o.Price)
}

// PlaceResult is the exhaustive outcome of a call to Engine.Place.
type PlaceResult int

const (
	// Placed means the order was accepted and is resting with no crossing.
	Placed PlaceResult = iota
	// Cancelled means the order was rejected pre-book (bad market, zero
	// price, or zero volume). No OrderID was assigned.
	Cancelled
	// Matched means the order was accepted and produced at least one
	// match event.
	Matched
)

func (r PlaceResult) String() string {
	switch r {
	case Placed:
		return "Placed"
	case Cancelled:
		return "Cancelled"
	case Matched:
		return "Matched"
	default:
		return fmt.Sprintf("PlaceResult(%d)", int(r))
	}
}

// CancelResult is the exhaustive outcome of a call to Engine.Cancel.
type CancelResult int

const (
	// CancelledOK means the order existed and has been removed.
	CancelledOK CancelResult = iota
	// NotFound means no resting order has that id.
	NotFound
)

func (r CancelResult) String() string {
	switch r {
	case CancelledOK:
		return "Cancelled"
	case NotFound:
		return "NotFound"
	default:
		return fmt.Sprintf("CancelResult(%d)", int(r))
	}
}
