// Package engine implements the top-level matching engine: market
// registry, monotonic order id assignment, the order-lookup index, and
// the price-time priority match loop.
package engine

import (
	"quayside/internal/common"
	"quayside/internal/events"
)

// Engine is the top-level object driving one or more markets. It is not
// safe for concurrent use: spec §5 assumes a single logical caller, and
// an implementation that wants to expose it to multiple goroutines must
// wrap it in its own coarse mutual-exclusion barrier (see
// internal/replay, which serializes calls onto one goroutine instead).
type Engine struct {
	markets   map[string]*Market
	index     *orderIndex
	nextID    common.OrderID
	observers []events.Observer
}

// New creates an empty engine with no markets registered.
func New() *Engine {
	return &Engine{
		markets: make(map[string]*Market),
		index:   newOrderIndex(),
	}
}

// InitialiseMarkets registers each name as a market with empty bid and
// ask sides. Idempotent on duplicate names: later entries targeting an
// already-registered name are no-ops. Emits no events.
func (e *Engine) InitialiseMarkets(names []string) {
	for _, name := range names {
		if _, exists := e.markets[name]; exists {
			continue
		}
		e.markets[name] = newMarket(name)
	}
}

// RegisterObserver adds an observer to the end of the dispatch list. It
// is never removed for the lifetime of the engine.
func (e *Engine) RegisterObserver(o events.Observer) {
	e.observers = append(e.observers, o)
}

// Place submits a new limit order. See spec §4.1 for the full contract.
func (e *Engine) Place(order common.Order) common.PlaceResult {
	market, ok := e.markets[order.Market]
	if !ok || order.Price == 0 || order.Volume == 0 {
		return common.Cancelled
	}

	id := e.nextID
	e.nextID++

	side := market.Bids
	if order.Side == common.Ask {
		side = market.Asks
	}

	level := side.GetOrCreate(order.Price)
	level.Queue.PushBack(id, order.Volume)
	e.index.put(id, level, side)

	e.notifyNewOrder(events.NewOrderEvent{OrderID: id, Order: order})

	if e.runMatchLoop(market) {
		return common.Matched
	}
	return common.Placed
}

// Cancel removes a resting order by id. See spec §4.1 for the full
// contract.
func (e *Engine) Cancel(id common.OrderID) common.CancelResult {
	entry, ok := e.index.get(id)
	if !ok {
		return common.NotFound
	}

	if !entry.level.Queue.Erase(id) {
		// The index pointed at a level that no longer holds this id.
		// That is an invariant violation (I2): the index and the book
		// must agree on membership.
		panic("engine: order index out of sync with price level")
	}
	e.index.remove(id)

	if entry.level.Queue.Empty() {
		entry.owningSide.Remove(entry.level)
	}

	e.notifyCancelled(events.CancelEvent{OrderID: id})
	return common.CancelledOK
}

func (e *Engine) notifyNewOrder(evt events.NewOrderEvent) {
	for _, o := range e.observers {
		o.OnNewOrder(evt)
	}
}

func (e *Engine) notifyCancelled(evt events.CancelEvent) {
	for _, o := range e.observers {
		o.OnOrderCancelled(evt)
	}
}

func (e *Engine) notifyMatched(evt events.MatchEvent) {
	for _, o := range e.observers {
		o.OnOrderMatched(evt)
	}
}

// Market looks up a registered market by name, for introspection and
// tests. The zero value indicates "not registered".
func (e *Engine) Market(name string) (*Market, bool) {
	m, ok := e.markets[name]
	return m, ok
}

// OrderCount returns the number of resting orders tracked across all
// markets — the invariant-I6 quantity.
func (e *Engine) OrderCount() int {
	return e.index.len()
}
