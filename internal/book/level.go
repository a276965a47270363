// Package book implements the leaf data structures of the order book: the
// per-price queue of resting orders, and the per-side ordered map of
// price to queue. Both are generic tidwall/btree trees, following the
// same GetMut/Set/Delete/MinMut idiom the teacher repo uses for its own
// price-level tree.
package book

import (
	"github.com/tidwall/btree"

	"quayside/internal/common"
)

// RestingOrder is an order that has been accepted and is sitting in a
// PriceLevelQueue, waiting to be matched or cancelled.
type RestingOrder struct {
	ID        common.OrderID
	Remaining common.Volume
}

// PriceLevelQueue is an ordered sequence of RestingOrders at one price,
// keyed and iterated by ascending OrderID. Because OrderIDs are assigned
// monotonically engine-wide, ascending-OrderID order is exactly FIFO
// arrival order, so an ordered map keyed on OrderID gives price-time
// priority for free (spec I3).
type PriceLevelQueue struct {
	orders *btree.BTreeG[*RestingOrder]
	count  int
}

func newPriceLevelQueue() *PriceLevelQueue {
	return &PriceLevelQueue{
		orders: btree.NewBTreeG(func(a, b *RestingOrder) bool {
			return a.ID < b.ID
		}),
	}
}

// PushBack inserts a new resting order. Callers must only ever pass an id
// larger than any id already in the queue (the engine's monotonic
// counter guarantees this), which is what makes this a true push to the
// back of the FIFO rather than an arbitrary insert.
func (q *PriceLevelQueue) PushBack(id common.OrderID, volume common.Volume) {
	q.orders.Set(&RestingOrder{ID: id, Remaining: volume})
	q.count++
}

// Front returns the earliest-arrived resting order, or false if the
// queue is empty. The returned pointer is mutable in place (e.g. to
// decrement Remaining during a match) without a further Set call.
func (q *PriceLevelQueue) Front() (*RestingOrder, bool) {
	return q.orders.MinMut()
}

// Erase removes the order with the given id, if present.
func (q *PriceLevelQueue) Erase(id common.OrderID) bool {
	_, ok := q.orders.Delete(&RestingOrder{ID: id})
	if ok {
		q.count--
	}
	return ok
}

// Empty reports whether the queue holds no resting orders.
func (q *PriceLevelQueue) Empty() bool {
	return q.count == 0
}

// Len returns the number of resting orders in the queue.
func (q *PriceLevelQueue) Len() int {
	return q.count
}

// Orders returns the resting orders in ascending-OrderID (time-priority)
// order. Intended for introspection and tests, not the match loop.
func (q *PriceLevelQueue) Orders() []*RestingOrder {
	return q.orders.Items()
}
