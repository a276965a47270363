package engine

import (
	"github.com/tidwall/btree"

	"quayside/internal/book"
	"quayside/internal/common"
)

// indexEntry is the back-reference the engine keeps per resting order,
// the Go analog of the original C++ source's
// `std::map<OrderID, OrderBookOrdersAtPosition*>`. Storing the owning
// side alongside the level lets Cancel remove an emptied level without a
// market-name lookup.
type indexEntry struct {
	id         common.OrderID
	level      *book.PriceLevel
	owningSide *book.BookSide
}

// orderIndex is a btree keyed by OrderID, giving O(log n) lookup,
// insert and delete — the engine-wide back-reference required for
// cancellation by opaque id (spec §4.2, I2, I6).
type orderIndex struct {
	entries *btree.BTreeG[*indexEntry]
	size    int
}

func newOrderIndex() *orderIndex {
	return &orderIndex{
		entries: btree.NewBTreeG(func(a, b *indexEntry) bool {
			return a.id < b.id
		}),
	}
}

func (x *orderIndex) put(id common.OrderID, level *book.PriceLevel, side *book.BookSide) {
	x.entries.Set(&indexEntry{id: id, level: level, owningSide: side})
	x.size++
}

func (x *orderIndex) get(id common.OrderID) (*indexEntry, bool) {
	return x.entries.GetMut(&indexEntry{id: id})
}

func (x *orderIndex) remove(id common.OrderID) {
	if _, ok := x.entries.Delete(&indexEntry{id: id}); ok {
		x.size--
	}
}

// len returns the number of resting orders tracked, which must always
// equal the sum of queue sizes across all markets (spec I6).
func (x *orderIndex) len() int {
	return x.size
}
