package book

import (
	"github.com/tidwall/btree"

	"quayside/internal/common"
)

// PriceLevel is one price point on one side of a market: the price tick
// plus the FIFO queue of orders resting there.
type PriceLevel struct {
	Price common.Price
	Queue *PriceLevelQueue
}

// BookSide is an ordered map from price tick to PriceLevel. The bid side
// is ordered so its best (highest) price sorts first; the ask side so
// its best (lowest) price sorts first — mirroring the teacher's
// orderbook.go, which builds its bid and ask trees from two comparators
// over the same PriceLevel shape.
type BookSide struct {
	levels *btree.BTreeG[*PriceLevel]
}

// NewBidSide builds a BookSide ordered highest-price-first.
func NewBidSide() *BookSide {
	return &BookSide{
		levels: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price > b.Price
		}),
	}
}

// NewAskSide builds a BookSide ordered lowest-price-first.
func NewAskSide() *BookSide {
	return &BookSide{
		levels: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price < b.Price
		}),
	}
}

// GetOrCreate returns the PriceLevel at price, creating an empty one if
// none exists yet.
func (s *BookSide) GetOrCreate(price common.Price) *PriceLevel {
	if level, ok := s.levels.GetMut(&PriceLevel{Price: price}); ok {
		return level
	}
	level := &PriceLevel{Price: price, Queue: newPriceLevelQueue()}
	s.levels.Set(level)
	return level
}

// Remove deletes a price level entirely. Callers must only do this once
// the level's queue is empty (spec I5).
func (s *BookSide) Remove(level *PriceLevel) {
	s.levels.Delete(level)
}

// Best returns the best (highest bid / lowest ask) price level, or false
// if the side has no levels. It does not skip a level whose queue is
// empty; the engine removes emptied levels itself.
func (s *BookSide) Best() (*PriceLevel, bool) {
	return s.levels.MinMut()
}

// Empty reports whether the side has no price levels at all.
func (s *BookSide) Empty() bool {
	_, ok := s.levels.MinMut()
	return !ok
}

// Levels returns all price levels in best-first order. Intended for
// introspection and tests.
func (s *BookSide) Levels() []*PriceLevel {
	return s.levels.Items()
}
