package engine

import (
	"quayside/internal/book"
	"quayside/internal/common"
)

// Market is the pair of book sides trading under one name.
type Market struct {
	Name string
	Bids *book.BookSide
	Asks *book.BookSide
}

func newMarket(name string) *Market {
	return &Market{
		Name: name,
		Bids: book.NewBidSide(),
		Asks: book.NewAskSide(),
	}
}

// BestBid returns the market's best resting bid price, if any.
func (m *Market) BestBid() (common.Price, bool) {
	level, ok := m.Bids.Best()
	if !ok {
		return 0, false
	}
	return level.Price, true
}

// BestAsk returns the market's best resting ask price, if any.
func (m *Market) BestAsk() (common.Price, bool) {
	level, ok := m.Asks.Best()
	if !ok {
		return 0, false
	}
	return level.Price, true
}
