package engine

import (
	"quayside/internal/common"
	"quayside/internal/events"
)

// runMatchLoop consumes crossing price levels on market until the book
// is no longer crossed (spec §4.4). It returns true iff at least one
// match event was produced.
//
// The newly placed order that triggered this call always carries the
// largest OrderID currently in the book (ids are assigned strictly
// increasing, spec I1), so at every step the order with the larger of
// the two front ids is the aggressor and the other is passive. Every
// match event reports the *passive* side and the *passive* side's level
// price, not the aggressor's — the convention the worked scenarios in
// spec §8 follow.
func (e *Engine) runMatchLoop(market *Market) bool {
	matched := false

	for {
		bidLevel, hasBid := market.Bids.Best()
		askLevel, hasAsk := market.Asks.Best()
		if !hasBid || !hasAsk || bidLevel.Price < askLevel.Price {
			break
		}

		for {
			bidOrder, hasBidOrder := bidLevel.Queue.Front()
			askOrder, hasAskOrder := askLevel.Queue.Front()
			if !hasBidOrder || !hasAskOrder {
				break
			}

			volume := bidOrder.Remaining
			if askOrder.Remaining < volume {
				volume = askOrder.Remaining
			}

			var side common.Side
			var price common.Price
			if bidOrder.ID > askOrder.ID {
				side = common.Ask
				price = askLevel.Price
			} else {
				side = common.Bid
				price = bidLevel.Price
			}

			matched = true
			e.notifyMatched(events.MatchEvent{
				Market: market.Name,
				BidID:  bidOrder.ID,
				AskID:  askOrder.ID,
				Price:  price,
				Volume: volume,
				Side:   side,
			})

			bidOrder.Remaining -= volume
			askOrder.Remaining -= volume

			if bidOrder.Remaining == 0 {
				bidLevel.Queue.Erase(bidOrder.ID)
				e.index.remove(bidOrder.ID)
			}
			if askOrder.Remaining == 0 {
				askLevel.Queue.Erase(askOrder.ID)
				e.index.remove(askOrder.ID)
			}

			if bidLevel.Queue.Empty() || askLevel.Queue.Empty() {
				break
			}
		}

		if bidLevel.Queue.Empty() {
			market.Bids.Remove(bidLevel)
		}
		if askLevel.Queue.Empty() {
			market.Asks.Remove(askLevel)
		}
		if market.Bids.Empty() || market.Asks.Empty() {
			break
		}
	}

	return matched
}
