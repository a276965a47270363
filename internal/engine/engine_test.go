package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quayside/internal/common"
	"quayside/internal/events"
)

// recordingObserver collects every event it receives, in dispatch order,
// for assertion against the worked scenarios.
type recordingObserver struct {
	newOrders []events.NewOrderEvent
	cancels   []events.CancelEvent
	matches   []events.MatchEvent
}

func (r *recordingObserver) OnNewOrder(evt events.NewOrderEvent)     { r.newOrders = append(r.newOrders, evt) }
func (r *recordingObserver) OnOrderCancelled(evt events.CancelEvent) { r.cancels = append(r.cancels, evt) }
func (r *recordingObserver) OnOrderMatched(evt events.MatchEvent)    { r.matches = append(r.matches, evt) }

func newTestEngine() (*Engine, *recordingObserver) {
	e := New()
	e.InitialiseMarkets([]string{"BTC-USD"})
	rec := &recordingObserver{}
	e.RegisterObserver(rec)
	return e, rec
}

func TestPopulateWithoutMatching(t *testing.T) {
	e, rec := newTestEngine()

	results := []common.PlaceResult{
		e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 10, Volume: 2}),
		e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 11, Volume: 2}),
		e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 20, Volume: 2}),
		e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 21, Volume: 2}),
	}

	for _, r := range results {
		assert.Equal(t, common.Placed, r)
	}
	require.Len(t, rec.newOrders, 4)
	for i, evt := range rec.newOrders {
		assert.Equal(t, common.OrderID(i), evt.OrderID)
	}
	assert.Empty(t, rec.matches)
	assert.Empty(t, rec.cancels)
}

func TestCancellation(t *testing.T) {
	e, rec := newTestEngine()
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 10, Volume: 2})
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 11, Volume: 2})
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 20, Volume: 2})
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 21, Volume: 2})

	assert.Equal(t, common.CancelledOK, e.Cancel(1))
	assert.Equal(t, common.CancelledOK, e.Cancel(3))
	assert.Equal(t, common.NotFound, e.Cancel(1000))

	require.Len(t, rec.cancels, 2)
	assert.Equal(t, common.OrderID(1), rec.cancels[0].OrderID)
	assert.Equal(t, common.OrderID(3), rec.cancels[1].OrderID)
}

func TestInputRejection(t *testing.T) {
	e, rec := newTestEngine()

	r1 := e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 0, Volume: 2})
	r2 := e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 11, Volume: 0})
	r3 := e.Place(common.Order{Market: "BTC-NOTVALID", Side: common.Bid, Price: 11, Volume: 0})

	assert.Equal(t, common.Cancelled, r1)
	assert.Equal(t, common.Cancelled, r2)
	assert.Equal(t, common.Cancelled, r3)
	assert.Empty(t, rec.newOrders)
	assert.Equal(t, 0, e.OrderCount())
}

func TestAggressorBidWalksAskSide(t *testing.T) {
	e, rec := newTestEngine()
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 10, Volume: 2}) // id 0
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 11, Volume: 2}) // id 1
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 20, Volume: 1}) // id 2
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 20, Volume: 1}) // id 3
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 21, Volume: 2}) // id 4

	result := e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 21, Volume: 3}) // id 5
	assert.Equal(t, common.Matched, result)

	require.Len(t, rec.matches, 3)
	assert.Equal(t, events.MatchEvent{Market: "BTC-USD", BidID: 5, AskID: 2, Price: 20, Volume: 1, Side: common.Ask}, rec.matches[0])
	assert.Equal(t, events.MatchEvent{Market: "BTC-USD", BidID: 5, AskID: 3, Price: 20, Volume: 1, Side: common.Ask}, rec.matches[1])
	assert.Equal(t, events.MatchEvent{Market: "BTC-USD", BidID: 5, AskID: 4, Price: 21, Volume: 1, Side: common.Ask}, rec.matches[2])

	// Aggressor bid (id 5) is fully consumed: 3 = 1+1+1.
	assert.Equal(t, common.NotFound, e.Cancel(5))
	// Ask id 4 has 1 unit remaining at price 21.
	market, _ := e.Market("BTC-USD")
	level, ok := market.Asks.Best()
	require.True(t, ok)
	assert.Equal(t, common.Price(21), level.Price)
	front, ok := level.Queue.Front()
	require.True(t, ok)
	assert.Equal(t, common.OrderID(4), front.ID)
	assert.Equal(t, common.Volume(1), front.Remaining)
}

func TestAggressorAskWalksBidSide(t *testing.T) {
	e, rec := newTestEngine()
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 10, Volume: 2}) // id 0
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 11, Volume: 1}) // id 1
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 20, Volume: 1}) // id 2
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 21, Volume: 1}) // id 3

	result := e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 10, Volume: 2}) // id 4
	assert.Equal(t, common.Matched, result)

	require.Len(t, rec.matches, 2)
	assert.Equal(t, events.MatchEvent{Market: "BTC-USD", BidID: 1, AskID: 4, Price: 11, Volume: 1, Side: common.Bid}, rec.matches[0])
	assert.Equal(t, events.MatchEvent{Market: "BTC-USD", BidID: 0, AskID: 4, Price: 10, Volume: 1, Side: common.Bid}, rec.matches[1])

	// Bid id 0 retains 1 unit remaining at price 10; ask id 4 fully consumed.
	market, _ := e.Market("BTC-USD")
	level, ok := market.Bids.Best()
	require.True(t, ok)
	assert.Equal(t, common.Price(10), level.Price)
	front, ok := level.Queue.Front()
	require.True(t, ok)
	assert.Equal(t, common.OrderID(0), front.ID)
	assert.Equal(t, common.Volume(1), front.Remaining)

	assert.Equal(t, common.NotFound, e.Cancel(4))
}

func TestEqualVolumeTotalCollapse(t *testing.T) {
	e, rec := newTestEngine()
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 10, Volume: 1}) // id 0
	result := e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 10, Volume: 1}) // id 1

	assert.Equal(t, common.Matched, result)
	require.Len(t, rec.matches, 1)
	assert.Equal(t, common.OrderID(0), rec.matches[0].BidID)
	assert.Equal(t, common.OrderID(1), rec.matches[0].AskID)
	assert.Equal(t, common.Price(10), rec.matches[0].Price)
	assert.Equal(t, common.Volume(1), rec.matches[0].Volume)

	market, _ := e.Market("BTC-USD")
	assert.True(t, market.Bids.Empty())
	assert.True(t, market.Asks.Empty())
	assert.Equal(t, 0, e.OrderCount())
}

func TestOrderIDsStrictlyIncreasing(t *testing.T) {
	e, _ := newTestEngine()
	var last common.OrderID
	for i := 0; i < 5; i++ {
		before := last
		e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: common.Price(10 + i), Volume: 1})
		last = e.nextID - 1
		if i > 0 {
			assert.Greater(t, last, before)
		}
	}
}

func TestBookNeverCrossedAfterPlace(t *testing.T) {
	e, _ := newTestEngine()
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 10, Volume: 5})
	e.Place(common.Order{Market: "BTC-USD", Side: common.Ask, Price: 20, Volume: 5})
	e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 25, Volume: 3})

	market, _ := e.Market("BTC-USD")
	bid, hasBid := market.BestBid()
	ask, hasAsk := market.BestAsk()
	if hasBid && hasAsk {
		assert.Less(t, bid, ask)
	}
}

func TestPlaceThenCancelRoundTrip(t *testing.T) {
	e, _ := newTestEngine()
	result := e.Place(common.Order{Market: "BTC-USD", Side: common.Bid, Price: 10, Volume: 1})
	require.Equal(t, common.Placed, result)

	assert.Equal(t, common.CancelledOK, e.Cancel(0))
	assert.Equal(t, common.NotFound, e.Cancel(0))
	assert.Equal(t, 0, e.OrderCount())
}
