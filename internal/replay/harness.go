package replay

import (
	"bufio"
	"context"
	"io"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"quayside/internal/engine"
)

// commandMessage is one parsed command in flight from a pool worker to
// the single serializing consumer goroutine.
type commandMessage struct {
	correlationID string
	session       string
	cmd           Command
}

// Harness drives an Engine from one or more line-oriented streams. Input
// is read concurrently by a bounded worker pool, but every command is
// applied to the Engine from a single goroutine, so Engine never sees
// concurrent calls — the same coarse-serialization shape the teacher's
// internal/net/server.go gives its connection handlers, adapted here
// from "one goroutine per socket" to "one goroutine per replay session".
type Harness struct {
	eng      *engine.Engine
	pool     *workerPool
	commands chan commandMessage
	t        *tomb.Tomb
}

// NewHarness builds a harness around eng with a default-sized worker
// pool. eng should not already be in use by another caller.
func NewHarness(eng *engine.Engine) *Harness {
	return &Harness{
		eng:      eng,
		pool:     newWorkerPool(defaultPoolSize),
		commands: make(chan commandMessage, 64),
	}
}

// Start launches the pool and the consumer goroutine, supervised by a
// tomb derived from ctx: cancelling ctx tears the harness down. It
// returns a context that is done once the tomb starts dying, mirroring
// tomb.WithContext's usual pairing.
func (h *Harness) Start(ctx context.Context) context.Context {
	t, tctx := tomb.WithContext(ctx)
	h.t = t

	t.Go(func() error {
		h.pool.run(t, h.commands)
		return nil
	})
	t.Go(func() error {
		return h.consume(t)
	})

	return tctx
}

// Submit enqueues r for parsing under session's label and returns a
// channel that is closed once every line of r has been read and handed
// off (not necessarily yet applied to the engine). Start must have been
// called first.
func (h *Harness) Submit(session string, r io.Reader) <-chan struct{} {
	done := make(chan struct{})
	scanner := bufio.NewScanner(r)

	select {
	case h.pool.tasks <- readerTask{session: session, reader: scanner, done: done}:
	case <-h.t.Dying():
		close(done)
	}
	return done
}

// Stop signals the harness to shut down once its goroutines observe it.
func (h *Harness) Stop() {
	h.t.Kill(nil)
}

// Wait blocks until the harness's tomb is dead, returning the first
// non-nil error reported by any tracked goroutine, if any.
func (h *Harness) Wait() error {
	return h.t.Wait()
}

func (h *Harness) consume(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case msg := <-h.commands:
			h.apply(msg)
		}
	}
}

func (h *Harness) apply(msg commandMessage) {
	logEvt := log.Info().
		Str("correlation_id", msg.correlationID).
		Str("session", msg.session)

	switch msg.cmd.Kind {
	case CommandInit:
		h.eng.InitialiseMarkets(msg.cmd.Markets)
		logEvt.Strs("markets", msg.cmd.Markets).Msg("markets initialised")

	case CommandPlace:
		result := h.eng.Place(msg.cmd.Order)
		logEvt.Str("order", msg.cmd.Order.String()).Str("result", result.String()).Msg("order placed")

	case CommandCancel:
		result := h.eng.Cancel(msg.cmd.OrderID)
		logEvt.Uint64("order_id", uint64(msg.cmd.OrderID)).Str("result", result.String()).Msg("cancel processed")
	}
}
