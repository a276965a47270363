// Package replay implements a textual command language for driving an
// Engine from a line-oriented stream (a file or stdin), standing in for
// the "external collaborator" spec.md describes as the engine's only
// caller. It is deliberately outside internal/engine: the engine package
// has no dependency on it.
package replay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"quayside/internal/common"
)

var (
	// ErrEmptyLine is returned by ParseLine for blank or comment-only
	// input; callers should skip it rather than treat it as failure.
	ErrEmptyLine = errors.New("replay: empty line")
	// ErrUnknownCommand is returned when the first token isn't a
	// recognised verb.
	ErrUnknownCommand = errors.New("replay: unknown command")
	// ErrMalformedCommand is returned when a recognised verb has the
	// wrong number or shape of arguments.
	ErrMalformedCommand = errors.New("replay: malformed command")
)

// CommandKind enumerates the verbs the replay language understands.
type CommandKind int

const (
	// CommandInit registers one or more markets.
	CommandInit CommandKind = iota
	// CommandPlace submits a new limit order.
	CommandPlace
	// CommandCancel cancels a resting order by id.
	CommandCancel
)

// Command is one parsed line of the replay language.
type Command struct {
	Kind    CommandKind
	Markets []string       // CommandInit
	Order   common.Order   // CommandPlace
	OrderID common.OrderID // CommandCancel
}

// ParseLine parses one line of the replay language:
//
//	INIT market[,market...]
//	PLACE market BID|ASK price volume
//	CANCEL order-id
//
// Blank lines and lines starting with '#' return ErrEmptyLine.
func ParseLine(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, ErrEmptyLine
	}

	fields := strings.Fields(line)
	verb := strings.ToUpper(fields[0])

	switch verb {
	case "INIT":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: INIT wants one comma-separated market list, got %d fields", ErrMalformedCommand, len(fields))
		}
		return Command{Kind: CommandInit, Markets: strings.Split(fields[1], ",")}, nil

	case "PLACE":
		if len(fields) != 5 {
			return Command{}, fmt.Errorf("%w: PLACE wants market side price volume, got %d fields", ErrMalformedCommand, len(fields))
		}
		side, err := parseSide(fields[2])
		if err != nil {
			return Command{}, err
		}
		price, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: bad price %q: %v", ErrMalformedCommand, fields[3], err)
		}
		volume, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: bad volume %q: %v", ErrMalformedCommand, fields[4], err)
		}
		return Command{
			Kind: CommandPlace,
			Order: common.Order{
				Market: fields[1],
				Side:   side,
				Price:  common.Price(price),
				Volume: common.Volume(volume),
			},
		}, nil

	case "CANCEL":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: CANCEL wants one order id, got %d fields", ErrMalformedCommand, len(fields))
		}
		id, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: bad order id %q: %v", ErrMalformedCommand, fields[1], err)
		}
		return Command{Kind: CommandCancel, OrderID: common.OrderID(id)}, nil

	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}

func parseSide(token string) (common.Side, error) {
	switch strings.ToUpper(token) {
	case "BID":
		return common.Bid, nil
	case "ASK":
		return common.Ask, nil
	default:
		return 0, fmt.Errorf("%w: side must be BID or ASK, got %q", ErrMalformedCommand, token)
	}
}
