package stream

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrMalformedPayload reports a data line whose payload is not valid JSON.
// The relay treats this as fatal for the exchange's persistence step: mixed
// JSON and non-JSON content cannot be merged into a transcript.
var ErrMalformedPayload = errors.New("malformed upstream payload: not valid JSON")

// Decoder turns upstream stream lines into downstream wire frames while
// buffering the decoded events for post-stream aggregation. A Decoder holds
// the state of exactly one exchange; create a fresh one per exchange and
// never share it.
type Decoder struct {
	events []Event
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeLine processes one upstream line (transport delimiter already
// stripped) and returns the frame to forward downstream.
//
//   - Blank lines are suppressed: nil frame, no event.
//   - Comment lines (leading ':') become keep-alive frames, no event.
//   - Data lines have an optional "data:" marker stripped; the remaining
//     payload must be JSON and is re-framed byte-identical apart from the
//     marker and surrounding whitespace.
func (d *Decoder) DecodeLine(line string) ([]byte, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, ":") {
		return []byte(trimmed + "\n\n"), nil
	}

	payload := strings.TrimSpace(strings.TrimPrefix(trimmed, "data:"))
	if !json.Valid([]byte(payload)) {
		return nil, ErrMalformedPayload
	}

	d.events = append(d.events, ParseEvent([]byte(payload)))
	return []byte("data: " + payload + "\n\n"), nil
}

// Events returns the events buffered so far, in arrival order.
func (d *Decoder) Events() []Event {
	return d.events
}
