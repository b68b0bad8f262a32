package stream

import (
	"encoding/json"
)

// EventType tags the payload shape of an upstream stream event.
type EventType string

const (
	EventToken         EventType = "token"
	EventSearchResults EventType = "search_results"
	EventDone          EventType = "done"
	EventOther         EventType = "other"
)

// SearchResult is one citation attached to an answer. The upstream service
// may omit any field; absent fields decode to empty strings.
type SearchResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Event is one decoded upstream stream event. Raw holds the payload exactly
// as received so re-serialization never alters unrecognized content.
type Event struct {
	Type    EventType
	Text    string         // token text
	Results []SearchResult // search_results payload
	Raw     json.RawMessage
}

type eventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParseEvent classifies a JSON payload into a typed event. Payloads that are
// not objects, carry no "type", or carry an unknown type are kept as opaque
// EventOther events rather than rejected.
func ParseEvent(payload []byte) Event {
	ev := Event{Type: EventOther, Raw: append(json.RawMessage(nil), payload...)}

	var env eventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return ev
	}

	switch EventType(env.Type) {
	case EventToken:
		var text string
		if err := json.Unmarshal(env.Data, &text); err != nil {
			return ev
		}
		ev.Type = EventToken
		ev.Text = text
	case EventSearchResults:
		var results []SearchResult
		if err := json.Unmarshal(env.Data, &results); err != nil {
			return ev
		}
		ev.Type = EventSearchResults
		ev.Results = results
	case EventDone:
		ev.Type = EventDone
	}
	return ev
}

// MarshalJSON re-emits the original payload byte-identical when present.
// Synthesized events (the merged token) are built from their fields.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Raw != nil {
		return e.Raw, nil
	}
	data, err := json.Marshal(e.Text)
	if err != nil {
		return nil, err
	}
	return json.Marshal(eventEnvelope{Type: string(e.Type), Data: data})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	*e = ParseEvent(data)
	return nil
}
