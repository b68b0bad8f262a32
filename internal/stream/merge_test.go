package stream

import (
	"encoding/json"
	"testing"
)

func eventsFromLines(t *testing.T, lines ...string) []Event {
	t.Helper()
	d := NewDecoder()
	for _, line := range lines {
		if _, err := d.DecodeLine(line); err != nil {
			t.Fatalf("DecodeLine(%q) returned error: %v", line, err)
		}
	}
	return d.Events()
}

func TestMergeEmptyInput(t *testing.T) {
	if merged := Merge(nil); len(merged) != 0 {
		t.Errorf("Expected empty transcript, got %d events", len(merged))
	}
	if merged := Merge([]Event{}); len(merged) != 0 {
		t.Errorf("Expected empty transcript, got %d events", len(merged))
	}
}

func TestMergeTokensAndDone(t *testing.T) {
	events := eventsFromLines(t,
		`data: {"type":"token","data":"Hi"}`,
		`data: {"type":"token","data":" there"}`,
		`data: {"type":"done","data":{}}`,
	)

	merged := Merge(events)
	if len(merged) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(merged))
	}
	if merged[0].Type != EventToken || merged[0].Text != "Hi there" {
		t.Errorf("Expected merged token \"Hi there\", got %+v", merged[0])
	}
	if merged[1].Type != EventDone {
		t.Errorf("Expected done last, got %+v", merged[1])
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		t.Fatalf("Failed to marshal transcript: %v", err)
	}
	want := `[{"type":"token","data":"Hi there"},{"type":"done","data":{}}]`
	if string(raw) != want {
		t.Errorf("Expected %s, got %s", want, raw)
	}
}

func TestMergePreservesStructuralOrder(t *testing.T) {
	events := eventsFromLines(t,
		`data: {"type":"search_results","data":[]}`,
		`data: {"type":"token","data":"a"}`,
		`data: {"type":"token","data":"b"}`,
		`data: {"type":"done","data":{}}`,
	)

	merged := Merge(events)
	if len(merged) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(merged))
	}
	if merged[0].Type != EventSearchResults {
		t.Errorf("Expected search_results first, got %q", merged[0].Type)
	}
	if merged[1].Type != EventToken || merged[1].Text != "ab" {
		t.Errorf("Expected merged token second, got %+v", merged[1])
	}
	if merged[2].Type != EventDone {
		t.Errorf("Expected done last, got %q", merged[2].Type)
	}
}

func TestMergeNonTokenRelativeOrder(t *testing.T) {
	events := eventsFromLines(t,
		`data: {"kind":"first"}`,
		`data: {"type":"token","data":"x"}`,
		`data: {"kind":"second"}`,
		`data: {"type":"search_results","data":[{"id":"1"}]}`,
	)

	merged := Merge(events)
	if len(merged) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(merged))
	}
	if string(merged[0].Raw) != `{"kind":"first"}` {
		t.Errorf("Expected opaque event first, got %q", merged[0].Raw)
	}
	if string(merged[1].Raw) != `{"kind":"second"}` {
		t.Errorf("Expected opaque events in original relative order, got %q", merged[1].Raw)
	}
	if merged[2].Type != EventSearchResults {
		t.Errorf("Expected search_results third, got %q", merged[2].Type)
	}
	if merged[3].Type != EventToken || merged[3].Text != "x" {
		t.Errorf("Expected token appended after structural events, got %+v", merged[3])
	}
}

func TestMergeInvariants(t *testing.T) {
	events := eventsFromLines(t,
		`data: {"type":"token","data":"a"}`,
		`data: {"type":"search_results","data":[]}`,
		`data: {"type":"token","data":"b"}`,
		`data: {"type":"done","data":{}}`,
		`data: {"type":"token","data":"c"}`,
	)

	merged := Merge(events)

	tokens, dones := 0, 0
	for _, ev := range merged {
		switch ev.Type {
		case EventToken:
			tokens++
		case EventDone:
			dones++
		}
	}
	if tokens != 1 {
		t.Errorf("Expected at most one token event, got %d", tokens)
	}
	if dones != 1 {
		t.Errorf("Expected at most one done event, got %d", dones)
	}
	if merged[len(merged)-1].Type != EventDone {
		t.Errorf("Expected done retained as last element")
	}
	if merged[0].Type != EventToken && merged[0].Text != "abc" {
		// token carries all fragments in arrival order
		t.Errorf("Unexpected first event: %+v", merged[0])
	}
}

func TestMergeIdempotent(t *testing.T) {
	events := eventsFromLines(t,
		`data: {"type":"search_results","data":[{"id":"1","title":"t","text":"x"}]}`,
		`data: {"type":"token","data":"Hi"}`,
		`data: {"type":"token","data":" there"}`,
		`data: {"type":"done","data":{}}`,
	)

	once := Merge(events)
	twice := Merge(once)

	first, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("Failed to marshal transcript: %v", err)
	}
	second, err := json.Marshal(twice)
	if err != nil {
		t.Fatalf("Failed to marshal transcript: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("Merge not idempotent:\n first: %s\nsecond: %s", first, second)
	}
}

func TestMergeTokenOnly(t *testing.T) {
	events := eventsFromLines(t, `data: {"type":"token","data":"solo"}`)

	merged := Merge(events)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(merged))
	}
	if merged[0].Type != EventToken || merged[0].Text != "solo" {
		t.Errorf("Expected single token preserved, got %+v", merged[0])
	}
}
