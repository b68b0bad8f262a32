package models

import (
	"encoding/json"
	"testing"
)

func TestDecodeAnswerRecordEventSequence(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"search_results","data":[{"id":"sr-1","title":"Sutta","text":"excerpt"}]},
		{"type":"token","data":"Hello "},
		{"type":"token","data":"world"},
		{"type":"done","data":{}}
	]`)

	rec := DecodeAnswerRecord(raw)

	if rec.Kind != AnswerEvents {
		t.Fatalf("Expected AnswerEvents, got %v", rec.Kind)
	}
	if rec.Answer != "Hello world" {
		t.Errorf("Expected accumulated answer %q, got %q", "Hello world", rec.Answer)
	}
	if len(rec.SearchResults) != 1 || rec.SearchResults[0].Title != "Sutta" {
		t.Errorf("Unexpected search results: %+v", rec.SearchResults)
	}
	if len(rec.Events) != 4 {
		t.Errorf("Expected 4 events, got %d", len(rec.Events))
	}
}

func TestDecodeAnswerRecordLegacyObject(t *testing.T) {
	raw := json.RawMessage(`{"answer":"An old answer","search_results":[{"id":"sr-2","title":"Note","text":"body"}]}`)

	rec := DecodeAnswerRecord(raw)

	if rec.Kind != AnswerLegacy {
		t.Fatalf("Expected AnswerLegacy, got %v", rec.Kind)
	}
	if rec.Answer != "An old answer" {
		t.Errorf("Unexpected answer: %q", rec.Answer)
	}
	if len(rec.SearchResults) != 1 {
		t.Errorf("Expected 1 search result, got %d", len(rec.SearchResults))
	}
}

func TestDecodeAnswerRecordBareString(t *testing.T) {
	rec := DecodeAnswerRecord(json.RawMessage(`"just text"`))

	if rec.Kind != AnswerLegacy {
		t.Fatalf("Expected AnswerLegacy, got %v", rec.Kind)
	}
	if rec.Answer != "just text" {
		t.Errorf("Unexpected answer: %q", rec.Answer)
	}
}

func TestDecodeAnswerRecordGarbage(t *testing.T) {
	rec := DecodeAnswerRecord(json.RawMessage(`42`))

	if rec.Kind != AnswerLegacy {
		t.Fatalf("Expected AnswerLegacy fallback, got %v", rec.Kind)
	}
	if rec.Answer != "" {
		t.Errorf("Expected empty answer, got %q", rec.Answer)
	}
}

func TestDeviceTypeValid(t *testing.T) {
	cases := []struct {
		dt   DeviceType
		want bool
	}{
		{DeviceWeb, true},
		{DeviceMobileApp, true},
		{DeviceType("desktop"), false},
		{DeviceType(""), false},
	}

	for _, tc := range cases {
		if got := tc.dt.Valid(); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.dt, got, tc.want)
		}
	}
}
