package stream

// Merge folds a raw event capture into the transcript that gets persisted:
// all token events collapse into a single token carrying their concatenated
// text, a done event (if any) moves to the end, and every other event keeps
// its original relative order. Merging an already-merged transcript is a
// no-op, and an empty capture yields an empty transcript.
func Merge(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}

	var (
		merged []Event
		text   string
		done   *Event
	)

	for _, ev := range events {
		switch ev.Type {
		case EventToken:
			text += ev.Text
		case EventDone:
			e := ev
			done = &e
		default:
			merged = append(merged, ev)
		}
	}

	if text != "" {
		merged = append(merged, Event{Type: EventToken, Text: text})
	}
	if done != nil {
		merged = append(merged, *done)
	}
	return merged
}
