package events

import "encoding/json"

// Event name constants
const (
	EntryAdded    = "entry.added"
	EntryRemoved  = "entry.removed"
	ConfigChanged = "config.changed"
	ReminderDue   = "reminder.due"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// EntryEvent is the payload of entry.added and entry.removed.
type EntryEvent struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Ts   int64  `json:"ts"`
}

// ConfigEvent is the payload of config.changed.
type ConfigEvent struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Ts    int64  `json:"ts"`
}

// ReminderEvent is the payload of reminder.due. DaysSinceLastEntry is -1
// when the journal is empty.
type ReminderEvent struct {
	DaysSinceLastEntry int    `json:"daysSinceLastEntry"`
	Message            string `json:"message"`
	Ts                 int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.EntryEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.ID, payload.Date)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
