package events

import (
	"encoding/json"
	"time"
)

// Actions carried by item change messages.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ItemEvent is a lightweight change notification. It carries only the item
// id and the action; consumers fetch the current state from the store.
type ItemEvent struct {
	Action    string    `json:"action"`
	ItemID    string    `json:"itemId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewItemEvent(action, itemID string) *ItemEvent {
	return &ItemEvent{
		Action:    action,
		ItemID:    itemID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ItemEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ItemEventFromJSON creates an event from JSON bytes
func ItemEventFromJSON(data []byte) (*ItemEvent, error) {
	var e ItemEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
