package mq

import (
	"context"
	"encoding/json"
	"log"

	"readira/rdx"
)

// Event is a domain notification published after a state change commits.
type Event struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	UserID     string `json:"user_id,omitempty"`
	Method     string `json:"method,omitempty"`
}

const channel = "readira-events"

// Notify publishes an event to Redis, best effort. Failures are logged and
// swallowed: notifications must never fail a committed request.
func Notify(eventName string, content Event) {
	content.Method = eventName

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Notify] marshal failed for %s: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Notify] publish failed for %s: %v", eventName, err)
	}
}

// StartEventLogger consumes the event channel and logs activity; a future
// worker can replace the log line with real fan-out.
func StartEventLogger() {
	sub := rdx.Conn.Subscribe(context.Background(), channel)
	ch := sub.Channel()

	for msg := range ch {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[EventLogger] bad payload: %v", err)
			continue
		}
		log.Printf("[EventLogger] %s %s %s", event.Method, event.EntityType, event.EntityID)
	}
}
