package core

import "fmt"

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Entity names the kind of record an event refers to.
type Entity string

const (
	EntityNote     Entity = "note"
	EntitySettings Entity = "settings"
)

// Event represents a change in the store.
// ID is zero for settings events.
type Event struct {
	Type      EventType
	Entity    Entity
	ID        int64
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.Entity == EntitySettings {
		return fmt.Sprintf("%s %s", e.Type, e.Entity)
	}
	return fmt.Sprintf("%s %s %d", e.Type, e.Entity, e.ID)
}

type contextKey string

// ChangeReasonKey is the context key for passing specific change reasons (commit messages) during save/delete operations.
const ChangeReasonKey contextKey = "change_reason"
