// Package notify carries fire-and-forget events out of the core after a
// mutation commits. Delivery is best-effort: a sink must never fail or block
// the request that produced the event.
package notify

// Event names the board events published after successful mutations.
type Event string

const (
	EventTaskCreated  Event = "taskCreated"
	EventTaskUpdated  Event = "taskUpdated"
	EventTaskClaimed  Event = "taskClaimed"
	EventTaskDeleted  Event = "taskDeleted"
	EventNotification Event = "notification"
)

// Sink receives board events. Emit broadcasts; EmitTo targets one user.
type Sink interface {
	Emit(event Event, payload interface{})
	EmitTo(userID uint64, event Event, payload interface{})
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(Event, interface{})           {}
func (NopSink) EmitTo(uint64, Event, interface{}) {}
