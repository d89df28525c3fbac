package domain

// BroadcastMessage is the tagged union of realtime notifications emitted
// after a successful membership change. Exactly three kinds exist; the
// unexported method keeps the set closed.
type BroadcastMessage interface {
	broadcastMessage()
}

// MemberJoinedMessage tells an event's room subscribers that a user checked in.
type MemberJoinedMessage struct {
	EventID   string  `json:"eventId"`
	User      *User   `json:"user"`
	Attendees []*User `json:"attendees"`
}

// MemberLeftMessage tells an event's room subscribers that a user checked out.
type MemberLeftMessage struct {
	EventID   string  `json:"eventId"`
	User      *User   `json:"user"`
	Attendees []*User `json:"attendees"`
}

// EventChangedMessage tells every connected client that an event's attendee
// list changed.
type EventChangedMessage struct {
	EventID   string  `json:"eventId"`
	Attendees []*User `json:"attendees"`
}

func (MemberJoinedMessage) broadcastMessage() {}
func (MemberLeftMessage) broadcastMessage()   {}
func (EventChangedMessage) broadcastMessage() {}

// Broadcaster fans out a membership change to interested subscribers.
// Implementations must never block the caller: delivery is best-effort, and
// a slow subscriber is the broadcaster's problem, not the mutation's.
type Broadcaster interface {
	Broadcast(msg BroadcastMessage)
}
