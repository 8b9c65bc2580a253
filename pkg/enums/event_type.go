package enums

// EventType names an audit event appended to the events log.
type EventType string

const (
	EventTypeUserRegistered  EventType = "user_registered"
	EventTypeIntakeStarted   EventType = "intake_started"
	EventTypeIntakeCompleted EventType = "intake_completed"
	EventTypeCheckoutCreated EventType = "checkout_created"
)

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}
