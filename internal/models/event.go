package models

// Event types published on user and post lifecycle changes.
const (
	EventUserRegistered = "user.registered"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
)

// Event is the message published to Kafka
type Event struct {
	EventID    string `json:"event_id"`    // Unique event identifier
	Type       string `json:"type"`        // One of the Event* constants
	UserID     string `json:"user_id"`     // Acting user
	ResourceID string `json:"resource_id"` // User or post the event refers to
	Timestamp  int64  `json:"timestamp"`   // Unix seconds
}
