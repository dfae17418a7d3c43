package care

import "time"

type EventType string

const (
	EventPlantCreated     EventType = "plant.created"
	EventPlantDeleted     EventType = "plant.deleted"
	EventPlantsCleared    EventType = "plants.cleared"
	EventReminderComplete EventType = "reminder.completed"
	EventCareLogged       EventType = "care.logged"
)

// Event records something that happened to a user's plants. PlantID is empty
// for events that do not concern a single plant.
type Event struct {
	Type       EventType `json:"type"`
	EntityID   string    `json:"entityId"`
	PlantID    string    `json:"plantId,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
