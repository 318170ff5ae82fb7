package model

import "time"

// EventType classifies a focus-session event
type EventType string

const (
	EventDistraction   EventType = "distraction"
	EventStreakSuccess EventType = "streak_success"
	EventStreakBreak   EventType = "streak_break"
)

// FocusEvent is a user event logged for recommendations
type FocusEvent struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	UserID          string            `json:"userId" bson:"userId"`
	Type            EventType         `json:"eventType" bson:"eventType"`
	Details         map[string]string `json:"details,omitempty" bson:"details,omitempty"`
	Recommendations []string          `json:"recommendations" bson:"recommendations"`
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
}
