package service

// Push message types
const (
	MsgProfileResolved = "profile_resolved"
	MsgRecommendations = "recommendations"
)

// Broadcaster interface for WebSocket pushes (avoids import cycle)
type Broadcaster interface {
	SendToUser(userID string, msgType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) SendToUser(string, string, interface{}) {}
