package usecase

// Broadcaster delivers realtime events to connected clients.
type Broadcaster interface {
	BroadcastToRoom(room, event string, data interface{})
	BroadcastAll(event string, data interface{})
}
