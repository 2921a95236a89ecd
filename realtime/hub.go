package realtime

import (
	"sync"

	"campus-chat/config/logger"
	"campus-chat/dto"
)

const broadcastBuffer = 256

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one connected socket. Writes to it are serialized.
type Client struct {
	conn  Conn
	mu    sync.Mutex
	rooms map[string]bool
}

func (client *Client) write(frame dto.Event) error {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.conn.WriteJSON(frame)
}

type broadcastMessage struct {
	room  string
	all   bool
	frame dto.Event
}

// Hub tracks connected clients and the rooms they joined. Broadcasts are
// delivered by a single goroutine in the order they were queued.
type Hub struct {
	sync.Mutex
	Log       *logger.AppLogger
	rooms     map[string]map[*Client]bool
	clients   map[*Client]bool
	broadcast chan broadcastMessage
	done      chan struct{}
	closeOnce sync.Once
}

func NewHub(log *logger.AppLogger) *Hub {
	hub := &Hub{
		Log:       log,
		rooms:     make(map[string]map[*Client]bool),
		clients:   make(map[*Client]bool),
		broadcast: make(chan broadcastMessage, broadcastBuffer),
		done:      make(chan struct{}),
	}
	go hub.runBroadcast()
	return hub
}

func (hub *Hub) Register(conn Conn) *Client {
	client := &Client{conn: conn, rooms: make(map[string]bool)}

	hub.Lock()
	defer hub.Unlock()
	hub.clients[client] = true
	hub.Log.WS.Info.Info().Int("clients", len(hub.clients)).Msg("Client connected")
	return client
}

// Unregister removes the client from every room it joined.
func (hub *Hub) Unregister(client *Client) {
	hub.Lock()
	defer hub.Unlock()
	hub.removeLocked(client)
}

func (hub *Hub) removeLocked(client *Client) {
	if !hub.clients[client] {
		return
	}
	delete(hub.clients, client)
	for room := range client.rooms {
		if members, ok := hub.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(hub.rooms, room)
			}
		}
	}
	hub.Log.WS.Info.Info().Int("clients", len(hub.clients)).Msg("Client disconnected")
}

// Join adds the client to room. Rooms joined earlier are kept.
func (hub *Hub) Join(client *Client, room string) {
	hub.Lock()
	defer hub.Unlock()
	if !hub.clients[client] {
		return
	}
	if hub.rooms[room] == nil {
		hub.rooms[room] = make(map[*Client]bool)
	}
	hub.rooms[room][client] = true
	client.rooms[room] = true
	hub.Log.WS.Trace.Trace().
		Str("room", room).
		Int("members", len(hub.rooms[room])).
		Msg("Client joined room")
}

// RoomSize reports how many clients are in room.
func (hub *Hub) RoomSize(room string) int {
	hub.Lock()
	defer hub.Unlock()
	return len(hub.rooms[room])
}

// Send writes an event directly to one client.
func (hub *Hub) Send(client *Client, event string, data interface{}) error {
	return client.write(dto.Event{Event: event, Data: data})
}

func (hub *Hub) BroadcastToRoom(room, event string, data interface{}) {
	hub.enqueue(broadcastMessage{room: room, frame: dto.Event{Event: event, Data: data}})
}

func (hub *Hub) BroadcastAll(event string, data interface{}) {
	hub.enqueue(broadcastMessage{all: true, frame: dto.Event{Event: event, Data: data}})
}

func (hub *Hub) enqueue(message broadcastMessage) {
	select {
	case hub.broadcast <- message:
	case <-hub.done:
	}
}

// Close stops the broadcast loop and closes every connection.
func (hub *Hub) Close() {
	hub.closeOnce.Do(func() {
		close(hub.done)
		hub.Lock()
		defer hub.Unlock()
		for client := range hub.clients {
			_ = client.conn.Close()
			hub.removeLocked(client)
		}
	})
}

func (hub *Hub) runBroadcast() {
	for {
		select {
		case <-hub.done:
			return
		case message := <-hub.broadcast:
			hub.deliver(message)
		}
	}
}

func (hub *Hub) deliver(message broadcastMessage) {
	hub.Lock()
	targets := make([]*Client, 0)
	if message.all {
		for client := range hub.clients {
			targets = append(targets, client)
		}
	} else {
		for client := range hub.rooms[message.room] {
			targets = append(targets, client)
		}
	}
	hub.Unlock()

	for _, client := range targets {
		if err := client.write(message.frame); err != nil {
			hub.Log.WS.Warning.Warn().
				Err(err).
				Str("event", message.frame.Event).
				Msg("Error broadcasting message")
			_ = client.conn.Close()
			hub.Unregister(client)
		}
	}
}
