package ws

import "sync"

// Subscriber abstracts a streaming client.
type Subscriber interface {
	Send([]byte) error
	Close()
}

// Hub fans registration events out to subscribers grouped by camp ID.
type Hub struct {
	mu        sync.RWMutex
	clients   map[string]map[Subscriber]struct{}
	register  chan subscription
	unreg     chan subscription
	broadcast chan message
}

// message couples payload with camp identifier.
type message struct {
	campID  string
	payload []byte
}

// subscription defines register/unregister requests.
type subscription struct {
	campID string
	client Subscriber
}

// NewHub creates an initialized Hub.
func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[string]map[Subscriber]struct{}),
		register:  make(chan subscription),
		unreg:     make(chan subscription),
		broadcast: make(chan message),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case sub := <-h.register:
			if _, ok := h.clients[sub.campID]; !ok {
				h.clients[sub.campID] = make(map[Subscriber]struct{})
			}
			h.clients[sub.campID][sub.client] = struct{}{}
		case sub := <-h.unreg:
			if clients, ok := h.clients[sub.campID]; ok {
				delete(clients, sub.client)
				if len(clients) == 0 {
					delete(h.clients, sub.campID)
				}
			}
		case msg := <-h.broadcast:
			if clients, ok := h.clients[msg.campID]; ok {
				for c := range clients {
					if err := c.Send(msg.payload); err != nil {
						c.Close()
						delete(clients, c)
					}
				}
				if len(clients) == 0 {
					delete(h.clients, msg.campID)
				}
			}
		}
	}
}

// Register adds a client to a camp stream.
func (h *Hub) Register(campID string, client Subscriber) {
	h.register <- subscription{campID: campID, client: client}
}

// Unregister removes a client.
func (h *Hub) Unregister(campID string, client Subscriber) {
	h.unreg <- subscription{campID: campID, client: client}
}

// Broadcast sends payload to all subscribers of a camp.
func (h *Hub) Broadcast(campID string, payload []byte) {
	h.broadcast <- message{campID: campID, payload: payload}
}
