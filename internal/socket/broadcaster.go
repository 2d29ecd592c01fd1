package socket

import "log"

// Broadcaster provides high-level methods for publishing entity change
// events. It satisfies the service layer's ChangeBroadcaster interface.
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

var changeMessages = map[string][3]MessageType{
	"client":  {MessageClientCreated, MessageClientUpdated, MessageClientDeleted},
	"project": {MessageProjectCreated, MessageProjectUpdated, MessageProjectDeleted},
	"user":    {MessageUserCreated, MessageUserUpdated, MessageUserDeleted},
}

// RecordCreated broadcasts a creation event for the given resource.
func (b *Broadcaster) RecordCreated(resource string, record map[string]interface{}) {
	b.send(resource, 0, record)
}

// RecordUpdated broadcasts an update event for the given resource.
func (b *Broadcaster) RecordUpdated(resource string, record map[string]interface{}) {
	b.send(resource, 1, record)
}

// RecordDeleted broadcasts a deletion event carrying only the identifier.
func (b *Broadcaster) RecordDeleted(resource string, id string) {
	b.send(resource, 2, map[string]interface{}{"id": id})
}

func (b *Broadcaster) send(resource string, kind int, payload map[string]interface{}) {
	msgs, ok := changeMessages[resource]
	if !ok {
		log.Printf("[Broadcaster] Unknown resource %q, event dropped", resource)
		return
	}
	b.hub.Broadcast(msgs[kind], payload)
}
