package flash

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notification/pkg/notification"
)

// Item is one flashed message waiting for the next request.
type Item struct {
	ID        uuid.UUID                `json:"id"`
	Container string                   `json:"container"`
	Message   notification.MessageData `json:"message"`
	CreatedAt time.Time                `json:"created_at"`
}

// NewItem captures m as flashed in container.
func NewItem(container string, m *notification.Message) Item {
	return Item{
		ID:        uuid.New(),
		Container: container,
		Message:   m.Data(),
		CreatedAt: time.Now(),
	}
}

// Restore adds the item to its container as an instant message.
// Items of types the container does not register are dropped.
func (it Item) Restore(m *notification.Manager) {
	msg := it.Message.ToMessage().SetFlashable(false)
	m.Container(it.Container).AddMessage(msg.Type(), msg)
}
