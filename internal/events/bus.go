package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics for cross-component signaling. Services publish after a state
// change; interested components subscribe and re-read persisted state.
const (
	TopicRoundsUpdated      = "rounds.updated"
	TopicProgressUpdated    = "progress.updated"
	TopicActivityUpdated    = "activity.updated"
	TopicLeaderboardRefresh = "leaderboard.refresh"
)

// Event is the payload carried on every topic
type Event struct {
	UserID int64 `json:"userId"`
}

// Bus is an in-process pub/sub bus backed by watermill's GoChannel
type Bus struct {
	pubSub *gochannel.GoChannel
}

// NewBus creates a new in-process event bus
func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
	}
}

// Publish emits a fire-and-forget event on a topic. Publish failures are
// logged, never returned: a state change must not fail on signaling.
func (b *Bus) Publish(topic string, userID int64) {
	payload, err := json.Marshal(Event{UserID: userID})
	if err != nil {
		log.Printf("events: failed to encode %s event: %v", topic, err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(topic, msg); err != nil {
		log.Printf("events: failed to publish %s event: %v", topic, err)
	}
}

// Subscribe returns a channel of messages for a topic. The channel closes
// when ctx is cancelled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

// Decode parses an event payload
func Decode(msg *message.Message) (Event, error) {
	var evt Event
	err := json.Unmarshal(msg.Payload, &evt)
	return evt, err
}

// Close shuts down the bus and closes all subscriber channels
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
