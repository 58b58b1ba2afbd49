package realtime

import (
	"context"
	"log"

	"clubdesk/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const changeChannel = "clubdesk:changed"

// SnapshotSource reloads the full slot map after a change. Subscribers
// always receive complete snapshots and replace whatever they held before.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (map[string]domain.SlotDetails, error)
}

// SnapshotMessage is the wire format pushed over the websocket.
type SnapshotMessage struct {
	Type     string                        `json:"type"`
	Bookings map[string]domain.SlotDetails `json:"bookings"`
}

// Watcher implements the booking core's change notifier: every committed
// mutation triggers a reload-and-broadcast, and with Redis configured the
// signal also fans out to the other instances.
type Watcher struct {
	source     SnapshotSource
	hub        *Hub
	rdb        *redis.Client
	instanceID string
}

// NewWatcher takes a nil rdb for single-instance deployments.
func NewWatcher(source SnapshotSource, hub *Hub, rdb *redis.Client) *Watcher {
	return &Watcher{
		source:     source,
		hub:        hub,
		rdb:        rdb,
		instanceID: uuid.NewString(),
	}
}

func (w *Watcher) BookingsChanged(ctx context.Context) {
	w.push(ctx)

	if w.rdb != nil {
		if err := w.rdb.Publish(ctx, changeChannel, w.instanceID).Err(); err != nil {
			log.Printf("realtime: publish failed: %v", err)
		}
	}
}

// Run listens for change signals from other instances until ctx ends.
func (w *Watcher) Run(ctx context.Context) {
	if w.rdb == nil {
		return
	}

	sub := w.rdb.Subscribe(ctx, changeChannel)
	ch := sub.Channel()

	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				// our own publishes already triggered a local push
				if msg.Payload == w.instanceID {
					continue
				}
				w.push(ctx)
			}
		}
	}()
}

// SendSnapshot delivers the current snapshot to a single fresh connection.
// The write goes through the hub so it cannot collide with a broadcast.
func (w *Watcher) SendSnapshot(ctx context.Context, conn *websocket.Conn) error {
	snap, err := w.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	return w.hub.Send(conn, SnapshotMessage{Type: "bookings", Bookings: snap})
}

func (w *Watcher) push(ctx context.Context) {
	snap, err := w.source.Snapshot(ctx)
	if err != nil {
		log.Printf("realtime: snapshot reload failed: %v", err)
		return
	}
	w.hub.Broadcast(SnapshotMessage{Type: "bookings", Bookings: snap})
}
