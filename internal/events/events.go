// Package events publishes fleet notifications when artifacts or user
// records change. The server only publishes; fleet clients consume.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Topics the server publishes to.
const (
	TopicArtifactUploaded = "artifact.uploaded"
	TopicUserCreated      = "user.created"
	TopicUserDeleted      = "user.deleted"
)

// Backend defines the broker-agnostic publish operation.
type Backend interface {
	Publish(ctx context.Context, topic string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// ArtifactUploaded announces a new latest snapshot for a tool.
type ArtifactUploaded struct {
	Tool     string `json:"tool"`
	Snapshot string `json:"snapshot"`
	Uploader string `json:"uploader"`
}

// UserChanged announces a created or deleted user record.
type UserChanged struct {
	Username string `json:"username"`
}

// Notifier publishes typed events to a backend. Publish failures are
// logged and swallowed; notifications must never fail the request that
// triggered them. A nil Notifier is a valid no-op.
type Notifier struct {
	backend Backend
}

// NewNotifier constructs a Notifier for the provided backend.
func NewNotifier(backend Backend) *Notifier {
	return &Notifier{backend: backend}
}

// ArtifactUploaded announces a new snapshot for a tool.
func (n *Notifier) ArtifactUploaded(ctx context.Context, tool, snapshot, uploader string) {
	n.publish(ctx, TopicArtifactUploaded, ArtifactUploaded{
		Tool:     tool,
		Snapshot: snapshot,
		Uploader: uploader,
	}, map[string]string{"tool": tool})
}

// UserCreated announces a new user record.
func (n *Notifier) UserCreated(ctx context.Context, username string) {
	n.publish(ctx, TopicUserCreated, UserChanged{Username: username}, nil)
}

// UserDeleted announces a removed user record.
func (n *Notifier) UserDeleted(ctx context.Context, username string) {
	n.publish(ctx, TopicUserDeleted, UserChanged{Username: username}, nil)
}

// Close closes the underlying backend.
func (n *Notifier) Close() error {
	if n == nil || n.backend == nil {
		return nil
	}
	return n.backend.Close()
}

func (n *Notifier) publish(ctx context.Context, topic string, event any, attrs map[string]string) {
	if n == nil || n.backend == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		fmt.Fprintf(os.Stderr, "events: encode %s: %v\n", topic, err)
		return
	}
	if _, err := n.backend.Publish(ctx, topic, data, attrs); err != nil {
		fmt.Fprintf(os.Stderr, "events: publish %s: %v\n", topic, err)
	}
}
