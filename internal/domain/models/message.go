// internal/domain/models/message.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaKind classifies message attachments.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media describes an attachment stored in the external blob store. Only the
// descriptor lives here; upload and delivery are outside this service.
type Media struct {
	URL      string    `bson:"url" json:"url"`
	Kind     MediaKind `bson:"kind" json:"kind"`
	MIMEType string    `bson:"mime_type,omitempty" json:"mime_type,omitempty"`
	Filename string    `bson:"filename,omitempty" json:"filename,omitempty"`
	Size     int64     `bson:"size,omitempty" json:"size,omitempty"`
}

// ReadReceipt records one user having seen a message.
type ReadReceipt struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	At     time.Time          `bson:"at" json:"at"`
}

// Message is an atomic unit of communication. Exactly one of ReceiverID and
// GroupID is set; construct messages through a Target so the invariant is
// enforced before anything reaches the collection.
//
// Read is the direct-message fast path; ReadBy is the per-reader log used
// for group fan-out. _id is monotonic with creation time and doubles as the
// pagination cursor.
type Message struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID  `bson:"sender_id" json:"sender_id"`
	ReceiverID *primitive.ObjectID `bson:"receiver_id,omitempty" json:"receiver_id,omitempty"`
	GroupID    *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Content    string              `bson:"content" json:"content"`
	Media      *Media              `bson:"media,omitempty" json:"media,omitempty"`
	Read       bool                `bson:"read" json:"read"`
	ReadBy     []ReadReceipt       `bson:"read_by,omitempty" json:"read_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ErrInvalidTarget is returned when a message target is neither a direct
// recipient nor a group (the zero Target).
var ErrInvalidTarget = errors.New("message target must be a user or a group")

// Target is the destination of a message: either a direct counterparty or a
// group, never both. The zero value is invalid.
type Target struct {
	receiver primitive.ObjectID
	group    primitive.ObjectID
}

// DirectTarget addresses a message to a single user.
func DirectTarget(receiverID primitive.ObjectID) Target {
	return Target{receiver: receiverID}
}

// GroupTarget addresses a message to a group thread.
func GroupTarget(groupID primitive.ObjectID) Target {
	return Target{group: groupID}
}

// Receiver returns the direct counterparty, if this is a direct target.
func (t Target) Receiver() (primitive.ObjectID, bool) {
	return t.receiver, !t.receiver.IsZero()
}

// Group returns the group, if this is a group target.
func (t Target) Group() (primitive.ObjectID, bool) {
	return t.group, !t.group.IsZero()
}

// Validate rejects the zero Target. The constructors make a both-set Target
// impossible, so exactly-one-of is guaranteed for any Target that passes.
func (t Target) Validate() error {
	if t.receiver.IsZero() && t.group.IsZero() {
		return ErrInvalidTarget
	}
	return nil
}

// IsDirect reports whether the message belongs to a 1:1 thread.
func (m Message) IsDirect() bool { return m.ReceiverID != nil }

// ReadByUser reports whether the given user appears in the readBy log.
func (m Message) ReadByUser(userID primitive.ObjectID) bool {
	for _, r := range m.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
