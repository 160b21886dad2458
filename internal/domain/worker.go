package domain

import "time"

// Worker is a read-only directory entry. The PIN is the public
// identity used by the voice client; the worker id is the internal
// reference key.
type Worker struct {
	WorkerID  int64     `bson:"workerId" json:"workerId"`
	PIN       int       `bson:"pin" json:"pin"`
	Name      string    `bson:"name" json:"name"`
	Role      string    `bson:"role" json:"role"`
	Team      string    `bson:"team,omitempty" json:"team,omitempty"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
