package domain

import "time"

// Audit actions written to the work queue history
const (
	ActionCreated   = "created"
	ActionAssigned  = "assigned"
	ActionStarted   = "started"
	ActionCompleted = "completed"
	ActionCancelled = "cancelled"
)

// AuditEntry is one immutable work queue history record. Writes are
// best-effort: a failed audit write warns and never rolls back the
// triggering transition.
type AuditEntry struct {
	EntryID        string    `bson:"entryId" json:"entryId"`
	TaskID         int64     `bson:"taskId" json:"taskId"`
	WorkerPIN      *int      `bson:"workerPin,omitempty" json:"workerPin,omitempty"`
	Action         string    `bson:"action" json:"action"`
	OldStatus      string    `bson:"oldStatus,omitempty" json:"oldStatus,omitempty"`
	NewStatus      string    `bson:"newStatus,omitempty" json:"newStatus,omitempty"`
	QuantityBefore *int      `bson:"quantityBefore,omitempty" json:"quantityBefore,omitempty"`
	QuantityAfter  *int      `bson:"quantityAfter,omitempty" json:"quantityAfter,omitempty"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Assignment records the binding of a worker to a task. It is released
// (marked completed) when the task completes or is cancelled.
type Assignment struct {
	AssignmentID string    `bson:"assignmentId" json:"assignmentId"`
	TaskID       int64     `bson:"taskId" json:"taskId"`
	WorkerPIN    int       `bson:"workerPin" json:"workerPin"`
	WorkerID     int64     `bson:"workerId" json:"workerId"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
