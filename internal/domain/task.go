package domain

import (
	"fmt"
	"time"

	"github.com/wms-platform/voicepick-service/pkg/errors"
)

// TaskStatus is the lifecycle state of a work task
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusAssigned  TaskStatus = "assigned"
	StatusPicking   TaskStatus = "picking"
	StatusCompleted TaskStatus = "completed"
	StatusCancelled TaskStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are permitted
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Task type and role defaults
const (
	TaskTypePick        = "pick"
	RolePicker          = "picker"
	DefaultPriority     = 5
	AssignmentActive    = "active"
	AssignmentCompleted = "completed"
)

// WorkTask is one unit of picking work. The worker PIN is the public
// identity key on the task; the internal worker id is kept alongside
// for reference.
type WorkTask struct {
	TaskID            int64      `bson:"taskId" json:"taskId"`
	OrderID           *int64     `bson:"orderId,omitempty" json:"orderId,omitempty"`
	ItemCode          string     `bson:"itemCode" json:"itemCode"`
	LocationCode      string     `bson:"locationCode" json:"locationCode"`
	QuantityRequested int        `bson:"quantityRequested" json:"quantityRequested"`
	QuantityPicked    int        `bson:"quantityPicked" json:"quantityPicked"`
	Priority          int        `bson:"priority" json:"priority"`
	Status            TaskStatus `bson:"status" json:"status"`
	TaskType          string     `bson:"taskType" json:"taskType"`
	RequiredRole      string     `bson:"requiredRole" json:"requiredRole"`
	WorkerPIN         *int       `bson:"workerPin,omitempty" json:"workerPin,omitempty"`
	WorkerID          *int64     `bson:"workerId,omitempty" json:"workerId,omitempty"`
	WorkerName        string     `bson:"workerName,omitempty" json:"workerName,omitempty"`
	EstimatedTime     int        `bson:"estimatedTime,omitempty" json:"estimatedTime,omitempty"`
	ActualTime        int        `bson:"actualTime,omitempty" json:"actualTime,omitempty"`
	Notes             string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
	AssignedAt        *time.Time `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	StartedAt         *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt       *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	DomainEvents []DomainEvent `bson:"-" json:"-"`
}

// TaskSpec carries the caller-supplied fields for a new task
type TaskSpec struct {
	OrderID           *int64
	ItemCode          string
	LocationCode      string
	QuantityRequested int
	Priority          int
	TaskType          string
	RequiredRole      string
	EstimatedTime     int
	Notes             string
}

// NewWorkTask creates a pending task from a spec, applying defaults
func NewWorkTask(spec TaskSpec, now time.Time) (*WorkTask, error) {
	if spec.ItemCode == "" {
		return nil, errors.ErrValidation("itemCode is required")
	}
	if spec.LocationCode == "" {
		return nil, errors.ErrValidation("locationCode is required")
	}
	if spec.QuantityRequested <= 0 {
		return nil, errors.ErrValidation("quantityRequested must be positive")
	}

	priority := spec.Priority
	if priority <= 0 {
		priority = DefaultPriority
	}
	taskType := spec.TaskType
	if taskType == "" {
		taskType = TaskTypePick
	}
	role := spec.RequiredRole
	if role == "" {
		role = RolePicker
	}

	task := &WorkTask{
		OrderID:           spec.OrderID,
		ItemCode:          spec.ItemCode,
		LocationCode:      spec.LocationCode,
		QuantityRequested: spec.QuantityRequested,
		Priority:          priority,
		Status:            StatusPending,
		TaskType:          taskType,
		RequiredRole:      role,
		EstimatedTime:     spec.EstimatedTime,
		Notes:             spec.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The created event is raised after persistence assigns the task id
	return task, nil
}

// Assign binds a pending task to a worker. The worker name is a
// snapshot at assignment time and is not re-synced later.
func (t *WorkTask) Assign(worker *Worker, now time.Time) error {
	if t.Status == StatusAssigned {
		return errors.ErrAlreadyAssigned(t.TaskID)
	}
	if t.Status != StatusPending {
		return errors.ErrInvalidTransition(fmt.Sprintf("cannot assign task in status %s", t.Status))
	}

	pin := worker.PIN
	workerID := worker.WorkerID
	t.WorkerPIN = &pin
	t.WorkerID = &workerID
	t.WorkerName = worker.Name
	t.Status = StatusAssigned
	t.AssignedAt = &now
	t.UpdatedAt = now

	t.raise(NewTaskAssignedEvent(t, now))
	return nil
}

// Start moves an assigned task into picking for its owner
func (t *WorkTask) Start(workerPIN int, now time.Time) error {
	if t.Status != StatusAssigned {
		return errors.ErrInvalidTransition(fmt.Sprintf("cannot start task in status %s", t.Status))
	}
	if err := t.requireOwner(workerPIN); err != nil {
		return err
	}

	t.Status = StatusPicking
	t.StartedAt = &now
	t.UpdatedAt = now

	t.raise(NewTaskStartedEvent(t, now))
	return nil
}

// Complete finishes the task for its owner, recording the picked
// quantity and elapsed time in whole seconds. Partial and over-picks
// are recorded, not rejected. A task never started completes with
// actual time zero.
func (t *WorkTask) Complete(workerPIN int, quantityPicked int, notes string, now time.Time) error {
	if t.Status != StatusAssigned && t.Status != StatusPicking {
		return errors.ErrInvalidTransition(fmt.Sprintf("cannot complete task in status %s", t.Status))
	}
	if err := t.requireOwner(workerPIN); err != nil {
		return err
	}
	if quantityPicked < 0 {
		return errors.ErrValidation("quantityPicked must not be negative")
	}

	quantityBefore := t.QuantityPicked
	oldStatus := t.Status

	actualTime := 0
	if t.StartedAt != nil {
		actualTime = int(now.Sub(*t.StartedAt).Seconds())
	}

	t.Status = StatusCompleted
	t.QuantityPicked = quantityPicked
	t.ActualTime = actualTime
	t.CompletedAt = &now
	t.UpdatedAt = now
	if notes != "" {
		t.Notes = notes
	}

	t.raise(NewTaskCompletedEvent(t, oldStatus, quantityBefore, now))
	return nil
}

// Cancel moves any non-terminal task to cancelled. Cancellation is an
// administrative action with no ownership check.
func (t *WorkTask) Cancel(reason string, now time.Time) error {
	if t.Status.IsTerminal() {
		return errors.ErrInvalidTransition(fmt.Sprintf("cannot cancel task in status %s", t.Status))
	}

	oldStatus := t.Status
	t.Status = StatusCancelled
	t.UpdatedAt = now
	if reason != "" {
		t.Notes = reason
	}

	t.raise(NewTaskCancelledEvent(t, oldStatus, reason, now))
	return nil
}

func (t *WorkTask) requireOwner(workerPIN int) error {
	if t.WorkerPIN == nil || *t.WorkerPIN != workerPIN {
		return errors.ErrNotOwner("")
	}
	return nil
}

func (t *WorkTask) raise(event DomainEvent) {
	t.DomainEvents = append(t.DomainEvents, event)
}

// ClearEvents drops accumulated domain events after publishing
func (t *WorkTask) ClearEvents() {
	t.DomainEvents = nil
}
