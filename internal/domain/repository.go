package domain

import (
	"context"
	"time"
)

// TaskFilter selects tasks for queue listings. Zero values mean
// "no filter" for that dimension.
type TaskFilter struct {
	WorkerPIN     *int
	RequiredRole  string
	Status        TaskStatus
	Statuses      []TaskStatus
	PriorityOrder bool
	Limit         int64
}

// QueueStats holds per-status task counts. Total excludes cancelled
// tasks; TotalAll includes them.
type QueueStats struct {
	Pending   int64 `json:"pending"`
	Assigned  int64 `json:"assigned"`
	Picking   int64 `json:"picking"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
	TotalAll  int64 `json:"totalAll"`
}

// WorkTaskRepository persists work tasks. Insert assigns the task id
// from a monotonic sequence.
type WorkTaskRepository interface {
	Insert(ctx context.Context, task *WorkTask) error
	FindByID(ctx context.Context, taskID int64) (*WorkTask, error)
	Find(ctx context.Context, filter TaskFilter) ([]*WorkTask, error)
	Update(ctx context.Context, task *WorkTask) error

	// AssignPending claims a task for a worker only if it is still
	// pending, resolving concurrent claims in favor of exactly one
	// caller. The winner receives the pre-claim snapshot and replays
	// Assign on it to raise the transition events; the loser receives
	// an already-assigned error.
	AssignPending(ctx context.Context, taskID int64, worker *Worker, now time.Time) (*WorkTask, error)

	CountByStatus(ctx context.Context) (QueueStats, error)
}

// WorkerDirectory is the read-only worker lookup
type WorkerDirectory interface {
	FindByPIN(ctx context.Context, pin int) (*Worker, error)
	FindByRole(ctx context.Context, role string) ([]*Worker, error)
}

// AssignmentRepository persists worker-task assignment records
type AssignmentRepository interface {
	Insert(ctx context.Context, assignment *Assignment) error
	ReleaseForTask(ctx context.Context, taskID int64, now time.Time) error
	FindActiveByWorker(ctx context.Context, workerPIN int) ([]*Assignment, error)
}

// AuditLogRepository appends to the immutable work queue history
type AuditLogRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	FindByTask(ctx context.Context, taskID int64) ([]*AuditEntry, error)
}

// LayoutRepository persists per-warehouse layout documents
type LayoutRepository interface {
	FindByWarehouseID(ctx context.Context, warehouseID int64) (*WarehouseLayout, error)
	Save(ctx context.Context, layout *WarehouseLayout) error
	List(ctx context.Context) ([]*WarehouseLayout, error)
}

// EventPublisher pushes domain events to downstream consumers.
// Publishing is best-effort from the engine's point of view.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, event DomainEvent) error
}
