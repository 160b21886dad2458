package domain

import "time"

// Event types published to the work queue topic
const (
	EventTaskCreated   = "work-queue.task.created"
	EventTaskAssigned  = "work-queue.task.assigned"
	EventTaskStarted   = "work-queue.task.started"
	EventTaskCompleted = "work-queue.task.completed"
	EventTaskCancelled = "work-queue.task.cancelled"
)

// DomainEvent is raised by the task aggregate on state changes
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	TaskID() int64
}

type baseEvent struct {
	Task int64     `json:"taskId"`
	At   time.Time `json:"occurredAt"`
}

func (e baseEvent) OccurredAt() time.Time { return e.At }
func (e baseEvent) TaskID() int64         { return e.Task }

// TaskCreatedEvent is raised when a task enters the queue
type TaskCreatedEvent struct {
	baseEvent
	ItemCode          string `json:"itemCode"`
	LocationCode      string `json:"locationCode"`
	QuantityRequested int    `json:"quantityRequested"`
	Priority          int    `json:"priority"`
	TaskType          string `json:"taskType"`
	RequiredRole      string `json:"requiredRole"`
}

func NewTaskCreatedEvent(task *WorkTask, now time.Time) TaskCreatedEvent {
	return TaskCreatedEvent{
		baseEvent:         baseEvent{Task: task.TaskID, At: now},
		ItemCode:          task.ItemCode,
		LocationCode:      task.LocationCode,
		QuantityRequested: task.QuantityRequested,
		Priority:          task.Priority,
		TaskType:          task.TaskType,
		RequiredRole:      task.RequiredRole,
	}
}

func (e TaskCreatedEvent) EventType() string { return EventTaskCreated }

// TaskAssignedEvent is raised when a worker claims a task
type TaskAssignedEvent struct {
	baseEvent
	WorkerPIN  int    `json:"workerPin"`
	WorkerName string `json:"workerName"`
	OldStatus  string `json:"oldStatus"`
	NewStatus  string `json:"newStatus"`
}

func NewTaskAssignedEvent(task *WorkTask, now time.Time) TaskAssignedEvent {
	pin := 0
	if task.WorkerPIN != nil {
		pin = *task.WorkerPIN
	}
	return TaskAssignedEvent{
		baseEvent:  baseEvent{Task: task.TaskID, At: now},
		WorkerPIN:  pin,
		WorkerName: task.WorkerName,
		OldStatus:  string(StatusPending),
		NewStatus:  string(StatusAssigned),
	}
}

func (e TaskAssignedEvent) EventType() string { return EventTaskAssigned }

// TaskStartedEvent is raised when picking begins
type TaskStartedEvent struct {
	baseEvent
	WorkerPIN int    `json:"workerPin"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func NewTaskStartedEvent(task *WorkTask, now time.Time) TaskStartedEvent {
	pin := 0
	if task.WorkerPIN != nil {
		pin = *task.WorkerPIN
	}
	return TaskStartedEvent{
		baseEvent: baseEvent{Task: task.TaskID, At: now},
		WorkerPIN: pin,
		OldStatus: string(StatusAssigned),
		NewStatus: string(StatusPicking),
	}
}

func (e TaskStartedEvent) EventType() string { return EventTaskStarted }

// TaskCompletedEvent is raised when a task finishes, carrying the
// quantity delta for downstream inventory consumers
type TaskCompletedEvent struct {
	baseEvent
	WorkerPIN         int    `json:"workerPin"`
	OldStatus         string `json:"oldStatus"`
	NewStatus         string `json:"newStatus"`
	QuantityBefore    int    `json:"quantityBefore"`
	QuantityPicked    int    `json:"quantityPicked"`
	QuantityRequested int    `json:"quantityRequested"`
	ActualTime        int    `json:"actualTime"`
}

func NewTaskCompletedEvent(task *WorkTask, oldStatus TaskStatus, quantityBefore int, now time.Time) TaskCompletedEvent {
	pin := 0
	if task.WorkerPIN != nil {
		pin = *task.WorkerPIN
	}
	return TaskCompletedEvent{
		baseEvent:         baseEvent{Task: task.TaskID, At: now},
		WorkerPIN:         pin,
		OldStatus:         string(oldStatus),
		NewStatus:         string(StatusCompleted),
		QuantityBefore:    quantityBefore,
		QuantityPicked:    task.QuantityPicked,
		QuantityRequested: task.QuantityRequested,
		ActualTime:        task.ActualTime,
	}
}

func (e TaskCompletedEvent) EventType() string { return EventTaskCompleted }

// TaskCancelledEvent is raised when a task is withdrawn
type TaskCancelledEvent struct {
	baseEvent
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	Reason    string `json:"reason,omitempty"`
}

func NewTaskCancelledEvent(task *WorkTask, oldStatus TaskStatus, reason string, now time.Time) TaskCancelledEvent {
	return TaskCancelledEvent{
		baseEvent: baseEvent{Task: task.TaskID, At: now},
		OldStatus: string(oldStatus),
		NewStatus: string(StatusCancelled),
		Reason:    reason,
	}
}

func (e TaskCancelledEvent) EventType() string { return EventTaskCancelled }
