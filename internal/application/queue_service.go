package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wms-platform/voicepick-service/internal/domain"
	"github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/logging"
	"github.com/wms-platform/voicepick-service/pkg/metrics"
)

// autoAssignAttempts bounds the race-retry loop in NextForWorker
const autoAssignAttempts = 10

// QueueService owns the work task lifecycle: creation, priority
// retrieval, assignment, transitions and the audit trail.
type QueueService struct {
	tasks       domain.WorkTaskRepository
	workers     domain.WorkerDirectory
	assignments domain.AssignmentRepository
	auditLog    domain.AuditLogRepository
	publisher   domain.EventPublisher
	metrics     *metrics.Metrics
	logger      *logging.Logger
	now         func() time.Time
}

// NewQueueService creates a QueueService
func NewQueueService(
	tasks domain.WorkTaskRepository,
	workers domain.WorkerDirectory,
	assignments domain.AssignmentRepository,
	auditLog domain.AuditLogRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *QueueService {
	return &QueueService{
		tasks:       tasks,
		workers:     workers,
		assignments: assignments,
		auditLog:    auditLog,
		publisher:   publisher,
		metrics:     m,
		logger:      logger.WithComponent("queue-service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source
func (s *QueueService) WithClock(now func() time.Time) *QueueService {
	s.now = now
	return s
}

// CreateTask validates and persists a new pending task
func (s *QueueService) CreateTask(ctx context.Context, cmd CreateTaskCommand) (*TaskDTO, error) {
	now := s.now()

	task, err := domain.NewWorkTask(domain.TaskSpec{
		OrderID:           cmd.OrderID,
		ItemCode:          cmd.ItemCode,
		LocationCode:      cmd.LocationCode,
		QuantityRequested: cmd.QuantityRequested,
		Priority:          cmd.Priority,
		TaskType:          cmd.TaskType,
		RequiredRole:      cmd.RequiredRole,
		EstimatedTime:     cmd.EstimatedTime,
		Notes:             cmd.Notes,
	}, now)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, &domain.AuditEntry{
		TaskID:    task.TaskID,
		Action:    domain.ActionCreated,
		NewStatus: string(domain.StatusPending),
		CreatedAt: now,
	})
	s.publishEvent(ctx, domain.NewTaskCreatedEvent(task, now))

	if s.metrics != nil {
		s.metrics.RecordTaskCreated(task.TaskType, task.RequiredRole)
	}

	s.logger.WithContext(ctx).Info("Task created",
		"taskId", task.TaskID,
		"itemCode", task.ItemCode,
		"locationCode", task.LocationCode,
		"priority", task.Priority,
	)

	return toTaskDTO(task), nil
}

// GetTask returns a single task by id
func (s *QueueService) GetTask(ctx context.Context, taskID int64) (*TaskDTO, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return toTaskDTO(task), nil
}

// ListQueue returns tasks matching the query, priority-ordered when
// requested: ascending by priority, then creation time, then id
func (s *QueueService) ListQueue(ctx context.Context, query ListQueueQuery) ([]*TaskDTO, error) {
	filter := domain.TaskFilter{
		WorkerPIN:     query.WorkerPIN,
		RequiredRole:  query.Role,
		Status:        domain.TaskStatus(query.Status),
		PriorityOrder: query.PriorityOrder,
	}

	tasks, err := s.tasks.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toTaskDTOs(tasks), nil
}

// Assign claims a pending task for a worker. The claim is conditional
// on the task still being pending, so concurrent claims resolve in
// favor of exactly one caller; the winner replays the transition on
// the returned snapshot so the events come from the task itself.
func (s *QueueService) Assign(ctx context.Context, taskID int64, workerPIN int) (*TaskDTO, error) {
	worker, err := s.lookupWorker(ctx, workerPIN)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task, err := s.tasks.AssignPending(ctx, taskID, worker, now)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.CodeAlreadyAssigned && s.metrics != nil {
			s.metrics.RecordAssignmentFailure()
		}
		return nil, err
	}
	if err := task.Assign(worker, now); err != nil {
		return nil, err
	}

	s.finalizeAssignment(ctx, task, worker, now)
	return toTaskDTO(task), nil
}

// Start moves an assigned task into picking for its owner
func (s *QueueService) Start(ctx context.Context, taskID int64, workerPIN int) (*TaskDTO, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := task.Start(workerPIN, now); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, &domain.AuditEntry{
		TaskID:    task.TaskID,
		WorkerPIN: &workerPIN,
		Action:    domain.ActionStarted,
		OldStatus: string(domain.StatusAssigned),
		NewStatus: string(domain.StatusPicking),
		CreatedAt: now,
	})
	s.publishEvents(ctx, task)
	s.recordTransition(domain.StatusAssigned, domain.StatusPicking)

	return toTaskDTO(task), nil
}

// Complete finishes a task for its owner. Partial picks are recorded,
// not rejected.
func (s *QueueService) Complete(ctx context.Context, taskID int64, cmd CompleteTaskCommand) (*TaskDTO, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	oldStatus := task.Status
	quantityBefore := task.QuantityPicked

	if err := task.Complete(cmd.WorkerPIN, cmd.QuantityPicked, cmd.Notes, now); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if err := s.assignments.ReleaseForTask(ctx, task.TaskID, now); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Assignment release failed", "taskId", task.TaskID)
	}

	quantityAfter := task.QuantityPicked
	s.writeAudit(ctx, &domain.AuditEntry{
		TaskID:         task.TaskID,
		WorkerPIN:      &cmd.WorkerPIN,
		Action:         domain.ActionCompleted,
		OldStatus:      string(oldStatus),
		NewStatus:      string(domain.StatusCompleted),
		QuantityBefore: &quantityBefore,
		QuantityAfter:  &quantityAfter,
		Notes:          cmd.Notes,
		CreatedAt:      now,
	})
	s.publishEvents(ctx, task)
	s.recordTransition(oldStatus, domain.StatusCompleted)
	if s.metrics != nil {
		s.metrics.RecordItemsPicked(task.QuantityPicked)
	}

	s.logger.WithContext(ctx).Info("Task completed",
		"taskId", task.TaskID,
		"workerPin", cmd.WorkerPIN,
		"quantityPicked", task.QuantityPicked,
		"quantityRequested", task.QuantityRequested,
		"actualTime", task.ActualTime,
	)

	return toTaskDTO(task), nil
}

// Cancel withdraws a non-terminal task. No ownership check applies.
func (s *QueueService) Cancel(ctx context.Context, taskID int64, reason string) (*TaskDTO, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	oldStatus := task.Status

	if err := task.Cancel(reason, now); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if err := s.assignments.ReleaseForTask(ctx, task.TaskID, now); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Assignment release failed", "taskId", task.TaskID)
	}

	s.writeAudit(ctx, &domain.AuditEntry{
		TaskID:    task.TaskID,
		WorkerPIN: task.WorkerPIN,
		Action:    domain.ActionCancelled,
		OldStatus: string(oldStatus),
		NewStatus: string(domain.StatusCancelled),
		Notes:     reason,
		CreatedAt: now,
	})
	s.publishEvents(ctx, task)
	s.recordTransition(oldStatus, domain.StatusCancelled)

	return toTaskDTO(task), nil
}

// NextForWorker returns the worker's outstanding assigned task if one
// exists, otherwise auto-assigns the highest-priority pending task
// matching the worker's role. Returns nil when no eligible work exists.
func (s *QueueService) NextForWorker(ctx context.Context, workerPIN int) (*TaskDTO, error) {
	worker, err := s.lookupWorker(ctx, workerPIN)
	if err != nil {
		return nil, err
	}

	assigned, err := s.tasks.Find(ctx, domain.TaskFilter{
		WorkerPIN:     &workerPIN,
		Status:        domain.StatusAssigned,
		PriorityOrder: true,
	})
	if err != nil {
		return nil, err
	}
	if len(assigned) > 0 {
		return toTaskDTO(assigned[0]), nil
	}

	pending, err := s.tasks.Find(ctx, domain.TaskFilter{
		RequiredRole:  worker.Role,
		Status:        domain.StatusPending,
		PriorityOrder: true,
		Limit:         autoAssignAttempts,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, candidate := range pending {
		task, err := s.tasks.AssignPending(ctx, candidate.TaskID, worker, now)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.CodeAlreadyAssigned {
				// Lost the race for this one, try the next candidate
				if s.metrics != nil {
					s.metrics.RecordAssignmentFailure()
				}
				continue
			}
			return nil, err
		}
		if err := task.Assign(worker, now); err != nil {
			return nil, err
		}
		s.finalizeAssignment(ctx, task, worker, now)
		return toTaskDTO(task), nil
	}

	return nil, nil
}

// CurrentWork lists the worker's in-flight tasks (assigned or picking)
func (s *QueueService) CurrentWork(ctx context.Context, workerPIN int) ([]*TaskDTO, error) {
	tasks, err := s.tasks.Find(ctx, domain.TaskFilter{
		WorkerPIN: &workerPIN,
		Statuses:  []domain.TaskStatus{domain.StatusAssigned, domain.StatusPicking},
	})
	if err != nil {
		return nil, err
	}
	return toTaskDTOs(tasks), nil
}

// WorkByRole lists the visible backlog for a role: pending and
// assigned tasks, priority-ordered
func (s *QueueService) WorkByRole(ctx context.Context, role string) ([]*TaskDTO, error) {
	tasks, err := s.tasks.Find(ctx, domain.TaskFilter{
		RequiredRole:  role,
		Statuses:      []domain.TaskStatus{domain.StatusPending, domain.StatusAssigned},
		PriorityOrder: true,
	})
	if err != nil {
		return nil, err
	}
	return toTaskDTOs(tasks), nil
}

// Stats returns per-status counts
func (s *QueueService) Stats(ctx context.Context) (*QueueStatsDTO, error) {
	stats, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return toQueueStatsDTO(stats), nil
}

// History returns the audit trail for a task
func (s *QueueService) History(ctx context.Context, taskID int64) ([]*AuditEntryDTO, error) {
	entries, err := s.auditLog.FindByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return toAuditEntryDTOs(entries), nil
}

// LookupWorker resolves a PIN through the worker directory
func (s *QueueService) LookupWorker(ctx context.Context, pin int) (*WorkerDTO, error) {
	worker, err := s.lookupWorker(ctx, pin)
	if err != nil {
		return nil, err
	}
	return toWorkerDTO(worker), nil
}

// WorkersByRole lists directory entries for a role
func (s *QueueService) WorkersByRole(ctx context.Context, role string) ([]*WorkerDTO, error) {
	workers, err := s.workers.FindByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	dtos := make([]*WorkerDTO, 0, len(workers))
	for _, worker := range workers {
		dtos = append(dtos, toWorkerDTO(worker))
	}
	return dtos, nil
}

func (s *QueueService) lookupWorker(ctx context.Context, pin int) (*domain.Worker, error) {
	worker, err := s.workers.FindByPIN(ctx, pin)
	if err != nil {
		return nil, err
	}
	if !worker.Active {
		return nil, errors.ErrWorkerNotFound(pin)
	}
	return worker, nil
}

func (s *QueueService) finalizeAssignment(ctx context.Context, task *domain.WorkTask, worker *domain.Worker, now time.Time) {
	if err := s.assignments.Insert(ctx, &domain.Assignment{
		AssignmentID: uuid.New().String(),
		TaskID:       task.TaskID,
		WorkerPIN:    worker.PIN,
		WorkerID:     worker.WorkerID,
		Status:       domain.AssignmentActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Assignment record write failed", "taskId", task.TaskID)
	}

	pin := worker.PIN
	s.writeAudit(ctx, &domain.AuditEntry{
		TaskID:    task.TaskID,
		WorkerPIN: &pin,
		Action:    domain.ActionAssigned,
		OldStatus: string(domain.StatusPending),
		NewStatus: string(domain.StatusAssigned),
		CreatedAt: now,
	})
	s.publishEvents(ctx, task)
	s.recordTransition(domain.StatusPending, domain.StatusAssigned)

	s.logger.WithContext(ctx).Info("Task assigned",
		"taskId", task.TaskID,
		"workerPin", worker.PIN,
		"workerName", worker.Name,
	)
}

// writeAudit appends to the history, warning on failure. The primary
// state update is the transaction of record; the trail is best-effort.
func (s *QueueService) writeAudit(ctx context.Context, entry *domain.AuditEntry) {
	entry.EntryID = uuid.New().String()
	if err := s.auditLog.Append(ctx, entry); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Audit write failed",
			"taskId", entry.TaskID,
			"action", entry.Action,
		)
	}
}

func (s *QueueService) publishEvents(ctx context.Context, task *domain.WorkTask) {
	for _, event := range task.DomainEvents {
		s.publishEvent(ctx, event)
	}
	task.ClearEvents()
}

func (s *QueueService) publishEvent(ctx context.Context, event domain.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTaskEvent(ctx, event); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Event publish failed",
			"eventType", event.EventType(),
			"taskId", event.TaskID(),
		)
	}
}

func (s *QueueService) recordTransition(from, to domain.TaskStatus) {
	if s.metrics != nil {
		s.metrics.RecordTaskTransition(string(from), string(to))
	}
}
