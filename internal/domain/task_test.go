package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wms-platform/voicepick-service/pkg/errors"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testWorker() *Worker {
	return &Worker{WorkerID: 11, PIN: 1234, Name: "Dana", Role: RolePicker, Active: true}
}

func newTestTask(t *testing.T) *WorkTask {
	t.Helper()
	task, err := NewWorkTask(TaskSpec{
		ItemCode:          "SKU-100",
		LocationCode:      "LA-045",
		QuantityRequested: 5,
	}, testTime)
	require.NoError(t, err)
	task.TaskID = 7
	return task
}

func TestNewWorkTaskDefaults(t *testing.T) {
	task := newTestTask(t)

	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, DefaultPriority, task.Priority)
	assert.Equal(t, TaskTypePick, task.TaskType)
	assert.Equal(t, RolePicker, task.RequiredRole)
	assert.Equal(t, testTime, task.CreatedAt)
	assert.Equal(t, testTime, task.UpdatedAt)
	assert.Nil(t, task.WorkerPIN)
}

func TestNewWorkTaskValidation(t *testing.T) {
	tests := []struct {
		name string
		spec TaskSpec
	}{
		{"missing item code", TaskSpec{LocationCode: "LA-045", QuantityRequested: 1}},
		{"missing location code", TaskSpec{ItemCode: "SKU-100", QuantityRequested: 1}},
		{"zero quantity", TaskSpec{ItemCode: "SKU-100", LocationCode: "LA-045"}},
		{"negative quantity", TaskSpec{ItemCode: "SKU-100", LocationCode: "LA-045", QuantityRequested: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorkTask(tt.spec, testTime)
			require.Error(t, err)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
		})
	}
}

func TestAssign(t *testing.T) {
	task := newTestTask(t)
	worker := testWorker()

	require.NoError(t, task.Assign(worker, testTime))

	assert.Equal(t, StatusAssigned, task.Status)
	require.NotNil(t, task.WorkerPIN)
	assert.Equal(t, 1234, *task.WorkerPIN)
	assert.Equal(t, "Dana", task.WorkerName)
	require.NotNil(t, task.AssignedAt)
	assert.Equal(t, testTime, *task.AssignedAt)
	assert.Len(t, task.DomainEvents, 1)
	assert.Equal(t, EventTaskAssigned, task.DomainEvents[0].EventType())
}

func TestAssignAlreadyAssigned(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))

	err := task.Assign(&Worker{WorkerID: 12, PIN: 5678, Name: "Sam", Role: RolePicker}, testTime)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyAssigned, appErr.Code)

	// The original assignment is untouched
	assert.Equal(t, 1234, *task.WorkerPIN)
	assert.Equal(t, "Dana", task.WorkerName)
}

func TestStart(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))

	startAt := testTime.Add(time.Minute)
	require.NoError(t, task.Start(1234, startAt))

	assert.Equal(t, StatusPicking, task.Status)
	require.NotNil(t, task.StartedAt)
	assert.Equal(t, startAt, *task.StartedAt)
}

func TestStartRequiresOwner(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))

	err := task.Start(5678, testTime)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotOwner, appErr.Code)
	assert.Equal(t, StatusAssigned, task.Status)
}

func TestStartRequiresAssignedStatus(t *testing.T) {
	task := newTestTask(t)

	err := task.Start(1234, testTime)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
}

func TestComplete(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))
	require.NoError(t, task.Start(1234, testTime.Add(time.Minute)))

	completeAt := testTime.Add(4 * time.Minute)
	require.NoError(t, task.Complete(1234, 5, "all picked", completeAt))

	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, 5, task.QuantityPicked)
	assert.Equal(t, 180, task.ActualTime)
	assert.Equal(t, "all picked", task.Notes)
	require.NotNil(t, task.CompletedAt)
}

func TestCompletePartialPickIsRecorded(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))
	require.NoError(t, task.Start(1234, testTime))

	require.NoError(t, task.Complete(1234, 3, "", testTime.Add(time.Minute)))

	assert.Equal(t, 3, task.QuantityPicked)
	assert.Equal(t, 5, task.QuantityRequested)
	assert.Equal(t, StatusCompleted, task.Status)
}

func TestCompleteOverPickIsRecorded(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))
	require.NoError(t, task.Start(1234, testTime))

	require.NoError(t, task.Complete(1234, 8, "", testTime))
	assert.Equal(t, 8, task.QuantityPicked)
}

func TestCompleteRejectsNegativeQuantity(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))

	err := task.Complete(1234, -1, "", testTime)
	require.Error(t, err)
	assert.Equal(t, StatusAssigned, task.Status)
}

func TestCompleteWithoutStartHasZeroActualTime(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))

	require.NoError(t, task.Complete(1234, 5, "", testTime.Add(time.Hour)))

	assert.Equal(t, 0, task.ActualTime)
	assert.Equal(t, StatusCompleted, task.Status)
}

func TestCompleteRequiresOwner(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))

	err := task.Complete(5678, 5, "", testTime)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotOwner, appErr.Code)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *WorkTask
	}{
		{
			name:  "pending",
			setup: func(t *testing.T) *WorkTask { return newTestTask(t) },
		},
		{
			name: "assigned",
			setup: func(t *testing.T) *WorkTask {
				task := newTestTask(t)
				require.NoError(t, task.Assign(testWorker(), testTime))
				return task
			},
		},
		{
			name: "picking",
			setup: func(t *testing.T) *WorkTask {
				task := newTestTask(t)
				require.NoError(t, task.Assign(testWorker(), testTime))
				require.NoError(t, task.Start(1234, testTime))
				return task
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.setup(t)
			require.NoError(t, task.Cancel("shift over", testTime))
			assert.Equal(t, StatusCancelled, task.Status)
			assert.Equal(t, "shift over", task.Notes)
		})
	}
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	completed := newTestTask(t)
	require.NoError(t, completed.Assign(testWorker(), testTime))
	require.NoError(t, completed.Start(1234, testTime))
	require.NoError(t, completed.Complete(1234, 5, "", testTime))

	cancelled := newTestTask(t)
	require.NoError(t, cancelled.Cancel("", testTime))

	for _, task := range []*WorkTask{completed, cancelled} {
		assert.Error(t, task.Assign(testWorker(), testTime))
		assert.Error(t, task.Start(1234, testTime))
		assert.Error(t, task.Complete(1234, 1, "", testTime))
		assert.Error(t, task.Cancel("", testTime))
	}

	assert.Equal(t, StatusCompleted, completed.Status)
	assert.Equal(t, StatusCancelled, cancelled.Status)
}

func TestDomainEventsAccumulateAndClear(t *testing.T) {
	task := newTestTask(t)
	require.NoError(t, task.Assign(testWorker(), testTime))
	require.NoError(t, task.Start(1234, testTime))
	require.NoError(t, task.Complete(1234, 5, "", testTime))

	require.Len(t, task.DomainEvents, 3)
	assert.Equal(t, EventTaskAssigned, task.DomainEvents[0].EventType())
	assert.Equal(t, EventTaskStarted, task.DomainEvents[1].EventType())
	assert.Equal(t, EventTaskCompleted, task.DomainEvents[2].EventType())

	completedEvent, ok := task.DomainEvents[2].(TaskCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(7), completedEvent.TaskID())
	assert.Equal(t, 5, completedEvent.QuantityPicked)

	task.ClearEvents()
	assert.Empty(t, task.DomainEvents)
}
