package application

import "time"

// TaskDTO is the API representation of a work task
type TaskDTO struct {
	TaskID            int64      `json:"taskId"`
	OrderID           *int64     `json:"orderId,omitempty"`
	ItemCode          string     `json:"itemCode"`
	LocationCode      string     `json:"locationCode"`
	QuantityRequested int        `json:"quantityRequested"`
	QuantityPicked    int        `json:"quantityPicked"`
	Priority          int        `json:"priority"`
	Status            string     `json:"status"`
	TaskType          string     `json:"taskType"`
	RequiredRole      string     `json:"requiredRole"`
	WorkerPIN         *int       `json:"workerPin,omitempty"`
	WorkerName        string     `json:"workerName,omitempty"`
	EstimatedTime     int        `json:"estimatedTime,omitempty"`
	ActualTime        int        `json:"actualTime,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	AssignedAt        *time.Time `json:"assignedAt,omitempty"`
	StartedAt         *time.Time `json:"startedAt,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}

// QueueStatsDTO summarizes the queue. Total excludes cancelled tasks;
// TotalAll includes them.
type QueueStatsDTO struct {
	Pending   int64 `json:"pending"`
	Assigned  int64 `json:"assigned"`
	Picking   int64 `json:"picking"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
	TotalAll  int64 `json:"totalAll"`
}

// WorkerDTO is the API representation of a directory entry
type WorkerDTO struct {
	WorkerID int64  `json:"workerId"`
	PIN      int    `json:"pin"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Team     string `json:"team,omitempty"`
	Active   bool   `json:"active"`
}

// AuditEntryDTO is one work queue history record
type AuditEntryDTO struct {
	EntryID        string    `json:"entryId"`
	TaskID         int64     `json:"taskId"`
	WorkerPIN      *int      `json:"workerPin,omitempty"`
	Action         string    `json:"action"`
	OldStatus      string    `json:"oldStatus,omitempty"`
	NewStatus      string    `json:"newStatus,omitempty"`
	QuantityBefore *int      `json:"quantityBefore,omitempty"`
	QuantityAfter  *int      `json:"quantityAfter,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LocationDTO is the parsed or generated view of a location code
type LocationDTO struct {
	Code        string `json:"code"`
	Section     string `json:"section"`
	Aisle       string `json:"aisle"`
	Bay         string `json:"bay"`
	Level       string `json:"level"`
	Subsection  string `json:"subsection,omitempty"`
	IsComplex   bool   `json:"isComplex"`
	VoicePrompt string `json:"voicePrompt"`
	Equipment   string `json:"equipment"`
	CheckDigit  int    `json:"checkDigit"`
}
