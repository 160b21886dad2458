package application

// CreateTaskCommand carries the fields for a new work task
type CreateTaskCommand struct {
	OrderID           *int64 `json:"orderId"`
	ItemCode          string `json:"itemCode" binding:"required"`
	LocationCode      string `json:"locationCode" binding:"required,location_code"`
	QuantityRequested int    `json:"quantityRequested" binding:"required,gt=0"`
	Priority          int    `json:"priority" binding:"omitempty,task_priority"`
	TaskType          string `json:"taskType"`
	RequiredRole      string `json:"requiredRole"`
	EstimatedTime     int    `json:"estimatedTime" binding:"omitempty,gte=0"`
	Notes             string `json:"notes"`
}

// AssignTaskCommand claims a task for a worker
type AssignTaskCommand struct {
	WorkerPIN int `json:"workerPin" binding:"required,worker_pin"`
}

// StartTaskCommand begins picking on an assigned task
type StartTaskCommand struct {
	WorkerPIN int `json:"workerPin" binding:"required,worker_pin"`
}

// CompleteTaskCommand finishes a task with the picked quantity
type CompleteTaskCommand struct {
	WorkerPIN      int    `json:"workerPin" binding:"required,worker_pin"`
	QuantityPicked int    `json:"quantityPicked" binding:"gte=0"`
	Notes          string `json:"notes"`
}

// CancelTaskCommand withdraws a task from the queue
type CancelTaskCommand struct {
	Reason string `json:"reason"`
}

// ListQueueQuery filters the queue listing
type ListQueueQuery struct {
	WorkerPIN     *int
	Status        string
	Role          string
	PriorityOrder bool
}

// GenerateLocationCommand builds a location code from components
type GenerateLocationCommand struct {
	Section    string `json:"section" binding:"required,alpha,uppercase"`
	Aisle      string `json:"aisle" binding:"required,alpha,uppercase"`
	Bay        string `json:"bay" binding:"required,max=3"`
	Level      string `json:"level"`
	Subsection string `json:"subsection"`
}
