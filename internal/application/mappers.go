package application

import (
	"github.com/wms-platform/voicepick-service/internal/domain"
)

func toTaskDTO(task *domain.WorkTask) *TaskDTO {
	return &TaskDTO{
		TaskID:            task.TaskID,
		OrderID:           task.OrderID,
		ItemCode:          task.ItemCode,
		LocationCode:      task.LocationCode,
		QuantityRequested: task.QuantityRequested,
		QuantityPicked:    task.QuantityPicked,
		Priority:          task.Priority,
		Status:            string(task.Status),
		TaskType:          task.TaskType,
		RequiredRole:      task.RequiredRole,
		WorkerPIN:         task.WorkerPIN,
		WorkerName:        task.WorkerName,
		EstimatedTime:     task.EstimatedTime,
		ActualTime:        task.ActualTime,
		Notes:             task.Notes,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
		AssignedAt:        task.AssignedAt,
		StartedAt:         task.StartedAt,
		CompletedAt:       task.CompletedAt,
	}
}

func toTaskDTOs(tasks []*domain.WorkTask) []*TaskDTO {
	dtos := make([]*TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, toTaskDTO(task))
	}
	return dtos
}

func toWorkerDTO(worker *domain.Worker) *WorkerDTO {
	return &WorkerDTO{
		WorkerID: worker.WorkerID,
		PIN:      worker.PIN,
		Name:     worker.Name,
		Role:     worker.Role,
		Team:     worker.Team,
		Active:   worker.Active,
	}
}

func toAuditEntryDTOs(entries []*domain.AuditEntry) []*AuditEntryDTO {
	dtos := make([]*AuditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, &AuditEntryDTO{
			EntryID:        entry.EntryID,
			TaskID:         entry.TaskID,
			WorkerPIN:      entry.WorkerPIN,
			Action:         entry.Action,
			OldStatus:      entry.OldStatus,
			NewStatus:      entry.NewStatus,
			QuantityBefore: entry.QuantityBefore,
			QuantityAfter:  entry.QuantityAfter,
			Notes:          entry.Notes,
			CreatedAt:      entry.CreatedAt,
		})
	}
	return dtos
}

func toQueueStatsDTO(stats domain.QueueStats) *QueueStatsDTO {
	return &QueueStatsDTO{
		Pending:   stats.Pending,
		Assigned:  stats.Assigned,
		Picking:   stats.Picking,
		Completed: stats.Completed,
		Cancelled: stats.Cancelled,
		Total:     stats.Total,
		TotalAll:  stats.TotalAll,
	}
}

func toLocationDTO(layout *domain.WarehouseLayout, location domain.LocationCode) *LocationDTO {
	return &LocationDTO{
		Code:        location.Code(),
		Section:     location.Section,
		Aisle:       location.Aisle,
		Bay:         location.Bay,
		Level:       location.Level,
		Subsection:  location.Subsection,
		IsComplex:   location.IsComplex(),
		VoicePrompt: location.VoicePrompt(),
		Equipment:   layout.Equipment(location),
		CheckDigit:  domain.GenerateCheckDigit(),
	}
}
