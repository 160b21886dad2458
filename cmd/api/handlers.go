package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/voicepick-service/internal/application"
	"github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/middleware"
)

func parseWarehouseID(c *gin.Context) (int64, error) {
	raw := c.Query("warehouseId")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, errors.ErrValidation("warehouseId must be a non-negative integer")
	}
	return id, nil
}

func parseTaskID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrValidation("taskId must be a positive integer")
	}
	return id, nil
}

func parsePIN(raw string) (int, error) {
	pin, err := strconv.Atoi(raw)
	if err != nil || pin <= 0 {
		return 0, errors.ErrValidation("workerPin must be a positive integer")
	}
	return pin, nil
}

func parseLocationHandler(service *application.LocationService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			responder.BadRequest(c, "code is required")
			return
		}
		warehouseID, err := parseWarehouseID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		location, err := service.Parse(c.Request.Context(), warehouseID, code)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, location)
	}
}

func generateLocationHandler(service *application.LocationService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.GenerateLocationCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			responder.BadRequest(c, err.Error())
			return
		}
		warehouseID, err := parseWarehouseID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		location, err := service.Generate(c.Request.Context(), warehouseID, cmd)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, location)
	}
}

func voicePromptHandler(service *application.LocationService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			responder.BadRequest(c, "code is required")
			return
		}
		warehouseID, err := parseWarehouseID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		prompt, err := service.VoicePrompt(c.Request.Context(), warehouseID, code)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": code, "voicePrompt": prompt})
	}
}

func equipmentHandler(service *application.LocationService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			responder.BadRequest(c, "code is required")
			return
		}
		warehouseID, err := parseWarehouseID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		equipment, err := service.Equipment(c.Request.Context(), warehouseID, code)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": code, "equipment": equipment})
	}
}

func enumerateAisleHandler(service *application.LocationService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		section := c.Param("section")
		aisle := c.Param("aisle")
		warehouseID, err := parseWarehouseID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		var codes []string
		if term := c.Query("search"); term != "" {
			codes, err = service.Search(c.Request.Context(), warehouseID, section, aisle, term)
		} else {
			pickerOnly := c.Query("pickerOnly") == "true"
			codes, err = service.EnumerateAisle(c.Request.Context(), warehouseID, section, aisle, pickerOnly)
		}
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"section":   section,
			"aisle":     aisle,
			"count":     len(codes),
			"locations": codes,
		})
	}
}

func layoutStatsHandler(service *application.LocationService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		warehouseID, err := parseWarehouseID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		stats, err := service.Stats(c.Request.Context(), warehouseID)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func createTaskHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.CreateTaskCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			responder.BadRequest(c, err.Error())
			return
		}

		task, err := service.CreateTask(c.Request.Context(), cmd)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, task)
	}
}

func listQueueHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := application.ListQueueQuery{
			Status:        c.Query("status"),
			Role:          c.Query("role"),
			PriorityOrder: c.DefaultQuery("priorityOrder", "true") == "true",
		}
		if raw := c.Query("workerPin"); raw != "" {
			pin, err := parsePIN(raw)
			if err != nil {
				responder.Respond(c, err)
				return
			}
			query.WorkerPIN = &pin
		}

		tasks, err := service.ListQueue(c.Request.Context(), query)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(tasks), "tasks": tasks})
	}
}

func queueStatsHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := service.Stats(c.Request.Context())
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func nextForWorkerHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		pin, err := parsePIN(c.Query("workerPin"))
		if err != nil {
			responder.Respond(c, err)
			return
		}

		task, err := service.NextForWorker(c.Request.Context(), pin)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		if task == nil {
			c.JSON(http.StatusOK, gin.H{"task": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

func workByRoleHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := service.WorkByRole(c.Request.Context(), c.Param("role"))
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(tasks), "tasks": tasks})
	}
}

func currentWorkHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		pin, err := parsePIN(c.Param("pin"))
		if err != nil {
			responder.Respond(c, err)
			return
		}

		tasks, err := service.CurrentWork(c.Request.Context(), pin)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(tasks), "tasks": tasks})
	}
}

func getTaskHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := parseTaskID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		task, err := service.GetTask(c.Request.Context(), taskID)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

func taskHistoryHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := parseTaskID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}

		entries, err := service.History(c.Request.Context(), taskID)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"taskId": taskID, "history": entries})
	}
}

func assignTaskHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := parseTaskID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		var cmd application.AssignTaskCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			responder.BadRequest(c, err.Error())
			return
		}

		task, err := service.Assign(c.Request.Context(), taskID, cmd.WorkerPIN)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

func startTaskHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := parseTaskID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		var cmd application.StartTaskCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			responder.BadRequest(c, err.Error())
			return
		}

		task, err := service.Start(c.Request.Context(), taskID, cmd.WorkerPIN)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

func completeTaskHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := parseTaskID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		var cmd application.CompleteTaskCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			responder.BadRequest(c, err.Error())
			return
		}

		task, err := service.Complete(c.Request.Context(), taskID, cmd)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

func cancelTaskHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := parseTaskID(c)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		var cmd application.CancelTaskCommand
		if err := c.ShouldBindJSON(&cmd); err != nil && err.Error() != "EOF" {
			responder.BadRequest(c, err.Error())
			return
		}

		task, err := service.Cancel(c.Request.Context(), taskID, cmd.Reason)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

func lookupWorkerHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		pin, err := parsePIN(c.Param("pin"))
		if err != nil {
			responder.Respond(c, err)
			return
		}

		worker, err := service.LookupWorker(c.Request.Context(), pin)
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, worker)
	}
}

func workersByRoleHandler(service *application.QueueService, responder *middleware.ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		workers, err := service.WorkersByRole(c.Request.Context(), c.Param("role"))
		if err != nil {
			responder.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(workers), "workers": workers})
	}
}
