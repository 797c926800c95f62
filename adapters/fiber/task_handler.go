package fiber

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/flowlyhq/flowly/core"
)

func taskID(c fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func invalidTaskID(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Task ID tidak valid",
	})
}

func (h *Handler) createTask(c fiber.Ctx) error {
	var input core.CreateTaskInput
	if err := c.Bind().Body(&input); err != nil {
		return badJSON(c)
	}

	task, err := h.tasks.CreateTask(c.Context(), claimsFrom(c).UserID, input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Task berhasil dibuat",
		"task":    task,
	})
}

func (h *Handler) listTasks(c fiber.Ctx) error {
	var filter core.TaskFilter
	if kategori := c.Query("kategori"); kategori != "" {
		filter.Kategori = &kategori
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if c.Query("sort_by") == "tenggat_waktu" {
		filter.SortByDeadline = true
		filter.Ascending = c.Query("order") != "desc"
	}

	tasks, err := h.tasks.ListTasks(c.Context(), claimsFrom(c).UserID, filter)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tasks":   tasks,
	})
}

func (h *Handler) getTask(c fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	task, err := h.tasks.GetTask(c.Context(), claimsFrom(c).UserID, id)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}

func (h *Handler) updateTask(c fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	var input core.UpdateTaskInput
	if err := c.Bind().Body(&input); err != nil {
		return badJSON(c)
	}

	task, err := h.tasks.UpdateTask(c.Context(), claimsFrom(c).UserID, id, input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task berhasil diupdate",
		"task":    task,
	})
}

func (h *Handler) deleteTask(c fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	if err := h.tasks.DeleteTask(c.Context(), claimsFrom(c).UserID, id); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task berhasil dihapus",
	})
}

func (h *Handler) toggleTask(c fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	task, err := h.tasks.ToggleStatus(c.Context(), claimsFrom(c).UserID, id)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status task berhasil diubah",
		"task":    task,
	})
}
