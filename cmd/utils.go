/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fernhold/todoserve/models"
	"github.com/fernhold/todoserve/types"
)

func statusIcon(s models.TodoStatus) string {
	if s == models.StatusCompleted {
		return "✅"
	}
	return "⏳"
}

func priorityIcon(p models.TodoPriority) string {
	switch p {
	case models.PriorityHigh:
		return "🔴"
	case models.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatTodoLine renders one todo as a block in list output.
func formatTodoLine(t models.Todo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s [%d] %s\n", statusIcon(t.Status), priorityIcon(t.Priority), t.ID, t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, "   Description: %s\n", t.Description)
	}
	fmt.Fprintf(&b, "   Status: %s | Priority: %s\n", t.Status, t.Priority)
	fmt.Fprintf(&b, "   Created: %s\n", formatTimestamp(t.CreatedAt))
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "   Completed: %s\n", formatTimestamp(*t.CompletedAt))
	}
	b.WriteString("\n")
	return b.String()
}

// formatTodoDetail renders the full detail view used by get-todo.
func formatTodoDetail(t models.Todo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s Todo #%d: %s\n\n", statusIcon(t.Status), priorityIcon(t.Priority), t.ID, t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", t.Description)
	}
	fmt.Fprintf(&b, "Status: %s\n", t.Status)
	fmt.Fprintf(&b, "Priority: %s\n", t.Priority)
	fmt.Fprintf(&b, "Created: %s\n", formatTimestamp(t.CreatedAt))
	fmt.Fprintf(&b, "Updated: %s\n", formatTimestamp(t.UpdatedAt))
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "Completed: %s\n", formatTimestamp(*t.CompletedAt))
	}
	return b.String()
}

func todoToResponse(t models.Todo) types.TodoResponse {
	var completedAt *string
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		completedAt = &s
	}
	return types.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
		CompletedAt: completedAt,
	}
}

// buildStats computes the stats summary over the given todos.
// Completion rate is completed/total*100, 0 when the store is empty.
func buildStats(todos []models.Todo) types.StatsResponse {
	stats := types.StatsResponse{Total: len(todos)}
	for _, t := range todos {
		if t.Status == models.StatusCompleted {
			stats.Completed++
			continue
		}
		stats.Pending++
		switch t.Priority {
		case models.PriorityHigh:
			stats.PendingByPriority.High++
		case models.PriorityLow:
			stats.PendingByPriority.Low++
		default:
			stats.PendingByPriority.Medium++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}

// formatStats renders the stats summary used by todo-stats and the CLI.
func formatStats(stats types.StatsResponse) string {
	var b strings.Builder
	b.WriteString("📊 Todo Statistics\n\n")
	fmt.Fprintf(&b, "Total todos: %d\n", stats.Total)
	fmt.Fprintf(&b, "Pending: %d ⏳\n", stats.Pending)
	fmt.Fprintf(&b, "Completed: %d ✅\n", stats.Completed)
	fmt.Fprintf(&b, "Completion rate: %.1f%%\n", stats.CompletionRate)
	if stats.Pending > 0 {
		b.WriteString("\nPending by priority:\n")
		fmt.Fprintf(&b, "  🔴 High: %d\n", stats.PendingByPriority.High)
		fmt.Fprintf(&b, "  🟡 Medium: %d\n", stats.PendingByPriority.Medium)
		fmt.Fprintf(&b, "  🟢 Low: %d\n", stats.PendingByPriority.Low)
	}
	return b.String()
}
