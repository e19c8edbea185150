// Package events fans task lifecycle events out to live listeners: in-process
// SSE sessions and, when configured, an MQTT broker.
package events

import "github.com/biosecret/go-tasks/models"

// Event types published on task mutations.
const (
	TaskCreated = "task_created"
	TaskUpdated = "task_updated"
	TaskDeleted = "task_deleted"
	TaskToggled = "task_toggled"
)

// Event describes one task mutation. For deletions the task carries only its
// id and owner.
type Event struct {
	Type string      `json:"type"`
	Task models.Task `json:"task"`
}
