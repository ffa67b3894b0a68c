// Package progress derives a project's completion percentage from its todos.
package progress

import "github.com/dalemusser/taskboard/internal/domain/models"

// Compute returns the share of todos that are done, as a percentage in
// [0, 100]. A todo is done when its status is COMPLETED or its isCompleted
// flag is set. An empty list yields 0.
func Compute(todos []models.Todo) float64 {
	if len(todos) == 0 {
		return 0
	}
	completed := 0
	for _, t := range todos {
		if t.Done() {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(todos))
}
