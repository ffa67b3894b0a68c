// internal/domain/models/status.go
package models

// Status is the shared workflow state for projects and todos.
// The zero value means "not set".
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusBlocked    Status = "BLOCKED"
	StatusRejected   Status = "REJECTED"
)

// Statuses lists every valid status in schema order.
var Statuses = []Status{
	StatusTodo,
	StatusInProgress,
	StatusCompleted,
	StatusBlocked,
	StatusRejected,
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}
