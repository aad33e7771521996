package task

import (
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/example/study-task-manager/domain/user"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Known reports whether s is one of the statuses offered to users.
// Other values are still stored as given.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the human readable form shown on status badges.
func (s Status) Label() string {
	switch s {
	case "":
		return "Pending"
	case StatusInProgress:
		return "In progress"
	}
	r, size := utf8.DecodeRuneInString(string(s))
	return string(unicode.ToUpper(r)) + string(s)[size:]
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	Description string     `gorm:"not null;default:'';type:text" json:"description"`
	Status      string     `gorm:"not null;default:'pending';type:text" json:"status"`
	ImageURL    *string    `gorm:"type:text" json:"imageUrl"`
	UserID      uint       `gorm:"not null;index" json:"ownerId"`
	Owner       *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// ParseID parses a task id taken from a request path.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, ErrInvalidTaskID
	}
	return uint(id), nil
}
