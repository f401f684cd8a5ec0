package homework

import "time"

// Status mirrors the review states reported by the homework API.
type Status string

const (
	StatusReviewing Status = "reviewing"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Known reports whether the status is one the API documents.
func (s Status) Known() bool {
	switch s {
	case StatusReviewing, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether a reviewer has finished with the submission.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Homework is a single submission as last reported upstream.
type Homework struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	LessonName      string    `json:"lessonName,omitempty"`
	Status          Status    `json:"status"`
	ReviewerComment string    `json:"reviewerComment,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Batch is one upstream answer: the homeworks updated since the cursor and the
// server time to use as the next cursor.
type Batch struct {
	Homeworks   []Homework `json:"homeworks"`
	CurrentDate time.Time  `json:"currentDate"`
}

// ChangeEvent is a detected transition for one homework. Old is empty when the
// homework had not been seen before.
type ChangeEvent struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Old  Status    `json:"old,omitempty"`
	New  Status    `json:"new"`
	At   time.Time `json:"at"`
}
