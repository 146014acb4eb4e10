package model

import (
	"fmt"
	"strings"
	"time"
)

// JobStatus is the lifecycle state of a print job.
type JobStatus string

const (
	StatusQueued    JobStatus = "Queued"
	StatusPrinting  JobStatus = "Printing"
	StatusCompleted JobStatus = "Completed"
	StatusCancelled JobStatus = "Cancelled"
)

// AllStatuses lists statuses in display order.
var AllStatuses = []JobStatus{StatusQueued, StatusPrinting, StatusCompleted, StatusCancelled}

var transitions = map[JobStatus][]JobStatus{
	StatusQueued:   {StatusPrinting, StatusCompleted, StatusCancelled},
	StatusPrinting: {StatusQueued, StatusCompleted, StatusCancelled},
}

// ParseJobStatus accepts the canonical names case-insensitively.
func ParseJobStatus(s string) (JobStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range AllStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// Terminal reports whether no further transitions are possible.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo consults the transition table.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s.
func (s JobStatus) NextStatuses() []JobStatus {
	return transitions[s]
}

// PrintJob represents one submitted document
type PrintJob struct {
	ID               int64      `json:"id"`
	UserID           int        `json:"user_id"`
	StoredFilename   string     `json:"stored_filename"`
	OriginalFilename string     `json:"original_filename"`
	Pages            int        `json:"pages"`
	Copies           int        `json:"copies"`
	Color            bool       `json:"color"`
	Cost             int64      `json:"cost"` // In whole currency units
	Status           JobStatus  `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CompletedBy      *int       `json:"completed_by,omitempty"`
}

// QueueStats summarises the queue for the staff dashboard
type QueueStats struct {
	ByStatus         map[JobStatus]int64 `json:"by_status"`
	CompletedRevenue int64               `json:"completed_revenue"`
	CompletedPages   int64               `json:"completed_pages"`
}
