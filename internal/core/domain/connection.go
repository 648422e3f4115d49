package domain

import (
	"errors"
	"time"
)

// ConnectionStatus represents the state of a mentorship request.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

var ErrConnectionNotFound = errors.New("connection not found")
var ErrConnectionExists = errors.New("connection request already exists")
var ErrInvalidConnectionStatus = errors.New("invalid connection status")

// ValidConnectionStatus reports whether s is a state an alumnus may set.
func ValidConnectionStatus(s ConnectionStatus) bool {
	return s == ConnectionAccepted || s == ConnectionRejected
}

// Connection is a mentorship request from a student to an alumnus.
type Connection struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	AlumniID  string           `json:"alumni_id"`
	Status    ConnectionStatus `json:"status"`
	Message   string           `json:"message,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ConnectionStats is the admin-facing aggregate view.
type ConnectionStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}
