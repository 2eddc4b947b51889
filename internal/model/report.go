package model

import "time"

// Status is the lifecycle status of a report.
type Status string

const (
	StatusLost    Status = "lost"    // Owner lost the item and is looking for it
	StatusFound   Status = "found"   // Finder holds the item and is looking for the owner
	StatusClaimed Status = "claimed" // Ownership was verified, the report is closed
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusClaimed:
		return true
	}
	return false
}

// Opposite returns the status a report is matched against: lost items are
// matched against found items and vice versa.
func (s Status) Opposite() Status {
	if s == StatusLost {
		return StatusFound
	}
	return StatusLost
}

// Report represents a lost or found item record.
//
// Claimed and StatusClaimed move together: approving a claim (or an owner
// manually closing the report) sets both.
type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Status      Status    `json:"status"`
	Claimed     bool      `json:"claimed"`
	PrivateNote string    `json:"private_note,omitempty"` // Secret detail about a found item, used for claim verification
	OwnerID     string    `json:"owner_id"`
	ImageRef    string    `json:"image,omitempty"` // Opaque reference to an externally stored image
	CreatedAt   time.Time `json:"created_at"`
}

// Open reports whether the report is still eligible for matching and claims.
func (r *Report) Open() bool {
	return !r.Claimed && r.Status != StatusClaimed
}

// MatchText returns the text joined the way the matcher embeds it.
func (r *Report) MatchText() string {
	if r.Description == "" {
		return r.Title
	}
	return r.Title + " " + r.Description
}
