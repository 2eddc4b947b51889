package model

import "time"

// ClaimStatus categorizes the state of a claim attempt.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"  // Awaiting the report owner's decision
	ClaimApproved ClaimStatus = "approved" // Owner accepted the claim; terminal
	ClaimRejected ClaimStatus = "rejected" // Owner declined the claim; terminal
)

// ClaimAttempt represents one claimant's attempt to prove ownership of a
// found item. The similarity score is informational: it is shown to the
// report owner during review and never gates recording the attempt.
type ClaimAttempt struct {
	ID         string      `json:"id"`
	ReportID   string      `json:"report_id"`
	ClaimantID string      `json:"claimant_id"`
	Note       string      `json:"note"`  // The secret detail supplied by the claimant
	Score      float64     `json:"score"` // Token-set similarity against the private note, 2-decimal rounded
	Status     ClaimStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// MatchCandidate is an ephemeral ranked match produced for a source report.
// Only masked hints of the counterpart are ever exposed: the raw title,
// description, location and private note stay with their owner until a
// claim establishes trust.
type MatchCandidate struct {
	ReportID        string  `json:"report_id"`
	Score           float64 `json:"score"`
	TitleHint       string  `json:"title_hint"`
	LocationHint    string  `json:"location_hint,omitempty"`
	DescriptionHint string  `json:"description_hint"`
	ImageRef        string  `json:"image,omitempty"`
	OwnerID         string  `json:"owner_id"`
}
