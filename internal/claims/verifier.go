// Package claims verifies proof-of-ownership notes and governs the claim
// lifecycle from submission to approval or rejection.
package claims

import (
	"fmt"
	"math"

	"github.com/naveenkumar-devtech/refind/internal/model"
	"github.com/naveenkumar-devtech/refind/internal/similarity"
)

// Verifier scores a claimant's note against the hidden private note of a
// found item. Two modes are exposed: the note-only score recorded with
// every claim for the owner's review, and a stricter five-signal check a
// caller can use to gate automatic admission.
type Verifier struct {
	cfg model.ClaimsConfig
}

// NewVerifier creates a verifier with the given thresholds.
func NewVerifier(cfg model.ClaimsConfig) *Verifier {
	return &Verifier{cfg: cfg}
}

// NoteScore computes the token-set similarity of the claim note against
// the private note, rounded to 2 decimals. Either note being empty after
// normalization is a validation error.
func (v *Verifier) NoteScore(claimNote, privateNote string) (float64, error) {
	score, err := similarity.TokenSetScore(privateNote, claimNote)
	if err != nil {
		return 0, fmt.Errorf("score claim note: %w", err)
	}
	return round2(score), nil
}

// Verify computes the note score and reports whether it clears the
// verification threshold. The admissibility flag is advisory in the
// default flow: a claim is recorded as pending regardless, with the score
// shown to the owner.
func (v *Verifier) Verify(claimNote, privateNote string) (bool, float64, error) {
	score, err := v.NoteScore(claimNote, privateNote)
	if err != nil {
		return false, 0, err
	}
	return score >= v.cfg.MultiSignalThreshold, score, nil
}

// VerifyMultiSignal runs the strict check: the note score plus title,
// location, description and date similarity of the two reports, five
// equally-weighted signals, admissible when the mean clears the
// threshold. Optional fields missing on either side contribute 0 rather
// than failing; only the notes themselves are mandatory.
func (v *Verifier) VerifyMultiSignal(claimNote string, claimed, lost *model.Report) (bool, float64, error) {
	noteScore, err := similarity.TokenSetScore(claimed.PrivateNote, claimNote)
	if err != nil {
		return false, 0, fmt.Errorf("score claim note: %w", err)
	}

	titleScore := optionalStringScore(claimed.Title, lost.Title)
	locationScore := optionalStringScore(claimed.Location, lost.Location)
	descScore := optionalStringScore(claimed.Description, lost.Description)
	dateScore := similarity.DateScore(claimed.CreatedAt, lost.CreatedAt, v.cfg.DateWindowDays)

	total := (noteScore + titleScore + locationScore + descScore + dateScore) / 5
	total = round2(total)
	return total >= v.cfg.MultiSignalThreshold, total, nil
}

// optionalStringScore scores two optional fields; an empty side simply
// contributes nothing.
func optionalStringScore(a, b string) float64 {
	if similarity.Normalize(a) == "" || similarity.Normalize(b) == "" {
		return 0
	}
	score, err := similarity.StringScore(a, b)
	if err != nil {
		return 0
	}
	return score
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
