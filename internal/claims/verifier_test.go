package claims

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

func newVerifier() *Verifier {
	return NewVerifier(model.DefaultConfig().Claims)
}

func TestVerifier_NoteScore_ExactMatch(t *testing.T) {
	score, err := newVerifier().NoteScore("engraved initials J.R. inside", "engraved initials j.r. inside")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestVerifier_NoteScore_WordOrder(t *testing.T) {
	// The claimant rarely phrases the secret the way the finder wrote it
	// down; token-set scoring shrugs off reordering.
	score, err := newVerifier().NoteScore("inside engraved J.R. initials", "engraved initials J.R. inside")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestVerifier_NoteScore_EmptyNote(t *testing.T) {
	_, err := newVerifier().NoteScore("   ", "foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = newVerifier().NoteScore("foo", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestVerifier_NoteScore_Rounded(t *testing.T) {
	score, err := newVerifier().NoteScore("red sticker laptop lid", "blue sticker on the laptop lid")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	assert.InDelta(t, math.Round(score*100)/100, score, 1e-12)
}

func TestVerifier_Verify_Admissibility(t *testing.T) {
	admissible, score, err := newVerifier().Verify("engraved initials J.R.", "engraved initials J.R.")
	require.NoError(t, err)
	assert.True(t, admissible)
	assert.Equal(t, 1.0, score)

	admissible, score, err = newVerifier().Verify("a plain black phone", "engraved initials J.R.")
	require.NoError(t, err)
	assert.False(t, admissible)
	assert.Less(t, score, 0.75)
}

func TestVerifier_VerifyMultiSignal(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	claimed := &model.Report{
		Title:       "Black leather wallet",
		Description: "Worn wallet with two card slots",
		Location:    "Main Library",
		PrivateNote: "engraved initials J.R. inside the flap",
		Status:      model.StatusFound,
		CreatedAt:   now,
	}
	lost := &model.Report{
		Title:       "Black leather wallet",
		Description: "Worn wallet with two card slots",
		Location:    "Main Library",
		Status:      model.StatusLost,
		CreatedAt:   now.Add(24 * time.Hour),
	}

	admissible, score, err := newVerifier().VerifyMultiSignal(
		"inside the flap engraved initials J.R.", claimed, lost)
	require.NoError(t, err)
	assert.True(t, admissible)
	assert.GreaterOrEqual(t, score, 0.75)
	assert.LessOrEqual(t, score, 1.0)
}

func TestVerifier_VerifyMultiSignal_DateOutsideWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	claimed := &model.Report{
		Title:       "Umbrella",
		PrivateNote: "broken rib on one side",
		CreatedAt:   now,
	}
	lost := &model.Report{
		Title:     "Umbrella",
		CreatedAt: now.Add(10 * 24 * time.Hour),
	}

	_, score, err := newVerifier().VerifyMultiSignal("broken rib on one side", claimed, lost)
	require.NoError(t, err)
	// note 1.0 + title 1.0 + location 0 + description 0 + date 0 over 5
	assert.InDelta(t, 0.4, score, 1e-9)
}

func TestVerifier_VerifyMultiSignal_EmptyNoteRejected(t *testing.T) {
	claimed := &model.Report{Title: "Umbrella", PrivateNote: "secret"}
	lost := &model.Report{Title: "Umbrella"}

	_, _, err := newVerifier().VerifyMultiSignal("   ", claimed, lost)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}
