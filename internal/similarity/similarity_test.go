package similarity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Black   Leather Wallet ", "black leather wallet"},
		{"\tUMBRELLA\n", "umbrella"},
		{"   ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestStringScore_Identical(t *testing.T) {
	score, err := StringScore("Blue Backpack", "blue backpack")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestStringScore_Disjoint(t *testing.T) {
	score, err := StringScore("qqq", "zzz")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestStringScore_PartialOverlap(t *testing.T) {
	// difflib: ratio("abcd", "bcde") = 2*3/8 = 0.75
	score, err := StringScore("abcd", "bcde")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, score, 1e-9)
}

func TestStringScore_EmptyInput(t *testing.T) {
	for _, pair := range [][2]string{{"", "foo"}, {"foo", ""}, {"   ", "foo"}} {
		_, err := StringScore(pair[0], pair[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrValidation))
	}
}

func TestTokenSetScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"black leather wallet", "wallet made of black leather"},
		{"red umbrella", "blue backpack"},
		{"main library", "library"},
		{"one two three", "three two one"},
	}
	for _, p := range pairs {
		ab, err := TokenSetScore(p[0], p[1])
		require.NoError(t, err)
		ba, err := TokenSetScore(p[1], p[0])
		require.NoError(t, err)
		assert.Equal(t, ab, ba, "token set score must be symmetric for %q / %q", p[0], p[1])
	}
}

func TestTokenSetScore_WordOrderInsensitive(t *testing.T) {
	score, err := TokenSetScore("black leather wallet", "wallet leather black")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestTokenSetScore_Subset(t *testing.T) {
	// One location naming a building, the other the campus area: the
	// shared tokens dominate, exactly why this measure is used for
	// locations and claim notes.
	score, err := TokenSetScore("main library", "library")
	require.NoError(t, err)
	assert.Greater(t, score, 0.70)
}

func TestTokenSetScore_Disjoint(t *testing.T) {
	score, err := TokenSetScore("red umbrella", "silver laptop")
	require.NoError(t, err)
	assert.Less(t, score, 0.60)
}

func TestTokenSetScore_EmptyInput(t *testing.T) {
	_, err := TokenSetScore("   ", "foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestDateScore(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	const window = 2

	tests := []struct {
		name  string
		other time.Time
		want  float64
	}{
		{"same day", base, 1.0},
		{"exactly two days after", base.Add(2 * 24 * time.Hour), 1.0},
		{"exactly two days before", base.Add(-2 * 24 * time.Hour), 1.0},
		{"three days apart", base.Add(3 * 24 * time.Hour), 0.0},
		// Whole days is what counts: a fractional overshoot truncates
		// back into the window.
		{"two and a half days after", base.Add(60 * time.Hour), 1.0},
		{"two and a half days before", base.Add(-60 * time.Hour), 1.0},
		{"just under three days", base.Add(71 * time.Hour), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateScore(base, tt.other, window))
		})
	}
}
