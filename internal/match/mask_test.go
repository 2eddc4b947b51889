package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name string
		text string
		keep int
		want string
	}{
		{"empty", "", 1, "***"},
		{"whitespace only", "   ", 1, "***"},
		{"single word", "Alpha", 1, "Alpha ***"},
		{"keeps first token", "Alpha Beta Gamma", 1, "Alpha ***"},
		{"keeps two tokens", "Alpha Beta Gamma", 2, "Alpha Beta ***"},
		{"keep larger than text", "Alpha", 3, "Alpha ***"},
		{"keep below one falls back to one", "Alpha Beta", 0, "Alpha ***"},
		{"collapses leading whitespace", "  Alpha   Beta", 1, "Alpha ***"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.text, tt.keep))
		})
	}
}

func TestMask_Deterministic(t *testing.T) {
	assert.Equal(t, Mask("Blue Backpack", 1), Mask("Blue Backpack", 1))
}
