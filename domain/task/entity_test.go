package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Label(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{status: "", want: "Pending"},
		{status: StatusPending, want: "Pending"},
		{status: StatusInProgress, want: "In progress"},
		{status: StatusDone, want: "Done"},
		{status: "blocked", want: "Blocked"},
		{status: "élan", want: "Élan"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Label())
		})
	}
}

func TestStatus_Known(t *testing.T) {
	assert.True(t, StatusPending.Known())
	assert.True(t, StatusInProgress.Known())
	assert.True(t, StatusDone.Known())
	assert.False(t, Status("archived").Known())
	assert.False(t, Status("").Known())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5", " 3", "0x10"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseID(raw)
			assert.ErrorIs(t, err, ErrInvalidTaskID)
		})
	}
}
