package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", 0, false},
		{"verbose", ModeVerbose, false},
		{"debug, dump", ModeDebug | ModeDumpToFile, false},
		{"VERBOSE,debug,dump", ModeVerbose | ModeDebug | ModeDumpToFile, false},
		{"debug,,", ModeDebug, false},
		{"trace", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "", Mode(0).String())
	assert.Equal(t, "verbose,dump", (ModeVerbose | ModeDumpToFile).String())
	assert.True(t, (ModeDebug | ModeVerbose).Has(ModeDebug))
	assert.False(t, ModeDebug.Has(ModeDumpToFile))
}
