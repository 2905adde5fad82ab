package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{name: "release", version: "0.1.0", commit: "abc1234", want: "nomen v0.1.0 (abc1234)\n"},
		{name: "dev build", version: "dev", commit: "unknown", want: "nomen vdev (unknown)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewVersionCommand(tt.version, tt.commit))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
