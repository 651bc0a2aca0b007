package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonOptions_ApplyToContext(t *testing.T) {
	t.Parallel()

	t.Run("with timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 100 * time.Millisecond}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(100*time.Millisecond), deadline, 10*time.Millisecond)
	})

	t.Run("no timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 0}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		_, ok := ctx.Deadline()
		assert.False(t, ok)
	})
}

func TestCommonOptions_ValidateFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    CommonOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "defaults",
			opts: DefaultCommonOptions(),
		},
		{
			name: "valid format sarif",
			opts: CommonOptions{Format: "sarif", Jobs: 4},
		},
		{
			name:    "invalid format",
			opts:    CommonOptions{Format: "xml", Jobs: 1},
			wantErr: true,
			errMsg:  "invalid format",
		},
		{
			name:    "zero jobs",
			opts:    CommonOptions{Format: "table", Jobs: 0},
			wantErr: true,
			errMsg:  "--jobs must be at least 1",
		},
		{
			name:    "negative timeout",
			opts:    CommonOptions{Format: "table", Jobs: 1, Timeout: -time.Second},
			wantErr: true,
			errMsg:  "--timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.ValidateFlags()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}
