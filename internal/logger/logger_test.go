package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("dev environment", func(t *testing.T) {
		t.Setenv("INVESTSIM_ENV", "dev")
		require.NotNil(t, New())
	})

	t.Run("prod environment", func(t *testing.T) {
		t.Setenv("INVESTSIM_ENV", "")
		require.NotNil(t, New())
	})
}
