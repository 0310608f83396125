package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskcart/taskcart/internal/config"
)

func TestGetPort(t *testing.T) {
	t.Run("bare port gets a colon prefix", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		require.Equal(t, ":9090", config.New().GetPort())
	})

	t.Run("already prefixed port is left alone", func(t *testing.T) {
		t.Setenv("PORT", ":9090")
		require.Equal(t, ":9090", config.New().GetPort())
	})

	t.Run("defaults to 8080", func(t *testing.T) {
		t.Setenv("PORT", "")
		require.Equal(t, ":8080", config.New().GetPort())
	})
}
