package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader("secret:\n  key: 0f1e2d3c\n")))

	var cfg SecretConfig
	require.NoError(t, v.UnmarshalKey(cfg.Key(), &cfg))

	assert.Equal(t, "secret", cfg.Key())
	assert.Equal(t, "0f1e2d3c", cfg.HexKey)
}

func TestAdminConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader("admin:\n  userIds:\n    - 1\n    - 42\n")))

	var cfg AdminConfig
	require.NoError(t, v.UnmarshalKey(cfg.Key(), &cfg))

	assert.Equal(t, []uint64{1, 42}, cfg.UserIDs)
}
