package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(dir, "ok.toml")
		content := `
Env = "prod"

[Discord]
BotToken = "token"
BotID = "123456789012345678"
MaxRetries = 5

[Redis]
Enable = true
TTL = "30m"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "prod", cfg.Env)
		require.Equal(t, "token", cfg.Discord.BotToken)
		require.Equal(t, uint64(5), cfg.Discord.MaxRetries)
		require.Equal(t, "https://discord.com/api/v10", cfg.Discord.APIURL)
		require.True(t, cfg.Redis.Enable)
		require.Equal(t, 30*time.Minute, cfg.Redis.TTL.Duration)
	})

	t.Run("missing token", func(t *testing.T) {
		path := filepath.Join(dir, "notoken.toml")
		require.NoError(t, os.WriteFile(path, []byte(`Env = "prod"`), 0600))

		_, err := Load(path)
		require.Error(t, err)
	})
}
