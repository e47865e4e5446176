package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string
	LogLevel int

	Discord DiscordConfigs
	Redis   RedisConfigs
	Metrics ServerConfigs
}

type DiscordConfigs struct {
	APIURL    string
	BotToken  string
	BotID     string
	PublicKey string
	UserAgent string

	// MaxRetries is the number of times a request is retried after a network
	// error or a 5xx response. Zero disables retries.
	MaxRetries uint64

	// NonceNode identifies this process when generating message nonces.
	NonceNode int64
}

type RedisConfigs struct {
	Enable bool
	Addr   string
	TTL    Duration
}

// Duration decodes TOML strings such as "30m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v
	return nil
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: 1,
		Discord: DiscordConfigs{
			APIURL:     "https://discord.com/api/v10",
			UserAgent:  "DiscordBot (https://github.com/questx-lab/discordx, 1.0)",
			MaxRetries: 3,
		},
		Redis: RedisConfigs{
			Addr: "localhost:6379",
			TTL:  Duration{time.Hour},
		},
		Metrics: ServerConfigs{
			Host: "0.0.0.0",
			Port: "9090",
		},
	}
}

// Load reads a TOML file on top of the default configurations.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
	}

	if cfg.Discord.BotToken == "" {
		return Configs{}, fmt.Errorf("missing discord bot token in %s", path)
	}

	return cfg, nil
}
