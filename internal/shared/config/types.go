package config

import (
	"fmt"
	"strings"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql or sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type TelegramConfig struct {
	BotToken         string  `mapstructure:"bot_token"`
	AdminIDs         []int64 `mapstructure:"admin_ids"`
	PrivateGroupID   int64   `mapstructure:"private_group_id"`
	RequiredChannels string  `mapstructure:"required_channels"` // comma separated usernames or -100 IDs
	ProviderToken    string  `mapstructure:"provider_token"`
	Currency         string  `mapstructure:"currency"`
}

// RequiredChannelList splits and normalizes the configured channel list.
// Bare usernames get a leading @; numeric -100 chat IDs pass through as-is.
func (t *TelegramConfig) RequiredChannelList() []string {
	var channels []string
	for _, raw := range strings.Split(t.RequiredChannels, ",") {
		ch := strings.TrimSpace(raw)
		if ch == "" {
			continue
		}
		if !strings.HasPrefix(ch, "@") && !strings.HasPrefix(ch, "-100") {
			ch = "@" + ch
		}
		channels = append(channels, ch)
	}
	return channels
}

func (t *TelegramConfig) IsAdmin(telegramUserID int64) bool {
	for _, id := range t.AdminIDs {
		if id == telegramUserID {
			return true
		}
	}
	return false
}

type SweeperConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes"`
}
