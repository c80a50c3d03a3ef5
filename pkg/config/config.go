package config

import (
	"errors"
	"fmt"
	"strings"
	"verifybot/internal/playfab"
	"verifybot/internal/repository"

	"github.com/caarlos0/env/v11"
)

const (
	CommandScopeGuild  = "guild"
	CommandScopeGlobal = "global"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	PlayFab  playfab.Config    `envPrefix:"PLAYFAB_"`
	Discord  DiscordConfig     `envPrefix:"DISCORD_"`
	Telegram TelegramConfig    `envPrefix:"TELEGRAM_"`
	Google   GoogleConfig      `envPrefix:"GOOGLE_"`
	LogLevel string            `env:"LOGGER_LEVEL" envDefault:"debug"`

	PrimaryGuildID string   `env:"PRIMARY_GUILD_ID" envDefault:""`
	AdminRoleID    string   `env:"ADMIN_ROLE_ID" envDefault:""`
	AdminUserIDs   []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`
}

type DiscordConfig struct {
	Token         string   `env:"TOKEN" envDefault:""`
	GrantGuildID  string   `env:"GRANT_GUILD_ID" envDefault:""`
	AlwaysRoleIDs []string `env:"ALWAYS_ROLE_IDS" envSeparator:"," envDefault:""`
	ClanRoleID    string   `env:"CLAN_ROLE_ID" envDefault:""`
	LogChannelID  string   `env:"LOG_CHANNEL_ID" envDefault:""`
	CommandScope  string   `env:"COMMAND_SCOPE" envDefault:"guild"`
	FormImageURL  string   `env:"FORM_IMAGE_URL" envDefault:""`
}

type TelegramConfig struct {
	Token     string `env:"TOKEN" envDefault:""`
	ChatID    int64  `env:"CHAT_ID" envDefault:"0"`
	QueueSize int    `env:"QUEUE_SIZE" envDefault:"64"`
}

type GoogleConfig struct {
	CredentialsPath string `env:"CREDENTIALS_PATH" envDefault:""`
	SpreadsheetID   string `env:"SPREADSHEET_ID" envDefault:""`
	OwnerEmail      string `env:"OWNER_EMAIL" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return err
	}
	cfg.normalize()
	return cfg.Validate()
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	required := map[string]string{
		"DISCORD_TOKEN":    c.Discord.Token,
		"PLAYFAB_TITLE_ID": c.PlayFab.TitleID,
		"PRIMARY_GUILD_ID": c.PrimaryGuildID,
		"ADMIN_ROLE_ID":    c.AdminRoleID,
	}
	for _, name := range []string{"DISCORD_TOKEN", "PLAYFAB_TITLE_ID", "PRIMARY_GUILD_ID", "ADMIN_ROLE_ID"} {
		if required[name] == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}

	switch c.Discord.CommandScope {
	case CommandScopeGuild, CommandScopeGlobal:
	default:
		errs = append(errs, fmt.Errorf("DISCORD_COMMAND_SCOPE must be %q or %q", CommandScopeGuild, CommandScopeGlobal))
	}

	if (c.Telegram.Token == "") != (c.Telegram.ChatID == 0) {
		errs = append(errs, errors.New("TELEGRAM_TOKEN and TELEGRAM_CHAT_ID must be set together"))
	}
	return errors.Join(errs...)
}

// GrantGuild is the guild roles are granted in, the primary guild unless overridden.
func (c *Config) GrantGuild() string {
	if c.Discord.GrantGuildID != "" {
		return c.Discord.GrantGuildID
	}
	return c.PrimaryGuildID
}

func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

func (c *Config) SheetsEnabled() bool {
	return c.Google.CredentialsPath != ""
}

func (c *Config) normalize() {
	c.Discord.CommandScope = strings.ToLower(strings.TrimSpace(c.Discord.CommandScope))
	c.AdminUserIDs = compact(c.AdminUserIDs)
	c.Discord.AlwaysRoleIDs = compact(c.Discord.AlwaysRoleIDs)
}

func compact(ids []string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
