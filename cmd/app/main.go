package main

import (
	"context"
	"database/sql"
	"time"

	"verifybot/internal/application"
	"verifybot/internal/delivery/discord"
	"verifybot/internal/delivery/telegram"
	"verifybot/internal/playfab"
	"verifybot/internal/repository"
	"verifybot/pkg/config"
	"verifybot/pkg/logger"
	service "verifybot/pkg/services"
	"verifybot/pkg/sheets"

	"github.com/joho/godotenv"
)

const startupLoginTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	var db *sql.DB
	if cfg.Repo.Driver != repository.DriverMemory {
		var err error
		db, err = repository.NewPostgresDB(&cfg.Repo)
		if err != nil {
			log.Error("failed to init db: %s", err.Error())
			return
		}

		log.Info("Running migrations...")
		if err := repository.RunMigrations(db); err != nil {
			log.Error("failed to run migrations: %s", err.Error())
			db.Close()
			return
		}
		log.Info("Migrations applied successfully")
	}

	repos, err := repository.NewRepository(&cfg.Repo, db)
	if err != nil {
		log.Error("failed to init repository: %s", err.Error())
		return
	}
	defer repos.Close()

	directory := playfab.NewClient(&cfg.PlayFab, log.With("playfab"))
	loginCtx, cancelLogin := context.WithTimeout(context.Background(), startupLoginTimeout)
	if err := directory.Login(loginCtx); err != nil {
		// Lookups log in lazily, so a failed startup login only degrades them.
		log.Warn("initial playfab login failed: %v", err)
	}
	cancelLogin()

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		log.Error("failed to init discord: %s", err.Error())
		return
	}

	deps := application.Deps{
		Directory: directory,
		Guard:     discord.NewAdminGuard(session, cfg.PrimaryGuildID, cfg.AdminRoleID, cfg.AdminUserIDs),
		Granter:   discord.NewRoleGranter(session, cfg.GrantGuild(), cfg.Discord.AlwaysRoleIDs, cfg.Discord.ClanRoleID, log.With("roles")),
	}
	if cfg.Discord.LogChannelID != "" {
		deps.Logs = append(deps.Logs, discord.NewLogChannel(session, cfg.Discord.LogChannelID))
	}

	var notifier *telegram.Notifier
	if cfg.TelegramEnabled() {
		notifier, err = telegram.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.QueueSize, log.With("telegram"))
		if err != nil {
			log.Error("failed to init telegram: %s", err.Error())
			return
		}
		deps.Logs = append(deps.Logs, notifier)
	}

	if cfg.SheetsEnabled() {
		client, err := sheets.NewGoogleSheetsClient(context.Background(), cfg.Google.CredentialsPath)
		if err != nil {
			log.Error("failed to init google sheets: %s", err.Error())
			return
		}
		deps.Sheets = application.NewSheetsServiceImpl(client, cfg.Google.SpreadsheetID, cfg.Google.OwnerEmail)
	}

	services := application.NewService(repos, deps, log.With("application"))

	manager := service.NewManager(log)
	manager.AddService(discord.NewBot(session, &cfg, services, deps.Guard, log.With("discord")))
	if notifier != nil {
		manager.AddService(notifier)
	}

	if err := manager.Run(context.Background()); err != nil {
		log.Error("failed to run services: %s", err.Error())
		return
	}
	log.Info("Bot Stopped")
}
