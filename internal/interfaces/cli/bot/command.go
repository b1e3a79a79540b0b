// Package bot wires the whole service together and runs it: database, redis,
// Telegram polling, the expiry sweeper, and the health endpoint.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	accessUC "kursly/internal/application/access/usecases"
	botApp "kursly/internal/application/bot"
	subscriptionUC "kursly/internal/application/subscription/usecases"
	"kursly/internal/application/sweeper"
	"kursly/internal/infrastructure/cache"
	"kursly/internal/infrastructure/config"
	"kursly/internal/infrastructure/database"
	"kursly/internal/infrastructure/repository"
	"kursly/internal/infrastructure/telegram"
	httpRouter "kursly/internal/interfaces/http"
	"kursly/internal/shared/biztime"
	"kursly/internal/shared/logger"
)

var env string

// NewCommand creates the bot command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the subscription bot",
		Long:  `Start the Telegram bot, the subscription expiry sweeper, and the health HTTP endpoint.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(""); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := cache.Init(&cfg.Redis); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Warnw("failed to close redis", "error", err)
		}
	}()

	db := database.Get()
	redisClient := cache.Get()

	// Repositories
	userRepo := repository.NewUserRepository(db, log.Named("repo.user"))
	planRepo := repository.NewPlanRepository(db, log.Named("repo.plan"))
	subscriptionRepo := repository.NewSubscriptionRepository(db, log.Named("repo.subscription"))
	paymentRepo := repository.NewPaymentRepository(db, log.Named("repo.payment"))
	videoRepo := repository.NewVideoRepository(db, log.Named("repo.video"))
	activationStore := repository.NewActivationStore(db, log.Named("repo.activation"))

	// Telegram
	botService := telegram.NewBotService(cfg.Telegram)
	dialogStore := cache.NewDialogStateStore(redisClient)
	offsetStore := cache.NewPollingOffsetStore(redisClient)

	userCommands := []telegram.BotCommand{
		{Command: "start", Description: "Open the main menu"},
		{Command: "cancel", Description: "Cancel the current action"},
	}
	if err := botService.SetMyCommands(userCommands); err != nil {
		log.Warnw("failed to set bot commands", "error", err)
	}
	adminCommands := append(userCommands, telegram.BotCommand{Command: "admin", Description: "Open the admin panel"})
	for _, adminID := range cfg.Telegram.AdminIDs {
		if err := botService.SetMyCommandsForChat(adminID, adminCommands); err != nil {
			log.Warnw("failed to set admin bot commands", "admin_id", adminID, "error", err)
		}
	}

	// Use cases
	activate := subscriptionUC.NewActivateSubscriptionUseCase(activationStore, planRepo, log.Named("uc.activate"))
	resolve := subscriptionUC.NewResolveEntitlementUseCase(subscriptionRepo, log.Named("uc.resolve"))
	sweep := subscriptionUC.NewSweepExpiredUseCase(subscriptionRepo, log.Named("uc.sweep"))
	listPlans := subscriptionUC.NewListPlansUseCase(planRepo)
	createPlan := subscriptionUC.NewCreatePlanUseCase(planRepo, log.Named("uc.createplan"))

	gate := accessUC.NewCheckChannelGateUseCase(botService, cfg.Telegram.RequiredChannelList(), log.Named("uc.gate"))
	grant := accessUC.NewGrantGroupAccessUseCase(botService, cfg.Telegram.PrivateGroupID, log.Named("uc.grant"))
	revoke := accessUC.NewRevokeGroupAccessUseCase(botService, cfg.Telegram.PrivateGroupID, log.Named("uc.revoke"))
	arbitrate := accessUC.NewArbitrateJoinRequestUseCase(resolve, botService, cfg.Telegram.PrivateGroupID, log.Named("uc.arbitrate"))

	handler := botApp.NewHandler(botApp.Deps{
		Bot:              botService,
		Config:           cfg.Telegram,
		UserRepo:         userRepo,
		VideoRepo:        videoRepo,
		PaymentRepo:      paymentRepo,
		PlanRepo:         planRepo,
		SubscriptionRepo: subscriptionRepo,
		Activate:         activate,
		Resolve:          resolve,
		ListPlans:        listPlans,
		CreatePlan:       createPlan,
		Gate:             gate,
		Grant:            grant,
		Arbitrate:        arbitrate,
		Dialogs:          dialogStore,
		Logger:           log.Named("bot.handler"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	polling := telegram.NewPollingService(botService, handler, log.Named("telegram.polling"), offsetStore)
	if err := polling.Start(ctx); err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	sweepInterval := time.Duration(cfg.Sweeper.IntervalMinutes) * time.Minute
	sweepService := sweeper.NewService(sweep, resolve, revoke, botService, botApp.ExpiryNoticeText, sweepInterval, log.Named("sweeper"))
	sweepService.Start(ctx)

	gin.SetMode(ginMode(env))
	gin.DefaultWriter = io.Discard
	healthServer := &http.Server{
		Addr:    cfg.Server.GetAddr(),
		Handler: httpRouter.NewRouter(db, redisClient),
	}
	go func() {
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("health server failed", "error", err)
		}
	}()

	log.Infow("bot started",
		"environment", env,
		"health_addr", cfg.Server.GetAddr(),
		"sweep_interval", sweepInterval,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")

	polling.Stop()
	sweepService.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Warnw("health server shutdown failed", "error", err)
	}

	log.Infow("bot stopped")
	return nil
}

func ginMode(env string) string {
	if env == "production" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}
