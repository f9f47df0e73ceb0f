package cli

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/nutripal/backend/config"
	"github.com/pageza/nutripal/backend/internal/api"
	"github.com/pageza/nutripal/backend/internal/database"
	"github.com/pageza/nutripal/backend/internal/middleware"
	"github.com/pageza/nutripal/backend/internal/server"
	"github.com/pageza/nutripal/backend/internal/service"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		if rdb, err = database.NewRedisClient(ctx, cfg); err != nil {
			return err
		}
		defer rdb.Close()
	}

	svc := buildServices(ctx, cfg, db, rdb)
	return server.New(cfg, svc).Run(ctx)
}

// buildServices wires the stores and collaborators. Redis and S3 are
// optional; without them drafts, rate limiting and exports are disabled.
func buildServices(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) api.Services {
	if cfg.AIAPIKey == "" {
		log.Printf("[Serve] no AI key configured; AI endpoints will report a missing credential")
	}
	completer := service.NewCompleter(cfg.AIProvider, cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)
	ai := service.NewAIService(completer, cfg.AITimeout)

	foodLogs := service.NewFoodLogService(db)
	recipes := service.NewRecipeService(db, service.MacroEmbeddingService{})
	svc := api.Services{
		AI:        ai,
		Sessions:  service.NewSessionService(cfg.JWTSecret),
		Profiles:  service.NewProfileService(db),
		FoodLogs:  foodLogs,
		MealPlans: service.NewMealPlanService(db),
		Recipes:   recipes,
		Chat:      service.NewChatService(db, ai),
		Badges:    service.NewBadgeService(db, foodLogs, recipes),
	}

	if rdb != nil {
		svc.Drafts = service.NewDraftService(rdb)
		svc.RateLimiter = middleware.NewAIRateLimiter(rdb)
	}

	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Printf("[Serve] meal plan exports disabled: %v", err)
		} else {
			svc.Export = service.NewExportService(s3cfg)
		}
	}

	return svc
}
