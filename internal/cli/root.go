package cli

import (
	"context"
	"fmt"

	"github.com/martijn/jobtrack/internal/core/service"
	"github.com/martijn/jobtrack/internal/infrastructure/sqlite"
	"github.com/martijn/jobtrack/internal/logger"
	"github.com/martijn/jobtrack/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "jobtrack - account credential management",
	Long: `jobtrack manages the user accounts of the job tracker.

It provides:
- Registration with email and password strength checks
- PBKDF2-SHA256 password hashing with per-user salts
- One-hour password reset tokens
- Password changes for signed-in users
- REST API with bearer session tokens`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// Services holds all initialized services
type Services struct {
	DB       *sqlite.DB
	Store    *service.CredentialStore
	Sessions *service.SessionService
}

// initServices opens the database and wires the credential store on top of it
func initServices(ctx context.Context) (*Services, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := service.NewCredentialStore(
		sqlite.NewUserRepository(db),
		sqlite.NewResetTokenRepository(db),
		db,
	)

	logger.Log.Debugw("services initialized", "db_path", cfg.DBPath)

	return &Services{
		DB:       db,
		Store:    store,
		Sessions: service.NewSessionService(cfg.JWTSecretKey, cfg.JWTAlgorithm),
	}, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
