package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/workday-calendar/internal/config"
	"github.com/username/workday-calendar/internal/holidays"
	"github.com/username/workday-calendar/internal/workday"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "workday",
		Short:         "Workday calendar",
		Long:          "Shift timestamps by fractional workdays honoring a working window, weekends and holidays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ., $HOME/.workday, /etc/workday)")

	rootCmd.AddCommand(incrementCmd())
	rootCmd.AddCommand(checkCmd())

	return rootCmd
}

// initializeCalendar builds a workday calendar and registers holidays from
// every configured source
func initializeCalendar(cfg *config.Config) (*workday.WorkdayCalendar, error) {
	cal := workday.NewWorkdayCalendar(logger)
	cal.SetWorkdayStartAndStop(cfg.Workday.Window())
	cal.SetGapCompensation(cfg.Workday.GapCompensation)

	// Dates listed in the config apply regardless of holidays.years
	holidays.Register(cal, cfg.Holidays.StaticHolidays())

	var sources []holidays.Source

	var fileSource *holidays.FileSource
	if cfg.Holidays.File != "" {
		fileSource = holidays.NewFileSource(cfg.Holidays.File, logger)
	}

	if cfg.Holidays.IsDayOff.Enabled {
		logger.Info("Using isdayoff.ru holiday API")
		apiSource := holidays.NewIsDayOffSource(
			cfg.Holidays.IsDayOff.BaseURL,
			cfg.Holidays.IsDayOff.Country,
			cfg.Holidays.IsDayOff.GetCacheTTL(),
			logger,
		)

		if fileSource != nil {
			compositeSource := holidays.NewCompositeSource(apiSource, fileSource, logger)
			if err := compositeSource.LoadFallback(); err != nil {
				logger.Warn("Failed to load fallback holidays, continuing with API only",
					zap.Error(err))
			}
			sources = append(sources, compositeSource)
		} else {
			sources = append(sources, apiSource)
		}
	} else if fileSource != nil {
		if err := fileSource.Load(); err != nil {
			return nil, fmt.Errorf("failed to load holiday file: %w", err)
		}
		sources = append(sources, fileSource)
	}

	for _, name := range cfg.Holidays.Presets {
		preset, err := holidays.NewPresetSource(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, preset)
	}

	if len(sources) > 0 {
		multi := holidays.NewMultiSource(logger, sources...)
		for _, year := range cfg.Holidays.Years {
			hs, err := multi.Holidays(year)
			if err != nil {
				return nil, fmt.Errorf("failed to load holidays for %d: %w", year, err)
			}
			holidays.Register(cal, hs)
		}
	}

	logger.Info("Workday calendar initialized",
		zap.String("start", cfg.Workday.Start),
		zap.String("stop", cfg.Workday.Stop),
		zap.Int("holidays", len(cal.Holidays())),
		zap.Int("recurring_holidays", len(cal.RecurringHolidays())))

	return cal, nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
