package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/leadchoose/waitlistd/cmd"
	"github.com/leadchoose/waitlistd/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed templates/email
var templates embed.FS

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	//version info
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("waitlistd %s, built %s from %s (%s)", Version, BuildTime, GitCommit, GitRef)
		return
	}
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()
	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.prod-port", 5001)
	viper.SetDefault("smtp.enable", false)
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("behaviour.name", "LeadChoose")
	viper.SetDefault("behaviour.default-company", "Not provided")
	viper.SetDefault("behaviour.pending-ttl", "24h")
	viper.SetDefault("behaviour.sweep-interval", "1h")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String(to, to), zap.Error(err))
		}
	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")

	bind("LC_PORT", "server.port")
	bind("LC_PROD_PORT", "server.prod-port")
	bind("LC_ADDRESS", "server.address")

	bind("LC_SMTP_ENABLE", "smtp.enable")
	bind("LC_SMTP_HOST", "smtp.host")
	bind("LC_SMTP_PORT", "smtp.port")
	bind("LC_SMTP_USERNAME", "smtp.username")
	bind("LC_SMTP_PASSWORD", "smtp.password")
	bind("LC_SMTP_DISPLAYNAME", "smtp.display-name")
	bind("LC_SMTP_ADDRESS", "smtp.address")

	bind("LC_DATABASE_TYPE", "database.type")
	bind("LC_DATABASE_DSN", "database.dsn")

	bind("LC_BEHAVIOUR_NAME", "behaviour.name")
	bind("LC_BEHAVIOUR_SITE", "behaviour.site")
	bind("LC_BEHAVIOUR_SERVICE_DOMAIN", "behaviour.service-domain")
	bind("LC_BEHAVIOUR_OPERATOR_ADDRESS", "behaviour.operator-address")
	bind("LC_BEHAVIOUR_DEFAULT_COMPANY", "behaviour.default-company")
	bind("LC_BEHAVIOUR_PENDING_TTL", "behaviour.pending-ttl")
	bind("LC_BEHAVIOUR_SWEEP_INTERVAL", "behaviour.sweep-interval")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", string(cmd.ConfigFileLocation)))
		viper.SetConfigFile(string(cmd.ConfigFileLocation))
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No confg file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf

	email, err := fs.Sub(templates, "templates/email")
	if err != nil {
		logger.Fatal("Unable to open templates/email folder")
	}
	cmd.FileSystemsConfig = &config.FileSystems{
		Email: email,
	}
}
