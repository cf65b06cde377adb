package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/voxpop-app/voxpop/pkg/internal"
	"github.com/voxpop-app/voxpop/pkg/internal/database"
	"github.com/voxpop-app/voxpop/pkg/internal/http"
	"github.com/voxpop-app/voxpop/pkg/internal/services"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("__     __        ____\n\\ \\   / /____  _|  _ \\ ___  _ __\n \\ \\ / / _ \\ \\/ / |_) / _ \\| '_ \\\n  \\ V / (_) >  <|  __/ (_) | |_) |\n   \\_/ \\___/_/\\_\\_|   \\___/| .__/\n                           |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("VoxPop"), pkg.AppVersion)
	fmt.Printf("The tiny polling service\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewGorm()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Assemble services
	auth := services.NewAuthService(
		services.NewGormAccountStore(db),
		viper.GetString("security.jwt_secret"),
	)
	polls := services.NewPollService(services.NewGormPollStore(db))

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", func() { services.DoAutoDatabaseCleanup(db) })
	quartz.Start()

	// Server
	go func() {
		if err := http.NewServer(polls, auth).Listen(viper.GetString("bind")); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting http server.")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
