// Entry point for the tick driver. Each tick runs every processor once, with
// the sleep-rule enforcer last as the consistency backstop.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"worksim.service/internal/config"
	core "worksim.service/internal/core"
	"worksim.service/internal/core/schedule"
	"worksim.service/internal/ports/messaging"
	"worksim.service/internal/ports/repository"
	"worksim.service/internal/rooms"
	"worksim.service/pkg/aws"
	"worksim.service/pkg/database"
	"worksim.service/pkg/logger"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	logger.Setup(cfg.IsLocalDev)

	// DB connection
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer db.Close()
	log.Info().Msg("Successfully connected to the database.")

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	clock, err := schedule.NewSimClock(cfg.SimTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.SimTimezone).Msg("Invalid simulation timezone")
	}

	// Initialize dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)
	employees := repository.NewEmployeeRepository(db)
	dependents := repository.NewDependentRepository(db)
	ledger := repository.NewClockEventRepository(db)
	producer := messaging.NewSQSProducer(sqsClient, cfg.ActivitySQSQueueURL, cfg.DigestSQSQueueURL)
	roomClient := rooms.NewHTTPClient(cfg.RoomAPIURL)

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	roller := schedule.NewRandRoller(seed)

	service := core.NewRhythmService(employees, dependents, ledger, producer, roomClient, clock, roller, cfg.SimTimezone)

	ctx, cancel := context.WithCancel(context.Background())

	go runTicks(ctx, service, time.Duration(cfg.TickIntervalSeconds)*time.Second)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down scheduler...")
	cancel()
	log.Info().Msg("Scheduler exited gracefully")
}

// runTicks drives the simulation until the context is canceled. Processors
// are order-insensitive apart from the enforcer, which must run last.
func runTicks(ctx context.Context, service *core.RhythmService, interval time.Duration) {
	log.Info().Dur("interval", interval).Msg("Scheduler started. Ticking...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Tick loop shutting down...")
			return
		case <-ticker.C:
			tick(ctx, service)
		}
	}
}

func tick(ctx context.Context, service *core.RhythmService) {
	if res, err := service.ProcessWakeUp(ctx); err != nil {
		log.Error().Err(err).Msg("Wake-up processor failed")
	} else if res.WokeEmployees > 0 || res.WokeFamily > 0 {
		log.Info().Int("employees", res.WokeEmployees).Int("family", res.WokeFamily).Msg(res.Message)
	}

	if res, err := service.ProcessMorningArrivals(ctx); err != nil {
		log.Error().Err(err).Msg("Morning arrival processor failed")
	} else if res.Arrived > 0 {
		log.Info().Int("arrived", res.Arrived).Int("total", res.TotalEmployees).Msg(res.Message)
	}

	if res, err := service.ProcessEndOfDayDepartures(ctx); err != nil {
		log.Error().Err(err).Msg("Departure processor failed")
	} else if res.Departed > 0 {
		log.Info().Int("departed", res.Departed).Int("total", res.TotalEmployees).Msg(res.Message)
	}

	if res, err := service.ProcessCommutingEmployees(ctx); err != nil {
		log.Error().Err(err).Msg("Commute processor failed")
	} else if res.ArrivedHome > 0 {
		log.Info().Int("arrived_home", res.ArrivedHome).Msg(res.Message)
	}

	if res, err := service.ProcessBedtime(ctx); err != nil {
		log.Error().Err(err).Msg("Bedtime processor failed")
	} else if res.WentToSleep > 0 {
		log.Info().Int("went_to_sleep", res.WentToSleep).Msg(res.Message)
	}

	// Always last: force any drifted state back in line with the clock.
	if res, err := service.EnforceSleepRules(ctx); err != nil {
		log.Error().Err(err).Msg("Sleep-rule enforcer failed")
	} else if res.EnforcedSleep > 0 || res.EnforcedWake > 0 {
		log.Info().Int("enforced_sleep", res.EnforcedSleep).Int("enforced_wake", res.EnforcedWake).Msg(res.Message)
	}
}
