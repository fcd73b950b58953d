package config

import (
	"github.com/spf13/viper"
)

// The simulation runs in containers; DB connection, AWS settings and queue
// URLs all arrive as environment variables on the pod.

type Config struct {
	DBHost              string `mapstructure:"DB_HOST"`
	DBPort              string `mapstructure:"DB_PORT"`
	DBUser              string `mapstructure:"DB_USER"`
	DBPassword          string `mapstructure:"DB_PASSWORD"`
	DBName              string `mapstructure:"DB_NAME"`
	ServerPort          string `mapstructure:"SERVER_PORT"`
	AWSRegion           string `mapstructure:"AWS_REGION"`
	ActivitySQSQueueURL string `mapstructure:"ACTIVITY_SQS_QUEUE_URL"`
	DigestSQSQueueURL   string `mapstructure:"DIGEST_SQS_QUEUE_URL"`
	AWSEndpoint         string `mapstructure:"AWS_ENDPOINT"`
	RoomAPIURL          string `mapstructure:"ROOM_API_URL"`
	SimTimezone         string `mapstructure:"SIM_TIMEZONE"`
	TickIntervalSeconds int    `mapstructure:"TICK_INTERVAL_SECONDS"`
	RandomSeed          int64  `mapstructure:"RANDOM_SEED"`
	DigestSender        string `mapstructure:"DIGEST_SENDER"`
	MailDomain          string `mapstructure:"MAIL_DOMAIN"`
	IsLocalDev          bool   `mapstructure:"IS_LOCAL_DEV"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("DB_HOST", "db")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "worksim_db")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AWS_REGION", "us-east-1") // Default region for AWS services
	viper.SetDefault("ACTIVITY_SQS_QUEUE_URL", "http://localstack:4566/000000000000/activity-queue")
	viper.SetDefault("DIGEST_SQS_QUEUE_URL", "http://localstack:4566/000000000000/digest-queue")
	viper.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	viper.SetDefault("ROOM_API_URL", "http://localhost:8081")
	viper.SetDefault("SIM_TIMEZONE", "Europe/Bucharest")
	viper.SetDefault("TICK_INTERVAL_SECONDS", 60)
	viper.SetDefault("RANDOM_SEED", 0)
	viper.SetDefault("DIGEST_SENDER", "noreply@worksim.local")
	viper.SetDefault("MAIL_DOMAIN", "worksim.local")
	viper.SetDefault("IS_LOCAL_DEV", false)

	// Read in environment variables that match the keys.
	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	return
}
