package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// NewViper reads config.yaml from the working directory or ./config, then
// lets FINANCE_* environment variables (and a local .env) override it.
// FINANCE_DATABASE_MONGODB_URI overrides database.mongodb.uri.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("FINANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "FINANCE_SERVICE")
	v.SetDefault("app.timezone", "Europe/Istanbul")
	v.SetDefault("log.level", "DEBUG")
	v.SetDefault("web.port", 8080)
	v.SetDefault("database.driver", "mongodb")
	v.SetDefault("database.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongodb.name", "finance")
	v.SetDefault("database.mongodb.transactions", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("report.cache.enabled", true)
	v.SetDefault("report.cache.ttl", "10m")
	v.SetDefault("kafka.producer.enabled", false)
	v.SetDefault("kafka.topics.ledger_recorded", "finance-ledger-recorded")
	v.SetDefault("kafka.topics.reconciliation_alert", "finance-reconciliation-alert")
	v.SetDefault("reconciliation.enabled", true)
	v.SetDefault("reconciliation.cron", "0 3 * * *")
	v.SetDefault("reconciliation.replay_cron", "*/10 * * * *")
}
