package config

import (
	"finance-service/src/internal/gateway/messaging"
	"finance-service/src/pkg/kafka"
	"finance-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewKafkaConfig(viper *viper.Viper) kafka.KafkaConfig {
	configKafka := kafka.Cfg{
		KafkaUrl:      viper.GetString("kafka.bootstrap.servers"),
		KafkaUsername: viper.GetString("kafka.username"),
		KafkaPassword: viper.GetString("kafka.password"),
		KafkaCaCert:   viper.GetString("kafka.cacert"),
		AppName:       viper.GetString("app.name"),
	}
	return kafka.InitKafkaConfig(configKafka)
}

// NewKafkaProducer returns nil when the producer is disabled; events are
// then dropped.
func NewKafkaProducer(config *viper.Viper, log log.Log) (kafka.Producer, error) {
	if !config.GetBool("kafka.producer.enabled") {
		log.Info("kafka-config", "Kafka producer is disabled in configuration", "kafka", "")
		return nil, nil
	}
	return kafka.NewProducer(NewKafkaConfig(config), log)
}

func NewKafkaTopics(config *viper.Viper) messaging.Topics {
	return messaging.Topics{
		LedgerRecorded:      config.GetString("kafka.topics.ledger_recorded"),
		ReconciliationAlert: config.GetString("kafka.topics.reconciliation_alert"),
	}
}
