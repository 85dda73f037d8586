package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"finance-service/src/pkg/log"

	"github.com/IBM/sarama"
)

type Producer interface {
	Publish(topic, key string, value []byte) error
	Close() error
}

type Cfg struct {
	KafkaUrl      string
	KafkaUsername string
	KafkaPassword string
	KafkaCaCert   string
	AppName       string
}

type KafkaConfig struct {
	Username      string
	Password      string
	Brokers       []string
	SaslMechanism string
	AppName       string
	KafkaCaCert   string
}

func InitKafkaConfig(cfg Cfg) KafkaConfig {
	return KafkaConfig{
		Brokers:       strings.Split(cfg.KafkaUrl, ","),
		Username:      cfg.KafkaUsername,
		Password:      cfg.KafkaPassword,
		AppName:       cfg.AppName,
		KafkaCaCert:   cfg.KafkaCaCert,
		SaslMechanism: sarama.SASLTypePlaintext,
	}
}

func decodeKey(secret string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(secret)
}

func (kc KafkaConfig) GetSaramaConfig() (*sarama.Config, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = kc.AppName
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 500 * time.Millisecond
	cfg.Net.DialTimeout = 5 * time.Second
	cfg.Net.WriteTimeout = 5 * time.Second

	if kc.Username != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLMechanism(kc.SaslMechanism)
		cfg.Net.SASL.User = kc.Username
		cfg.Net.SASL.Password = kc.Password
		cfg.Net.TLS.Enable = true
		tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
		if kc.KafkaCaCert != "" {
			ca, err := decodeKey(kc.KafkaCaCert)
			if err != nil {
				return nil, fmt.Errorf("decode kafka ca cert: %w", err)
			}
			pool := x509.NewCertPool()
			pool.AppendCertsFromPEM(ca)
			tlsCfg.RootCAs = pool
		}
		cfg.Net.TLS.Config = tlsCfg
	}
	return cfg, nil
}

type syncProducer struct {
	producer sarama.SyncProducer
	log      log.Log
}

func NewProducer(kc KafkaConfig, logger log.Log) (Producer, error) {
	cfg, err := kc.GetSaramaConfig()
	if err != nil {
		return nil, err
	}
	p, err := sarama.NewSyncProducer(kc.Brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewProducerFromSync(p, logger), nil
}

// NewProducerFromSync wraps an existing sarama producer, e.g. a mock.
func NewProducerFromSync(p sarama.SyncProducer, logger log.Log) Producer {
	return &syncProducer{producer: p, log: logger}
}

func (p *syncProducer) Publish(topic, key string, value []byte) error {
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}
	p.log.Info("kafka-producer", "message delivered", topic, fmt.Sprintf("partition=%d offset=%d", partition, offset))
	return nil
}

func (p *syncProducer) Close() error {
	return p.producer.Close()
}
