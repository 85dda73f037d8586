package redis

import (
	"fmt"
	"strings"
	"time"

	"finance-service/src/pkg/utils"
)

type CfgRedis struct {
	UseCluster           bool
	EnableTLS            bool
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              any
	RedisClusterNode     string
	RedisClusterPassword string
	PoolSize             int
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	EnableTLS bool
	PoolSize  int
}

type RedisClusterConfig struct {
	Hosts     []string
	Password  string
	EnableTLS bool
}

type Config struct {
	UseCluster   bool
	Single       RedisConfig
	Cluster      RedisClusterConfig
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func LoadConfig(cfg *CfgRedis) Config {
	poolSize := cfg.PoolSize
	if poolSize == 0 {
		poolSize = 10
	}
	var hosts []string
	for _, h := range strings.Split(cfg.RedisClusterNode, ";") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return Config{
		UseCluster: cfg.UseCluster,
		Single: RedisConfig{
			Host:      cfg.RedisHost,
			Port:      fmt.Sprintf("%v", cfg.RedisPort),
			Password:  cfg.RedisPassword,
			DB:        utils.ConvertInt(cfg.RedisDB),
			EnableTLS: cfg.EnableTLS,
			PoolSize:  poolSize,
		},
		Cluster: RedisClusterConfig{
			Hosts:     hosts,
			Password:  cfg.RedisClusterPassword,
			EnableTLS: cfg.EnableTLS,
		},
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
