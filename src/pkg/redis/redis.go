package redis

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func tlsConfig(enabled bool) *tls.Config {
	if !enabled {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// NewClient builds a single-node or cluster client and pings it.
func NewClient(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	var client redis.UniversalClient
	if !cfg.UseCluster {
		client = redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%s", cfg.Single.Host, cfg.Single.Port),
			Password:     cfg.Single.Password,
			DB:           cfg.Single.DB,
			TLSConfig:    tlsConfig(cfg.Single.EnableTLS),
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			PoolSize:     cfg.Single.PoolSize,
			MaxRetries:   2,
		})
	} else {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        cfg.Cluster.Hosts,
			Password:     cfg.Cluster.Password,
			TLSConfig:    tlsConfig(cfg.Cluster.EnableTLS),
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
