package config

import (
	"context"

	redisModule "finance-service/src/pkg/redis"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func LoadRedisConfig(viper *viper.Viper) redisModule.Config {
	CfgRedis := &redisModule.CfgRedis{
		UseCluster:           viper.GetString("redis.use_cluster") == "true",
		EnableTLS:            viper.GetBool("redis.tls"),
		RedisHost:            viper.GetString("redis.host"),
		RedisPort:            viper.GetString("redis.port"),
		RedisPassword:        viper.GetString("redis.password"),
		RedisDB:              viper.GetInt("redis.db"),
		RedisClusterNode:     viper.GetString("redis.cluster.node"),
		RedisClusterPassword: viper.GetString("redis.cluster.password"),
		PoolSize:             viper.GetInt("redis.pool_size"),
	}
	return redisModule.LoadConfig(CfgRedis)
}

func NewRedis(ctx context.Context, viper *viper.Viper) (redis.UniversalClient, error) {
	return redisModule.NewClient(ctx, LoadRedisConfig(viper))
}
