package config

import (
	"fmt"
	"time"

	"finance-service/src/internal/usecase"
	"finance-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

func NewAsynqRedisOpt(v *viper.Viper) asynq.RedisClientOpt {
	host := v.GetString("redis.host")
	if host == "" {
		host = "127.0.0.1"
	}

	port := v.GetInt("redis.port")
	if port == 0 {
		port = 6379
	}

	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
}

func NewAsynqClient(v *viper.Viper) *asynq.Client {
	return asynq.NewClient(NewAsynqRedisOpt(v))
}

func NewAsynqServer(v *viper.Viper, logger log.Log) *asynq.Server {
	cfg := asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{"default": 1},
	}
	if logger.Logger != nil {
		cfg.Logger = logger.Logger
	}
	return asynq.NewServer(NewAsynqRedisOpt(v), cfg)
}

// NewAsynqScheduler enqueues the periodic replay and reconciliation runs.
func NewAsynqScheduler(v *viper.Viper, logger log.Log, location *time.Location) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(NewAsynqRedisOpt(v), &asynq.SchedulerOpts{Location: location})

	entries := []struct {
		spec string
		task *asynq.Task
	}{
		{v.GetString("reconciliation.replay_cron"), usecase.NewReplayIntentsTask()},
		{v.GetString("reconciliation.cron"), usecase.NewReconcileDriversTask()},
	}
	for _, e := range entries {
		id, err := scheduler.Register(e.spec, e.task, asynq.MaxRetry(3))
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", e.task.Type(), err)
		}
		logger.Info("asynq-config", fmt.Sprintf("scheduled %s at %q", e.task.Type(), e.spec), "NewAsynqScheduler", id)
	}
	return scheduler, nil
}
