package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCacheRepository stores derived reports in Redis. Keys embed the
// ledger generation, so appending to the ledger orphans every cached value
// and TTL removes them.
type ReportCacheRepository struct {
	Redis  redis.UniversalClient
	TTL    time.Duration
	Prefix string
}

func NewReportCacheRepository(client redis.UniversalClient, ttl time.Duration) *ReportCacheRepository {
	return &ReportCacheRepository{
		Redis:  client,
		TTL:    ttl,
		Prefix: "FINANCE:REPORT",
	}
}

func (r *ReportCacheRepository) key(generation int64, name string) string {
	return fmt.Sprintf("%s:%d:%s", r.Prefix, generation, name)
}

func (r *ReportCacheRepository) Get(ctx context.Context, generation int64, name string, out any) (bool, error) {
	data, err := r.Redis.Get(ctx, r.key(generation, name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *ReportCacheRepository) Set(ctx context.Context, generation int64, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, r.key(generation, name), data, r.TTL).Err()
}
