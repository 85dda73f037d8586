package config

import (
	"context"
	"fmt"

	"finance-service/src/pkg/databases/docstore"
	"finance-service/src/pkg/databases/memory"
	"finance-service/src/pkg/databases/mongodb"
	"finance-service/src/pkg/log"

	"github.com/spf13/viper"
)

// NewDatabase opens the document store named by database.driver. The
// memory driver is for local runs and demos; it loses everything on exit.
func NewDatabase(ctx context.Context, viper *viper.Viper, log log.Log) (docstore.Store, error) {
	switch driver := viper.GetString("database.driver"); driver {
	case "memory":
		log.Info("database init", "using in-memory store", "config", "")
		return memory.New(), nil
	case "mongodb", "":
		db, err := mongodb.InitConnection(ctx, mongodb.Config{
			URI:          viper.GetString("database.mongodb.uri"),
			Database:     viper.GetString("database.mongodb.name"),
			Transactions: viper.GetBool("database.mongodb.transactions"),
			Timeout:      viper.GetDuration("database.mongodb.timeout"),
		}, log)
		if err != nil {
			log.Error("database init", err.Error(), "config", "")
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
