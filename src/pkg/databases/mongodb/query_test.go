package mongodb

import (
	"errors"
	"testing"
	"time"

	"finance-service/src/pkg/databases/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestBuildFilterMergesOperatorsPerField(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	filter, err := buildFilter([]docstore.Filter{
		docstore.Where("date", docstore.OpGte, from),
		docstore.Where("date", docstore.OpLte, to),
		docstore.Where("driverId", docstore.OpEq, "drv-1"),
		docstore.Where("type", docstore.OpIn, []string{"driver_payment", "driver_collection"}),
	})
	require.NoError(t, err)

	assert.Equal(t, bson.M{
		"date":     bson.M{"$gte": from, "$lte": to},
		"driverId": bson.M{"$eq": "drv-1"},
		"type":     bson.M{"$in": []string{"driver_payment", "driver_collection"}},
	}, filter)
}

func TestBuildFilterRejectsUnknownOperator(t *testing.T) {
	_, err := buildFilter([]docstore.Filter{{Field: "x", Op: "~"}})
	assert.Error(t, err)
}

func TestBuildSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}},
		buildSort([]docstore.OrderBy{{Field: "date", Desc: true}, {Field: "_id"}}))
}

func TestTranslateErrors(t *testing.T) {
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), docstore.ErrNotFound)
	assert.NoError(t, translate(nil))

	other := errors.New("socket closed")
	assert.Equal(t, other, translate(other))
}
