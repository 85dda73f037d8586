package mongodb

import (
	"fmt"

	"finance-service/src/pkg/databases/docstore"

	"go.mongodb.org/mongo-driver/bson"
)

var operators = map[docstore.Operator]string{
	docstore.OpEq:  "$eq",
	docstore.OpNe:  "$ne",
	docstore.OpGt:  "$gt",
	docstore.OpGte: "$gte",
	docstore.OpLt:  "$lt",
	docstore.OpLte: "$lte",
	docstore.OpIn:  "$in",
}

// buildFilter folds filters on the same field into one operator document,
// e.g. {date: {$gte: a, $lte: b}}.
func buildFilter(filters []docstore.Filter) (bson.M, error) {
	filter := bson.M{}
	for _, f := range filters {
		op, ok := operators[f.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %q", f.Op)
		}
		ops, _ := filter[f.Field].(bson.M)
		if ops == nil {
			ops = bson.M{}
			filter[f.Field] = ops
		}
		ops[op] = f.Value
	}
	return filter, nil
}

func buildSort(order []docstore.OrderBy) bson.D {
	sort := make(bson.D, 0, len(order))
	for _, o := range order {
		dir := 1
		if o.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: o.Field, Value: dir})
	}
	return sort
}
