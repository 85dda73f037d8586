// Package docstore defines the document database contract used by the
// repositories. Documents are BSON-encodable values; a document's identity
// is its "_id" field, generated by the store when empty.
package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrNotFound    = errors.New("docstore: document not found")
	ErrDuplicateID = errors.New("docstore: duplicate document id")
)

type Operator string

const (
	OpEq  Operator = "=="
	OpNe  Operator = "!="
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpLt  Operator = "<"
	OpLte Operator = "<="
	OpIn  Operator = "in"
)

type Filter struct {
	Field string
	Op    Operator
	Value any
}

type OrderBy struct {
	Field string
	Desc  bool
}

type Query struct {
	Filters []Filter
	OrderBy []OrderBy
	Limit   int64
}

func Where(field string, op Operator, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
)

// Change is delivered to subscribers after a write becomes visible.
type Change struct {
	Collection string
	ID         string
	Type       ChangeType
	Document   bson.Raw
}

// Fields is a merge patch: each key replaces the top-level field of the
// stored document.
type Fields map[string]any

type Store interface {
	// Insert stores doc and returns its id.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	Update(ctx context.Context, collection, id string, patch Fields) error
	Get(ctx context.Context, collection, id string, out any) error
	// GetAll and Find decode into out, a pointer to a slice.
	GetAll(ctx context.Context, collection string, out any) error
	Find(ctx context.Context, collection string, q Query, out any) error
	// Increment atomically adds delta to a numeric field, creating the
	// document when missing, and returns the new value.
	Increment(ctx context.Context, collection, id, field string, delta int64) (int64, error)
	Subscribe(ctx context.Context, collection string, fn func(Change)) (func(), error)
	// RunTransaction runs fn so that its writes become visible together.
	// Stores that cannot do that report Transactional() == false and run
	// fn directly.
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Transactional() bool
	Close(ctx context.Context) error
}
