// Package memory is an in-process docstore.Store. Documents are kept as
// BSON so reads never alias caller memory and encode exactly like the
// MongoDB store. It is safe for concurrent use.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"finance-service/src/pkg/databases/docstore"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type Operation string

const (
	OpInsert    Operation = "insert"
	OpUpdate    Operation = "update"
	OpGet       Operation = "get"
	OpFind      Operation = "find"
	OpIncrement Operation = "increment"
)

type fault struct {
	op         Operation
	collection string
	err        error
	remaining  int
}

type collection struct {
	order []string
	docs  map[string]bson.Raw
}

type txKey struct{}

type txState struct {
	changes []docstore.Change
	saved   map[string]*collection
}

type Option func(*Store)

// WithoutTransactions makes RunTransaction a plain call, like a MongoDB
// deployment without replica set.
func WithoutTransactions() Option {
	return func(s *Store) { s.transactional = false }
}

type Store struct {
	mu            sync.RWMutex
	txMu          sync.Mutex
	collections   map[string]*collection
	subs          map[string]map[int]func(docstore.Change)
	nextSub       int
	faults        []*fault
	transactional bool
}

var _ docstore.Store = (*Store)(nil)

func New(opts ...Option) *Store {
	s := &Store{
		collections:   make(map[string]*collection),
		subs:          make(map[string]map[int]func(docstore.Change)),
		transactional: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fail makes the next `times` calls of op on collection return err.
// times <= 0 fails every call until ClearFaults.
func (s *Store) Fail(op Operation, collection string, err error, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, &fault{op: op, collection: collection, err: err, remaining: times})
}

func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = nil
}

// Count returns the number of documents in collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return 0
	}
	return len(c.docs)
}

func (s *Store) injected(op Operation, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.faults {
		if f.op != op || f.collection != collection {
			continue
		}
		if f.remaining > 0 {
			f.remaining--
			if f.remaining == 0 {
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
			}
		}
		return f.err
	}
	return nil
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]bson.Raw)}
		s.collections[name] = c
	}
	return c
}

func toM(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return m, nil
}

func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	if err := s.injected(OpInsert, collection); err != nil {
		return "", err
	}
	m, err := toM(doc)
	if err != nil {
		return "", err
	}
	var id string
	switch v := m["_id"].(type) {
	case nil:
	case string:
		id = v
	default:
		return "", fmt.Errorf("unsupported _id type %T", v)
	}
	if id == "" {
		id = uuid.NewString()
		m["_id"] = id
	}
	raw, err := bson.Marshal(m)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.track(ctx, collection)
	c := s.coll(collection)
	if _, exists := c.docs[id]; exists {
		s.mu.Unlock()
		return "", docstore.ErrDuplicateID
	}
	c.docs[id] = raw
	c.order = append(c.order, id)
	s.mu.Unlock()

	s.emit(ctx, docstore.Change{Collection: collection, ID: id, Type: docstore.ChangeInsert, Document: raw})
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch docstore.Fields) error {
	if err := s.injected(OpUpdate, collection); err != nil {
		return err
	}
	patchM, err := toM(map[string]any(patch))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.track(ctx, collection)
	c := s.coll(collection)
	raw, ok := c.docs[id]
	if !ok {
		s.mu.Unlock()
		return docstore.ErrNotFound
	}
	cur := bson.M{}
	if err := bson.Unmarshal(raw, &cur); err != nil {
		s.mu.Unlock()
		return err
	}
	for k, v := range patchM {
		if k == "_id" {
			continue
		}
		cur[k] = v
	}
	next, err := bson.Marshal(cur)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	c.docs[id] = next
	s.mu.Unlock()

	s.emit(ctx, docstore.Change{Collection: collection, ID: id, Type: docstore.ChangeUpdate, Document: next})
	return nil
}

func (s *Store) Get(_ context.Context, collection, id string, out any) error {
	if err := s.injected(OpGet, collection); err != nil {
		return err
	}
	s.mu.RLock()
	c, ok := s.collections[collection]
	var raw bson.Raw
	if ok {
		raw, ok = c.docs[id]
	}
	s.mu.RUnlock()
	if !ok {
		return docstore.ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (s *Store) GetAll(ctx context.Context, collection string, out any) error {
	return s.Find(ctx, collection, docstore.Query{}, out)
}

func (s *Store) Find(_ context.Context, collection string, q docstore.Query, out any) error {
	if err := s.injected(OpFind, collection); err != nil {
		return err
	}

	type row struct {
		raw bson.Raw
		doc bson.M
	}
	var rows []row

	s.mu.RLock()
	if c, ok := s.collections[collection]; ok {
		for _, id := range c.order {
			raw := c.docs[id]
			doc := bson.M{}
			if err := bson.Unmarshal(raw, &doc); err != nil {
				s.mu.RUnlock()
				return err
			}
			if matchesAll(doc, q.Filters) {
				rows = append(rows, row{raw: raw, doc: doc})
			}
		}
	}
	s.mu.RUnlock()

	if len(q.OrderBy) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, o := range q.OrderBy {
				cmp, ok := compare(lookup(rows[i].doc, o.Field), lookup(rows[j].doc, o.Field))
				if !ok || cmp == 0 {
					continue
				}
				if o.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}
	if q.Limit > 0 && int64(len(rows)) > q.Limit {
		rows = rows[:q.Limit]
	}

	raws := make([]bson.Raw, len(rows))
	for i, r := range rows {
		raws[i] = r.raw
	}
	return decodeAll(raws, out)
}

func decodeAll(raws []bson.Raw, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("out must be a pointer to a slice, got %T", out)
	}
	sliceType := rv.Elem().Type()
	elemType := sliceType.Elem()
	result := reflect.MakeSlice(sliceType, 0, len(raws))
	for _, raw := range raws {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	rv.Elem().Set(result)
	return nil
}

func (s *Store) Increment(ctx context.Context, collection, id, field string, delta int64) (int64, error) {
	if err := s.injected(OpIncrement, collection); err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.track(ctx, collection)
	c := s.coll(collection)
	cur := bson.M{"_id": id}
	changeType := docstore.ChangeInsert
	if raw, ok := c.docs[id]; ok {
		changeType = docstore.ChangeUpdate
		if err := bson.Unmarshal(raw, &cur); err != nil {
			s.mu.Unlock()
			return 0, err
		}
	}
	var value int64
	switch v := cur[field].(type) {
	case nil:
	case int32:
		value = int64(v)
	case int64:
		value = v
	case float64:
		value = int64(v)
	default:
		s.mu.Unlock()
		return 0, fmt.Errorf("field %q is not numeric: %T", field, v)
	}
	value += delta
	cur[field] = value
	next, err := bson.Marshal(cur)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	if changeType == docstore.ChangeInsert {
		c.order = append(c.order, id)
	}
	c.docs[id] = next
	s.mu.Unlock()

	s.emit(ctx, docstore.Change{Collection: collection, ID: id, Type: changeType, Document: next})
	return value, nil
}

func (s *Store) Subscribe(ctx context.Context, collection string, fn func(docstore.Change)) (func(), error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[int]func(docstore.Change))
	}
	s.subs[collection][id] = fn
	s.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs[collection], id)
			s.mu.Unlock()
		})
	}
	context.AfterFunc(ctx, unsubscribe)
	return unsubscribe, nil
}

func (s *Store) emit(ctx context.Context, change docstore.Change) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		state.changes = append(state.changes, change)
		return
	}
	s.publish(change)
}

func (s *Store) publish(changes ...docstore.Change) {
	for _, change := range changes {
		s.mu.RLock()
		fns := make([]func(docstore.Change), 0, len(s.subs[change.Collection]))
		for _, fn := range s.subs[change.Collection] {
			fns = append(fns, fn)
		}
		s.mu.RUnlock()
		for _, fn := range fns {
			fn(change)
		}
	}
}

// RunTransaction serializes transactions. When fn fails, every collection
// the transaction wrote to is put back as it was before its first write;
// other collections are left alone.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactional {
		return fn(ctx)
	}
	if _, nested := ctx.Value(txKey{}).(*txState); nested {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	state := &txState{saved: make(map[string]*collection)}
	if err := fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		s.restore(state)
		return err
	}
	s.publish(state.changes...)
	return nil
}

func (s *Store) Transactional() bool {
	return s.transactional
}

func (s *Store) Close(context.Context) error {
	return nil
}

// track saves the state of name the first time the transaction in ctx
// writes to it. Callers hold s.mu.
func (s *Store) track(ctx context.Context, name string) {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return
	}
	if _, saved := state.saved[name]; saved {
		return
	}
	c, exists := s.collections[name]
	if !exists {
		state.saved[name] = nil
		return
	}
	docs := make(map[string]bson.Raw, len(c.docs))
	for id, raw := range c.docs {
		docs[id] = raw
	}
	state.saved[name] = &collection{order: append([]string(nil), c.order...), docs: docs}
}

func (s *Store) restore(state *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, c := range state.saved {
		if c == nil {
			delete(s.collections, name)
			continue
		}
		s.collections[name] = c
	}
}
