package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-service/src/pkg/databases/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID     string    `bson:"_id,omitempty"`
	Kind   string    `bson:"kind"`
	Amount float64   `bson:"amount"`
	Date   time.Time `bson:"date"`
	Tags   []string  `bson:"tags"`
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, k := range []string{"a", "b", "a", "c"} {
		_, err := s.Insert(context.Background(), "items", item{
			Kind:   k,
			Amount: float64(10 * (i + 1)),
			Date:   base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}
}

func TestInsertGeneratesIDAndRejectsDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Insert(ctx, "items", item{Kind: "a"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.Insert(ctx, "items", item{ID: id, Kind: "b"})
	assert.ErrorIs(t, err, docstore.ErrDuplicateID)

	var got item
	require.NoError(t, s.Get(ctx, "items", id, &got))
	assert.Equal(t, "a", got.Kind)
}

func TestGetReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, err := s.Insert(ctx, "items", item{Kind: "a", Tags: []string{"x"}})
	require.NoError(t, err)

	var first item
	require.NoError(t, s.Get(ctx, "items", id, &first))
	first.Tags[0] = "mutated"

	var second item
	require.NoError(t, s.Get(ctx, "items", id, &second))
	assert.Equal(t, []string{"x"}, second.Tags)
}

func TestUpdateMergesFields(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, err := s.Insert(ctx, "items", item{Kind: "a", Amount: 1})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, "items", id, docstore.Fields{"amount": 5.5, "tags": []string{"t"}}))

	var got item
	require.NoError(t, s.Get(ctx, "items", id, &got))
	assert.Equal(t, "a", got.Kind)
	assert.Equal(t, 5.5, got.Amount)
	assert.Equal(t, []string{"t"}, got.Tags)

	assert.ErrorIs(t, s.Update(ctx, "items", "missing", docstore.Fields{"amount": 1}), docstore.ErrNotFound)
}

func TestFindFiltersOrdersAndLimits(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	var kindA []item
	require.NoError(t, s.Find(ctx, "items", docstore.Query{
		Filters: []docstore.Filter{docstore.Where("kind", docstore.OpEq, "a")},
	}, &kindA))
	assert.Len(t, kindA, 2)

	from := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 3, 23, 59, 59, 0, time.UTC)
	var ranged []item
	require.NoError(t, s.Find(ctx, "items", docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("date", docstore.OpGte, from),
			docstore.Where("date", docstore.OpLte, to),
		},
		OrderBy: []docstore.OrderBy{{Field: "amount", Desc: true}},
	}, &ranged))
	require.Len(t, ranged, 2)
	assert.Equal(t, 30.0, ranged[0].Amount)
	assert.Equal(t, 20.0, ranged[1].Amount)

	var in []item
	require.NoError(t, s.Find(ctx, "items", docstore.Query{
		Filters: []docstore.Filter{docstore.Where("kind", docstore.OpIn, []string{"b", "c"})},
		Limit:   1,
	}, &in))
	require.Len(t, in, 1)
	assert.Equal(t, "b", in[0].Kind)

	var all []item
	require.NoError(t, s.GetAll(ctx, "items", &all))
	assert.Len(t, all, 4)
}

func TestIncrementCreatesAndAdds(t *testing.T) {
	s := New()
	ctx := context.Background()

	v, err := s.Increment(ctx, "meta", "generation", "value", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)

	v, err = s.Increment(ctx, "meta", "generation", "value", 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, v)
}

func TestRunTransactionRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	var changes []docstore.Change
	_, err := s.Subscribe(ctx, "items", func(c docstore.Change) { changes = append(changes, c) })
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Insert(ctx, "items", item{Kind: "a"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s.Count("items"))
	assert.Empty(t, changes)

	err = s.RunTransaction(ctx, func(ctx context.Context) error {
		_, err := s.Insert(ctx, "items", item{Kind: "a"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count("items"))
	assert.Len(t, changes, 1)
}

func TestRunTransactionRollbackKeepsOutsideWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.Insert(ctx, "items", item{ID: "kept", Kind: "a"})
	require.NoError(t, err)

	err = s.RunTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.Insert(txCtx, "items", item{Kind: "b"}); err != nil {
			return err
		}
		if _, err := s.Increment(txCtx, "meta", "generation", "value", 1); err != nil {
			return err
		}
		// written by another request while the transaction runs
		if _, err := s.Insert(ctx, "intents", item{ID: "intent-1", Kind: "pending"}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	assert.Equal(t, 1, s.Count("items"))
	assert.Zero(t, s.Count("meta"))
	assert.Equal(t, 1, s.Count("intents"))

	var got item
	require.NoError(t, s.Get(ctx, "items", "kept", &got))
}

func TestWithoutTransactionsKeepsPartialWrites(t *testing.T) {
	s := New(WithoutTransactions())
	assert.False(t, s.Transactional())

	err := s.RunTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := s.Insert(ctx, "items", item{Kind: "a"}); err != nil {
			return err
		}
		return errors.New("late failure")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, s.Count("items"))
}

func TestFailInjectsErrors(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("unavailable")
	s.Fail(OpInsert, "items", boom, 1)

	_, err := s.Insert(ctx, "items", item{Kind: "a"})
	assert.ErrorIs(t, err, boom)

	_, err = s.Insert(ctx, "items", item{Kind: "a"})
	assert.NoError(t, err)
}

func TestSubscribeStopsAfterUnsubscribe(t *testing.T) {
	s := New()
	ctx := context.Background()
	count := 0
	unsubscribe, err := s.Subscribe(ctx, "items", func(docstore.Change) { count++ })
	require.NoError(t, err)

	_, err = s.Insert(ctx, "items", item{Kind: "a"})
	require.NoError(t, err)
	unsubscribe()
	_, err = s.Insert(ctx, "items", item{Kind: "b"})
	require.NoError(t, err)

	assert.Equal(t, 1, count)
}
