package session

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/billsplit/internal/split"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	rows    []Entry
	byOwner map[string][]Entry
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byOwner: make(map[string][]Entry)}
}

func (f *fakeStore) InsertEntries(_ context.Context, owner string, ts time.Time, entries []split.Participant) error {
	if f.failing {
		return errors.New("connection refused")
	}
	for _, e := range entries {
		f.byOwner[owner] = append(f.byOwner[owner], Entry{PersonName: e.Name, Amount: e.Amount, Timestamp: ts})
	}
	return nil
}

func (f *fakeStore) ListEntries(_ context.Context, owner string) ([]Entry, error) {
	if f.failing {
		return nil, errors.New("connection refused")
	}
	// Newest first, stable within a timestamp, as the real query orders.
	out := make([]Entry, len(f.byOwner[owner]))
	copy(out, f.byOwner[owner])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func TestService_RecordAndList(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, split.NewFactory())
	ctx := context.Background()

	first := []split.Participant{
		{Name: "Alice", Amount: 30.00},
		{Name: "Bob", Amount: 30.00},
		{Name: "Carol", Amount: 30.00},
	}
	recorded, err := svc.Record(ctx, "dana", first)
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, "dana", recorded.Owner)
	assert.False(t, recorded.Timestamp.IsZero())

	// A later session for the same owner.
	time.Sleep(2 * time.Millisecond)
	second := []split.Participant{
		{Name: "Alice", Amount: 60.00},
		{Name: "Bob", Amount: 40.00},
	}
	_, err = svc.Record(ctx, "dana", second)
	require.NoError(t, err)

	sessions, err := svc.List(ctx, "dana")
	require.NoError(t, err)
	require.Len(t, sessions, 2, "rows sharing a timestamp must fold into one session")

	// Most recent first.
	assert.Equal(t, second, sessions[0].Entries)
	assert.Equal(t, first, sessions[1].Entries)
	assert.True(t, sessions[0].Timestamp.After(sessions[1].Timestamp))

	// Idempotent: listing again without writes returns identical results.
	again, err := svc.List(ctx, "dana")
	require.NoError(t, err)
	assert.Equal(t, sessions, again)
}

func TestService_ListEmptyHistory(t *testing.T) {
	svc := NewService(newFakeStore(), split.NewFactory())

	sessions, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err, "an absent user is not a store failure")
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestService_RecordValidation(t *testing.T) {
	svc := NewService(newFakeStore(), split.NewFactory())
	ctx := context.Background()

	_, err := svc.Record(ctx, "", []split.Participant{{Name: "A", Amount: 1}})
	require.ErrorIs(t, err, ErrNoOwner)

	_, err = svc.Record(ctx, "dana", nil)
	require.ErrorIs(t, err, ErrNoEntries)

	_, err = svc.Record(ctx, "dana", []split.Participant{{Name: "", Amount: 1}})
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Record(ctx, "dana", []split.Participant{{Name: "A", Amount: -1}})
	var invalidErr *split.InvalidAmountError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "entries[0].amount", invalidErr.Field)
}

func TestService_RecordPersistenceFailure(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	svc := NewService(store, split.NewFactory())

	entries := []split.Participant{{Name: "Alice", Amount: 10.00}}
	session, err := svc.Record(context.Background(), "dana", entries)

	require.ErrorIs(t, err, ErrPersistence)
	assert.Nil(t, session)
	// The computed entries the caller holds are untouched and still displayable.
	assert.Equal(t, 10.00, entries[0].Amount)
}

func TestService_ListPersistenceFailure(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	svc := NewService(store, split.NewFactory())

	_, err := svc.List(context.Background(), "dana")
	require.ErrorIs(t, err, ErrPersistence)
}

func TestService_Compute(t *testing.T) {
	svc := NewService(newFakeStore(), split.NewFactory())

	entries, err := svc.Compute("EVEN", 90.00, []string{"Alice", "Bob", "Carol"}, nil)
	require.NoError(t, err)
	for _, e := range entries {
		assert.InDelta(t, 30.00, e.Amount, 1e-9)
	}

	entries, err = svc.Compute("CUSTOM", 100.00, []string{"P1", "P2"}, []float64{60.00, 40.00})
	require.NoError(t, err)
	assert.Equal(t, 60.00, entries[0].Amount)

	_, err = svc.Compute("SPLITWISE", 1, []string{"A"}, nil)
	require.Error(t, err)
}

func TestGroupEntries(t *testing.T) {
	t1 := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)

	rows := []Entry{
		{PersonName: "Alice", Amount: 60, Timestamp: t1},
		{PersonName: "Bob", Amount: 40, Timestamp: t1},
		{PersonName: "Alice", Amount: 30, Timestamp: t0},
		{PersonName: "Bob", Amount: 30, Timestamp: t0},
		{PersonName: "Carol", Amount: 30, Timestamp: t0},
	}

	sessions := groupEntries("dana", rows)
	require.Len(t, sessions, 2)
	assert.Equal(t, t1, sessions[0].Timestamp)
	assert.Len(t, sessions[0].Entries, 2)
	assert.Equal(t, t0, sessions[1].Timestamp)
	assert.Len(t, sessions[1].Entries, 3)

	// Entry order within a session follows row order.
	assert.Equal(t, "Alice", sessions[1].Entries[0].Name)
	assert.Equal(t, "Carol", sessions[1].Entries[2].Name)
}
