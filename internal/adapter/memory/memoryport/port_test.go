package memoryport

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/static-ip-db.net/internal/static/errs"
)

func TestOpenSheetUnknown(t *testing.T) {
	s := New()
	_, err := s.OpenSheet(context.Background(), "abc", "Sheet1")
	assert.ErrorIs(t, err, errs.ErrSheetNotFound)
}

func TestAppendRow(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.AddSheet("abc", "Sheet1")

	sh, err := s.OpenSheet(ctx, "abc", "Sheet1")
	require.NoError(t, err)

	cells := []interface{}{"Ops", "10.0.0.5"}
	require.NoError(t, sh.AppendRow(ctx, cells))
	require.NoError(t, sh.AppendRow(ctx, cells))
	cells[0] = "mutated"

	rows := s.Rows("abc", "Sheet1")
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"Ops", "10.0.0.5"}, rows[0])
	assert.Empty(t, s.Rows("abc", "Sheet2"))
}

func TestAddSheetKeepsRows(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.AddSheet("abc", "Sheet1")
	sh, err := s.OpenSheet(ctx, "abc", "Sheet1")
	require.NoError(t, err)
	require.NoError(t, sh.AppendRow(ctx, []interface{}{"x"}))

	s.AddSheet("abc", "Sheet1")
	assert.Len(t, s.Rows("abc", "Sheet1"), 1)
}

func TestConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.AddSheet("abc", "Sheet1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sh, err := s.OpenSheet(ctx, "abc", "Sheet1")
			if assert.NoError(t, err) {
				assert.NoError(t, sh.AppendRow(ctx, []interface{}{i}))
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Rows("abc", "Sheet1"), 50)
}

func TestCanceledContext(t *testing.T) {
	s := New()
	s.AddSheet("abc", "Sheet1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Ping(ctx))
	_, err := s.OpenSheet(ctx, "abc", "Sheet1")
	assert.Error(t, err)
}
