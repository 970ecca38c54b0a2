package memoryport

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/static-ip-db.net/internal/core/ports/secondary"
	"gitlab.com/static-ip-db.net/internal/static/errs"
)

var _ secondary.SheetStore = (*SheetStore)(nil)

// SheetStore keeps rows in process memory. Only sheets added with AddSheet
// can be opened.
type SheetStore struct {
	mu     sync.Mutex
	sheets map[string][][]interface{}
}

func New() *SheetStore {
	return &SheetStore{
		sheets: make(map[string][][]interface{}),
	}
}

func sheetKey(storeID, sheetName string) string {
	return storeID + "\x00" + sheetName
}

// AddSheet registers an empty sheet. Adding an existing sheet keeps its rows.
func (s *SheetStore) AddSheet(storeID, sheetName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sheetKey(storeID, sheetName)
	if _, ok := s.sheets[key]; !ok {
		s.sheets[key] = nil
	}
}

func (s *SheetStore) Name() string {
	return "memory"
}

func (s *SheetStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *SheetStore) OpenSheet(ctx context.Context, storeID, sheetName string) (secondary.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[sheetKey(storeID, sheetName)]; !ok {
		return nil, fmt.Errorf("%w: %s in %s", errs.ErrSheetNotFound, sheetName, storeID)
	}
	return &sheet{store: s, key: sheetKey(storeID, sheetName)}, nil
}

// Rows returns a copy of the rows appended to a sheet
func (s *SheetStore) Rows(storeID, sheetName string) [][]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.sheets[sheetKey(storeID, sheetName)]
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		out[i] = append([]interface{}(nil), r...)
	}
	return out
}

type sheet struct {
	store *SheetStore
	key   string
}

func (sh *sheet) AppendRow(ctx context.Context, cells []interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := append([]interface{}(nil), cells...)
	sh.store.mu.Lock()
	defer sh.store.mu.Unlock()
	sh.store.sheets[sh.key] = append(sh.store.sheets[sh.key], row)
	return nil
}
