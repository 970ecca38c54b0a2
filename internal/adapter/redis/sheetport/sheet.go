package sheetport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/core/ports/secondary"
)

const sheetKeyPrefix = "sheet:"

var _ secondary.SheetStore = (*SheetRepository)(nil)

// SheetRepository implements the SheetStore interface with Redis. Each sheet
// is a list whose elements are JSON-encoded rows.
type SheetRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewSheetRepository creates a new Redis sheet repository
func NewSheetRepository(redisClient *redis.Client, logger primary.Logger) *SheetRepository {
	return &SheetRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func sheetKey(storeID, sheetName string) string {
	return fmt.Sprintf("%s%s:%s", sheetKeyPrefix, storeID, sheetName)
}

func (r *SheetRepository) Name() string {
	return "redis"
}

func (r *SheetRepository) Ping(ctx context.Context) error {
	return r.redisClient.Ping(ctx).Err()
}

func (r *SheetRepository) OpenSheet(ctx context.Context, storeID, sheetName string) (secondary.Sheet, error) {
	if err := r.redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return &sheet{repo: r, key: sheetKey(storeID, sheetName)}, nil
}

// Rows retrieves all rows of a sheet in append order
func (r *SheetRepository) Rows(ctx context.Context, storeID, sheetName string) ([][]interface{}, error) {
	data, err := r.redisClient.LRange(ctx, sheetKey(storeID, sheetName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}

	rows := make([][]interface{}, 0, len(data))
	for _, d := range data {
		var cells []interface{}
		if err := json.Unmarshal([]byte(d), &cells); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sheet row: %w", err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

type sheet struct {
	repo *SheetRepository
	key  string
}

func (s *sheet) AppendRow(ctx context.Context, cells []interface{}) error {
	rowJSON, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	if err := s.repo.redisClient.RPush(ctx, s.key, rowJSON).Err(); err != nil {
		s.repo.logger.Error("Failed to append row", "key", s.key, "error", err)
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}
