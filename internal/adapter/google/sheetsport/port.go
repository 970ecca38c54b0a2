package sheetsport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"gitlab.com/static-ip-db.net/internal/config"
	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/core/ports/secondary"
	"gitlab.com/static-ip-db.net/internal/static/errs"
)

var _ secondary.SheetStore = (*SheetStore)(nil)

const insertRows = "INSERT_ROWS"

// SheetStore appends rows to Google Sheets through the Sheets v4 API
type SheetStore struct {
	svc              *sheets.Service
	valueInputOption string
	limiter          *rate.Limiter
	pingTarget       string
	logger           primary.Logger
}

// New builds a Sheets client from cfg. Credentials come from the service
// account file when one is configured, otherwise from application default
// credentials.
func New(ctx context.Context, cfg *config.SheetsConfig, logger primary.Logger) (*SheetStore, error) {
	var opts []option.ClientOption

	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	} else {
		creds, err := google.FindDefaultCredentials(ctx, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	return NewWithOptions(ctx, cfg.ValueInputOption, NewLimiter(cfg.RateLimit, cfg.RateBurst), logger, opts...)
}

// NewLimiter paces API calls at perSecond; zero or less means unlimited
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// NewWithOptions builds the store from raw client options. A nil limiter
// leaves API calls unpaced.
func NewWithOptions(
	ctx context.Context,
	valueInputOption string,
	limiter *rate.Limiter,
	logger primary.Logger,
	opts ...option.ClientOption,
) (*SheetStore, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	if valueInputOption == "" {
		valueInputOption = "USER_ENTERED"
	}
	if limiter == nil {
		limiter = NewLimiter(0, 0)
	}
	return &SheetStore{
		svc:              svc,
		valueInputOption: valueInputOption,
		limiter:          limiter,
		logger:           logger,
	}, nil
}

func (s *SheetStore) Name() string {
	return "sheets"
}

// WithPingTarget sets the spreadsheet Ping reads to prove the API and
// credentials work.
func (s *SheetStore) WithPingTarget(storeID string) *SheetStore {
	s.pingTarget = storeID
	return s
}

// Ping fetches only the id of the target spreadsheet. Without a target it
// checks that the client was built.
func (s *SheetStore) Ping(ctx context.Context) error {
	if s.svc == nil {
		return errors.New("sheets service not initialised")
	}
	if s.pingTarget == "" {
		return ctx.Err()
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("sheets rate limit: %w", err)
	}
	if _, err := s.svc.Spreadsheets.Get(s.pingTarget).Fields("spreadsheetId").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to reach spreadsheet %s: %w", s.pingTarget, err)
	}
	return nil
}

// OpenSheet reads the spreadsheet's tab titles and fails when sheetName is
// not one of them.
func (s *SheetStore) OpenSheet(ctx context.Context, storeID, sheetName string) (secondary.Sheet, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("sheets rate limit: %w", err)
	}
	ss, err := s.svc.Spreadsheets.Get(storeID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("spreadsheet %s not found: %w", storeID, err)
		}
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", storeID, err)
	}

	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheetName {
			return &sheet{store: s, storeID: storeID, sheetName: sheetName}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", errs.ErrSheetNotFound, sheetName, storeID)
}

type sheet struct {
	store     *SheetStore
	storeID   string
	sheetName string
}

func (sh *sheet) AppendRow(ctx context.Context, cells []interface{}) error {
	if err := sh.store.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("sheets rate limit: %w", err)
	}
	vr := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{cells},
	}
	resp, err := sh.store.svc.Spreadsheets.Values.
		Append(sh.storeID, A1Range(sh.sheetName), vr).
		ValueInputOption(sh.store.valueInputOption).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", sh.sheetName, err)
	}
	if resp.Updates != nil {
		sh.store.logger.Debug("Sheets append", "spreadsheetId", sh.storeID, "range", resp.Updates.UpdatedRange,
			"updatedCells", resp.Updates.UpdatedCells)
	}
	return nil
}

// A1Range quotes a sheet title for use as an A1 range covering the whole sheet
func A1Range(sheetName string) string {
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'"
}
