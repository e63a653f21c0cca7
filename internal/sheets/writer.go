package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/format"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
)

// Writer exports the flip log to a Google Sheets spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter validates the config and authenticates against the Sheets API.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := newSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Write satisfies service.ReportWriter. It replaces the sheet contents with a
// summary block followed by one row per flip, newest sale first.
func (w *Writer) Write(ctx context.Context, flips []model.Investment, summary *model.FlipSummary) error {
	w.logger.Info("starting flip log export",
		"flips", len(flips),
		"total_profit", summary.TotalProfit)

	spreadsheetID, err := w.ensureSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve spreadsheet: %w", err)
	}

	if err := w.clearSheet(ctx, spreadsheetID); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := w.prepareFlipData(flips, summary)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	if err := common.WithRetry(ctx, func() error {
		return w.uploadValues(ctx, spreadsheetID, values)
	}, retryOpts); err != nil {
		return fmt.Errorf("failed to write flip log: %w", err)
	}

	if w.config.EnableFormatting {
		// Formatting is best effort.
		formatErr := common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, len(values))
		}, retryOpts)
		if formatErr != nil {
			w.logger.Warn("failed to apply formatting", "error", formatErr)
		}
	}

	w.logger.Info("flip log export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

func newSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	ts, err := tokenSource(ctx, config)
	if err != nil {
		return nil, err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// tokenSource builds credentials from the service account key when one is
// configured, otherwise from the stored OAuth2 refresh token. Validate has
// already ruled out having both.
func tokenSource(ctx context.Context, config Config) (oauth2.TokenSource, error) {
	if config.ServiceAccountPath != "" {
		key, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		return jwt.TokenSource(ctx), nil
	}

	oauth := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
	return oauth.TokenSource(ctx, &oauth2.Token{
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
	}), nil
}

// ensureSpreadsheet verifies the configured spreadsheet is reachable, or
// creates a fresh one named after config.SpreadsheetName.
func (w *Writer) ensureSpreadsheet(ctx context.Context) (string, error) {
	if id := w.config.SpreadsheetID; id != "" {
		if _, err := w.service.Spreadsheets.Get(id).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", id, err)
		}
		return id, nil
	}

	created, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: "Flips"}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareFlipData lays out the export: a title row, the summary block, then
// the flip table.
func (w *Writer) prepareFlipData(flips []model.Investment, summary *model.FlipSummary) [][]any {
	// 11 fixed rows ahead of the flip table.
	values := make([][]any, 0, 11+len(flips))

	values = append(values,
		[]any{
			"GE Pulse Flip Log",
			fmt.Sprintf("exported %s", time.Now().UTC().Format("Jan 2, 2006")),
		},
		[]any{},
		[]any{"Summary"},
		[]any{"Total Flips", summary.TotalFlips},
		[]any{"Total Profit", summary.TotalProfit},
		[]any{"Total Tax", summary.TotalTax},
		[]any{"Win Rate", format.FormatROI(summary.WinRate)},
		[]any{"Best Flip", summary.BestItemName, summary.BestProfit},
		[]any{},
		[]any{"Flip Details"},
		[]any{
			"Date Sold",
			"Item",
			"Quantity",
			"Buy Price",
			"Sell Price",
			"Tax",
			"Profit",
			"ROI",
		},
	)

	for _, flip := range sortedBySaleDate(flips) {
		values = append(values, flipRow(flip))
	}

	return values
}

// sortedBySaleDate returns a copy of flips ordered newest sale first. Open
// flips have no sale date and sink to the bottom.
func sortedBySaleDate(flips []model.Investment) []model.Investment {
	sorted := make([]model.Investment, len(flips))
	copy(sorted, flips)
	sort.Slice(sorted, func(i, j int) bool {
		var ti, tj time.Time
		if sorted[i].SoldAt != nil {
			ti = *sorted[i].SoldAt
		}
		if sorted[j].SoldAt != nil {
			tj = *sorted[j].SoldAt
		}
		return ti.After(tj)
	})
	return sorted
}

func flipRow(flip model.Investment) []any {
	soldDate := ""
	if flip.SoldAt != nil {
		soldDate = flip.SoldAt.Format("2006-01-02")
	}
	var sellPrice int64
	if flip.SellPrice != nil {
		sellPrice = *flip.SellPrice
	}
	return []any{
		soldDate,
		flip.ItemName,
		flip.Quantity,
		flip.PurchasePrice,
		sellPrice,
		flip.TaxPaid,
		flip.Profit(),
		format.FormatROI(flip.ROI()),
	}
}

// uploadValues writes rows in config.BatchSize chunks to stay under the API
// payload limit. USER_ENTERED lets Sheets parse the date strings.
func (w *Writer) uploadValues(ctx context.Context, spreadsheetID string, values [][]any) error {
	for start := 0; start < len(values); start += w.config.BatchSize {
		end := min(start+w.config.BatchSize, len(values))

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID,
			fmt.Sprintf("A%d", start+1),
			&sheets.ValueRange{Values: values[start:end]}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write rows %d-%d: %w", start+1, end, err)
		}

		w.logger.Debug("wrote batch", "start_row", start+1, "rows", end-start)
	}

	return nil
}

// applyFormatting styles the export on the first sheet: a large bold title,
// bold section labels down column A, thousands separators on the gp columns,
// auto-sized columns, and a frozen header.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, totalRows int) error {
	rows := int64(totalRows)
	requests := []*sheets.Request{
		boldCells(&sheets.GridRange{EndRowIndex: 1, EndColumnIndex: 2}, 16),
		boldCells(&sheets.GridRange{StartRowIndex: 2, EndRowIndex: rows, EndColumnIndex: 1}, 0),
		numberCells(&sheets.GridRange{EndRowIndex: rows, StartColumnIndex: 3, EndColumnIndex: 7}, "#,##0"),
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{Dimension: "COLUMNS", EndIndex: 8},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					GridProperties: &sheets.GridProperties{FrozenRowCount: 2},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// boldCells renders a range in bold, at fontSize when it is nonzero.
func boldCells(gridRange *sheets.GridRange, fontSize int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: gridRange,
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat: &sheets.TextFormat{Bold: true, FontSize: fontSize},
				},
			},
			Fields: "userEnteredFormat.textFormat",
		},
	}
}

// numberCells applies a number format so 1500000 reads as 1,500,000.
func numberCells(gridRange *sheets.GridRange, pattern string) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: gridRange,
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					NumberFormat: &sheets.NumberFormat{Type: "NUMBER", Pattern: pattern},
				},
			},
			Fields: "userEnteredFormat.numberFormat",
		},
	}
}
