// Package gdelt ingests the GDELT daily global-events export and maps the
// disruption-relevant rows into normalized signals.
package gdelt

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
)

// Column offsets in the 58-column daily export. See the domain package docs
// for the full mapping.
const (
	colEventID      = 0
	colSQLDate      = 1
	colCountryCode  = 5
	colEventRoot    = 26
	colGoldstein    = 27
	colGeoFullname  = 30
	colMinRowLength = 58
)

// Event-root taxonomy codes relevant to labor/civil disruption at
// logistics nodes.
var rootEventTypes = map[string]string{
	"14": "Protest",
	"18": "Disruption",
}

// Client fetches and parses the GDELT daily export.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a GDELT export client. The timeout is the fixed network
// deadline for the daily file fetch.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name identifies this producer in logs and metrics.
func (c *Client) Name() string { return string(domain.SourceGDELT) }

// ProduceSignals downloads yesterday's export archive and maps its relevant
// rows to signals. Any fetch or parse failure surfaces as an error; the
// pipeline degrades it to an empty result for this source.
func (c *Client) ProduceSignals(ctx context.Context) ([]domain.Signal, error) {
	yesterday := domain.Now().AddDate(0, 0, -1).Format("20060102")
	url := fmt.Sprintf("%s/events/%s.export.CSV.zip", c.baseURL, yesterday)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create gdelt request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch gdelt export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gdelt export %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gdelt export: %w", err)
	}

	signals, err := ParseExport(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("gdelt export parsed", "url", url, "signals", len(signals))
	return signals, nil
}

// ParseExport unpacks an export archive and maps its rows. The archive holds
// a single headerless tab-separated CSV; malformed rows are skipped
// individually rather than failing the whole file.
func ParseExport(archive []byte) ([]domain.Signal, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open gdelt archive: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, errors.New("gdelt archive is empty")
	}

	f, err := zr.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open gdelt csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var signals []domain.Signal
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Schema drift or a mangled row; skip it, keep the rest.
			continue
		}
		if sig, ok := mapRow(row); ok {
			signals = append(signals, sig)
		}
	}

	return signals, nil
}

// mapRow converts one export row to a signal. Rows outside the tracked
// event-root codes, or too short to carry the consumed columns, are dropped.
func mapRow(row []string) (domain.Signal, bool) {
	if len(row) < colMinRowLength {
		return domain.Signal{}, false
	}

	eventType, ok := rootEventTypes[strings.TrimSpace(row[colEventRoot])]
	if !ok {
		return domain.Signal{}, false
	}

	goldstein := strings.TrimSpace(row[colGoldstein])
	intensity, err := strconv.ParseFloat(goldstein, 64)
	if err != nil {
		intensity = 0
	}

	return domain.Signal{
		Source:      domain.SourceGDELT,
		PortName:    fieldOrUnknown(row[colGeoFullname]),
		Country:     fieldOrUnknown(row[colCountryCode]),
		EventType:   eventType,
		Description: fmt.Sprintf("Event ID %s, Goldstein %s", strings.TrimSpace(row[colEventID]), goldstein),
		EventDate:   parseSQLDate(row[colSQLDate]),
		// Rescale the bipolar [-10,+10] intensity into a 0-50 severity.
		ImpactScore: math.Abs(intensity) * 5,
		RawData:     strings.Join(row, "\t"),
	}, true
}

func parseSQLDate(s string) time.Time {
	t, err := time.Parse("20060102", strings.TrimSpace(s))
	if err != nil {
		return domain.Now()
	}
	return t
}

func fieldOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.UnknownSentinel
	}
	return s
}
