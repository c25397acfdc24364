// Package portfeed ingests per-port RSS traffic feeds and extracts
// congestion and disruption signals via keyword matching.
package portfeed

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/couchcryptid/port-disruption-forecaster/internal/config"
	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
)

// maxEntries caps how many of the most recent feed entries are inspected.
const maxEntries = 20

// Coarse per-type severities. A data-driven scale is a known future
// improvement; these match the operational constants the thresholds were
// tuned against.
const (
	congestionImpact = 25.0
	disruptionImpact = 15.0
)

// Adapter turns configured port feeds into normalized signals.
type Adapter struct {
	feeds    []config.Feed
	keywords []string
	parser   *gofeed.Parser
	logger   *slog.Logger
}

// NewAdapter creates a port-feed adapter. Port identity comes from the feed
// configuration, never from entry content; keywords are the match vocabulary.
func NewAdapter(feeds []config.Feed, keywords []string, timeout time.Duration, logger *slog.Logger) *Adapter {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	return &Adapter{
		feeds:    feeds,
		keywords: keywords,
		parser:   parser,
		logger:   logger,
	}
}

// Name identifies this producer in logs and metrics.
func (a *Adapter) Name() string { return string(domain.SourceMarineTraffic) }

// ProduceSignals fetches every configured feed. One feed's failure is logged
// and never aborts processing of the remaining feeds, so the returned error
// is always nil; a fully failed run is simply an empty result.
func (a *Adapter) ProduceSignals(ctx context.Context) ([]domain.Signal, error) {
	var signals []domain.Signal
	for _, feed := range a.feeds {
		extracted, err := a.produceFromFeed(ctx, feed)
		if err != nil {
			a.logger.Error("port feed failed", "url", feed.URL, "error", err)
			continue
		}
		signals = append(signals, extracted...)
		a.logger.Info("port feed parsed", "url", feed.URL, "port", feed.Port, "signals", len(extracted))
	}
	return signals, nil
}

func (a *Adapter) produceFromFeed(ctx context.Context, feed config.Feed) ([]domain.Signal, error) {
	parsed, err := a.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, err
	}

	port := feed.Port
	if port == "" {
		port = domain.UnknownSentinel
	}

	items := parsed.Items
	if len(items) > maxEntries {
		items = items[:maxEntries]
	}

	var signals []domain.Signal
	for _, item := range items {
		title := strings.ToLower(item.Title)
		summary := strings.ToLower(item.Description)

		if !a.matchesKeyword(title, summary) {
			continue
		}

		eventType := "Disruption"
		impact := disruptionImpact
		// First-match classification, not an exhaustive taxonomy: congestion
		// wins only when named in the title.
		if strings.Contains(title, "congestion") {
			eventType = "Congestion"
			impact = congestionImpact
		}

		eventDate := domain.Now()
		if item.PublishedParsed != nil {
			eventDate = item.PublishedParsed.UTC()
		}

		signals = append(signals, domain.Signal{
			Source:      domain.SourceMarineTraffic,
			PortName:    port,
			Country:     domain.ResolveCountry(port),
			EventType:   eventType,
			Description: item.Title + " - " + item.Description,
			EventDate:   eventDate,
			ImpactScore: impact,
			RawData:     item.Link,
		})
	}

	return signals, nil
}

func (a *Adapter) matchesKeyword(title, summary string) bool {
	for _, k := range a.keywords {
		if strings.Contains(title, k) || strings.Contains(summary, k) {
			return true
		}
	}
	return false
}
