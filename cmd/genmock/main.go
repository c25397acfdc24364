// Command genmock generates local development fixtures in the exact formats
// the adapters consume: a GDELT-style export archive and a MarineTraffic-style
// RSS feed. Point GDELT_BASE_URL and PORT_FEEDS at a static file server over
// the output directory to run the ingest job without upstream access.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -date 20260823
package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type mockEvent struct {
	id        string
	country   string
	root      string
	goldstein string
	location  string
}

var mockEvents = []mockEvent{
	{id: "100001", country: "CH", root: "14", goldstein: "-7.0", location: "Shanghai, Shanghai, China"},
	{id: "100002", country: "US", root: "18", goldstein: "-4.5", location: "Los Angeles, California, United States"},
	{id: "100003", country: "NL", root: "14", goldstein: "-2.0", location: "Rotterdam, Zuid-Holland, Netherlands"},
	// Root code 10 is outside the tracked taxonomy and must be filtered out.
	{id: "100004", country: "DE", root: "10", goldstein: "-9.0", location: "Hamburg, Hamburg, Germany"},
}

var mockFeedItems = []struct {
	title   string
	summary string
}{
	{title: "Severe congestion reported at outer anchorage", summary: "Over 30 vessels waiting"},
	{title: "Terminal workers announce strike", summary: "Labor action expected to delay operations"},
	{title: "New gantry crane commissioned", summary: "Capacity expansion at berth 4"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for fixtures")
	date := flag.String("date", "20260823", "export date in YYYYMMDD form")
	flag.Parse()

	eventsDir := filepath.Join(*outDir, "events")
	if err := os.MkdirAll(eventsDir, 0o755); err != nil {
		return err
	}

	archivePath := filepath.Join(eventsDir, *date+".export.CSV.zip")
	if err := writeExportArchive(archivePath, *date); err != nil {
		return fmt.Errorf("write export archive: %w", err)
	}
	log.Printf("wrote %s (%d events)", archivePath, len(mockEvents))

	feedPath := filepath.Join(*outDir, "portfeed.xml")
	if err := os.WriteFile(feedPath, []byte(renderFeed()), 0o644); err != nil {
		return fmt.Errorf("write rss fixture: %w", err)
	}
	log.Printf("wrote %s (%d entries)", feedPath, len(mockFeedItems))

	return nil
}

func writeExportArchive(path, date string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entry, err := zw.Create(date + ".export.CSV")
	if err != nil {
		return err
	}

	for _, e := range mockEvents {
		if _, err := entry.Write([]byte(exportRow(e, date) + "\n")); err != nil {
			return err
		}
	}

	return zw.Close()
}

// exportRow emits a 58-column tab-separated row with the consumed columns
// populated, matching the real export layout.
func exportRow(e mockEvent, date string) string {
	cols := make([]string, 58)
	cols[0] = e.id
	cols[1] = date
	cols[5] = e.country
	cols[26] = e.root
	cols[27] = e.goldstein
	cols[30] = e.location
	cols[34] = e.root + "0"
	cols[57] = "https://news.example.com/" + e.id
	return strings.Join(cols, "\t")
}

func renderFeed() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0"><channel><title>Mock Port Feed</title>` + "\n")
	for i, item := range mockFeedItems {
		fmt.Fprintf(&b, "<item><title>%s</title><description>%s</description><link>https://feeds.example.com/item-%d</link></item>\n",
			item.title, item.summary, i)
	}
	b.WriteString("</channel></rss>\n")
	return b.String()
}
