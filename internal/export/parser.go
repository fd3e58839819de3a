// Package export discovers and parses the CSV files of a connection
// data export into records. Real exports are inconsistently populated:
// every file is optional, every field is missing-tolerant, and
// malformed rows are skipped rather than aborting the load.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lazypower/rapport/internal/records"
)

// File names recognized inside an export directory.
const (
	connectionsFile          = "Connections.csv"
	messagesFile             = "messages.csv"
	endorsementsReceivedFile = "Endorsement_Received_Info.csv"
	endorsementsGivenFile    = "Endorsement_Given_Info.csv"
	recsReceivedFile         = "Recommendations_Received.csv"
	recsGivenFile            = "Recommendations_Given.csv"
	positionsFile            = "Positions.csv"
)

// Load parses every recognized file in the export directory. A missing
// file is not an error; a missing directory is.
func Load(dir string) (records.Export, error) {
	var ex records.Export

	if info, err := os.Stat(dir); err != nil {
		return ex, fmt.Errorf("open export dir: %w", err)
	} else if !info.IsDir() {
		return ex, fmt.Errorf("open export dir: %s is not a directory", dir)
	}

	ex.Connections = parseConnections(filepath.Join(dir, connectionsFile))
	ex.Messages = parseMessages(filepath.Join(dir, messagesFile))
	ex.EndorsementsReceived = parseEndorsements(filepath.Join(dir, endorsementsReceivedFile),
		"Endorser First Name", "Endorser Last Name")
	ex.EndorsementsGiven = parseEndorsements(filepath.Join(dir, endorsementsGivenFile),
		"First Name", "Last Name")
	ex.RecommendationsReceived = parseRecommendations(filepath.Join(dir, recsReceivedFile))
	ex.RecommendationsGiven = parseRecommendations(filepath.Join(dir, recsGivenFile))
	ex.OwnHistory = parsePositions(filepath.Join(dir, positionsFile))

	return ex, nil
}

// row is one CSV record keyed by header name. Lookups on absent
// columns return "".
type row map[string]string

func (r row) get(key string) string { return strings.TrimSpace(r[key]) }

// readRows parses a header-keyed CSV file. Rows with the wrong field
// count are skipped with a debug log. A missing file yields nil rows.
func readRows(path string) []row {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("export: skipping unreadable file", "path", path, "error", err)
		}
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		slog.Debug("export: no header row", "path", path, "error", err)
		return nil
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []row
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Debug("export: skipping malformed row", "path", path, "error", err)
			continue
		}
		r := make(row, len(header))
		for i, field := range rec {
			if i < len(header) {
				r[header[i]] = field
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// parseDate tries each layout in order. Returns the zero time when
// nothing parses; callers treat that as "no timestamp".
func parseDate(value string, layouts ...string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseConnections(path string) []records.Connection {
	var out []records.Connection
	for _, r := range readRows(path) {
		c := records.Connection{
			FirstName:   r.get("First Name"),
			LastName:    r.get("Last Name"),
			Email:       r.get("Email Address"),
			Company:     r.get("Company"),
			Position:    r.get("Position"),
			ConnectedOn: parseDate(r.get("Connected On"), "2 Jan 2006", "02 Jan 2006"),
		}
		if c.FullName() == "" {
			slog.Debug("export: skipping nameless connection row", "path", path)
			continue
		}
		out = append(out, c)
	}
	return out
}

func parseMessages(path string) []records.Message {
	var out []records.Message
	for _, r := range readRows(path) {
		m := records.Message{
			ThreadID:  r.get("CONVERSATION ID"),
			Sender:    r.get("FROM"),
			Recipient: r.get("TO"),
			Body:      r["CONTENT"],
		}
		raw := r.get("DATE")
		m.SentAt = parseDate(raw, "2006-01-02 15:04:05 UTC")
		if m.SentAt.IsZero() && len(raw) >= 10 {
			m.SentAt = parseDate(raw[:10], "2006-01-02")
		}
		if m.Sender == "" && m.Recipient == "" {
			slog.Debug("export: skipping message with no participants", "path", path)
			continue
		}
		out = append(out, m)
	}
	return out
}

func parseEndorsements(path, firstCol, lastCol string) []records.Endorsement {
	var out []records.Endorsement
	for _, r := range readRows(path) {
		name := strings.TrimSpace(r.get(firstCol) + " " + r.get(lastCol))
		if name == "" {
			continue
		}
		out = append(out, records.Endorsement{
			Name:  name,
			Skill: r.get("Skill Name"),
			// Endorsement dates aren't included in exports.
		})
	}
	return out
}

func parseRecommendations(path string) []records.Recommendation {
	var out []records.Recommendation
	for _, r := range readRows(path) {
		name := strings.TrimSpace(r.get("First Name") + " " + r.get("Last Name"))
		if name == "" {
			continue
		}
		out = append(out, records.Recommendation{
			Name: name,
			Text: r.get("Recommendation"),
		})
	}
	return out
}

func parsePositions(path string) []records.Stint {
	var out []records.Stint
	for _, r := range readRows(path) {
		s := records.Stint{
			Company: r.get("Company Name"),
			Title:   r.get("Title"),
			Start:   parseDate(r.get("Started On"), "Jan 2006", "2 Jan 2006"),
			End:     parseDate(r.get("Finished On"), "Jan 2006", "2 Jan 2006"),
		}
		if s.Company == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
