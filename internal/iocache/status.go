package iocache

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/qixiboss/gaitscore/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// PrintCacheStatus prints parse cache status information.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	_, _ = fmt.Fprintf(w, "Cache Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format(statusTimeLayout))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintHistoryStatus prints session history status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Sessions: %d\n", status.TotalSessions)
	if status.TotalSessions > 0 {
		_, _ = fmt.Fprintf(w, "Last Session ID: %d\n", status.LastSessionID)
		_, _ = fmt.Fprintf(w, "Last Session: %s\n", status.LastSessionTime.Local().Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Oldest Session: %s\n", status.OldestTime.Local().Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Total Frames Analyzed: %d\n", status.TotalFrames)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}

// PrintSessions prints the most recent sessions as a table, newest first.
// A non-positive limit prints every session.
func PrintSessions(w io.Writer, sessions []schema.SessionRecord, limit int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded.")
		return err
	}

	recent := slices.Clone(sessions)
	slices.Reverse(recent)
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Started", "Source", "Subject", "Frames", "Composite", "Band"})
	var data [][]string
	for _, s := range recent {
		row := []string{
			strconv.FormatInt(s.SessionID, 10),
			s.StartTime.Local().Format(statusTimeLayout),
			s.Source,
			"-",
			"-",
			"-",
			"open",
		}
		if s.Subject != nil {
			row[3] = *s.Subject
		}
		if s.FrameCount != nil {
			row[4] = strconv.Itoa(int(*s.FrameCount))
		}
		if s.Composite != nil {
			row[5] = strconv.FormatFloat(*s.Composite, 'f', 2, 64)
		}
		if s.Band != nil {
			row[6] = *s.Band
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d of %d sessions\n", len(recent), len(sessions))
	return err
}
