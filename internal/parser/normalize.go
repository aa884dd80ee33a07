package parser

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// isHeaderMarker reports whether a cell is the header sentinel.
func isHeaderMarker(cell string) bool {
	return cell == HeaderSentinel || cell == headerSentinelDecoded
}

// findHeaderRow returns the first row whose second cell is the header sentinel.
func findHeaderRow(sheet *RawSheet) (int, bool) {
	for rowIdx := range sheet.Rows {
		if cell, ok := sheet.Cell(rowIdx, sentinelColumn); ok && isHeaderMarker(cell) {
			return rowIdx, true
		}
	}
	return -1, false
}

// CleanColumnName strips the export artifacts from a header cell. Absent or
// blank cells get a positional Unnamed_<index> name. Stripping runs until
// nothing changes, so cleaning a cleaned name is a no-op.
func CleanColumnName(raw string, present bool, index int) string {
	name := raw
	if present {
		for {
			next := strings.ReplaceAll(name, cellArtifact, "")
			next = strings.NewReplacer("\r", "", "\n", "").Replace(next)
			next = strings.TrimSpace(next)
			if next == name {
				break
			}
			name = next
		}
	}
	if !present || name == "" {
		return fmt.Sprintf("%s%d", UnnamedPrefix, index)
	}
	return name
}

// uniqueNames suffixes repeated names with .1, .2, ... in column order.
func uniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	out := make([]string, len(names))
	for i, n := range names {
		count, dup := seen[n]
		if !dup {
			seen[n] = 0
			out[i] = n
			continue
		}
		candidate := n
		for {
			count++
			candidate = fmt.Sprintf("%s.%d", n, count)
			if !taken[candidate] {
				break
			}
		}
		seen[n] = count
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}

// NormalizeSheet locates the header row of a raw sheet and returns the table
// below it. Rows above the header and the header itself are dropped.
func NormalizeSheet(sheet *RawSheet) (*NormalizedTable, error) {
	if sheet == nil {
		return nil, errors.Wrap(ErrUnknownSheet, "nil sheet")
	}
	headerIdx, found := findHeaderRow(sheet)
	if !found {
		return nil, errors.Wrapf(ErrNoHeaderFound, "sheet %q has no %q cell in column %d", sheet.Name, "Time[s]", sentinelColumn+1)
	}

	header := sheet.Rows[headerIdx]
	width := len(header)
	for _, row := range sheet.Rows[headerIdx+1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	names := make([]string, width)
	for i := 0; i < width; i++ {
		raw, present := sheet.Cell(headerIdx, i)
		names[i] = CleanColumnName(raw, present, i)
	}

	body := make([][]string, 0, len(sheet.Rows)-headerIdx-1)
	for _, row := range sheet.Rows[headerIdx+1:] {
		body = append(body, row)
	}

	return &NormalizedTable{
		Sheet:     sheet.Name,
		HeaderRow: headerIdx,
		Columns:   uniqueNames(names),
		Rows:      body,
	}, nil
}
