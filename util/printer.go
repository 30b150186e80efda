// Package util holds helpers shared by the command line tools.
package util

import (
	"fmt"
	"strings"
)

const (
	highlightOn  = "\033[1m\033[31m"
	highlightOff = "\033[0m"
)

// DumpOptions control the layout of DumpByteSlice
type DumpOptions struct {
	BytesPerRow int  // defaults to 16
	ShowASCII   bool // printable bytes at the end of each row, like xxd
	ShowPosHex  bool // row offset in hex
	ShowPosDec  bool // row offset in decimal
	// Highlight marks offsets of interest, see Color and OnlyHighlighted
	Highlight map[int]bool
	// Color prints highlighted offsets in bold red using ANSI escapes
	Color bool
	// OnlyHighlighted drops rows that contain no highlighted offset
	OnlyHighlighted bool
}

// DumpByteSlice dump a byte slice in hex and optionally ASCII format.
func DumpByteSlice(b []byte, opts DumpOptions) string {
	bytesPerRow := opts.BytesPerRow
	if bytesPerRow <= 0 {
		bytesPerRow = 16
	}
	var out strings.Builder
	ascii := make([]byte, 0, bytesPerRow)

	numRows := len(b) / bytesPerRow
	if len(b)%bytesPerRow != 0 {
		numRows++
	}
	for i := 0; i < numRows; i++ {
		firstByte := i * bytesPerRow
		lastByte := firstByte + bytesPerRow

		if opts.OnlyHighlighted && !rowHighlighted(opts.Highlight, firstByte, lastByte) {
			continue
		}

		var row strings.Builder
		if opts.ShowPosHex {
			fmt.Fprintf(&row, "%08x ", firstByte)
		}
		if opts.ShowPosDec {
			fmt.Fprintf(&row, "%4d ", firstByte)
		}
		row.WriteString(":")
		ascii = ascii[:0]
		for j := firstByte; j < lastByte; j++ {
			// every 8 bytes add extra spacing to make it easier to read
			if j%8 == 0 {
				row.WriteByte(' ')
			}
			if j >= len(b) {
				row.WriteString("   ")
				ascii = append(ascii, ' ')
				continue
			}
			if opts.Color && opts.Highlight[j] {
				fmt.Fprintf(&row, "%s %02x%s", highlightOn, b[j], highlightOff)
			} else {
				fmt.Fprintf(&row, " %02x", b[j])
			}
			if b[j] < 32 || b[j] > 126 {
				ascii = append(ascii, '.')
			} else {
				ascii = append(ascii, b[j])
			}
		}
		if opts.ShowASCII {
			fmt.Fprintf(&row, "  %s", ascii)
		}
		row.WriteByte('\n')
		out.WriteString(row.String())
	}
	return out.String()
}

func rowHighlighted(highlight map[int]bool, first, last int) bool {
	for j := first; j < last; j++ {
		if highlight[j] {
			return true
		}
	}
	return false
}

// HighlightRange returns a highlight set covering offsets [start, end)
func HighlightRange(start, end int) map[int]bool {
	m := make(map[int]bool, end-start)
	for i := start; i < end; i++ {
		m[i] = true
	}
	return m
}

// compareByteSlices returns the offsets at which a and b differ. Offsets past
// the end of the shorter slice count as differences.
func compareByteSlices(a, b []byte) map[int]bool {
	diffs := map[int]bool{}
	maxSize := len(a)
	if len(b) > maxSize {
		maxSize = len(b)
	}
	for i := 0; i < maxSize; i++ {
		if i >= len(a) || i >= len(b) || a[i] != b[i] {
			diffs[i] = true
		}
	}
	return diffs
}

// DumpByteSlicesWithDiffs shows only the rows where a and b differ, a first,
// with the differing bytes highlighted
func DumpByteSlicesWithDiffs(a, b []byte, opts DumpOptions) (different bool, out string) {
	diffs := compareByteSlices(a, b)
	if len(diffs) == 0 {
		return false, ""
	}
	opts.Highlight = diffs
	opts.OnlyHighlighted = true
	out = DumpByteSlice(a, opts)
	out += "\n"
	out += DumpByteSlice(b, opts)
	return true, out
}
