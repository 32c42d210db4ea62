package source

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

// normalizeNewlines переводит \r\n в \n; одиночный \r остаётся как есть.
func normalizeNewlines(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func indexLines(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		idx = append(idx, off)
	}
	return idx
}

// position maps a byte offset to a 1-based line/column pair. Columns count
// UTF-16 code units, as C# compilers and SARIF do.
func position(content []byte, lineIdx []uint32, off uint32) LineCol {
	// число переводов строк строго до off = номер строки (0-based)
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	ln, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	end := min(int(off), len(content))
	col := 1 + utf16Len(content[min(int(lineStart), end):end])
	if int(off) > end {
		// смещение за концом файла (EOF-спаны) считаем байтами
		col += int(off) - end
	}
	c, err := safecast.Conv[uint32](col)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: ln, Col: c}
}

// utf16Len counts the UTF-16 code units of b; invalid bytes count as one.
func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			n++
		} else {
			n += utf16.RuneLen(r)
		}
		b = b[size:]
	}
	return n
}

// UTF16Prefix returns how many bytes of line hold its first units UTF-16
// code units. It inverts the column counting of Position for one line.
func UTF16Prefix(line string, units int) int {
	off := 0
	for off < len(line) && units > 0 {
		r, size := utf8.DecodeRuneInString(line[off:])
		if r == utf8.RuneError && size <= 1 {
			units--
		} else {
			units -= utf16.RuneLen(r)
		}
		off += size
	}
	return off
}
