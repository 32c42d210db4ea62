package lexer

import (
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = utf8.RuneSelf

// charClass bits for ASCII bytes; everything >= 0x80 goes through the
// unicode tables.
type charClass uint8

const (
	clsIdentStart charClass = 1 << iota
	clsDec
	clsHex
)

var asciiClass = func() (t [utf8.RuneSelf]charClass) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= clsIdentStart
		t[c-'a'+'A'] |= clsIdentStart
	}
	t['_'] |= clsIdentStart
	for c := '0'; c <= '9'; c++ {
		t[c] |= clsDec | clsHex
	}
	for c := 'a'; c <= 'f'; c++ {
		t[c] |= clsHex
		t[c-'a'+'A'] |= clsHex
	}
	return t
}()

func is(b byte, cls charClass) bool {
	return b < utf8.RuneSelf && asciiClass[b]&cls != 0
}

func isIdentStartByte(b byte) bool    { return is(b, clsIdentStart) }
func isIdentContinueByte(b byte) bool { return is(b, clsIdentStart|clsDec) }
func isDec(b byte) bool               { return is(b, clsDec) }
func isHex(b byte) bool               { return is(b, clsHex) }

// Non-ASCII identifier characters: letters and letter numbers start a name;
// digits, combining marks, connectors and format characters may follow.
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.In(r, unicode.L, unicode.Nl)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.In(r, unicode.Nd, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Cf)
}

// peekRune decodes the rune at the cursor; size is 0 at the end of input.
func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune steps over one rune; invalid UTF-8 advances by a single byte.
func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	if n, err := safecast.Conv[uint32](size); err == nil {
		lx.cursor.Off += n
	}
}
