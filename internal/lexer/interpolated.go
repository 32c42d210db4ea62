package lexer

import (
	"strcheck/internal/diag"
	"strcheck/internal/source"
	"strcheck/internal/token"
)

// Segment is one piece of an interpolated string body: a literal text run or
// a hole. For holes Span covers only the expression; Align and Format are the
// optional ",n" and ":fmt" parts (without the separators).
type Segment struct {
	Hole   bool
	Span   source.Span
	Align  source.Span
	Format source.Span
}

// Problem is a lexical issue found while splitting an interpolated literal.
type Problem struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

// Interpolated is the structure of one $"..." literal.
type Interpolated struct {
	Verbatim bool
	Closed   bool
	// End is the offset just past the closing quote (or where scanning stopped).
	End      uint32
	Segments []Segment
	Problems []Problem
}

// Holes returns only the hole segments.
func (in Interpolated) Holes() []Segment {
	out := make([]Segment, 0, len(in.Segments))
	for _, s := range in.Segments {
		if s.Hole {
			out = append(out, s)
		}
	}
	return out
}

// SplitInterpolated scans the interpolated literal whose prefix ('$' or '@')
// starts at offset start. Offsets in the result are absolute file offsets.
func SplitInterpolated(f *source.File, start, limit uint32) Interpolated {
	if n := uint32(len(f.Content)); limit > n { //nolint:gosec // bounded by file size
		limit = n
	}
	s := interpScanner{src: f.Content, file: f.ID, pos: start, limit: limit}
	s.run()
	return s.out
}

type interpScanner struct {
	src   []byte
	file  source.FileID
	pos   uint32
	limit uint32
	out   Interpolated
}

func (s *interpScanner) span(a, b uint32) source.Span {
	return source.Span{File: s.file, Start: a, End: b}
}

func (s *interpScanner) at(off uint32) byte {
	if off >= s.limit {
		return 0
	}
	return s.src[off]
}

func (s *interpScanner) problem(code diag.Code, a, b uint32, msg string) {
	s.out.Problems = append(s.out.Problems, Problem{Code: code, Span: s.span(a, b), Msg: msg})
}

func (s *interpScanner) run() {
	litStart := s.pos
	for s.pos < s.limit && s.src[s.pos] != '"' {
		if s.src[s.pos] == '@' {
			s.out.Verbatim = true
		}
		s.pos++
	}
	s.pos++

	textStart := s.pos
	flush := func(end uint32) {
		if end > textStart {
			s.out.Segments = append(s.out.Segments, Segment{Span: s.span(textStart, end)})
		}
	}
	for s.pos < s.limit {
		c := s.src[s.pos]
		switch {
		case c == '"':
			if s.out.Verbatim && s.at(s.pos+1) == '"' {
				s.pos += 2
				continue
			}
			flush(s.pos)
			s.pos++
			s.out.Closed = true
			s.out.End = s.pos
			return
		case c == '\\' && !s.out.Verbatim:
			s.pos += 2
			continue
		case c == '\n' && !s.out.Verbatim:
			flush(s.pos)
			s.problem(diag.LexUnterminatedInterpolated, litStart, s.pos, "newline in interpolated string")
			s.out.End = s.pos
			return
		case c == '{':
			if s.at(s.pos+1) == '{' {
				s.pos += 2
				continue
			}
			flush(s.pos)
			s.pos++
			if !s.hole() {
				s.problem(diag.LexUnterminatedInterpolated, litStart, s.pos, "unterminated interpolation hole")
				s.out.End = s.pos
				return
			}
			textStart = s.pos
			continue
		case c == '}':
			if s.at(s.pos+1) == '}' {
				s.pos += 2
				continue
			}
			s.problem(diag.LexUnterminatedInterpolated, s.pos, s.pos+1, "unescaped '}' in interpolated string")
		}
		s.pos++
	}
	flush(s.pos)
	s.problem(diag.LexUnterminatedInterpolated, litStart, s.pos, "unterminated interpolated string")
	s.out.End = s.pos
}

const (
	phaseExpr = iota
	phaseAlign
	phaseFormat
)

// hole scans from just after '{' to just after the matching '}'.
func (s *interpScanner) hole() bool {
	seg := Segment{Hole: true}
	phase := phaseExpr
	mark := s.pos
	depth := 0
	closePhase := func() {
		switch phase {
		case phaseExpr:
			seg.Span = s.span(mark, s.pos)
		case phaseAlign:
			seg.Align = s.span(mark, s.pos)
		case phaseFormat:
			seg.Format = s.span(mark, s.pos)
		}
	}

	for s.pos < s.limit {
		c := s.src[s.pos]
		if c == '\n' && !s.out.Verbatim {
			return false
		}
		if phase == phaseFormat {
			if c == '}' {
				closePhase()
				s.pos++
				s.out.Segments = append(s.out.Segments, seg)
				return true
			}
			if c == '"' {
				return false
			}
			s.pos++
			continue
		}
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				closePhase()
				s.pos++
				s.out.Segments = append(s.out.Segments, seg)
				return true
			}
			depth--
		case ',':
			if depth == 0 && phase == phaseExpr {
				closePhase()
				phase = phaseAlign
				s.pos++
				mark = s.pos
				continue
			}
		case ':':
			if depth == 0 {
				closePhase()
				phase = phaseFormat
				s.pos++
				mark = s.pos
				continue
			}
		case '$':
			if nx := s.at(s.pos + 1); nx == '"' || (nx == '@' && s.at(s.pos+2) == '"') {
				nested := SplitInterpolated(&source.File{ID: s.file, Content: s.src}, s.pos, s.limit)
				if !nested.Closed {
					return false
				}
				s.pos = nested.End
				continue
			}
		case '@':
			if s.at(s.pos+1) == '"' {
				if !s.skipVerbatim() {
					return false
				}
				continue
			}
		case '"':
			if !s.skipQuoted('"') {
				return false
			}
			continue
		case '\'':
			if !s.skipQuoted('\'') {
				return false
			}
			continue
		}
		s.pos++
	}
	return false
}

func (s *interpScanner) skipQuoted(q byte) bool {
	s.pos++
	for s.pos < s.limit {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '\n':
			return false
		case q:
			s.pos++
			return true
		}
		s.pos++
	}
	return false
}

func (s *interpScanner) skipVerbatim() bool {
	s.pos += 2
	for s.pos < s.limit {
		if s.src[s.pos] == '"' {
			if s.at(s.pos+1) == '"' {
				s.pos += 2
				continue
			}
			s.pos++
			return true
		}
		s.pos++
	}
	return false
}

// scanInterpolated lexes $"...", $@"..." and @$"..." as one token.
func (lx *Lexer) scanInterpolated() token.Token {
	start := lx.cursor.Mark()
	in := SplitInterpolated(lx.file, lx.cursor.Off, lx.cursor.Limit)
	lx.cursor.Off = in.End
	for _, p := range in.Problems {
		lx.errLex(p.Code, p.Span, p.Msg)
	}
	sp := lx.cursor.SpanFrom(start)
	if !in.Closed {
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.InterpStringLit, Span: sp, Text: lx.text(sp)}
}
