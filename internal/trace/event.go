package trace

import (
	"fmt"
	"strings"
	"time"
)

// Kind says what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point", KindHeartbeat: "heartbeat"}

func (k Kind) String() string { return nameOf(kindNames[:], int(k)) }

// Scope is the granularity of an event; coarser scopes have lower values.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI run
	ScopePass                    // parse, bind, lint
	ScopeFile                    // per-file work and detector passes
	ScopeNode                    // single syntax nodes
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeNode: "node"}

func (s Scope) String() string { return nameOf(scopeNames[:], int(s)) }

// Level selects the scopes a tracer records.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; the ring is dumped on a crash
	LevelPhase        // driver and pass boundaries
	LevelDetail       // plus files and detector passes
	LevelDebug        // everything
)

var levelNames = [...]string{LevelOff: "off", LevelError: "error", LevelPhase: "phase", LevelDetail: "detail", LevelDebug: "debug"}

func (l Level) String() string { return nameOf(levelNames[:], int(l)) }

// ParseLevel converts a --trace-level value.
func ParseLevel(s string) (Level, error) {
	i, err := parseName(levelNames[:], s, "trace level")
	return Level(i), err
}

// maxScope is the finest scope recorded at each level.
var maxScope = [...]Scope{LevelOff: 0, LevelError: 0, LevelPhase: ScopePass, LevelDetail: ScopeFile, LevelDebug: ScopeNode}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(maxScope) {
		return false
	}
	return scope != 0 && scope <= maxScope[l]
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // process-wide order
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "check", "parse", "lint:format-argument"
	Detail   string
	Attrs    map[string]string
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}

func parseName(names []string, s, what string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n != "" && n == s {
			return i, nil
		}
	}
	var valid []string
	for _, n := range names {
		if n != "" {
			valid = append(valid, n)
		}
	}
	return 0, fmt.Errorf("invalid %s %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
