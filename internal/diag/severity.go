package diag

import "strings"

type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityLabels = [...]string{SevInfo: "info", SevWarning: "warning", SevError: "error"}

// Label is the lowercase name used by every output format. Out-of-range
// values read as info.
func (s Severity) Label() string {
	if int(s) < len(severityLabels) {
		return severityLabels[s]
	}
	return severityLabels[SevInfo]
}

func (s Severity) String() string { return strings.ToUpper(s.Label()) }

// Escalate turns a warning into an error, for --warnings-as-errors.
func (s Severity) Escalate() Severity {
	if s == SevWarning {
		return SevError
	}
	return s
}
