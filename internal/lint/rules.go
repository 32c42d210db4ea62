package lint

import (
	"slices"
	"strings"

	"strcheck/internal/diag"
)

// RuleID names a stringification rule in configuration and output.
type RuleID string

const (
	RuleConcatenation RuleID = "implicit-concatenation"
	RuleExplicitCall  RuleID = "explicit-conversion"
	RuleFormatArg     RuleID = "format-argument"
	RuleInterpolation RuleID = "interpolation-argument"
	RuleOutputArg     RuleID = "output-argument"
)

// Descriptor is the static metadata of a rule.
type Descriptor struct {
	ID          RuleID
	Code        diag.Code
	Title       string
	Message     string // fmt template, the single verb receives the type name
	Description string
	Category    string
	Severity    diag.Severity
}

const (
	msgImplicit  = "Expression of type '%s' will be implicitly converted to a string, but does not override ToString()"
	msgExplicit  = "Calling ToString() on object of type '%s' but it does not override ToString()"
	msgConverted = "Expression of type '%s' will be converted to a string, but does not override ToString()"
)

// descriptors is in detector order; Run reports in this order too.
var descriptors = [...]Descriptor{
	{
		ID:          RuleConcatenation,
		Code:        diag.StrImplicitConcatenation,
		Title:       "Implicit ToString in string concatenation",
		Message:     msgImplicit,
		Description: "A reference type is concatenated with a string but neither it nor its base types override ToString.",
		Category:    "Naming",
		Severity:    diag.SevWarning,
	},
	{
		ID:          RuleExplicitCall,
		Code:        diag.StrExplicitConversion,
		Title:       "ToString called on a type without override",
		Message:     msgExplicit,
		Description: "ToString is called explicitly on a type that inherits the default implementation.",
		Category:    "Naming",
		Severity:    diag.SevWarning,
	},
	{
		ID:          RuleFormatArg,
		Code:        diag.StrFormatArgument,
		Title:       "string.Format argument without ToString override",
		Message:     msgExplicit,
		Description: "An argument of string.Format is formatted with the default ToString.",
		Category:    "Naming",
		Severity:    diag.SevWarning,
	},
	{
		ID:          RuleInterpolation,
		Code:        diag.StrInterpolationArgument,
		Title:       "Interpolated value without ToString override",
		Message:     msgConverted,
		Description: "An interpolation hole holds a value whose type inherits the default ToString.",
		Category:    "Naming",
		Severity:    diag.SevWarning,
	},
	{
		ID:          RuleOutputArg,
		Code:        diag.StrOutputArgument,
		Title:       "Console output argument without ToString override",
		Message:     msgConverted,
		Description: "A value written with Console or a TextWriter inherits the default ToString.",
		Category:    "Naming",
		Severity:    diag.SevWarning,
	},
}

// Descriptors returns all rules in detector order.
func Descriptors() []Descriptor {
	return slices.Clone(descriptors[:])
}

// Lookup finds a rule by id or by its diagnostic code ("STR4001").
func Lookup(name string) (Descriptor, bool) {
	for _, d := range descriptors {
		if string(d.ID) == name || strings.EqualFold(d.Code.ID(), name) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ByCode returns the rule that reports code.
func ByCode(code diag.Code) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Code == code {
			return d, true
		}
	}
	return Descriptor{}, false
}
