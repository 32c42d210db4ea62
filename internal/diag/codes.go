package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadEscape                Code = 1006
	LexUnterminatedInterpolated Code = 1007

	// Синтаксические
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynBadInterpolation   Code = 2009
	SynUnexpectedTopLevel Code = 2010
	SynUnexpectedMember   Code = 2011

	// Семантические (binder)
	SemaDuplicateType  Code = 3001
	SemaUnresolvedType Code = 3002
	SemaBaseNotClass   Code = 3003
	SemaCyclicBase     Code = 3004
	SemaDuplicateLocal Code = 3005
	SemaStructInherits Code = 3006

	// Правила strcheck
	StrImplicitConcatenation Code = 4001
	StrExplicitConversion    Code = 4002
	StrFormatArgument        Code = 4003
	StrInterpolationArgument Code = 4004
	StrOutputArgument        Code = 4005

	IOLoadFileError Code = 5001
	IOReadDirError  Code = 5002

	CfgInvalid     Code = 6001
	CfgUnknownRule Code = 6002

	ObsTimings Code = 7001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadEscape:                "Invalid escape sequence",
	LexUnterminatedInterpolated: "Unterminated interpolated string",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynBadInterpolation:         "Malformed interpolation hole",
	SynUnexpectedTopLevel:       "Unexpected top-level token",
	SynUnexpectedMember:         "Unexpected token in type body",
	SemaDuplicateType:           "Duplicate type declaration",
	SemaUnresolvedType:          "Unresolved type name",
	SemaBaseNotClass:            "Base type is not a class or interface",
	SemaCyclicBase:              "Cyclic base type",
	SemaDuplicateLocal:          "Duplicate local variable",
	SemaStructInherits:          "Struct cannot inherit from a class",
	StrImplicitConcatenation:    "Implicit string conversion without ToString override",
	StrExplicitConversion:       "ToString call without override",
	StrFormatArgument:           "Format argument without ToString override",
	StrInterpolationArgument:    "Interpolated value without ToString override",
	StrOutputArgument:           "Console output argument without ToString override",
	IOLoadFileError:             "I/O load file error",
	IOReadDirError:              "I/O read directory error",
	CfgInvalid:                  "Invalid configuration",
	CfgUnknownRule:              "Unknown rule id in configuration",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsLint reports whether the code belongs to a stringification rule.
func (c Code) IsLint() bool {
	return c >= 4000 && c < 5000
}
