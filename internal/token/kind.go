package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	// литералы
	IntLit
	RealLit
	StringLit
	CharLit
	InterpStringLit

	// ключевые слова
	KwUsing
	KwNamespace
	KwClass
	KwStruct
	KwInterface
	KwEnum
	KwPublic
	KwPrivate
	KwProtected
	KwInternal
	KwStatic
	KwReadonly
	KwConst
	KwOverride
	KwVirtual
	KwAbstract
	KwSealed
	KwPartial
	KwNew
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwForeach
	KwIn
	KwTrue
	KwFalse
	KwNull
	KwThis
	KwBase
	KwVoid
	KwObject
	KwString
	KwInt
	KwLong
	KwShort
	KwByte
	KwDouble
	KwFloat
	KwDecimal
	KwBool
	KwChar
	KwTypeof

	// операторы и пунктуация
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Percent     // %
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	EqEq        // ==
	Bang        // !
	BangEq      // !=
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	AndAnd      // &&
	OrOr        // ||
	PlusPlus    // ++
	MinusMinus  // --
	Question    // ?
	QuestionDot // ?.
	QQ          // ??
	Colon       // :
	Semicolon   // ;
	Comma       // ,
	Dot         // .
	FatArrow    // =>
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]

	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Ident:           "Ident",
	IntLit:          "IntLit",
	RealLit:         "RealLit",
	StringLit:       "StringLit",
	CharLit:         "CharLit",
	InterpStringLit: "InterpStringLit",
	Plus:            "+",
	Minus:           "-",
	Star:            "*",
	Slash:           "/",
	Percent:         "%",
	Assign:          "=",
	PlusAssign:      "+=",
	MinusAssign:     "-=",
	EqEq:            "==",
	Bang:            "!",
	BangEq:          "!=",
	Lt:              "<",
	LtEq:            "<=",
	Gt:              ">",
	GtEq:            ">=",
	AndAnd:          "&&",
	OrOr:            "||",
	PlusPlus:        "++",
	MinusMinus:      "--",
	Question:        "?",
	QuestionDot:     "?.",
	QQ:              "??",
	Colon:           ":",
	Semicolon:       ";",
	Comma:           ",",
	Dot:             ".",
	FatArrow:        "=>",
	LParen:          "(",
	RParen:          ")",
	LBrace:          "{",
	RBrace:          "}",
	LBracket:        "[",
	RBracket:        "]",
	Amp:             "&",
	Pipe:            "|",
	Caret:           "^",
	Tilde:           "~",
	StarAssign:      "*=",
	SlashAssign:     "/=",
	PercentAssign:   "%=",
	AmpAssign:       "&=",
	PipeAssign:      "|=",
	CaretAssign:     "^=",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		return keywordText[k]
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwUsing && k <= KwTypeof
}

// IsPredefinedType reports whether k names a builtin type keyword (object, string, int, ...).
func (k Kind) IsPredefinedType() bool {
	switch k {
	case KwVoid, KwObject, KwString, KwInt, KwLong, KwShort, KwByte,
		KwDouble, KwFloat, KwDecimal, KwBool, KwChar:
		return true
	}
	return false
}

// IsModifier reports whether k may prefix a declaration.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwInternal, KwStatic, KwReadonly, KwConst,
		KwOverride, KwVirtual, KwAbstract, KwSealed, KwPartial, KwNew:
		return true
	}
	return false
}
