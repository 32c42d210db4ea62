package token

var keywords = map[string]Kind{
	"using":     KwUsing,
	"namespace": KwNamespace,
	"class":     KwClass,
	"struct":    KwStruct,
	"interface": KwInterface,
	"enum":      KwEnum,
	"public":    KwPublic,
	"private":   KwPrivate,
	"protected": KwProtected,
	"internal":  KwInternal,
	"static":    KwStatic,
	"readonly":  KwReadonly,
	"const":     KwConst,
	"override":  KwOverride,
	"virtual":   KwVirtual,
	"abstract":  KwAbstract,
	"sealed":    KwSealed,
	"partial":   KwPartial,
	"new":       KwNew,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"for":       KwFor,
	"foreach":   KwForeach,
	"in":        KwIn,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
	"this":      KwThis,
	"base":      KwBase,
	"void":      KwVoid,
	"object":    KwObject,
	"string":    KwString,
	"int":       KwInt,
	"long":      KwLong,
	"short":     KwShort,
	"byte":      KwByte,
	"double":    KwDouble,
	"float":     KwFloat,
	"decimal":   KwDecimal,
	"bool":      KwBool,
	"char":      KwChar,
	"typeof":    KwTypeof,
}

var keywordText = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, k := range keywords {
		out[k] = text
	}
	return out
}()

// LookupKeyword возвращает Kind ключевого слова; регистр учитывается.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
