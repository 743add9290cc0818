package token

var keywords = map[string]Kind{
	"and":    KwAnd,
	"class":  KwClass,
	"else":   KwElse,
	"false":  KwFalse,
	"for":    KwFor,
	"fun":    KwFun,
	"if":     KwIf,
	"nil":    KwNil,
	"or":     KwOr,
	"print":  KwPrint,
	"return": KwReturn,
	"super":  KwSuper,
	"this":   KwThis,
	"true":   KwTrue,
	"var":    KwVar,
	"while":  KwWhile,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
