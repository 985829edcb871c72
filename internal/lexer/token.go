package lexer

import axerrors "github.com/axiom-lang/axiom/internal/errors"

// TokenType identifies the lexical category of a Token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenBoolean
	TokenNil

	// Keywords
	TokenFn
	TokenLet
	TokenRet
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenIn
	TokenMatch
	TokenCls
	TokenExt
	TokenNew
	TokenOut
	TokenEnum
	TokenImport
	TokenStd
	TokenLib
	TokenSelf
	TokenTrue
	TokenFalse

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
	TokenSemicolon
	TokenColon
	TokenArrow // ->

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenEqEq
	TokenNotEq
	TokenLt
	TokenLtEq
	TokenGt
	TokenGtEq
	TokenAndAnd
	TokenOrOr
	TokenBang
	TokenEq
	TokenPlusEq
	TokenMinusEq
	TokenStarEq
	TokenSlashEq

	// Interpolated string markers
	TokenInterpStart // beginning of an interpolated string literal
	TokenInterpMid   // literal segment between two ${...} holes
	TokenInterpExprStart
	TokenInterpExprEnd
	TokenInterpEnd
)

// keywords maps reserved words to their token type. `fn`/`fun` and
// `ret`/`return` are synonyms per spec.md §4.2.
var keywords = map[string]TokenType{
	"fn":      TokenFn,
	"fun":     TokenFn,
	"let":     TokenLet,
	"ret":     TokenRet,
	"return":  TokenRet,
	"if":      TokenIf,
	"else":    TokenElse,
	"while":   TokenWhile,
	"for":     TokenFor,
	"in":      TokenIn,
	"match":   TokenMatch,
	"cls":     TokenCls,
	"ext":     TokenExt,
	"new":     TokenNew,
	"out":     TokenOut,
	"enum":    TokenEnum,
	"import":  TokenImport,
	"std":     TokenStd,
	"lib":     TokenLib,
	"self":    TokenSelf,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"nil":     TokenNil,
	"go":      TokenGoSpawn,
}

// TokenGoSpawn is a distinct keyword token for `go { ... }` spawn blocks.
const TokenGoSpawn TokenType = 1000

// Token is a single lexical unit with its source span.
type Token struct {
	Type    TokenType
	Lexeme  string
	NumVal  float64
	StrVal  string
	BoolVal bool
	// InterpIndex is set on TokenInterpStart tokens; it indexes the
	// Lexer's interpParts table (see Lexer.InterpParts).
	InterpIndex int
	Span        axerrors.Span
}
