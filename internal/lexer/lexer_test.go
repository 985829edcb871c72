package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiom-lang/axiom/internal/lexer"
)

func scan(t *testing.T, source string) []lexer.Token {
	t.Helper()
	toks, errs := lexer.New(source, 0).ScanTokens()
	require.Empty(t, errs)
	return toks
}

func types(toks []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(toks))
	for i, tk := range toks {
		out[i] = tk.Type
	}
	return out
}

func TestScanNumberStringBoolNil(t *testing.T) {
	toks := scan(t, `42 3.5 "hi" true false nil`)
	assert.Equal(t, []lexer.TokenType{
		lexer.TokenNumber, lexer.TokenNumber, lexer.TokenString,
		lexer.TokenBoolean, lexer.TokenBoolean, lexer.TokenNil, lexer.TokenEOF,
	}, types(toks))
	assert.Equal(t, 42.0, toks[0].NumVal)
	assert.Equal(t, 3.5, toks[1].NumVal)
	assert.Equal(t, "hi", toks[2].StrVal)
	assert.True(t, toks[3].BoolVal)
	assert.False(t, toks[4].BoolVal)
}

func TestScanKeywordsAndSynonyms(t *testing.T) {
	toks := scan(t, `fn fun ret return if else while for in match cls ext new out enum import std lib self`)
	want := []lexer.TokenType{
		lexer.TokenFn, lexer.TokenFn, lexer.TokenRet, lexer.TokenRet,
		lexer.TokenIf, lexer.TokenElse, lexer.TokenWhile, lexer.TokenFor,
		lexer.TokenIn, lexer.TokenMatch, lexer.TokenCls, lexer.TokenExt,
		lexer.TokenNew, lexer.TokenOut, lexer.TokenEnum, lexer.TokenImport,
		lexer.TokenStd, lexer.TokenLib, lexer.TokenSelf, lexer.TokenEOF,
	}
	assert.Equal(t, want, types(toks))
}

func TestScanOperatorsAndPunctuation(t *testing.T) {
	toks := scan(t, `( ) { } [ ] , . ; : -> + - * / % == != < <= > >= && || ! = += -= *= /=`)
	want := []lexer.TokenType{
		lexer.TokenLParen, lexer.TokenRParen, lexer.TokenLBrace, lexer.TokenRBrace,
		lexer.TokenLBracket, lexer.TokenRBracket, lexer.TokenComma, lexer.TokenDot,
		lexer.TokenSemicolon, lexer.TokenColon, lexer.TokenArrow,
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent,
		lexer.TokenEqEq, lexer.TokenNotEq, lexer.TokenLt, lexer.TokenLtEq, lexer.TokenGt, lexer.TokenGtEq,
		lexer.TokenAndAnd, lexer.TokenOrOr, lexer.TokenBang, lexer.TokenEq,
		lexer.TokenPlusEq, lexer.TokenMinusEq, lexer.TokenStarEq, lexer.TokenSlashEq,
		lexer.TokenEOF,
	}
	assert.Equal(t, want, types(toks))
}

func TestScanIdentifier(t *testing.T) {
	toks := scan(t, `make_adder x1 _leading`)
	for i, name := range []string{"make_adder", "x1", "_leading"} {
		assert.Equal(t, lexer.TokenIdent, toks[i].Type)
		assert.Equal(t, name, toks[i].Lexeme)
	}
}

func TestScanGoSpawnKeyword(t *testing.T) {
	toks := scan(t, `go { 1 }`)
	assert.Equal(t, lexer.TokenGoSpawn, toks[0].Type)
}

func TestSpansAdvance(t *testing.T) {
	toks := scan(t, "let x = 1")
	for i := 1; i < len(toks)-1; i++ {
		assert.LessOrEqual(t, toks[i-1].Span.Start, toks[i].Span.Start)
	}
}
