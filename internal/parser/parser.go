// Package parser implements Axiom's recursive-descent parser, grounded
// on the structure of the teacher's compiler/parser package and the
// grammar recorded in axm/src/ast.rs (original_source).
package parser

import (
	"github.com/axiom-lang/axiom/internal/ast"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/lexer"
)

// Parser consumes a token stream and produces a []ast.Item.
type Parser struct {
	lex      *lexer.Lexer
	tokens   []lexer.Token
	pos      int
	sourceID uint32
}

// New lexes source under sourceID and prepares a Parser over its tokens.
// Lexical errors are returned immediately; a Parser is never constructed
// over a token stream with lex errors.
func New(source string, sourceID uint32) (*Parser, []*axerrors.LexError) {
	lx := lexer.New(source, sourceID)
	toks, errs := lx.ScanTokens()
	if len(errs) > 0 {
		return nil, errs
	}
	return &Parser{lex: lx, tokens: toks, sourceID: sourceID}, nil
}

func (p *Parser) peek() lexer.Token     { return p.tokens[p.pos] }
func (p *Parser) previous() lexer.Token { return p.tokens[p.pos-1] }
func (p *Parser) atEnd() bool           { return p.peek().Type == lexer.TokenEOF }

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.atEnd() {
		return t == lexer.TokenEOF
	}
	return p.peek().Type == t
}

// checkNext reports whether the token after the current one has type t,
// without consuming anything. Used to disambiguate a nested named
// function declaration (`fn name(...)`) from an anonymous function
// expression (`fn(...)`) at statement start.
func (p *Parser) checkNext(t lexer.TokenType) bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Type == t
}

func (p *Parser) matchAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// tokenNames gives human-readable names to tokens that show up in parse
// error messages; anything not listed falls back to a numeric tag.
var tokenNames = map[lexer.TokenType]string{
	lexer.TokenEOF:        "end of input",
	lexer.TokenIdent:      "identifier",
	lexer.TokenNumber:     "number",
	lexer.TokenString:     "string",
	lexer.TokenBoolean:    "boolean",
	lexer.TokenNil:        "nil",
	lexer.TokenFn:         "'fn'",
	lexer.TokenLet:        "'let'",
	lexer.TokenRet:        "'ret'",
	lexer.TokenIf:         "'if'",
	lexer.TokenElse:       "'else'",
	lexer.TokenWhile:      "'while'",
	lexer.TokenFor:        "'for'",
	lexer.TokenIn:         "'in'",
	lexer.TokenMatch:      "'match'",
	lexer.TokenCls:        "'cls'",
	lexer.TokenExt:        "'ext'",
	lexer.TokenNew:        "'new'",
	lexer.TokenOut:        "'out'",
	lexer.TokenEnum:       "'enum'",
	lexer.TokenImport:     "'import'",
	lexer.TokenStd:        "'std'",
	lexer.TokenLib:        "'lib'",
	lexer.TokenSelf:       "'self'",
	lexer.TokenLParen:     "'('",
	lexer.TokenRParen:     "')'",
	lexer.TokenLBrace:     "'{'",
	lexer.TokenRBrace:     "'}'",
	lexer.TokenLBracket:   "'['",
	lexer.TokenRBracket:   "']'",
	lexer.TokenComma:      "','",
	lexer.TokenDot:        "'.'",
	lexer.TokenSemicolon:  "';'",
	lexer.TokenColon:      "':'",
	lexer.TokenArrow:      "'->'",
	lexer.TokenEq:         "'='",
	lexer.TokenGoSpawn:    "'go'",
}

func tokenName(t lexer.TokenType) string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "token"
}

func (p *Parser) expect(t lexer.TokenType, context string) (lexer.Token, *axerrors.ParseError) {
	if p.check(t) {
		return p.advance(), nil
	}
	if p.atEnd() {
		return lexer.Token{}, axerrors.NewUnexpectedEOF(context, p.peek().Span)
	}
	return lexer.Token{}, axerrors.NewUnexpectedToken(tokenName(t), tokenName(p.peek().Type), p.peek().Span)
}

// Parse parses the full token stream into a list of top-level Items,
// stopping at the first parse error (spec.md §4.2).
func (p *Parser) Parse() ([]ast.Item, *axerrors.ParseError) {
	var items []ast.Item
	for !p.atEnd() {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *Parser) parseItem() (ast.Item, *axerrors.ParseError) {
	switch {
	case p.check(lexer.TokenFn):
		return p.parseFunctionDecl()
	case p.check(lexer.TokenCls):
		return p.parseClassDecl()
	case p.check(lexer.TokenEnum):
		return p.parseEnumDecl()
	case p.check(lexer.TokenStd):
		return p.parseStdImport()
	case p.check(lexer.TokenImport):
		return p.parseLocImport()
	case p.check(lexer.TokenLib):
		return p.parseLibDecl()
	default:
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		return &ast.StatementItem{Stmt: stmt}, nil
	}
}

func (p *Parser) parseFunctionDecl() (ast.Item, *axerrors.ParseError) {
	start := p.advance().Span // `fn`/`fun`
	name, err := p.expect(lexer.TokenIdent, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, bodyEnd, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Name: name.Lexeme, Params: params, Body: body, Sp: start.Merge(bodyEnd)}, nil
}

func (p *Parser) parseParamList() ([]string, *axerrors.ParseError) {
	if _, err := p.expect(lexer.TokenLParen, "parameter list"); err != nil {
		return nil, err
	}
	var params []string
	for !p.check(lexer.TokenRParen) {
		name, err := p.expect(lexer.TokenIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, name.Lexeme)
		if !p.matchAny(lexer.TokenComma) {
			break
		}
	}
	if _, err := p.expect(lexer.TokenRParen, "parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseBlockBody parses a `{ stmt* }` block, returning its statements and
// the span of the closing brace for merge purposes.
func (p *Parser) parseBlockBody() ([]ast.Stmt, axerrors.Span, *axerrors.ParseError) {
	if _, err := p.expect(lexer.TokenLBrace, "block"); err != nil {
		return nil, axerrors.ZeroSpan, err
	}
	var stmts []ast.Stmt
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		s, err := p.parseStmt()
		if err != nil {
			return nil, axerrors.ZeroSpan, err
		}
		stmts = append(stmts, s)
	}
	closing, err := p.expect(lexer.TokenRBrace, "block")
	if err != nil {
		return nil, axerrors.ZeroSpan, err
	}
	return stmts, closing.Span, nil
}

func (p *Parser) parseClassDecl() (ast.Item, *axerrors.ParseError) {
	start := p.advance().Span // `cls`
	name, err := p.expect(lexer.TokenIdent, "class name")
	if err != nil {
		return nil, err
	}
	parent := ""
	if p.matchAny(lexer.TokenExt) {
		pname, err := p.expect(lexer.TokenIdent, "parent class name")
		if err != nil {
			return nil, err
		}
		parent = pname.Lexeme
	}
	if _, err := p.expect(lexer.TokenLBrace, "class body"); err != nil {
		return nil, err
	}
	var members []ast.ClassMember
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		m, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	closing, err := p.expect(lexer.TokenRBrace, "class body")
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{Name: name.Lexeme, Parent: parent, Body: members, Sp: start.Merge(closing.Span)}, nil
}

func (p *Parser) parseClassMember() (ast.ClassMember, *axerrors.ParseError) {
	if p.check(lexer.TokenFn) {
		start := p.advance().Span
		name, err := p.expect(lexer.TokenIdent, "method name")
		if err != nil {
			return nil, err
		}
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		body, bodyEnd, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &ast.MethodMember{Name: name.Lexeme, Params: params, Body: body, Sp: start.Merge(bodyEnd)}, nil
	}
	name, err := p.expect(lexer.TokenIdent, "field name")
	if err != nil {
		return nil, err
	}
	sp := name.Span
	var def ast.Expr
	if p.matchAny(lexer.TokenEq) {
		def, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		sp = sp.Merge(def.Span())
	}
	p.matchAny(lexer.TokenSemicolon)
	return &ast.FieldMember{Name: name.Lexeme, Default: def, Sp: sp}, nil
}

func (p *Parser) parseEnumDecl() (ast.Item, *axerrors.ParseError) {
	start := p.advance().Span // `enum`
	name, err := p.expect(lexer.TokenIdent, "enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace, "enum body"); err != nil {
		return nil, err
	}
	var variants []ast.EnumVariant
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		vname, err := p.expect(lexer.TokenIdent, "variant name")
		if err != nil {
			return nil, err
		}
		hasData := false
		sp := vname.Span
		if p.matchAny(lexer.TokenLParen) {
			hasData = true
			// The payload name, if given (`Variant(inner)`), is purely
			// declarative sugar marking has_data; it binds nothing here
			// — bindings are introduced per-arm by a match pattern.
			if !p.check(lexer.TokenRParen) {
				if _, err := p.expect(lexer.TokenIdent, "variant payload name"); err != nil {
					return nil, err
				}
			}
			closing, err := p.expect(lexer.TokenRParen, "variant payload")
			if err != nil {
				return nil, err
			}
			sp = sp.Merge(closing.Span)
		}
		variants = append(variants, ast.EnumVariant{Name: vname.Lexeme, HasData: hasData, Sp: sp})
		if !p.matchAny(lexer.TokenComma) {
			break
		}
	}
	closing, err := p.expect(lexer.TokenRBrace, "enum body")
	if err != nil {
		return nil, err
	}
	return &ast.EnumDecl{Name: name.Lexeme, Variants: variants, Sp: start.Merge(closing.Span)}, nil
}

func (p *Parser) parseStdImport() (ast.Item, *axerrors.ParseError) {
	start := p.advance().Span // `std`
	name, err := p.expect(lexer.TokenIdent, "std import name")
	if err != nil {
		return nil, err
	}
	p.matchAny(lexer.TokenSemicolon)
	return &ast.StdImport{Name: name.Lexeme, Sp: start.Merge(name.Span)}, nil
}

func (p *Parser) parseLocImport() (ast.Item, *axerrors.ParseError) {
	start := p.advance().Span // `import`
	name, err := p.expect(lexer.TokenIdent, "local import name")
	if err != nil {
		return nil, err
	}
	p.matchAny(lexer.TokenSemicolon)
	return &ast.LocImport{Name: name.Lexeme, Sp: start.Merge(name.Span)}, nil
}

func (p *Parser) parseLibDecl() (ast.Item, *axerrors.ParseError) {
	start := p.advance().Span // `lib`
	name, err := p.expect(lexer.TokenIdent, "library name")
	if err != nil {
		return nil, err
	}
	p.matchAny(lexer.TokenSemicolon)
	return &ast.LibDecl{Name: name.Lexeme, Sp: start.Merge(name.Span)}, nil
}
