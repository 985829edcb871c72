package parser

import (
	"github.com/axiom-lang/axiom/internal/ast"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/lexer"
)

func (p *Parser) parseStmt() (ast.Stmt, *axerrors.ParseError) {
	switch {
	case p.check(lexer.TokenFn) && p.checkNext(lexer.TokenIdent):
		return p.parseLocalFuncStmt()
	case p.check(lexer.TokenLet):
		return p.parseLetStmt()
	case p.check(lexer.TokenRet):
		return p.parseReturnStmt()
	case p.check(lexer.TokenIf):
		return p.parseIfStmt()
	case p.check(lexer.TokenWhile):
		return p.parseWhileStmt()
	case p.check(lexer.TokenFor):
		return p.parseForStmt()
	case p.check(lexer.TokenMatch):
		return p.parseMatchStmt()
	case p.check(lexer.TokenOut):
		return p.parseOutStmt()
	case p.check(lexer.TokenGoSpawn):
		return p.parseGoSpawnStmt()
	case p.check(lexer.TokenLBrace):
		body, end, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Body: body, Sp: end}, nil
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.matchAny(lexer.TokenSemicolon)
		return &ast.ExprStmt{Expr: expr}, nil
	}
}

// parseLocalFuncStmt parses a nested named function declaration inside
// a function or method body (spec.md §8's make_adder/outer scenarios):
// `fn name(params) { body }` used as a statement, equivalent to
// `let name = fn(params) { body }`.
func (p *Parser) parseLocalFuncStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `fn`/`fun`
	name, err := p.expect(lexer.TokenIdent, "local function name")
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
	return &ast.LocalFuncStmt{Name: name.Lexeme, Params: params, Body: body, Sp: start.Merge(bodyEnd)}, nil
}

func (p *Parser) parseLetStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `let`
	name, err := p.expect(lexer.TokenIdent, "let binding name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEq, "let binding"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.matchAny(lexer.TokenSemicolon)
	return &ast.LetStmt{Name: name.Lexeme, Value: value, Sp: start.Merge(value.Span())}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `ret`/`return`
	if p.check(lexer.TokenSemicolon) || p.check(lexer.TokenRBrace) || p.atEnd() {
		p.matchAny(lexer.TokenSemicolon)
		return &ast.ReturnStmt{Sp: start}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.matchAny(lexer.TokenSemicolon)
	return &ast.ReturnStmt{Value: value, Sp: start.Merge(value.Span())}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `if`
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	thenBody, thenEnd, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	sp := start.Merge(thenEnd)
	var elseBody []ast.Stmt
	if p.matchAny(lexer.TokenElse) {
		if p.check(lexer.TokenIf) {
			elseIf, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			elseBody = []ast.Stmt{elseIf}
			sp = sp.Merge(elseIf.Span())
		} else {
			body, end, err := p.parseBlockBody()
			if err != nil {
				return nil, err
			}
			elseBody = body
			sp = sp.Merge(end)
		}
	}
	return &ast.IfStmt{Condition: cond, Then: thenBody, Else: elseBody, Sp: sp}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `while`
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: cond, Body: body, Sp: start.Merge(end)}, nil
}

func (p *Parser) parseForStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `for`
	varName, err := p.expect(lexer.TokenIdent, "for-loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIn, "for-loop"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Var: varName.Lexeme, Iterable: iterable, Body: body, Sp: start.Merge(end)}, nil
}

func (p *Parser) parseGoSpawnStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `go`
	body, end, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.GoSpawnStmt{Body: body, Sp: start.Merge(end)}, nil
}

func (p *Parser) parseOutStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `out`
	var args []ast.Expr
	sp := start
	if !p.check(lexer.TokenSemicolon) && !p.check(lexer.TokenRBrace) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			sp = sp.Merge(arg.Span())
			if !p.matchAny(lexer.TokenComma) {
				break
			}
		}
	}
	p.matchAny(lexer.TokenSemicolon)
	return &ast.OutStmt{Arguments: args, Sp: sp}, nil
}

// parseMatchStmt parses `match expr { pattern -> { body } | pattern -> expr }*`.
// Both arm forms are normalised into a Vec<Stmt> body (spec.md §4.2).
func (p *Parser) parseMatchStmt() (ast.Stmt, *axerrors.ParseError) {
	start := p.advance().Span // `match`
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace, "match body"); err != nil {
		return nil, err
	}
	var arms []ast.MatchArm
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenArrow, "match arm"); err != nil {
			return nil, err
		}
		var body []ast.Stmt
		var sp axerrors.Span
		if p.check(lexer.TokenLBrace) {
			b, end, err := p.parseBlockBody()
			if err != nil {
				return nil, err
			}
			body, sp = b, end
		} else {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			body = []ast.Stmt{&ast.ExprStmt{Expr: expr}}
			sp = expr.Span()
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body, Sp: sp})
		p.matchAny(lexer.TokenComma)
	}
	closing, err := p.expect(lexer.TokenRBrace, "match body")
	if err != nil {
		return nil, err
	}
	return &ast.MatchStmt{Expr: scrutinee, Arms: arms, Sp: start.Merge(closing.Span)}, nil
}

func (p *Parser) parsePattern() (ast.Pattern, *axerrors.ParseError) {
	if p.check(lexer.TokenIdent) && p.peek().Lexeme == "_" {
		p.advance()
		return &ast.WildcardPattern{}, nil
	}
	if p.check(lexer.TokenNumber) || p.check(lexer.TokenString) || p.check(lexer.TokenBoolean) || p.check(lexer.TokenNil) {
		lit, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.LiteralPattern{Value: lit}, nil
	}
	if p.check(lexer.TokenIdent) {
		first := p.advance().Lexeme
		if p.matchAny(lexer.TokenDot) {
			variant, err := p.expect(lexer.TokenIdent, "enum variant pattern")
			if err != nil {
				return nil, err
			}
			binding := ""
			if p.matchAny(lexer.TokenLParen) {
				b, err := p.expect(lexer.TokenIdent, "variant binding")
				if err != nil {
					return nil, err
				}
				binding = b.Lexeme
				if _, err := p.expect(lexer.TokenRParen, "variant binding"); err != nil {
					return nil, err
				}
			}
			return &ast.EnumVariantPattern{EnumName: first, Variant: variant.Lexeme, Binding: binding}, nil
		}
		if p.matchAny(lexer.TokenLParen) {
			binding := ""
			if !p.check(lexer.TokenRParen) {
				b, err := p.expect(lexer.TokenIdent, "variant binding")
				if err != nil {
					return nil, err
				}
				binding = b.Lexeme
			}
			if _, err := p.expect(lexer.TokenRParen, "variant binding"); err != nil {
				return nil, err
			}
			return &ast.EnumVariantPattern{Variant: first, Binding: binding}, nil
		}
		return &ast.IdentifierPattern{Name: first}, nil
	}
	return nil, axerrors.NewInvalidSyntax("match pattern", p.peek().Span)
}
