package parser

import (
	"github.com/axiom-lang/axiom/internal/ast"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/lexer"
)

// parseExpr is the entry point of the precedence chain (spec.md §4.2):
// assignment -> or -> and -> equality -> comparison -> additive ->
// multiplicative -> unary -> postfix -> primary.
func (p *Parser) parseExpr() (ast.Expr, *axerrors.ParseError) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, *axerrors.ParseError) {
	target, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.matchAny(lexer.TokenEq) {
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Target: target, Value: value, Sp: target.Span().Merge(value.Span())}, nil
	}
	for _, compound := range []struct {
		tok lexer.TokenType
		op  string
	}{
		{lexer.TokenPlusEq, "+"},
		{lexer.TokenMinusEq, "-"},
		{lexer.TokenStarEq, "*"},
		{lexer.TokenSlashEq, "/"},
	} {
		if p.check(compound.tok) {
			p.advance()
			value, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			rhs := &ast.BinaryExpr{Left: target, Op: compound.op, Right: value, Sp: target.Span().Merge(value.Span())}
			return &ast.AssignExpr{Target: target, Value: rhs, Sp: rhs.Sp}, nil
		}
	}
	return target, nil
}

func (p *Parser) parseOr() (ast.Expr, *axerrors.ParseError) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenOrOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: "||", Right: right, Sp: left.Span().Merge(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, *axerrors.ParseError) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenAndAnd) {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: "&&", Right: right, Sp: left.Span().Merge(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, *axerrors.ParseError) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.check(lexer.TokenEqEq):
			op = "=="
		case p.check(lexer.TokenNotEq):
			op = "!="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
}

func (p *Parser) parseComparison() (ast.Expr, *axerrors.ParseError) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.check(lexer.TokenLt):
			op = "<"
		case p.check(lexer.TokenLtEq):
			op = "<="
		case p.check(lexer.TokenGt):
			op = ">"
		case p.check(lexer.TokenGtEq):
			op = ">="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, *axerrors.ParseError) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.check(lexer.TokenPlus):
			op = "+"
		case p.check(lexer.TokenMinus):
			op = "-"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, *axerrors.ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.check(lexer.TokenStar):
			op = "*"
		case p.check(lexer.TokenSlash):
			op = "/"
		case p.check(lexer.TokenPercent):
			op = "%"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Sp: left.Span().Merge(right.Span())}
	}
}

func (p *Parser) parseUnary() (ast.Expr, *axerrors.ParseError) {
	if p.check(lexer.TokenBang) || p.check(lexer.TokenMinus) {
		tok := p.advance()
		op := "-"
		if tok.Type == lexer.TokenBang {
			op = "!"
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand, Sp: tok.Span.Merge(operand.Span())}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, *axerrors.ParseError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(lexer.TokenLParen):
			args, closing, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Function: expr, Arguments: args, Sp: expr.Span().Merge(closing)}
		case p.check(lexer.TokenLBracket):
			p.advance()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			closing, err := p.expect(lexer.TokenRBracket, "index expression")
			if err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Object: expr, Index: index, Sp: expr.Span().Merge(closing.Span)}
		case p.check(lexer.TokenDot):
			p.advance()
			name, err := p.expect(lexer.TokenIdent, "member name")
			if err != nil {
				return nil, err
			}
			if p.check(lexer.TokenLParen) {
				args, closing, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				expr = &ast.MethodCallExpr{Object: expr, Method: name.Lexeme, Arguments: args, Sp: expr.Span().Merge(closing)}
			} else {
				expr = &ast.MemberAccessExpr{Object: expr, Member: name.Lexeme, Sp: expr.Span().Merge(name.Span)}
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, axerrors.Span, *axerrors.ParseError) {
	if _, err := p.expect(lexer.TokenLParen, "argument list"); err != nil {
		return nil, axerrors.ZeroSpan, err
	}
	var args []ast.Expr
	for !p.check(lexer.TokenRParen) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, axerrors.ZeroSpan, err
		}
		args = append(args, arg)
		if !p.matchAny(lexer.TokenComma) {
			break
		}
	}
	closing, err := p.expect(lexer.TokenRParen, "argument list")
	if err != nil {
		return nil, axerrors.ZeroSpan, err
	}
	return args, closing.Span, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *axerrors.ParseError) {
	switch {
	case p.check(lexer.TokenNumber):
		tok := p.advance()
		return &ast.NumberExpr{Value: tok.NumVal, Sp: tok.Span}, nil
	case p.check(lexer.TokenString):
		tok := p.advance()
		return &ast.StringExpr{Value: tok.StrVal, Sp: tok.Span}, nil
	case p.check(lexer.TokenInterpStart):
		return p.parseInterpolatedString()
	case p.check(lexer.TokenBoolean):
		tok := p.advance()
		return &ast.BooleanExpr{Value: tok.BoolVal, Sp: tok.Span}, nil
	case p.check(lexer.TokenNil):
		tok := p.advance()
		return &ast.NilExpr{Sp: tok.Span}, nil
	case p.check(lexer.TokenSelf):
		tok := p.advance()
		return &ast.SelfExpr{Sp: tok.Span}, nil
	case p.check(lexer.TokenNew):
		return p.parseNewExpr()
	case p.check(lexer.TokenFn):
		return p.parseFuncExpr()
	case p.check(lexer.TokenIdent):
		tok := p.advance()
		if p.check(lexer.TokenArrow) {
			return p.parseLambdaFromSingleParam(tok)
		}
		return &ast.IdentifierExpr{Name: tok.Lexeme, Sp: tok.Span}, nil
	case p.check(lexer.TokenLParen):
		return p.parseParenOrLambda()
	case p.check(lexer.TokenLBracket):
		return p.parseListExpr()
	default:
		return nil, axerrors.NewUnexpectedToken("expression", tokenName(p.peek().Type), p.peek().Span)
	}
}

// parseFuncExpr parses an anonymous function literal `fn(params) { body }`
// (spec.md §8's curried-lambda scenario), the block-bodied expression
// form of a function value. A named `fn name(...)` is handled earlier,
// by parseStmt's lookahead for a local function declaration.
func (p *Parser) parseFuncExpr() (ast.Expr, *axerrors.ParseError) {
	start := p.advance().Span // `fn`/`fun`
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, bodyEnd, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.FuncExpr{Params: params, Body: body, Sp: start.Merge(bodyEnd)}, nil
}

func (p *Parser) parseNewExpr() (ast.Expr, *axerrors.ParseError) {
	start := p.advance().Span // `new`
	name, err := p.expect(lexer.TokenIdent, "class name")
	if err != nil {
		return nil, err
	}
	args, closing, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.NewExpr{ClassName: name.Lexeme, Arguments: args, Sp: start.Merge(closing)}, nil
}

func (p *Parser) parseListExpr() (ast.Expr, *axerrors.ParseError) {
	start := p.advance().Span // `[`
	var items []ast.Expr
	for !p.check(lexer.TokenRBracket) {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.matchAny(lexer.TokenComma) {
			break
		}
	}
	closing, err := p.expect(lexer.TokenRBracket, "list literal")
	if err != nil {
		return nil, err
	}
	return &ast.ListExpr{Items: items, Sp: start.Merge(closing.Span)}, nil
}

// parseLambdaFromSingleParam handles `x -> expr`, a single-parameter
// lambda with no parens.
func (p *Parser) parseLambdaFromSingleParam(name lexer.Token) (ast.Expr, *axerrors.ParseError) {
	p.advance() // `->`
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpr{Params: []string{name.Lexeme}, Body: body, Sp: name.Span.Merge(body.Span())}, nil
}

// parseParenOrLambda disambiguates a parenthesized expression from a
// multi-parameter lambda `(a, b) -> expr` by speculatively scanning
// ahead for a matching `)` followed by `->`.
func (p *Parser) parseParenOrLambda() (ast.Expr, *axerrors.ParseError) {
	if p.isLambdaParamList() {
		start := p.peek().Span
		var params []string
		p.advance() // `(`
		for !p.check(lexer.TokenRParen) {
			name, err := p.expect(lexer.TokenIdent, "lambda parameter")
			if err != nil {
				return nil, err
			}
			params = append(params, name.Lexeme)
			if !p.matchAny(lexer.TokenComma) {
				break
			}
		}
		if _, err := p.expect(lexer.TokenRParen, "lambda parameter list"); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenArrow, "lambda"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExpr{Params: params, Body: body, Sp: start.Merge(body.Span())}, nil
	}
	p.advance() // `(`
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen, "parenthesized expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

// isLambdaParamList looks ahead from the current `(` token for a matching
// `)` immediately followed by `->`, without consuming any tokens.
func (p *Parser) isLambdaParamList() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.TokenLParen:
			depth++
		case lexer.TokenRParen:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == lexer.TokenArrow
			}
		case lexer.TokenEOF:
			return false
		}
	}
	return false
}

// parseInterpolatedString assembles an InterpolatedStringExpr from the
// segment table the lexer recorded for the current TokenInterpStart,
// re-parsing each ${...} hole's raw text as a standalone expression.
func (p *Parser) parseInterpolatedString() (ast.Expr, *axerrors.ParseError) {
	tok := p.advance()
	segs := p.lex.InterpParts(tok.InterpIndex)
	var parts []ast.StringPart
	for _, seg := range segs {
		if !seg.IsExpr {
			parts = append(parts, ast.StringPart{Literal: seg.Text})
			continue
		}
		sub, lexErrs := New(seg.Text, p.sourceID)
		if len(lexErrs) > 0 {
			return nil, axerrors.NewInvalidSyntax("interpolated expression", tok.Span)
		}
		expr, err := sub.parseExpr()
		if err != nil {
			return nil, err
		}
		parts = append(parts, ast.StringPart{Expr: expr})
	}
	return &ast.InterpolatedStringExpr{Parts: parts, Sp: tok.Span}, nil
}
