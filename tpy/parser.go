// parser.go — recursive-descent parser for MiniPy with one token of lookahead.
//
// Statement dispatch keys off the current token (`return`, `def`, `for`,
// `if`, leading-identifier assignment, bare expression). Expression parsing
// is precedence climbing, seeded at comparison precedence for every
// top-level expression; identifier/call/subscript/paren primaries climb from
// that same minimum inside parsePrimary. Logical `&&`/`||` sit near the top
// of the table, above bitwise, so they bind tighter than comparisons and are
// absorbed as continuations of any climb: `2 > 1 && 3` groups as
// `2 > (1 && 3)`. That asymmetry is part of the grammar, not a bug to fix.
//
// On an unexpected token the parser prints a diagnostic to its error writer,
// sets a sticky failure flag, resynchronizes at the next newline or EOF, and
// keeps parsing so one pass surfaces every error. The returned ParseResult
// still carries the best-effort tree; callers must check OK before running it.
package tpy

import (
	"fmt"
	"io"
	"os"
)

type precedence int

const (
	precLowest precedence = iota
	precCmp
	precAdd
	precMul
	precPow
	precBit
	precLogical
	precNot
	precPrimary
)

func precedenceOf(k TokenKind) precedence {
	switch k {
	case AND, OR:
		return precLogical
	case NOT:
		return precNot
	case BIT_AND, BIT_OR, BIT_XOR:
		return precBit
	case POW:
		return precPow
	case EQEQ, NE, LT, GT, LE, GE:
		return precCmp
	case PLUS, MINUS:
		return precAdd
	case STAR, SLASH, FLOORDIV, MODULO:
		return precMul
	default:
		return precLowest
	}
}

func isBinop(k TokenKind) bool {
	switch k {
	case PLUS, MINUS, STAR, SLASH, FLOORDIV, MODULO, POW,
		EQEQ, NE, LT, GT, LE, GE,
		BIT_AND, BIT_OR, BIT_XOR,
		AND, OR:
		return true
	default:
		return false
	}
}

func isRightAssoc(k TokenKind) bool { return k == POW }

// Parser holds the lexer, the single lookahead token, and the sticky error
// flag. Diagnostics go to errw.
type Parser struct {
	lx       *Lexer
	cur      Token
	hadError bool
	errw     io.Writer
}

// ParseModule parses the token stream into a Module. Diagnostics are written
// to errw (defaults to os.Stderr when nil).
func ParseModule(lx *Lexer, errw io.Writer) ParseResult {
	if errw == nil {
		errw = os.Stderr
	}
	p := &Parser{lx: lx, errw: errw}
	p.next()

	var m Module
	for p.cur.Kind != EOF {
		s := p.parseStmt()
		if s != nil {
			m.Body = append(m.Body, s)
		} else {
			// synchronization: skip to next NEWLINE/EOF
			for p.cur.Kind != NEWLINE && p.cur.Kind != EOF {
				p.next()
			}
			if p.cur.Kind == NEWLINE {
				p.next()
			}
		}
	}
	return ParseResult{Mod: m, OK: !p.hadError}
}

func (p *Parser) next() { p.cur = p.lx.Next() }

func isKw(t Token, kw string) bool {
	return t.Kind == KEYWORD && t.Text == kw
}

func (p *Parser) accept(k TokenKind) bool {
	if p.cur.Kind == k {
		p.next()
		return true
	}
	return false
}

func (p *Parser) acceptKw(kw string) bool {
	if isKw(p.cur, kw) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(k TokenKind, msg string) {
	if !p.accept(k) {
		fmt.Fprintf(p.errw, "Parse error: expected %s at line %d, got %s '%s'\n",
			msg, p.cur.Line, TokenName(p.cur.Kind), p.cur.Text)
		p.hadError = true
	}
}

func (p *Parser) optionalNewlines() {
	for p.cur.Kind == NEWLINE {
		p.next()
	}
}

// ---------- expressions ----------

func (p *Parser) parseExpr() *Expr {
	lhs := p.parsePrimary()
	return p.parseBinopRHS(precCmp, lhs)
}

func (p *Parser) parsePrimary() *Expr {
	// unary operators take a bare primary, no climb
	if p.cur.Kind == NOT || p.cur.Kind == BIT_NOT {
		optok := p.cur
		p.next()
		operand := p.parsePrimary()
		if operand == nil {
			return nil
		}
		return &Expr{Kind: UnOpExpr, Tok: optok, SVal: optok.Text, A: operand}
	}

	if p.cur.Kind == NUMBER {
		e := &Expr{Kind: NumberExpr, Tok: p.cur, IVal: p.cur.Value}
		p.next()
		return e
	}
	if p.cur.Kind == STRING {
		e := &Expr{Kind: StringExpr, Tok: p.cur, SVal: p.cur.Text}
		p.next()
		return e
	}

	// list literal: [expr, ...] with optional trailing comma
	if p.cur.Kind == LBRACKET {
		listTok := p.cur
		p.next()
		e := &Expr{Kind: ListExpr, Tok: listTok}
		if p.cur.Kind != RBRACKET {
			if item := p.parseExpr(); item != nil && len(e.Args) < MaxArgs {
				e.Args = append(e.Args, item)
			}
			for p.accept(COMMA) {
				if p.cur.Kind == RBRACKET {
					break
				}
				if item := p.parseExpr(); item != nil && len(e.Args) < MaxArgs {
					e.Args = append(e.Args, item)
				}
			}
		}
		p.expect(RBRACKET, "']'")
		return e
	}

	if p.cur.Kind == IDENT {
		identTok := p.cur
		p.next()
		id := &Expr{Kind: IdentExpr, Tok: identTok, SVal: identTok.Text}
		return p.identSuffix(id, identTok)
	}

	if p.accept(LPAREN) {
		inner := p.parseExpr()
		p.expect(RPAREN, "')'")
		pe := &Expr{Kind: ParenExpr, Tok: p.cur, A: inner}
		if p.accept(LBRACKET) {
			sub := &Expr{Kind: SubscriptExpr, Tok: pe.Tok, A: pe}
			if index := p.parseExpr(); index != nil {
				sub.B = index
			}
			p.expect(RBRACKET, "']'")
			return p.parseBinopRHS(precCmp, sub)
		}
		return p.parseBinopRHS(precCmp, pe)
	}

	fmt.Fprintf(p.errw, "Parse error: unexpected token %s '%s' at line %d\n",
		TokenName(p.cur.Kind), p.cur.Text, p.cur.Line)
	p.hadError = true
	// attempt recovery
	p.next()
	return nil
}

// identSuffix parses optional call/subscript suffixes after an identifier
// (func(), list[i], func()[i]) and continues climbing binary operators from
// the comparison seed, mirroring the primary entry point.
func (p *Parser) identSuffix(id *Expr, identTok Token) *Expr {
	if p.accept(LPAREN) {
		call := &Expr{Kind: CallExpr, Tok: identTok, A: id}
		if p.cur.Kind != RPAREN {
			if arg := p.parseExpr(); arg != nil && len(call.Args) < MaxArgs {
				call.Args = append(call.Args, arg)
			}
			for p.accept(COMMA) {
				if arg := p.parseExpr(); arg != nil && len(call.Args) < MaxArgs {
					call.Args = append(call.Args, arg)
				}
			}
		}
		p.expect(RPAREN, "')'")
		// a call result may itself be subscripted: f()[i]
		if p.accept(LBRACKET) {
			sub := &Expr{Kind: SubscriptExpr, Tok: identTok, A: call}
			if index := p.parseExpr(); index != nil {
				sub.B = index
			}
			p.expect(RBRACKET, "']'")
			return p.parseBinopRHS(precCmp, sub)
		}
		return p.parseBinopRHS(precCmp, call)
	}
	if p.accept(LBRACKET) {
		sub := &Expr{Kind: SubscriptExpr, Tok: identTok, A: id}
		if index := p.parseExpr(); index != nil {
			sub.B = index
		}
		p.expect(RBRACKET, "']'")
		return p.parseBinopRHS(precCmp, sub)
	}
	return p.parseBinopRHS(precCmp, id)
}

// parseBinopRHS consumes operators at or above minPrec, climbing recursively
// for higher-precedence runs. `**` is right-associative: it absorbs
// equal-or-higher precedence continuations into the already-built right
// operand; every other operator absorbs only strictly higher ones.
func (p *Parser) parseBinopRHS(minPrec precedence, lhs *Expr) *Expr {
	for {
		opk := p.cur.Kind
		if !isBinop(opk) {
			break
		}
		prec := precedenceOf(opk)
		if prec < minPrec {
			break
		}

		optok := p.cur
		p.next()

		rhs := p.parsePrimary()
		if isRightAssoc(opk) {
			for isBinop(p.cur.Kind) && precedenceOf(p.cur.Kind) >= prec {
				rhs = p.parseBinopRHS(precedenceOf(p.cur.Kind), rhs)
			}
		} else {
			for isBinop(p.cur.Kind) && precedenceOf(p.cur.Kind) > prec {
				rhs = p.parseBinopRHS(precedenceOf(p.cur.Kind), rhs)
			}
		}

		lhs = &Expr{Kind: BinOpExpr, Tok: optok, SVal: optok.Text, A: lhs, B: rhs}
	}
	return lhs
}

// ---------- statements ----------

func stmtFromExpr(e *Expr, where Token) *Stmt {
	return &Stmt{Kind: ExprStmt, Tok: where, Expr: e}
}

func (p *Parser) parseParamList() []string {
	var out []string
	if p.cur.Kind == RPAREN {
		return out
	}
	if p.cur.Kind != IDENT {
		return out
	}
	out = append(out, p.cur.Text)
	p.next()
	for p.accept(COMMA) {
		if p.cur.Kind == IDENT {
			if len(out) < MaxParams {
				out = append(out, p.cur.Text)
			}
			p.next()
		} else {
			fmt.Fprintf(p.errw, "Parse error: expected param name at line %d\n", p.cur.Line)
			p.hadError = true
			break
		}
	}
	return out
}

// parseBody parses a compound statement's single body: either a statement on
// the same line after the colon, or exactly one statement on a following line.
func (p *Parser) parseBody() *Stmt {
	sameLine := p.cur.Kind != NEWLINE && p.cur.Kind != EOF
	if !sameLine {
		p.optionalNewlines()
	}
	return p.parseStmt()
}

func (p *Parser) parseFuncdef() *Stmt {
	// "def" already consumed
	if p.cur.Kind != IDENT {
		fmt.Fprintf(p.errw, "Parse error: expected function name after 'def' at line %d\n", p.cur.Line)
		p.hadError = true
		return nil
	}
	name := p.cur
	p.next()

	p.expect(LPAREN, "'('")
	params := p.parseParamList()
	p.expect(RPAREN, "')'")
	p.expect(COLON, "':'")

	body := p.parseBody()

	return &Stmt{
		Kind:   FuncDefStmt,
		Tok:    name,
		FName:  name.Text,
		Params: params,
		Body:   body,
	}
}

func (p *Parser) parseIfArm(node *Stmt, who string) {
	cond := p.parseExpr()
	p.expect(COLON, "':'")
	body := p.parseBody()

	if len(node.Conds) < MaxIfArms {
		node.Conds = append(node.Conds, cond)
		node.Bodies = append(node.Bodies, body)
	} else {
		fmt.Fprintf(p.errw, "Parse error: too many %s/elif arms (max %d)\n", who, MaxIfArms)
		p.hadError = true
	}
}

func (p *Parser) parseIfStmt() *Stmt {
	ifTok := p.cur
	p.next()
	node := &Stmt{Kind: IfStmt, Tok: ifTok}

	p.parseIfArm(node, "if")
	if p.cur.Kind == NEWLINE {
		p.next()
	}

	for isKw(p.cur, "elif") {
		p.next()
		p.parseIfArm(node, "elif")
		if p.cur.Kind == NEWLINE {
			p.next()
		}
	}

	if isKw(p.cur, "else") {
		p.next()
		p.expect(COLON, "':'")
		node.Else = p.parseBody()
		if p.cur.Kind == NEWLINE {
			p.next()
		}
	}
	return node
}

func (p *Parser) parseStmt() *Stmt {
	p.optionalNewlines()
	if p.cur.Kind == EOF {
		return nil
	}

	if isKw(p.cur, "return") {
		rtok := p.cur
		p.next()
		e := p.parseExpr()
		if p.cur.Kind == NEWLINE {
			p.next()
		}
		return &Stmt{Kind: ReturnStmt, Tok: rtok, Expr: e}
	}

	if isKw(p.cur, "def") {
		p.next()
		s := p.parseFuncdef()
		if p.cur.Kind == NEWLINE {
			p.next()
		}
		return s
	}

	if isKw(p.cur, "for") {
		forTok := p.cur
		p.next()
		if p.cur.Kind != IDENT {
			fmt.Fprintf(p.errw, "Parse error: expected identifier after 'for' at line %d\n", p.cur.Line)
			p.hadError = true
			return nil
		}
		varTok := p.cur
		p.next()

		if !p.acceptKw("in") {
			fmt.Fprintf(p.errw, "Parse error: expected 'in' after variable name at line %d\n", p.cur.Line)
			p.hadError = true
			return nil
		}

		iterable := p.parseExpr()
		p.expect(COLON, "':'")
		body := p.parseBody()

		s := &Stmt{Kind: ForStmt, Tok: forTok, LHS: varTok.Text, Expr: iterable, Body: body}
		if p.cur.Kind == NEWLINE {
			p.next()
		}
		return s
	}

	if isKw(p.cur, "if") {
		return p.parseIfStmt()
	}

	// assignment is detected by peeking for '=' right after a leading
	// identifier; anything else starting with an identifier is an
	// expression statement (bare calls like print(x) come through here)
	if p.cur.Kind == IDENT {
		first := p.cur
		p.next()

		if p.cur.Kind == EQ {
			p.next()
			rhs := p.parseExpr()
			if p.cur.Kind == NEWLINE {
				p.next()
			}
			return &Stmt{Kind: AssignStmt, Tok: first, LHS: first.Text, Expr: rhs}
		}

		id := &Expr{Kind: IdentExpr, Tok: first, SVal: first.Text}
		e := p.identSuffix(id, first)
		if p.cur.Kind == NEWLINE {
			p.next()
		}
		return stmtFromExpr(e, first)
	}

	// generic expression statement
	e := p.parseExpr()
	if p.cur.Kind == NEWLINE {
		p.next()
	}
	where := p.cur
	if e != nil {
		where = e.Tok
	}
	return stmtFromExpr(e, where)
}
