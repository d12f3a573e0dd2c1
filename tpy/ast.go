// ast.go — fixed-shape AST shared by the parser and the evaluator.
package tpy

import (
	"fmt"
	"io"
	"strings"
)

// Grammar-level capacities. Argument/parameter/list-literal overflow stops
// accepting further items silently; if/elif arm overflow is a parse error.
const (
	MaxArgs   = 16
	MaxParams = 16
	MaxIfArms = 16
)

// ExprKind tags an expression node.
type ExprKind int

const (
	NumberExpr ExprKind = iota
	StringExpr
	IdentExpr
	BinOpExpr    // A (op in SVal) B
	UnOpExpr     // (op in SVal) A
	CallExpr     // A = callee, Args
	ParenExpr    // (A)
	ListExpr     // [Args...]
	SubscriptExpr // A[B]
)

// Expr is a tagged expression node. Every node carries its originating token
// for diagnostics.
type Expr struct {
	Kind ExprKind
	Tok  Token

	A, B *Expr
	Args []*Expr // CallExpr arguments, ListExpr elements (≤ MaxArgs)

	IVal int64  // NumberExpr
	SVal string // StringExpr/IdentExpr text, operator text for Bin/UnOp
}

// StmtKind tags a statement node. The kinds past IfStmt are declared for
// parity with the keyword table but the parser has no production for them;
// a leading `while`/`break`/`continue`/`pass` token takes the
// unexpected-token path instead.
type StmtKind int

const (
	ExprStmt StmtKind = iota
	ReturnStmt
	FuncDefStmt
	AssignStmt // LHS = Expr
	ForStmt    // for LHS in Expr: Body
	IfStmt     // Conds[i]: Bodies[i], optional Else

	WhileStmt
	BreakStmt
	ContinueStmt
	PassStmt
	PrintStmt
	ImportStmt
	DefStmt
	EndStmt
)

// Stmt is a tagged statement node. Compound statements carry exactly one
// body statement, never a block; multi-statement bodies are expressed by
// nesting further single-bodied constructs.
type Stmt struct {
	Kind StmtKind
	Tok  Token

	Expr *Expr  // ExprStmt/ReturnStmt/AssignStmt RHS, ForStmt iterable
	LHS  string // AssignStmt target, ForStmt loop variable

	// FuncDefStmt payload
	FName  string
	Params []string // ≤ MaxParams
	Body   *Stmt

	// IfStmt payload
	Conds  []*Expr // ≤ MaxIfArms
	Bodies []*Stmt
	Else   *Stmt
}

// Module is an ordered sequence of top-level statements.
type Module struct {
	Body []*Stmt
}

// ParseResult carries a parsed module and whether parsing raised no errors.
// A not-OK module may still hold a partial best-effort tree; callers must
// check OK before executing.
type ParseResult struct {
	Mod Module
	OK  bool
}

// DumpAST writes an indented rendering of the module, for debugging.
func DumpAST(w io.Writer, m *Module) {
	fmt.Fprintf(w, "MODULE\n")
	for _, s := range m.Body {
		dumpStmt(w, s, 2)
	}
}

func pad(w io.Writer, n int) { io.WriteString(w, strings.Repeat(" ", n)) }

func dumpArgs(w io.Writer, args []*Expr, depth int) {
	for i, a := range args {
		pad(w, depth)
		fmt.Fprintf(w, "arg[%d]:\n", i)
		dumpExpr(w, a, depth+2)
	}
}

func dumpExpr(w io.Writer, e *Expr, depth int) {
	if e == nil {
		pad(w, depth)
		fmt.Fprintf(w, "(null-expr)\n")
		return
	}
	switch e.Kind {
	case NumberExpr:
		pad(w, depth)
		fmt.Fprintf(w, "NUMBER %d\n", e.IVal)
	case StringExpr:
		pad(w, depth)
		fmt.Fprintf(w, "STRING %q\n", e.SVal)
	case IdentExpr:
		pad(w, depth)
		fmt.Fprintf(w, "IDENT %s\n", e.SVal)
	case ParenExpr:
		pad(w, depth)
		fmt.Fprintf(w, "PAREN\n")
		dumpExpr(w, e.A, depth+2)
	case UnOpExpr:
		pad(w, depth)
		fmt.Fprintf(w, "UNOP '%s'\n", e.SVal)
		pad(w, depth+2)
		fmt.Fprintf(w, "operand:\n")
		dumpExpr(w, e.A, depth+4)
	case CallExpr:
		pad(w, depth)
		fmt.Fprintf(w, "CALL\n")
		pad(w, depth+2)
		fmt.Fprintf(w, "callee:\n")
		dumpExpr(w, e.A, depth+4)
		pad(w, depth+2)
		fmt.Fprintf(w, "args:\n")
		dumpArgs(w, e.Args, depth+4)
	case BinOpExpr:
		pad(w, depth)
		fmt.Fprintf(w, "BINOP '%s'\n", e.SVal)
		pad(w, depth+2)
		fmt.Fprintf(w, "lhs:\n")
		dumpExpr(w, e.A, depth+4)
		pad(w, depth+2)
		fmt.Fprintf(w, "rhs:\n")
		dumpExpr(w, e.B, depth+4)
	case ListExpr:
		pad(w, depth)
		fmt.Fprintf(w, "LIST\n")
		dumpArgs(w, e.Args, depth+2)
	case SubscriptExpr:
		pad(w, depth)
		fmt.Fprintf(w, "SUBSCRIPT\n")
		pad(w, depth+2)
		fmt.Fprintf(w, "container:\n")
		dumpExpr(w, e.A, depth+4)
		pad(w, depth+2)
		fmt.Fprintf(w, "index:\n")
		dumpExpr(w, e.B, depth+4)
	default:
		pad(w, depth)
		fmt.Fprintf(w, "?(expr)\n")
	}
}

func dumpStmt(w io.Writer, s *Stmt, depth int) {
	if s == nil {
		pad(w, depth)
		fmt.Fprintf(w, "(null-stmt)\n")
		return
	}
	switch s.Kind {
	case ExprStmt:
		pad(w, depth)
		fmt.Fprintf(w, "STMT: EXPR\n")
		dumpExpr(w, s.Expr, depth+2)
	case ReturnStmt:
		pad(w, depth)
		fmt.Fprintf(w, "STMT: RETURN\n")
		dumpExpr(w, s.Expr, depth+2)
	case AssignStmt:
		pad(w, depth)
		fmt.Fprintf(w, "STMT: ASSIGN %s\n", s.LHS)
		dumpExpr(w, s.Expr, depth+2)
	case ForStmt:
		pad(w, depth)
		fmt.Fprintf(w, "STMT: FOR %s\n", s.LHS)
		pad(w, depth+2)
		fmt.Fprintf(w, "iter:\n")
		dumpExpr(w, s.Expr, depth+4)
		pad(w, depth+2)
		fmt.Fprintf(w, "body:\n")
		dumpStmt(w, s.Body, depth+4)
	case FuncDefStmt:
		pad(w, depth)
		fmt.Fprintf(w, "STMT: DEF %s(%s)\n", s.FName, strings.Join(s.Params, ", "))
		pad(w, depth+2)
		fmt.Fprintf(w, "body:\n")
		dumpStmt(w, s.Body, depth+4)
	case IfStmt:
		pad(w, depth)
		fmt.Fprintf(w, "STMT: IF\n")
		for i := range s.Conds {
			pad(w, depth+2)
			fmt.Fprintf(w, "arm %d cond:\n", i)
			dumpExpr(w, s.Conds[i], depth+4)
			pad(w, depth+2)
			fmt.Fprintf(w, "arm %d body:\n", i)
			dumpStmt(w, s.Bodies[i], depth+4)
		}
		if s.Else != nil {
			pad(w, depth+2)
			fmt.Fprintf(w, "else:\n")
			dumpStmt(w, s.Else, depth+4)
		}
	default:
		pad(w, depth)
		fmt.Fprintf(w, "?(stmt)\n")
	}
}
