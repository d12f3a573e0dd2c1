// ast_test.go
package tpy

import (
	"strings"
	"testing"
)

func Test_AST_DumpFormat(t *testing.T) {
	m := parseOK(t, "x = [1, \"s\"]\nfor i in x: print(i)\ny = !a[0]\n")
	var b strings.Builder
	DumpAST(&b, &m)
	want := `MODULE
  STMT: ASSIGN x
    LIST
      arg[0]:
        NUMBER 1
      arg[1]:
        STRING "s"
  STMT: FOR i
    iter:
      IDENT x
    body:
      STMT: EXPR
        CALL
          callee:
            IDENT print
          args:
            arg[0]:
              IDENT i
  STMT: ASSIGN y
    UNOP '!'
      operand:
        SUBSCRIPT
          container:
            IDENT a
          index:
            NUMBER 0
`
	if b.String() != want {
		t.Fatalf("dump mismatch:\nwant:\n%s\ngot:\n%s", want, b.String())
	}
}

func Test_AST_DumpFuncdefAndIf(t *testing.T) {
	m := parseOK(t, "def f(a, b): return a + b\nif f(1, 2): x = 1\nelse: x = 2\n")
	var b strings.Builder
	DumpAST(&b, &m)
	out := b.String()
	for _, frag := range []string{
		"STMT: DEF f(a, b)\n",
		"BINOP '+'\n",
		"STMT: IF\n",
		"arm 0 cond:\n",
		"arm 0 body:\n",
		"else:\n",
	} {
		if !strings.Contains(out, frag) {
			t.Fatalf("dump missing %q:\n%s", frag, out)
		}
	}
}
