// lexer.go — single-pass tokenizer for MiniPy source.
//
// The lexer is a byte cursor over the source buffer. It consumes horizontal
// whitespace silently but emits NEWLINE as a significant token (the statement
// separator; there is no indentation tracking). It never fails: unrecognized
// punctuation becomes an UNKNOWN token and an unterminated string simply lexes
// to the end of the buffer.
package tpy

import (
	"math"
	"strconv"
)

// TokenKind represents the kind of token.
type TokenKind int

const (
	EOF TokenKind = iota
	UNKNOWN

	IDENT
	KEYWORD
	NUMBER
	STRING

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	EQ   // "="
	EQEQ // "=="
	NE
	LT
	GT
	LE
	GE
	MODULO
	POW      // "**"
	FLOORDIV // "//"
	BIT_AND
	BIT_OR
	BIT_XOR
	BIT_NOT
	AND // "&&"
	OR  // "||"
	NOT // "!"

	// Punctuation
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COLON
	COMMA

	NEWLINE
)

// MaxTokenText is the longest text payload a token retains. Longer
// identifiers, numbers and string literals are silently truncated; for
// numbers the literal value is parsed from the truncated text. This is a
// documented limitation, not an oversight.
const MaxTokenText = 63

// Token is a lexical token with source position and literal payload.
type Token struct {
	Kind  TokenKind
	Line  int
	Col   int
	Value int64  // for NUMBER
	Text  string // bounded by MaxTokenText
}

// keywords, scanned linearly on every identifier.
var keywords = []string{
	"def", "if", "else", "elif", "while", "for", "in",
	"return", "break", "continue", "pass", "and", "or", "not", "import",
}

func keywordKind(s string) TokenKind {
	for _, kw := range keywords {
		if s == kw {
			return KEYWORD
		}
	}
	return IDENT
}

// Lexer scans MiniPy source into tokens, one per Next call.
type Lexer struct {
	src  string
	pos  int
	line int // 1-based
	col  int // 1-based
}

// NewLexer creates a lexer over the given source buffer.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func isSpace(c byte) bool    { return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f' }
func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool    { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlphaNum(c byte) bool { return isAlpha(c) || isDigit(c) }

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.peek()) {
		l.advance()
	}
}

func truncateText(s string) string {
	if len(s) > MaxTokenText {
		return s[:MaxTokenText]
	}
	return s
}

// parseIntSaturating mirrors strtoll: out-of-range digit runs clamp to the
// int64 extremes instead of failing.
func parseIntSaturating(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return v
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		if len(s) > 0 && s[0] == '-' {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return 0
}

func (l *Lexer) readIdent() Token {
	t := Token{Kind: IDENT, Line: l.line, Col: l.col}
	var buf []byte
	for isAlphaNum(l.peek()) || l.peek() == '_' {
		c := l.advance()
		if len(buf) < MaxTokenText {
			buf = append(buf, c)
		}
	}
	t.Text = string(buf)
	t.Kind = keywordKind(t.Text)
	return t
}

func (l *Lexer) readNumber() Token {
	t := Token{Kind: NUMBER, Line: l.line, Col: l.col}
	var buf []byte
	for isDigit(l.peek()) {
		c := l.advance()
		if len(buf) < MaxTokenText {
			buf = append(buf, c)
		}
	}
	t.Text = string(buf)
	t.Value = parseIntSaturating(t.Text)
	return t
}

func (l *Lexer) readString() Token {
	t := Token{Kind: STRING, Line: l.line, Col: l.col}
	quote := l.advance() // opening quote
	var buf []byte
	for l.pos < len(l.src) && l.peek() != quote {
		c := l.advance()
		if c == '\\' {
			switch n := l.advance(); n {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			default:
				c = n
			}
		}
		if len(buf) < MaxTokenText {
			buf = append(buf, c)
		}
	}
	t.Text = string(buf)
	if l.peek() == quote {
		l.advance() // closing quote
	}
	return t
}

// Next returns the next token. At end of buffer it returns EOF forever.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	// A NUL byte terminates the buffer, like the C-string sources this
	// grammar grew up on.
	c := l.peek()
	if c == 0 {
		return Token{Kind: EOF}
	}

	if c == '\n' {
		l.advance()
		return Token{Kind: NEWLINE, Line: l.line - 1, Col: 1}
	}

	if isAlpha(c) || c == '_' {
		return l.readIdent()
	}
	if isDigit(c) {
		return l.readNumber()
	}
	if c == '"' || c == '\'' {
		return l.readString()
	}

	t := Token{Line: l.line, Col: l.col}
	switch c {
	case '+':
		l.advance()
		t.Kind, t.Text = PLUS, "+"
	case '-':
		l.advance()
		t.Kind, t.Text = MINUS, "-"
	case '*':
		l.advance()
		if l.peek() == '*' {
			l.advance()
			t.Kind, t.Text = POW, "**"
		} else {
			t.Kind, t.Text = STAR, "*"
		}
	case '/':
		l.advance()
		if l.peek() == '/' {
			l.advance()
			t.Kind, t.Text = FLOORDIV, "//"
		} else {
			t.Kind, t.Text = SLASH, "/"
		}
	case '%':
		l.advance()
		t.Kind, t.Text = MODULO, "%"
	case '(':
		l.advance()
		t.Kind, t.Text = LPAREN, "("
	case ')':
		l.advance()
		t.Kind, t.Text = RPAREN, ")"
	case '[':
		l.advance()
		t.Kind, t.Text = LBRACKET, "["
	case ']':
		l.advance()
		t.Kind, t.Text = RBRACKET, "]"
	case ':':
		l.advance()
		t.Kind, t.Text = COLON, ":"
	case ',':
		l.advance()
		t.Kind, t.Text = COMMA, ","
	case '&':
		l.advance()
		if l.peek() == '&' {
			l.advance()
			t.Kind, t.Text = AND, "&&"
		} else {
			t.Kind, t.Text = BIT_AND, "&"
		}
	case '|':
		l.advance()
		if l.peek() == '|' {
			l.advance()
			t.Kind, t.Text = OR, "||"
		} else {
			t.Kind, t.Text = BIT_OR, "|"
		}
	case '^':
		l.advance()
		t.Kind, t.Text = BIT_XOR, "^"
	case '~':
		l.advance()
		t.Kind, t.Text = BIT_NOT, "~"
	case '=':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			t.Kind, t.Text = EQEQ, "=="
		} else {
			t.Kind, t.Text = EQ, "="
		}
	case '<':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			t.Kind, t.Text = LE, "<="
		} else {
			t.Kind, t.Text = LT, "<"
		}
	case '>':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			t.Kind, t.Text = GE, ">="
		} else {
			t.Kind, t.Text = GT, ">"
		}
	case '!':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			t.Kind, t.Text = NE, "!="
		} else {
			t.Kind, t.Text = NOT, "!"
		}
	default:
		l.advance()
		t.Kind = UNKNOWN
		t.Text = string(c)
	}
	return t
}

// TokenName returns the diagnostic name for a token kind.
func TokenName(k TokenKind) string {
	switch k {
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case KEYWORD:
		return "KEYWORD"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case SLASH:
		return "SLASH"
	case MODULO:
		return "MODULO"
	case POW:
		return "POW"
	case FLOORDIV:
		return "FLOORDIV"
	case EQ:
		return "EQ"
	case EQEQ:
		return "EQEQ"
	case NE:
		return "NE"
	case LT:
		return "LT"
	case GT:
		return "GT"
	case LE:
		return "LE"
	case GE:
		return "GE"
	case BIT_AND:
		return "BIT_AND"
	case BIT_OR:
		return "BIT_OR"
	case BIT_XOR:
		return "BIT_XOR"
	case BIT_NOT:
		return "BIT_NOT"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case COLON:
		return "COLON"
	case COMMA:
		return "COMMA"
	case NEWLINE:
		return "NEWLINE"
	default:
		return "UNKNOWN"
	}
}
