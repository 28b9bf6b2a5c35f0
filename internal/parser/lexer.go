package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: tokenizer for the supported Rust declaration subset
// ---------------------------------------------------------------------------

// TokenType identifies the kind of a lexed token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenDoc     // /// doc comment line, marker stripped
	TokenLiteral // string, char, or numeric literal
	TokenLT
	TokenGT
	TokenComma
	TokenColon
	TokenPathSep // ::
	TokenArrow   // ->
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemi
	TokenPound
	TokenOther // any rune outside the subset; kept so item skipping stays total
)

var tokenNames = map[TokenType]string{
	TokenEOF:      "EOF",
	TokenIdent:    "identifier",
	TokenDoc:      "doc comment",
	TokenLiteral:  "literal",
	TokenLT:       "<",
	TokenGT:       ">",
	TokenComma:    ",",
	TokenColon:    ":",
	TokenPathSep:  "::",
	TokenArrow:    "->",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenLBrace:   "{",
	TokenRBrace:   "}",
	TokenLBracket: "[",
	TokenRBracket: "]",
	TokenSemi:     ";",
	TokenPound:    "#",
	TokenOther:    "token",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Position is a location in the source, 1-based line and column.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Token is one lexed token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Lexer tokenizes Rust source text. Strings, chars, and comments are handled
// here so that the parser's brace balancing never miscounts a bracket inside
// a literal.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
	col     int  // current column (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
	l.readChar()
	return l
}

// readChar reads the next character. line and col always describe the
// character at pos.
func (l *Lexer) readChar() {
	switch l.ch {
	case 0:
		// initial call or EOF, nothing consumed yet
	case '\n':
		l.line++
		l.col = 1
	default:
		l.col++
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	pos := l.position()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Literal: "", Pos: pos}

	case l.atDocComment():
		return Token{Type: TokenDoc, Literal: l.readDocComment(), Pos: pos}

	case isIdentStart(l.ch):
		return Token{Type: TokenIdent, Literal: l.readIdent(), Pos: pos}

	case unicode.IsDigit(l.ch):
		return Token{Type: TokenLiteral, Literal: l.readNumber(), Pos: pos}

	case l.ch == '"':
		return Token{Type: TokenLiteral, Literal: l.readString(), Pos: pos}

	case l.ch == '\'':
		return l.readCharOrLifetime(pos)

	case l.ch == ':':
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenPathSep, Literal: "::", Pos: pos}
		}
		l.readChar()
		return Token{Type: TokenColon, Literal: ":", Pos: pos}

	case l.ch == '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenArrow, Literal: "->", Pos: pos}
		}
		l.readChar()
		return Token{Type: TokenOther, Literal: "-", Pos: pos}

	default:
		ch := l.ch
		l.readChar()
		ty, ok := punctTokens[ch]
		if !ok {
			ty = TokenOther
		}
		return Token{Type: ty, Literal: string(ch), Pos: pos}
	}
}

var punctTokens = map[rune]TokenType{
	'<': TokenLT,
	'>': TokenGT,
	',': TokenComma,
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	';': TokenSemi,
	'#': TokenPound,
}

// skipTrivia skips whitespace, non-doc line comments, and block comments.
// It stops at a `///` doc comment so NextToken can emit it as a token.
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case unicode.IsSpace(l.ch):
			l.readChar()

		case l.ch == '/' && l.peekChar() == '/':
			if l.atDocComment() {
				return
			}
			// `//`, `//!`, `////...` are all non-doc comments
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}

		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()

		default:
			return
		}
	}
}

// atDocComment reports whether the lexer sits at the start of a `///` doc
// comment. Rust treats `////` and longer runs as ordinary comments.
func (l *Lexer) atDocComment() bool {
	rest := l.input[l.pos:]
	return strings.HasPrefix(rest, "///") && !strings.HasPrefix(rest, "////")
}

// readDocComment consumes one `///` line and returns its text with the
// marker and at most one leading space stripped.
func (l *Lexer) readDocComment() string {
	l.readChar() // /
	l.readChar() // /
	l.readChar() // /
	if l.ch == ' ' {
		l.readChar()
	}
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// skipBlockComment consumes a `/* */` comment, honoring Rust's nesting.
func (l *Lexer) skipBlockComment() {
	l.readChar() // /
	l.readChar() // *
	depth := 1
	for depth > 0 && l.ch != 0 {
		if l.ch == '/' && l.peekChar() == '*' {
			depth++
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '*' && l.peekChar() == '/' {
			depth--
			l.readChar()
			l.readChar()
			continue
		}
		l.readChar()
	}
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isIdentPart(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readString consumes a double-quoted string literal with escapes.
func (l *Lexer) readString() string {
	start := l.pos
	l.readChar() // opening quote
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readCharOrLifetime distinguishes a char literal ('x', '\n') from a
// lifetime ('a). A lifetime's quote is returned alone; the following
// identifier is lexed normally on the next call.
func (l *Lexer) readCharOrLifetime(pos Position) Token {
	start := l.pos
	next := l.peekChar()
	if next == '\\' {
		l.readChar() // '
		l.readChar() // backslash
		l.readChar() // escaped char
		if l.ch == '\'' {
			l.readChar()
		}
		return Token{Type: TokenLiteral, Literal: l.input[start:l.pos], Pos: pos}
	}

	// 'x' is a char literal only when the closing quote follows immediately
	rest := l.input[l.readPos:]
	if next != 0 {
		_, size := utf8.DecodeRuneInString(rest)
		if size < len(rest) && rest[size] == '\'' {
			l.readChar() // '
			l.readChar() // char
			l.readChar() // '
			return Token{Type: TokenLiteral, Literal: l.input[start:l.pos], Pos: pos}
		}
	}

	l.readChar()
	return Token{Type: TokenOther, Literal: "'", Pos: pos}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
