package parser

import (
	"fmt"

	"bridgen/internal/decl"
)

// ---------------------------------------------------------------------------
// Parser: recursive descent over top-level Rust declarations
// ---------------------------------------------------------------------------

// Parser parses the declaration surface of one Rust source file. Only public
// functions and structs are materialized into the tree; every other item is
// skipped token-wise with literal-aware brace balancing, so arbitrary item
// bodies never have to be understood.
type Parser struct {
	file string
	lex  *Lexer
	cur  Token
	peek Token
}

// ParseFile parses Rust source into a declaration tree. The first construct
// outside the supported subset aborts the parse with a SyntaxError.
func ParseFile(name, src string) (*decl.File, error) {
	p := newParser(name, src)
	return p.parseFile()
}

// ParseTypeExpr parses a standalone type expression, e.g. "Vec<Option<u8>>".
func ParseTypeExpr(src string) (*decl.TypeExpr, error) {
	p := newParser("", src)
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEOF {
		return nil, p.errorf("unexpected %q after type expression", p.cur.Literal)
	}
	return t, nil
}

func newParser(file, src string) *Parser {
	p := &Parser{
		file: file,
		lex:  NewLexer(src),
	}
	// Fill cur and peek
	p.next()
	p.next()
	return p
}

// next advances to the next token.
func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

// isKeyword reports whether the current token is the given identifier.
func (p *Parser) isKeyword(kw string) bool {
	return p.cur.Type == TokenIdent && p.cur.Literal == kw
}

// expect consumes the current token if it matches, otherwise fails.
func (p *Parser) expect(t TokenType) error {
	if p.cur.Type != t {
		return p.errorf("expected %s, got %q", t, p.cur.Literal)
	}
	p.next()
	return nil
}

// errorf builds a SyntaxError at the current token.
func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		File:   p.file,
		Line:   p.cur.Pos.Line,
		Column: p.cur.Pos.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (p *Parser) parseFile() (*decl.File, error) {
	f := &decl.File{Name: p.file}
	var docs []string

	for p.cur.Type != TokenEOF {
		switch {
		case p.cur.Type == TokenDoc:
			docs = append(docs, p.cur.Literal)
			p.next()

		case p.cur.Type == TokenPound:
			if err := p.skipAttribute(); err != nil {
				return nil, err
			}

		case p.isKeyword("pub"):
			p.next()
			switch {
			case p.isKeyword("fn"):
				fn, err := p.parseFn(docs)
				if err != nil {
					return nil, err
				}
				f.Items = append(f.Items, fn)
			case p.isKeyword("struct"):
				st, err := p.parseStruct(docs)
				if err != nil {
					return nil, err
				}
				f.Items = append(f.Items, st)
			default:
				// pub use, pub mod, pub const, ... are outside the
				// extracted surface
				p.skipItem()
			}
			docs = nil

		default:
			// Private items and every other item kind are skipped whole.
			p.skipItem()
			docs = nil
		}
	}

	return f, nil
}

// parseFn parses `fn name(params) -> Ret { body }` with the `fn` keyword
// current. The body is skipped token-wise.
func (p *Parser) parseFn(docs []string) (*decl.Func, error) {
	p.next() // fn
	if p.cur.Type != TokenIdent {
		return nil, p.errorf("expected function name, got %q", p.cur.Literal)
	}
	fn := &decl.Func{
		Name:   p.cur.Literal,
		Public: true,
		Docs:   docs,
	}
	p.next()

	if p.cur.Type == TokenLT {
		return nil, p.errorf("generic functions are not supported")
	}
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	for p.cur.Type != TokenRParen && p.cur.Type != TokenEOF {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, *param)
		if p.cur.Type != TokenComma {
			break
		}
		p.next()
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	if p.cur.Type == TokenArrow {
		p.next()
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Ret = ret
	}

	if p.cur.Type != TokenLBrace {
		return nil, p.errorf("expected function body, got %q", p.cur.Literal)
	}
	p.skipBalancedBraces()

	return fn, nil
}

// parseParam parses one `[mut] name: Type` parameter. Any other binding
// pattern (self receivers, references, tuple or struct patterns) is a
// SyntaxError: only simple name bindings cross the boundary.
func (p *Parser) parseParam() (*decl.Param, error) {
	var docs []string
	for {
		if p.cur.Type == TokenDoc {
			docs = append(docs, p.cur.Literal)
			p.next()
			continue
		}
		if p.cur.Type == TokenPound {
			if err := p.skipAttribute(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if p.isKeyword("mut") {
		p.next()
	}
	if p.cur.Type != TokenIdent || p.cur.Literal == "self" {
		return nil, p.errorf("unsupported parameter pattern starting with %q", p.cur.Literal)
	}
	name := p.cur.Literal
	p.next()

	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	return &decl.Param{Name: name, Type: ty, Docs: docs}, nil
}

// parseStruct parses the three struct forms with the `struct` keyword
// current: named `{...}`, positional `(...);`, and unit `;`.
func (p *Parser) parseStruct(docs []string) (*decl.Struct, error) {
	p.next() // struct
	if p.cur.Type != TokenIdent {
		return nil, p.errorf("expected struct name, got %q", p.cur.Literal)
	}
	st := &decl.Struct{
		Name:   p.cur.Literal,
		Public: true,
		Docs:   docs,
	}
	p.next()

	if p.cur.Type == TokenLT {
		return nil, p.errorf("generic structs are not supported")
	}

	switch p.cur.Type {
	case TokenLBrace:
		st.Shape = decl.ShapeNamed
		if err := p.parseNamedFields(st); err != nil {
			return nil, err
		}

	case TokenLParen:
		st.Shape = decl.ShapePositional
		if err := p.parsePositionalFields(st); err != nil {
			return nil, err
		}

	case TokenSemi:
		st.Shape = decl.ShapeUnit
		p.next()

	default:
		return nil, p.errorf("expected struct fields, got %q", p.cur.Literal)
	}

	return st, nil
}

func (p *Parser) parseNamedFields(st *decl.Struct) error {
	p.next() // {
	for p.cur.Type != TokenRBrace && p.cur.Type != TokenEOF {
		var docs []string
		for {
			if p.cur.Type == TokenDoc {
				docs = append(docs, p.cur.Literal)
				p.next()
				continue
			}
			if p.cur.Type == TokenPound {
				if err := p.skipAttribute(); err != nil {
					return err
				}
				continue
			}
			break
		}
		if p.isKeyword("pub") {
			p.next()
		}
		if p.cur.Type != TokenIdent {
			return p.errorf("expected field name, got %q", p.cur.Literal)
		}
		name := p.cur.Literal
		p.next()
		if err := p.expect(TokenColon); err != nil {
			return err
		}
		ty, err := p.parseType()
		if err != nil {
			return err
		}
		st.Fields = append(st.Fields, decl.Field{Name: name, Type: ty, Docs: docs})
		if p.cur.Type != TokenComma {
			break
		}
		p.next()
	}
	return p.expect(TokenRBrace)
}

func (p *Parser) parsePositionalFields(st *decl.Struct) error {
	p.next() // (
	for p.cur.Type != TokenRParen && p.cur.Type != TokenEOF {
		var docs []string
		for {
			if p.cur.Type == TokenDoc {
				docs = append(docs, p.cur.Literal)
				p.next()
				continue
			}
			if p.cur.Type == TokenPound {
				if err := p.skipAttribute(); err != nil {
					return err
				}
				continue
			}
			break
		}
		if p.isKeyword("pub") {
			p.next()
		}
		ty, err := p.parseType()
		if err != nil {
			return err
		}
		st.Fields = append(st.Fields, decl.Field{Type: ty, Docs: docs})
		if p.cur.Type != TokenComma {
			break
		}
		p.next()
	}
	if err := p.expect(TokenRParen); err != nil {
		return err
	}
	return p.expect(TokenSemi)
}

// parseType parses `path ('<' type {',' type} '>')?` with `::`-separated
// path segments. References, tuples, slices, fn pointers, and lifetimes are
// outside the subset and fail here.
func (p *Parser) parseType() (*decl.TypeExpr, error) {
	if p.cur.Type != TokenIdent {
		return nil, p.errorf("unsupported type starting with %q", p.cur.Literal)
	}
	t := &decl.TypeExpr{Path: []string{p.cur.Literal}}
	p.next()

	for p.cur.Type == TokenPathSep {
		p.next()
		if p.cur.Type != TokenIdent {
			return nil, p.errorf("expected path segment after ::, got %q", p.cur.Literal)
		}
		t.Path = append(t.Path, p.cur.Literal)
		p.next()
	}

	if p.cur.Type == TokenLT {
		p.next()
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			t.Args = append(t.Args, arg)
			if p.cur.Type != TokenComma {
				break
			}
			p.next()
		}
		if err := p.expect(TokenGT); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// skipAttribute consumes `#[...]` or `#![...]` with the `#` current.
func (p *Parser) skipAttribute() error {
	p.next() // #
	if p.cur.Type == TokenOther && p.cur.Literal == "!" {
		p.next()
	}
	if p.cur.Type != TokenLBracket {
		return p.errorf("expected [ after #, got %q", p.cur.Literal)
	}
	depth := 0
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenLBracket:
			depth++
		case TokenRBracket:
			depth--
			if depth == 0 {
				p.next()
				return nil
			}
		}
		p.next()
	}
	return p.errorf("unterminated attribute")
}

// skipItem consumes one top-level item the tree does not represent. The
// item ends at a `;` outside any grouping, or at its `{...}` block. A `;`
// inside parens or brackets (array lengths, for example) does not
// terminate the item.
func (p *Parser) skipItem() {
	depth := 0
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenLParen, TokenLBracket:
			depth++
		case TokenRParen, TokenRBracket:
			if depth > 0 {
				depth--
			}
		case TokenLBrace:
			if depth == 0 {
				p.skipBalancedBraces()
				// `use a::{b, c};` leaves a trailing semicolon
				if p.cur.Type == TokenSemi {
					p.next()
				}
				return
			}
			depth++
		case TokenRBrace:
			if depth > 0 {
				depth--
			}
		case TokenSemi:
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

// skipBalancedBraces consumes a `{...}` block with the `{` current. The
// lexer has already folded strings, chars, and comments into single tokens,
// so counting braces here is literal-safe.
func (p *Parser) skipBalancedBraces() {
	depth := 0
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			depth--
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}
