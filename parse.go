package pathwalk

import (
	"fmt"
	"sort"
	"strconv"
)

// ParsePath parses a textual path expression into a Chain.
//
// The grammar is deliberately small — no wildcards, no filters:
//
//	path     := root step*
//	root     := ident | '$'              ('$' names the whole root value)
//	step     := ('.' | '?.') ident       property lookup
//	          | ('[' | '?.[') int ']'    index lookup
//	          | ('(' | '?.(') args? ')'  call
//	args     := literal (',' literal)*
//	literal  := "string" | integer | true | false | null
//
// A leading bare identifier is sugar for an unguarded property step on the
// root; '?.' marks the step that follows it as guarded. Syntax errors are
// reported as *ParseError with exact positions.
func ParsePath(input string) (Chain, error) {
	tok := newTokenizer(input)
	tokens, err := tok.tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{
		tokens: tokens,
		tzer:   tok,
	}
	return p.parsePath()
}

// --- Token types ---

type tokenType int

const (
	tokenIdent    tokenType = iota // identifier: letters, digits, underscores, hyphens
	tokenNumber                    // integer, optionally negative
	tokenString                    // quoted "..."
	tokenDot                       // .
	tokenOptDot                    // ?.
	tokenDollar                    // $
	tokenLBracket                  // [
	tokenRBracket                  // ]
	tokenLParen                    // (
	tokenRParen                    // )
	tokenComma                     // ,
	tokenEOF
)

func tokenTypeName(t tokenType) string {
	switch t {
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "integer"
	case tokenString:
		return "string"
	case tokenDot:
		return "'.'"
	case tokenOptDot:
		return "'?.'"
	case tokenDollar:
		return "'$'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenComma:
		return "','"
	case tokenEOF:
		return "end of path"
	default:
		return "unknown"
	}
}

type token struct {
	typ tokenType
	val string
	pos int // byte offset in input
}

// --- Tokenizer ---

type tokenizer struct {
	input      string
	pos        int
	tokens     []token
	lineStarts []int // byte offsets where each line starts
}

func newTokenizer(input string) *tokenizer {
	t := &tokenizer{
		input:      input,
		lineStarts: []int{0}, // line 1 starts at offset 0
	}
	// Pre-scan for newlines to build lineStarts table
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' && i+1 <= len(input) {
			t.lineStarts = append(t.lineStarts, i+1)
		}
	}
	return t
}

// posAt converts a byte offset into a Pos with line and column.
func (t *tokenizer) posAt(offset int) Pos {
	// Binary search for the line containing this offset
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	})
	// line is now the index of the first lineStart > offset, so the actual line is line (1-based)
	col := offset - t.lineStarts[line-1] + 1
	return Pos{Offset: offset, Line: line, Column: col}
}

func (t *tokenizer) tokenize() ([]token, error) {
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			t.pos++
			continue
		}
		switch {
		case ch == '.':
			t.emit(tokenDot, ".")
		case ch == '?':
			// '?' is only valid as the start of '?.'
			if t.pos+1 >= len(t.input) || t.input[t.pos+1] != '.' {
				pos := t.posAt(t.pos)
				return nil, &ParseError{
					Message:  "expected '.' after '?'",
					Pos:      pos,
					Got:      "?",
					Expected: "'?.'",
				}
			}
			t.tokens = append(t.tokens, token{typ: tokenOptDot, val: "?.", pos: t.pos})
			t.pos += 2
		case ch == '$':
			t.emit(tokenDollar, "$")
		case ch == '[':
			t.emit(tokenLBracket, "[")
		case ch == ']':
			t.emit(tokenRBracket, "]")
		case ch == '(':
			t.emit(tokenLParen, "(")
		case ch == ')':
			t.emit(tokenRParen, ")")
		case ch == ',':
			t.emit(tokenComma, ",")
		case ch == '"':
			if err := t.readString(); err != nil {
				return nil, err
			}
		case isDigit(ch) || (ch == '-' && t.pos+1 < len(t.input) && isDigit(t.input[t.pos+1])):
			t.readNumber()
		case isIdentStart(ch):
			t.readIdent()
		default:
			pos := t.posAt(t.pos)
			return nil, &ParseError{
				Message: fmt.Sprintf("unexpected character %q", string(ch)),
				Pos:     pos,
				Got:     string(ch),
			}
		}
	}
	t.tokens = append(t.tokens, token{typ: tokenEOF, pos: t.pos})
	return t.tokens, nil
}

func (t *tokenizer) emit(typ tokenType, val string) {
	t.tokens = append(t.tokens, token{typ: typ, val: val, pos: t.pos})
	t.pos++
}

func (t *tokenizer) readString() error {
	startPos := t.pos
	t.pos++ // skip opening quote
	var result []byte
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == '\\' && t.pos+1 < len(t.input) {
			// Backslash escaping
			next := t.input[t.pos+1]
			switch next {
			case '"', '\\':
				result = append(result, next)
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			default:
				result = append(result, '\\', next)
			}
			t.pos += 2
			continue
		}
		if ch == '"' {
			t.tokens = append(t.tokens, token{typ: tokenString, val: string(result), pos: startPos})
			t.pos++
			return nil
		}
		result = append(result, ch)
		t.pos++
	}
	pos := t.posAt(startPos)
	return &ParseError{
		Message: "unterminated string literal",
		Pos:     pos,
		Got:     t.input[startPos:],
	}
}

func (t *tokenizer) readNumber() {
	start := t.pos
	if t.input[t.pos] == '-' {
		t.pos++
	}
	for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
		t.pos++
	}
	t.tokens = append(t.tokens, token{typ: tokenNumber, val: t.input[start:t.pos], pos: start})
}

func (t *tokenizer) readIdent() {
	start := t.pos
	for t.pos < len(t.input) && isIdentChar(t.input[t.pos]) {
		t.pos++
	}
	t.tokens = append(t.tokens, token{typ: tokenIdent, val: t.input[start:t.pos], pos: start})
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart checks if a byte can start an identifier.
// Digits cannot start one — they begin integer tokens instead.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// isIdentChar checks if a byte can appear in an identifier (after the first character).
// Permissive: letters, digits, underscore, hyphen.
func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '-'
}

// --- Recursive Descent Parser ---

type parser struct {
	tokens []token
	pos    int
	tzer   *tokenizer
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tzer.input)}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.peek()
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ tokenType) (token, error) {
	tok := p.advance()
	if tok.typ != typ {
		pos := p.tzer.posAt(tok.pos)
		got := tok.val
		if tok.typ == tokenEOF {
			got = "end of path"
		}
		return tok, &ParseError{
			Message:  fmt.Sprintf("expected %s", tokenTypeName(typ)),
			Pos:      pos,
			Got:      got,
			Expected: tokenTypeName(typ),
		}
	}
	return tok, nil
}

// parsePath parses: root step* EOF
func (p *parser) parsePath() (Chain, error) {
	var chain Chain

	// Root: a bare identifier is sugar for an unguarded property step;
	// '$' names the root value itself and contributes no step.
	rootTok := p.advance()
	switch rootTok.typ {
	case tokenIdent:
		chain = append(chain, Property(rootTok.val))
	case tokenDollar:
		// no step
	case tokenEOF:
		pos := p.tzer.posAt(rootTok.pos)
		return nil, &ParseError{
			Message: "empty path",
			Pos:     pos,
			Got:     "end of path",
		}
	default:
		pos := p.tzer.posAt(rootTok.pos)
		return nil, &ParseError{
			Message:  "expected path root",
			Pos:      pos,
			Got:      rootTok.val,
			Expected: "identifier or '$'",
		}
	}

	for {
		tok := p.peek()
		switch tok.typ {
		case tokenEOF:
			return chain, nil

		case tokenDot:
			p.advance()
			nameTok, err := p.expect(tokenIdent)
			if err != nil {
				return nil, err
			}
			chain = append(chain, Property(nameTok.val))

		case tokenOptDot:
			p.advance()
			step, err := p.parseGuardedStep()
			if err != nil {
				return nil, err
			}
			chain = append(chain, step)

		case tokenLBracket:
			p.advance()
			i, err := p.parseIndexTail()
			if err != nil {
				return nil, err
			}
			chain = append(chain, Index(i))

		case tokenLParen:
			p.advance()
			args, err := p.parseCallTail()
			if err != nil {
				return nil, err
			}
			chain = append(chain, Call(args...))

		default:
			pos := p.tzer.posAt(tok.pos)
			return nil, &ParseError{
				Message:  "expected access step",
				Pos:      pos,
				Got:      tok.val,
				Expected: "'.', '?.', '[', '(' or end of path",
			}
		}
	}
}

// parseGuardedStep parses the step after '?.': ident | '[' int ']' | '(' args? ')'
func (p *parser) parseGuardedStep() (Step, error) {
	tok := p.advance()
	switch tok.typ {
	case tokenIdent:
		return Property(tok.val).Guard(), nil
	case tokenLBracket:
		i, err := p.parseIndexTail()
		if err != nil {
			return Step{}, err
		}
		return Index(i).Guard(), nil
	case tokenLParen:
		args, err := p.parseCallTail()
		if err != nil {
			return Step{}, err
		}
		return Call(args...).Guard(), nil
	default:
		pos := p.tzer.posAt(tok.pos)
		got := tok.val
		if tok.typ == tokenEOF {
			got = "end of path"
		}
		return Step{}, &ParseError{
			Message:  "expected step after '?.'",
			Pos:      pos,
			Got:      got,
			Expected: "identifier, '[' or '('",
		}
	}
}

// parseIndexTail parses the remainder of an index step: int ']'
// (the opening bracket has already been consumed).
func (p *parser) parseIndexTail() (int, error) {
	numTok, err := p.expect(tokenNumber)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(numTok.val)
	if err != nil {
		pos := p.tzer.posAt(numTok.pos)
		return 0, &ParseError{
			Message:  "invalid index",
			Pos:      pos,
			Got:      numTok.val,
			Expected: "integer",
		}
	}
	if _, err := p.expect(tokenRBracket); err != nil {
		return 0, err
	}
	return i, nil
}

// parseCallTail parses the remainder of a call step: args? ')'
// (the opening paren has already been consumed).
func (p *parser) parseCallTail() ([]any, error) {
	var args []any
	if p.peek().typ == tokenRParen {
		p.advance()
		return args, nil
	}
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		args = append(args, lit)
		if p.peek().typ != tokenComma {
			break
		}
		p.advance() // consume comma
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseLiteral parses a call argument: quoted string, integer, true, false, or null.
func (p *parser) parseLiteral() (any, error) {
	tok := p.advance()
	switch tok.typ {
	case tokenString:
		return tok.val, nil
	case tokenNumber:
		i, err := strconv.Atoi(tok.val)
		if err != nil {
			pos := p.tzer.posAt(tok.pos)
			return nil, &ParseError{
				Message:  "invalid integer literal",
				Pos:      pos,
				Got:      tok.val,
				Expected: "integer",
			}
		}
		return i, nil
	case tokenIdent:
		switch tok.val {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
	}
	pos := p.tzer.posAt(tok.pos)
	got := tok.val
	if tok.typ == tokenEOF {
		got = "end of path"
	}
	return nil, &ParseError{
		Message:  "expected argument literal",
		Pos:      pos,
		Got:      got,
		Expected: "string, integer, true, false, or null",
	}
}
