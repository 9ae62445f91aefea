package assembler

import (
	"iter"
	"strconv"
	"unicode"
)

// Scanner splits a single source line into tokens.
type Scanner struct {
	src  []rune
	pos  int
	line int
	done bool
}

// NewScanner creates a scanner for one line of source. lineNo is 1-based.
func NewScanner(line string, lineNo int) *Scanner {
	return &Scanner{src: []rune(line), line: lineNo}
}

// Tokens yields the tokens of the line, ending with a KindNewLine token.
// The sequence stops after the first error. It consumes the scanner, so a
// second iteration yields nothing.
func (s *Scanner) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for !s.done {
			tok, err := s.next()
			if err != nil {
				s.done = true
				yield(Token{}, err)
				return
			}
			if tok.Kind == KindNewLine {
				s.done = true
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

var singles = map[rune]Kind{
	'A': KindRegA,
	'D': KindRegD,
	'M': KindRegM,
	'=': KindEqual,
	'-': KindMinus,
	'+': KindPlus,
	'&': KindAnd,
	'|': KindOr,
	'!': KindNot,
	';': KindSemicolon,
}

func (s *Scanner) next() (Token, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return s.token(KindNewLine), nil
	}

	ch := s.src[s.pos]
	s.pos++
	if k, ok := singles[ch]; ok {
		return s.token(k), nil
	}

	switch {
	case ch == '@':
		return s.address()
	case ch == '(':
		return s.label()
	case ch == '/':
		if s.pos < len(s.src) && s.src[s.pos] == '/' {
			s.pos = len(s.src)
			return s.token(KindNewLine), nil
		}
		return Token{}, scanErrorf(s.line, "unexpected character %q", ch)
	case ch == 'J':
		s.pos--
		text := s.grab(func(r rune) bool { return !unicode.IsSpace(r) })
		k, ok := jumpKinds[text]
		if !ok {
			return Token{}, scanErrorf(s.line, "unexpected jump type %q", text)
		}
		return s.token(k), nil
	case isDigit(ch):
		s.pos--
		text := s.grab(isDigit)
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return Token{}, scanErrorf(s.line, "number %s out of range", text)
		}
		t := s.token(KindNumber)
		t.Value = uint32(n)
		return t, nil
	}

	return Token{}, scanErrorf(s.line, "unexpected character %q", ch)
}

// address scans the operand following '@'.
func (s *Scanner) address() (Token, error) {
	text := s.grab(func(r rune) bool { return !unicode.IsSpace(r) })
	if text == "" {
		return Token{}, scanErrorf(s.line, "unterminated symbol: missing operand after @")
	}

	if allDigits(text) {
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return Token{}, scanErrorf(s.line, "address %s out of range", text)
		}
		t := s.token(KindAddress)
		t.Value = uint32(n)
		return t, nil
	}

	t := s.token(KindSymbol)
	t.Name = text
	return t, nil
}

// label scans a (NAME) declaration; the opening parenthesis is consumed.
func (s *Scanner) label() (Token, error) {
	name := s.grab(func(r rune) bool { return r != ')' && !unicode.IsSpace(r) })
	if s.pos >= len(s.src) || s.src[s.pos] != ')' {
		return Token{}, scanErrorf(s.line, "unterminated label %q", "("+name)
	}
	s.pos++

	if name == "" {
		return Token{}, scanErrorf(s.line, "empty label")
	}
	if isDigit([]rune(name)[0]) {
		return Token{}, scanErrorf(s.line, "label cannot start with a digit: %s", name)
	}

	t := s.token(KindLabel)
	t.Name = name
	return t, nil
}

func (s *Scanner) grab(accept func(rune) bool) string {
	start := s.pos
	for s.pos < len(s.src) && accept(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.src) && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *Scanner) token(k Kind) Token {
	return Token{Kind: k, Line: s.line}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func allDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return s != ""
}
