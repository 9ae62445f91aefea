package assembler

import (
	"github.com/hashicorp/go-multierror"
)

// Parser builds instructions from a token stream by recursive descent.
// The stream must end with a KindEOF token, as produced by Tokenize.
type Parser struct {
	tokens []Token
	cursor int
	errs   *multierror.Error
}

// NewParser creates a parser over tokens.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != KindEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line + 1
		}
		tokens = append(tokens, Token{Kind: KindEOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse consumes the whole stream. Statements missing their line terminator
// are reported together once the end is reached; any other error stops
// parsing at once.
func (p *Parser) Parse() ([]Instruction, error) {
	var list []Instruction
	for !p.atEnd() {
		ins, err := p.statement()
		if err != nil {
			if p.errs != nil {
				return nil, multierror.Append(p.errs, err)
			}
			return nil, err
		}
		list = append(list, ins)
	}

	if err := p.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) statement() (Instruction, error) {
	var (
		ins Instruction
		err error
	)
	switch p.peek().Kind {
	case KindLabel:
		t := p.advance()
		ins = &LabelDecl{Name: t.Name, Pos: t.Line}
	case KindAddress, KindSymbol:
		ins = &AddressInstr{Operand: p.advance()}
	default:
		ins, err = p.compute()
		if err != nil {
			return nil, err
		}
	}

	if !p.match(KindNewLine) && !p.atEnd() {
		p.errs = multierror.Append(p.errs, parseErrorf(p.peek().Line, "missing statement terminator before %s", p.peek()))
		p.recover()
	}
	return ins, nil
}

// recover skips to the start of the next statement.
func (p *Parser) recover() {
	for !p.atEnd() {
		if p.advance().Kind == KindNewLine {
			return
		}
	}
}

func (p *Parser) compute() (*ComputeInstr, error) {
	dest, err := p.dest()
	if err != nil {
		return nil, err
	}
	comp, err := p.comp()
	if err != nil {
		return nil, err
	}
	jump, err := p.jump()
	if err != nil {
		return nil, err
	}
	return &ComputeInstr{Dest: dest, Comp: comp, Jump: jump}, nil
}

// dest consumes registers followed by '='. Without the '=' the registers
// belong to the computation, so the cursor is rewound.
func (p *Parser) dest() ([]Token, error) {
	start := p.mark()
	var dest []Token
	for p.peek().Kind.IsRegister() {
		t := p.advance()
		for _, d := range dest {
			if d.Kind == t.Kind {
				return nil, parseErrorf(t.Line, "duplicate destination %s", t)
			}
		}
		dest = append(dest, t)
	}

	if p.match(KindEqual) {
		if len(dest) == 0 {
			return nil, parseErrorf(p.previous().Line, "missing destination before =")
		}
		return dest, nil
	}

	p.reset(start)
	return nil, nil
}

func (p *Parser) comp() (Expression, error) {
	if p.match(KindMinus, KindNot) {
		op := p.previous()
		operand, err := p.primary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}

	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.match(KindPlus, KindMinus, KindAnd, KindOr) {
		op := p.previous()
		right, err := p.primary()
		if err != nil {
			return nil, err
		}
		return &Binary{Left: left, Op: op, Right: right}, nil
	}
	return &Literal{Value: left}, nil
}

// primary accepts any number; only 0 and 1 survive encoding.
func (p *Parser) primary() (Token, error) {
	if p.match(KindRegA, KindRegD, KindRegM, KindNumber) {
		return p.previous(), nil
	}
	t := p.peek()
	return Token{}, parseErrorf(t.Line, "unrecognized computation expression at %s", t)
}

func (p *Parser) jump() (*Token, error) {
	if !p.match(KindSemicolon) {
		return nil, nil
	}
	if !p.peek().Kind.IsJump() {
		t := p.peek()
		return nil, parseErrorf(t.Line, "invalid jump clause: expected jump mnemonic, got %s", t)
	}
	t := p.advance()
	return &t, nil
}

func (p *Parser) match(kinds ...Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(k Kind) bool {
	return !p.atEnd() && p.peek().Kind == k
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.cursor++
	}
	return p.previous()
}

func (p *Parser) mark() int       { return p.cursor }
func (p *Parser) reset(mark int)  { p.cursor = mark }
func (p *Parser) peek() Token     { return p.tokens[p.cursor] }
func (p *Parser) previous() Token { return p.tokens[p.cursor-1] }
func (p *Parser) atEnd() bool     { return p.peek().Kind == KindEOF }
