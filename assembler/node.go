package assembler

import "strings"

// Instruction is one parsed statement: *LabelDecl, *AddressInstr or *ComputeInstr.
type Instruction interface {
	// Line is the source line the statement starts on.
	Line() int
	String() string
	instruction()
}

// LabelDecl binds a name to the address of the next instruction.
type LabelDecl struct {
	Name string
	Pos  int
}

// AddressInstr loads a literal or symbolic address into A.
// Operand is a KindAddress or KindSymbol token.
type AddressInstr struct {
	Operand Token
}

// ComputeInstr is a dest=comp;jump instruction. Dest holds at most one
// token each of A, D and M. Jump is nil when there is no jump clause.
type ComputeInstr struct {
	Dest []Token
	Comp Expression
	Jump *Token
}

func (*LabelDecl) instruction()    {}
func (*AddressInstr) instruction() {}
func (*ComputeInstr) instruction() {}

func (l *LabelDecl) Line() int    { return l.Pos }
func (a *AddressInstr) Line() int { return a.Operand.Line }
func (c *ComputeInstr) Line() int {
	if len(c.Dest) > 0 {
		return c.Dest[0].Line
	}
	return c.Comp.Line()
}

func (l *LabelDecl) String() string    { return "(" + l.Name + ")" }
func (a *AddressInstr) String() string { return a.Operand.String() }

func (c *ComputeInstr) String() string {
	var sb strings.Builder
	for _, d := range c.Dest {
		sb.WriteString(d.String())
	}
	if len(c.Dest) > 0 {
		sb.WriteByte('=')
	}
	sb.WriteString(c.Comp.String())
	if c.Jump != nil {
		sb.WriteByte(';')
		sb.WriteString(c.Jump.String())
	}
	return sb.String()
}

// Expression is the comp part of a C-instruction: *Literal, *Unary or *Binary.
type Expression interface {
	Line() int
	String() string
	expression()
}

// Literal is a register or the number 0 or 1.
type Literal struct {
	Value Token
}

// Unary is -x or !x.
type Unary struct {
	Op      Token
	Operand Token
}

// Binary is x+y, x-y, x&y or x|y.
type Binary struct {
	Left  Token
	Op    Token
	Right Token
}

func (*Literal) expression() {}
func (*Unary) expression()   {}
func (*Binary) expression()  {}

func (l *Literal) Line() int { return l.Value.Line }
func (u *Unary) Line() int   { return u.Op.Line }
func (b *Binary) Line() int  { return b.Left.Line }

func (l *Literal) String() string { return l.Value.String() }
func (u *Unary) String() string   { return u.Op.String() + u.Operand.String() }
func (b *Binary) String() string  { return b.Left.String() + b.Op.String() + b.Right.String() }
