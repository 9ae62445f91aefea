package assembler

import (
	"fmt"
	"strconv"
)

// Kind identifies the category of a scanned token.
type Kind int

const (
	// KindAddress is an @ reference with a numeric operand.
	KindAddress Kind = iota
	// KindSymbol is an @ reference with a symbolic operand.
	KindSymbol
	// KindLabel is a (NAME) declaration.
	KindLabel
	KindRegA
	KindRegD
	KindRegM
	KindEqual
	KindPlus
	KindMinus
	KindAnd
	KindOr
	KindNot
	KindSemicolon
	// KindNumber is a bare numeric literal in a computation.
	KindNumber
	KindJGT
	KindJEQ
	KindJGE
	KindJLT
	KindJNE
	KindJLE
	KindJMP
	// KindNewLine terminates a statement.
	KindNewLine
	// KindEOF terminates the token stream.
	KindEOF
)

var kindNames = map[Kind]string{
	KindAddress:   "address",
	KindSymbol:    "symbol",
	KindLabel:     "label",
	KindRegA:      "A",
	KindRegD:      "D",
	KindRegM:      "M",
	KindEqual:     "=",
	KindPlus:      "+",
	KindMinus:     "-",
	KindAnd:       "&",
	KindOr:        "|",
	KindNot:       "!",
	KindSemicolon: ";",
	KindNumber:    "number",
	KindJGT:       "JGT",
	KindJEQ:       "JEQ",
	KindJGE:       "JGE",
	KindJLT:       "JLT",
	KindJNE:       "JNE",
	KindJLE:       "JLE",
	KindJMP:       "JMP",
	KindNewLine:   "newline",
	KindEOF:       "end of input",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsRegister reports whether k is one of A, D or M.
func (k Kind) IsRegister() bool {
	return k == KindRegA || k == KindRegD || k == KindRegM
}

// IsJump reports whether k is one of the seven jump mnemonics.
func (k Kind) IsJump() bool {
	return k >= KindJGT && k <= KindJMP
}

var jumpKinds = map[string]Kind{
	"JGT": KindJGT,
	"JEQ": KindJEQ,
	"JGE": KindJGE,
	"JLT": KindJLT,
	"JNE": KindJNE,
	"JLE": KindJLE,
	"JMP": KindJMP,
}

// Token is one lexical element of a source line. Value holds the operand of
// KindAddress and KindNumber tokens; Name holds the text of KindSymbol and
// KindLabel tokens.
type Token struct {
	Kind  Kind
	Value uint32
	Name  string
	Line  int
}

func (t Token) String() string {
	switch t.Kind {
	case KindAddress:
		return "@" + strconv.FormatUint(uint64(t.Value), 10)
	case KindSymbol:
		return "@" + t.Name
	case KindLabel:
		return "(" + t.Name + ")"
	case KindNumber:
		return strconv.FormatUint(uint64(t.Value), 10)
	}
	return t.Kind.String()
}

