package assembler

import (
	"math"
	"strings"
)

// MaxROM is the number of instruction addresses available to a program.
const MaxROM = 1 << 16

// C-instruction layout: 111a cccc ccdd djjj.
const (
	computePrefix = 0xE000
	memoryBit     = 1 << 12
	compShift     = 6
	destShift     = 3
)

// CompBits maps a computation mnemonic, written with A standing for either A
// or M, to its six c-bits.
var CompBits = map[string]uint16{
	"0":   0b101010,
	"1":   0b111111,
	"-1":  0b111010,
	"D":   0b001100,
	"A":   0b110000,
	"!D":  0b001101,
	"!A":  0b110001,
	"-D":  0b001111,
	"-A":  0b110011,
	"D+1": 0b011111,
	"A+1": 0b110111,
	"D-1": 0b001110,
	"A-1": 0b110010,
	"D+A": 0b000010,
	"D-A": 0b010011,
	"A-D": 0b000111,
	"D&A": 0b000000,
	"D|A": 0b010101,
}

var destBits = map[Kind]uint16{
	KindRegA: 0b100,
	KindRegD: 0b010,
	KindRegM: 0b001,
}

var jumpBits = map[Kind]uint16{
	KindJGT: 0b001,
	KindJEQ: 0b010,
	KindJGE: 0b011,
	KindJLT: 0b100,
	KindJNE: 0b101,
	KindJLE: 0b110,
	KindJMP: 0b111,
}

// AssignAddresses is the first pass: every label is bound to the ROM address
// of the instruction that follows it. With strict set, a label declared
// twice is an error; otherwise the first declaration wins.
func AssignAddresses(ins []Instruction, st *SymbolTable, strict bool) error {
	rom := 0
	for _, in := range ins {
		l, ok := in.(*LabelDecl)
		if !ok {
			rom++
			continue
		}
		if rom >= MaxROM {
			return encodeErrorf(l.Pos, "label %s points past the end of ROM", l.Name)
		}
		if !st.AddLabel(l.Name, uint16(rom)) && strict {
			return encodeErrorf(l.Pos, "duplicate label %s", l.Name)
		}
	}
	if rom > MaxROM {
		return encodeErrorf(ins[len(ins)-1].Line(), "program has %d instructions, ROM holds %d", rom, MaxROM)
	}
	return nil
}

// Encode is the second pass: symbols are resolved through st, allocating
// variables on first use, and one word is produced per non-label instruction.
func Encode(ins []Instruction, st *SymbolTable) ([]uint16, error) {
	words := make([]uint16, 0, len(ins))
	for _, in := range ins {
		switch in := in.(type) {
		case *LabelDecl:
			continue
		case *AddressInstr:
			w, err := encodeAddress(in, st)
			if err != nil {
				return nil, err
			}
			words = append(words, w)
		case *ComputeInstr:
			w, err := EncodeCompute(in)
			if err != nil {
				return nil, err
			}
			words = append(words, w)
		}
	}
	return words, nil
}

func encodeAddress(in *AddressInstr, st *SymbolTable) (uint16, error) {
	op := in.Operand
	switch op.Kind {
	case KindAddress:
		if op.Value > math.MaxUint16 {
			return 0, encodeErrorf(op.Line, "address %d exceeds the 16-bit range", op.Value)
		}
		return uint16(op.Value), nil
	case KindSymbol:
		return st.AddressFor(op.Name), nil
	}
	return 0, encodeErrorf(op.Line, "invalid address operand %s", op)
}

// EncodeCompute packs a C-instruction into its 16-bit word.
func EncodeCompute(in *ComputeInstr) (uint16, error) {
	word := uint16(computePrefix)

	key, usesM := compKey(in.Comp)
	c, ok := CompBits[key]
	if !ok {
		return 0, encodeErrorf(in.Comp.Line(), "invalid computation %s", in.Comp)
	}
	if usesM {
		word |= memoryBit
	}
	word |= c << compShift

	for _, d := range in.Dest {
		bit, ok := destBits[d.Kind]
		if !ok {
			return 0, encodeErrorf(d.Line, "invalid destination %s", d)
		}
		word |= bit << destShift
	}

	if in.Jump != nil {
		j, ok := jumpBits[in.Jump.Kind]
		if !ok {
			return 0, encodeErrorf(in.Jump.Line, "invalid jump %s", in.Jump)
		}
		word |= j
	}
	return word, nil
}

// compKey renders the expression with M folded into A, and reports whether M
// appeared.
func compKey(e Expression) (string, bool) {
	s := e.String()
	return strings.ReplaceAll(s, "M", "A"), strings.Contains(s, "M")
}
