package cpu

import "fmt"

// Field masks of a C-instruction word: 111a cccc ccdd djjj.
const (
	ComputeMask = 0xE000
	MemoryBit   = 1 << 12
	CompMask    = 0x0FC0
	DestMask    = 0x0038
	JumpMask    = 0x0007
)

// Destination and jump bits after shifting down.
const (
	DestA = 0b100
	DestD = 0b010
	DestM = 0b001

	JumpLT = 0b100
	JumpEQ = 0b010
	JumpGT = 0b001
)

// DecodedInstruction holds the fields of one instruction word.
type DecodedInstruction struct {
	// Address is set for A-instructions; Value is then the loaded constant.
	Address bool
	Value   uint16

	// UseM selects M rather than A as the ALU's second operand.
	UseM bool
	Comp uint16
	Dest uint16
	Jump uint16
}

// Decode splits a word into its instruction fields.
func Decode(word uint16) (*DecodedInstruction, error) {
	if word&0x8000 == 0 {
		return &DecodedInstruction{Address: true, Value: word}, nil
	}
	if word&ComputeMask != ComputeMask {
		return nil, fmt.Errorf("invalid instruction %016b: bits 14-13 must be set", word)
	}
	return &DecodedInstruction{
		UseM: word&MemoryBit != 0,
		Comp: (word & CompMask) >> 6,
		Dest: (word & DestMask) >> 3,
		Jump: word & JumpMask,
	}, nil
}
