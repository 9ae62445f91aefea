package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/hack/cpu"
)

// Instruction represents a single decoded instruction at a specific address.
type Instruction struct {
	Address uint16
	Word    uint16
	Text    string
	// Target is the address loaded by an A-instruction that feeds a jump.
	Target int
}

// Disassemble turns machine words into assembly source, one instruction per
// line. Assembling the result reproduces words exactly.
func Disassemble(words []uint16) (string, error) {
	return disassemble(words, false)
}

// DisassembleLabels works like Disassemble, but replaces the address operand
// of every jump with a generated label declared at the target.
func DisassembleLabels(words []uint16) (string, error) {
	return disassemble(words, true)
}

func disassemble(words []uint16, labels bool) (string, error) {
	if len(words) == 0 {
		return "", nil
	}

	// --- STAGE 1: Linear Sweep ---
	instructions := make([]*Instruction, len(words))
	for pc, w := range words {
		text, err := DecodeWord(w)
		if err != nil {
			return "", fmt.Errorf("address %d: %w", pc, err)
		}
		instructions[pc] = &Instruction{Address: uint16(pc), Word: w, Text: text, Target: -1}
	}

	// --- STAGE 2: Jump Target Analysis ---
	targets := make(map[int]bool)
	if labels {
		for pc := 0; pc+1 < len(instructions); pc++ {
			load, next := instructions[pc], instructions[pc+1]
			if load.Word&0x8000 != 0 || next.Word&0x8000 == 0 || next.Word&cpu.JumpMask == 0 {
				continue
			}
			if int(load.Word) > len(words) {
				continue
			}
			load.Target = int(load.Word)
			targets[load.Target] = true
		}
	}

	// --- STAGE 3: Render Final Output ---
	var out strings.Builder
	for pc, inst := range instructions {
		if targets[pc] {
			fmt.Fprintf(&out, "(%s)\n", labelName(pc))
		}
		if inst.Target >= 0 {
			fmt.Fprintf(&out, "@%s\n", labelName(inst.Target))
			continue
		}
		out.WriteString(inst.Text)
		out.WriteByte('\n')
	}
	// A jump may target the address just past the last instruction.
	if targets[len(words)] {
		fmt.Fprintf(&out, "(%s)\n", labelName(len(words)))
	}

	return out.String(), nil
}
