package disassembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Urethramancer/hack/assembler"
	"github.com/Urethramancer/hack/cpu"
)

var (
	compNames = invert(assembler.CompBits)
	jumpNames = [8]string{"", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}
)

func invert(m map[string]uint16) map[uint16]string {
	out := make(map[uint16]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// DecodeWord renders one machine word as an assembly statement.
func DecodeWord(w uint16) (string, error) {
	inst, err := cpu.Decode(w)
	if err != nil {
		return "", err
	}
	if inst.Address {
		return "@" + strconv.Itoa(int(inst.Value)), nil
	}

	comp, ok := compNames[inst.Comp]
	if !ok {
		return "", fmt.Errorf("no mnemonic for computation bits %06b", inst.Comp)
	}
	if inst.UseM {
		if !strings.Contains(comp, "A") {
			return "", fmt.Errorf("computation %s cannot select M", comp)
		}
		comp = strings.ReplaceAll(comp, "A", "M")
	}

	var sb strings.Builder
	if inst.Dest&cpu.DestA != 0 {
		sb.WriteByte('A')
	}
	if inst.Dest&cpu.DestD != 0 {
		sb.WriteByte('D')
	}
	if inst.Dest&cpu.DestM != 0 {
		sb.WriteByte('M')
	}
	if inst.Dest != 0 {
		sb.WriteByte('=')
	}
	sb.WriteString(comp)
	if inst.Jump != 0 {
		sb.WriteByte(';')
		sb.WriteString(jumpNames[inst.Jump])
	}
	return sb.String(), nil
}

func labelName(addr int) string {
	return fmt.Sprintf("loc_%04X", addr)
}
