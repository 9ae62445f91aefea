package cpu

// ALU computes the six c-bits zx nx zy ny f no over x and y.
func ALU(x, y, comp uint16) uint16 {
	if comp&0b100000 != 0 {
		x = 0
	}
	if comp&0b010000 != 0 {
		x = ^x
	}
	if comp&0b001000 != 0 {
		y = 0
	}
	if comp&0b000100 != 0 {
		y = ^y
	}

	var out uint16
	if comp&0b000010 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if comp&0b000001 != 0 {
		out = ^out
	}
	return out
}

// jumps reports whether the jump bits fire for out.
func jumps(jump, out uint16) bool {
	v := int16(out)
	switch {
	case v < 0:
		return jump&JumpLT != 0
	case v == 0:
		return jump&JumpEQ != 0
	default:
		return jump&JumpGT != 0
	}
}
