package cpu

import "fmt"

// Execute fetches, decodes, and executes a single instruction.
func (c *CPU) Execute() error {
	if c.Halted() {
		return fmt.Errorf("PC %d is outside the program", c.PC)
	}

	// Fetch
	word := c.ROM[c.PC]

	// Decode
	inst, err := Decode(word)
	if err != nil {
		return fmt.Errorf("decode failed at %d: %w", c.PC, err)
	}

	// Execute
	if inst.Address {
		c.A = inst.Value
		c.PC++
		c.Cycles++
		return nil
	}

	y := c.A
	if inst.UseM {
		y, err = c.Peek(c.A)
		if err != nil {
			return fmt.Errorf("execution failed at %d: %w", c.PC, err)
		}
	}
	out := ALU(c.D, y, inst.Comp)

	// Writes and the jump target all see the A value from before this
	// instruction.
	addr := c.A
	if inst.Dest&DestM != 0 {
		if err := c.Poke(addr, out); err != nil {
			return fmt.Errorf("execution failed at %d: %w", c.PC, err)
		}
	}
	if inst.Dest&DestA != 0 {
		c.A = out
	}
	if inst.Dest&DestD != 0 {
		c.D = out
	}

	if jumps(inst.Jump, out) {
		c.PC = addr
	} else {
		c.PC++
	}
	c.Cycles++
	return nil
}
