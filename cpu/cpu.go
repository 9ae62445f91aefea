// Package cpu emulates the Hack computer that assembled images run on.
package cpu

import "fmt"

// Memory layout.
const (
	// ROMSize is the number of instruction words.
	ROMSize = 1 << 15
	// Screen is the first word of the memory-mapped display.
	Screen = 0x4000
	// Keyboard is the memory-mapped keyboard register, the last RAM word.
	Keyboard = 0x6000
	// RAMSize covers data memory, the screen and the keyboard.
	RAMSize = Keyboard + 1
)

// CPU registers and memory.
type CPU struct {
	// A is the address register.
	A uint16
	// D is the data register.
	D uint16
	// PC is the program counter.
	PC uint16

	// ROM holds the program.
	ROM []uint16
	// RAM holds data, screen and keyboard words.
	RAM []uint16

	// Size is the number of loaded program words.
	Size int
	// Cycles counts executed instructions.
	Cycles int
}

// New creates a CPU with empty ROM and RAM.
func New() *CPU {
	return &CPU{
		ROM: make([]uint16, ROMSize),
		RAM: make([]uint16, RAMSize),
	}
}

// LoadCode copies program into ROM from address 0 and resets the registers.
func (c *CPU) LoadCode(program []uint16) error {
	if len(program) > ROMSize {
		return fmt.Errorf("program has %d words, ROM holds %d", len(program), ROMSize)
	}
	clear(c.ROM)
	copy(c.ROM, program)
	c.Size = len(program)
	c.A, c.D, c.PC, c.Cycles = 0, 0, 0, 0
	return nil
}

// Halted reports whether the PC has left the loaded program.
func (c *CPU) Halted() bool {
	return int(c.PC) >= c.Size
}

// Run executes until the PC leaves the program or maxSteps instructions have
// run, and returns the number executed.
func (c *CPU) Run(maxSteps int) (int, error) {
	steps := 0
	for steps < maxSteps && !c.Halted() {
		if err := c.Execute(); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}

// Peek reads a RAM word.
func (c *CPU) Peek(addr uint16) (uint16, error) {
	if int(addr) >= len(c.RAM) {
		return 0, fmt.Errorf("RAM address %d out of range", addr)
	}
	return c.RAM[addr], nil
}

// Poke writes a RAM word.
func (c *CPU) Poke(addr, value uint16) error {
	if int(addr) >= len(c.RAM) {
		return fmt.Errorf("RAM address %d out of range", addr)
	}
	c.RAM[addr] = value
	return nil
}
