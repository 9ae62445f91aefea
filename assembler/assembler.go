package assembler

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	log     *logrus.Entry
	strict  bool
	symbols *SymbolTable
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sends stage tracing to log.
func WithLogger(log *logrus.Entry) Option {
	return func(asm *Assembler) {
		asm.log = log
	}
}

// WithStrictLabels makes a repeated label declaration an error.
func WithStrictLabels(strict bool) Option {
	return func(asm *Assembler) {
		asm.strict = strict
	}
}

// New creates a new Assembler instance.
func New(opts ...Option) *Assembler {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	asm := &Assembler{log: logrus.NewEntry(quiet)}
	for _, o := range opts {
		o(asm)
	}
	return asm
}

// Assemble translates Hack assembly source into machine words.
func (asm *Assembler) Assemble(src string) ([]uint16, error) {
	return asm.AssembleReader(strings.NewReader(src))
}

// AssembleReader reads Hack assembly from r and translates it into machine
// words. Each call starts from a fresh symbol table.
func (asm *Assembler) AssembleReader(r io.Reader) ([]uint16, error) {
	asm.symbols = NewSymbolTable()

	tokens, err := Tokenize(r)
	if err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}
	asm.log.WithFields(logrus.Fields{"stage": "scan", "tokens": len(tokens)}).Debug("source scanned")

	ins, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	asm.log.WithFields(logrus.Fields{"stage": "parse", "instructions": len(ins)}).Debug("source parsed")

	// Pass 1: bind labels before anything refers to them.
	if err := AssignAddresses(ins, asm.symbols, asm.strict); err != nil {
		return nil, fmt.Errorf("resolving labels: %w", err)
	}
	asm.log.WithFields(logrus.Fields{"stage": "labels", "labels": len(asm.symbols.labels)}).Debug("labels assigned")

	for _, in := range ins {
		if a, ok := in.(*AddressInstr); ok && a.Operand.Kind == KindAddress && a.Operand.Value > 0x7FFF && a.Operand.Value <= 0xFFFF {
			asm.log.WithFields(logrus.Fields{"line": a.Line(), "address": a.Operand.Value}).Debug("address sets the compute bit")
		}
	}

	// Pass 2: generate machine code.
	words, err := Encode(ins, asm.symbols)
	if err != nil {
		return nil, fmt.Errorf("encoding: %w", err)
	}
	asm.log.WithFields(logrus.Fields{"stage": "encode", "words": len(words), "variables": len(asm.symbols.variables)}).Debug("program encoded")

	return words, nil
}

// Symbols returns the symbol table of the most recent run, or nil before
// the first run.
func (asm *Assembler) Symbols() *SymbolTable {
	return asm.symbols
}

// FormatImage renders words as the text image format: one line of sixteen
// binary digits per word, most significant bit first.
func FormatImage(words []uint16) string {
	var sb strings.Builder
	sb.Grow(len(words) * 17)
	for _, w := range words {
		fmt.Fprintf(&sb, "%016b\n", w)
	}
	return sb.String()
}
