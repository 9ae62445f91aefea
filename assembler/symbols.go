package assembler

import (
	"maps"
	"strconv"
)

// VariableBase is the RAM address of the first allocated variable.
const VariableBase = 16

// Predefined holds the architecture symbols every program can use.
var Predefined = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": 0x4000,
	"KBD":    0x6000,
}

func init() {
	for i := range 16 {
		Predefined["R"+strconv.Itoa(i)] = uint16(i)
	}
}

// SymbolTable resolves names in the order predefined, label, variable.
// Addresses never change once assigned.
type SymbolTable struct {
	labels    map[string]uint16
	variables map[string]uint16
	next      uint16
}

// NewSymbolTable returns a table holding only the predefined symbols.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		labels:    make(map[string]uint16),
		variables: make(map[string]uint16),
		next:      VariableBase,
	}
}

// AddLabel records a label's ROM address. A name already recorded keeps its
// first address; the return value reports whether name was new.
func (st *SymbolTable) AddLabel(name string, addr uint16) bool {
	if _, ok := st.labels[name]; ok {
		return false
	}
	st.labels[name] = addr
	return true
}

// AddressFor resolves name, allocating the next free variable address if the
// name is not yet known.
func (st *SymbolTable) AddressFor(name string) uint16 {
	if addr, ok := st.Lookup(name); ok {
		return addr
	}
	addr := st.next
	st.variables[name] = addr
	st.next++
	return addr
}

// Lookup resolves name without allocating.
func (st *SymbolTable) Lookup(name string) (uint16, bool) {
	if addr, ok := Predefined[name]; ok {
		return addr, true
	}
	if addr, ok := st.labels[name]; ok {
		return addr, true
	}
	addr, ok := st.variables[name]
	return addr, ok
}

// Labels returns a copy of the recorded labels.
func (st *SymbolTable) Labels() map[string]uint16 {
	return maps.Clone(st.labels)
}

// Variables returns a copy of the allocated variables.
func (st *SymbolTable) Variables() map[string]uint16 {
	return maps.Clone(st.variables)
}
