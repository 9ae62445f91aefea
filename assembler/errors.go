package assembler

import "fmt"

// ScanError is returned when a source line cannot be split into tokens.
type ScanError struct {
	Line int
	Msg  string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error: line %d: %s", e.Line, e.Msg)
}

// ParseError is returned when the token stream does not match the grammar.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: line %d: %s", e.Line, e.Msg)
}

// EncodeError is returned when an instruction cannot be resolved or encoded.
type EncodeError struct {
	Line int
	Msg  string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode error: line %d: %s", e.Line, e.Msg)
}

func scanErrorf(line int, format string, args ...any) *ScanError {
	return &ScanError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func encodeErrorf(line int, format string, args ...any) *EncodeError {
	return &EncodeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
