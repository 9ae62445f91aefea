package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxLineLength = 1 << 20

// Tokenize scans every line of r. Lines holding nothing but a comment or
// whitespace are dropped. The result always ends with a KindEOF token placed
// one line past the last token.
func Tokenize(r io.Reader) ([]Token, error) {
	var tokens []Token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		var line []Token
		for tok, err := range NewScanner(strings.TrimSuffix(sc.Text(), "\r"), lineNo).Tokens() {
			if err != nil {
				return nil, err
			}
			line = append(line, tok)
		}
		if len(line) > 0 && line[0].Kind != KindNewLine {
			tokens = append(tokens, line...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNo+1, err)
	}

	last := 0
	if len(tokens) > 0 {
		last = tokens[len(tokens)-1].Line
	}
	tokens = append(tokens, Token{Kind: KindEOF, Line: last + 1})
	return tokens, nil
}
