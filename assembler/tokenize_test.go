package assembler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSkipsBlankLines(t *testing.T) {
	src := "// header\n\n@2\n   \nD=A // load\n\n"
	tokens, err := Tokenize(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []Kind{KindAddress, KindNewLine, KindRegD, KindEqual, KindRegA, KindNewLine, KindEOF}, kinds(tokens))
	assert.Equal(t, 3, tokens[0].Line)
	assert.Equal(t, 5, tokens[2].Line)
	assert.Equal(t, 6, tokens[len(tokens)-1].Line)
}

func TestTokenizeEmpty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "// only a comment\n"} {
		tokens, err := Tokenize(strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, Token{Kind: KindEOF, Line: 1}, tokens[0])
	}
}

func TestTokenizeCRLF(t *testing.T) {
	tokens, err := Tokenize(strings.NewReader("@1\r\nM=D\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindAddress, KindNewLine, KindRegM, KindEqual, KindRegD, KindNewLine, KindEOF}, kinds(tokens))
}

func TestTokenizeErrorLine(t *testing.T) {
	_, err := Tokenize(strings.NewReader("D=1\n\n  Q\n@2\n"))
	var se *ScanError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Line)
	assert.Contains(t, err.Error(), "line 3")
}
