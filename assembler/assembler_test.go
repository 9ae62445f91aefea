package assembler_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/hack/assembler"
)

const maxSource = `// Computes R2 = max(R0, R1)
   @R0
   D=M              // D = first number
   @R1
   D=D-M            // D = first number - second number
   @OUTPUT_FIRST
   D;JGT            // if D>0 (first is greater) goto output_first
   @R1
   D=M              // D = second number
   @OUTPUT_D
   0;JMP            // goto output_d
(OUTPUT_FIRST)
   @R0
   D=M              // D = first number
(OUTPUT_D)
   @R2
   M=D              // M[2] = D (greatest number)
(INFINITE_LOOP)
   @INFINITE_LOOP
   0;JMP            // infinite loop
`

const maxImage = `0000000000000000
1111110000010000
0000000000000001
1111010011010000
0000000000001010
1110001100000001
0000000000000001
1111110000010000
0000000000001100
1110101010000111
0000000000000000
1111110000010000
0000000000000010
1110001100001000
0000000000001110
1110101010000111
`

// Assembles source and checks the text image against the expected lines.
func assembleAndMatch(t *testing.T, name, src string, expected ...string) {
	t.Helper()

	asm := assembler.New()
	words, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("[%s] failed to assemble:\n%s\nerror: %v", name, src, err)
	}
	want := strings.Join(expected, "\n")
	if len(expected) > 0 {
		want += "\n"
	}
	assert.Equal(t, want, assembler.FormatImage(words), name)
}

func TestAssembleMax(t *testing.T) {
	words, err := assembler.New().Assemble(maxSource)
	require.NoError(t, err)
	assert.Equal(t, maxImage, assembler.FormatImage(words))
}

func TestDeterministic(t *testing.T) {
	asm := assembler.New()
	first, err := asm.Assemble(maxSource)
	require.NoError(t, err)
	second, err := asm.Assemble(maxSource)
	require.NoError(t, err)
	assert.Equal(t, assembler.FormatImage(first), assembler.FormatImage(second))

	third, err := assembler.New().Assemble(maxSource)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestOutputLineCount(t *testing.T) {
	words, err := assembler.New().Assemble(maxSource)
	require.NoError(t, err)
	image := assembler.FormatImage(words)
	assert.Equal(t, 16, strings.Count(image, "\n"))
	for _, line := range strings.Split(strings.TrimSuffix(image, "\n"), "\n") {
		assert.Len(t, line, 16)
	}
}

func TestPredefinedAddresses(t *testing.T) {
	assembleAndMatch(t, "SCREEN", "@SCREEN", "0100000000000000")
	assembleAndMatch(t, "KBD", "@KBD", "0110000000000000")
	assembleAndMatch(t, "R3", "@R3", "0000000000000011")
	assembleAndMatch(t, "THAT", "@THAT", "0000000000000100")
}

func TestVariables(t *testing.T) {
	asm := assembler.New()
	words, err := asm.Assemble("@first\n@second\n@first\nM=0")
	require.NoError(t, err)
	assert.Equal(t, []uint16{16, 17, 16, 0xEA88}, words)
	assert.Equal(t, map[string]uint16{"first": 16, "second": 17}, asm.Symbols().Variables())
}

func TestFreshTablePerRun(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("@a\n@b")
	require.NoError(t, err)
	words, err := asm.Assemble("@b")
	require.NoError(t, err)
	assert.Equal(t, []uint16{16}, words)
}

func TestForwardLabel(t *testing.T) {
	assembleAndMatch(t, "Forward", "@LOOP\n(LOOP)\n0;JMP",
		"0000000000000001",
		"1110101010000111",
	)
}

func TestLabelNotVariable(t *testing.T) {
	asm := assembler.New()
	words, err := asm.Assemble("@x\n@END\n(END)\n@x")
	require.NoError(t, err)
	assert.Equal(t, []uint16{16, 2, 16}, words)
	assert.Equal(t, map[string]uint16{"END": 2}, asm.Symbols().Labels())
}

func TestLabelsOnly(t *testing.T) {
	assembleAndMatch(t, "Empty", "")
	assembleAndMatch(t, "OnlyLabels", "(A)\n(B)\n// nothing\n")
}

func TestAddressRange(t *testing.T) {
	assembleAndMatch(t, "Max16", "@65535", "1111111111111111")
	assembleAndMatch(t, "Max15", "@32767", "0111111111111111")

	_, err := assembler.New().Assemble("@1\n@65536")
	var ee *assembler.EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 2, ee.Line)
}

func TestDuplicateDestRejected(t *testing.T) {
	_, err := assembler.New().Assemble("DD=1")
	var pe *assembler.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Msg, "duplicate destination")
}

func TestDuplicateLabels(t *testing.T) {
	src := "(X)\n@X\n(X)\n@X"

	words, err := assembler.New().Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 0}, words)

	_, err = assembler.New(assembler.WithStrictLabels(true)).Assemble(src)
	var ee *assembler.EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ee.Line)
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name, src string
		check     func(error) bool
	}{
		{"Scan", "D=1\n  ?", func(err error) bool { var e *assembler.ScanError; return errors.As(err, &e) && e.Line == 2 }},
		{"Parse", "D=1\nD=", func(err error) bool { var e *assembler.ParseError; return errors.As(err, &e) && e.Line == 2 }},
		{"Encode", "D=1\nD=A+D", func(err error) bool { var e *assembler.EncodeError; return errors.As(err, &e) && e.Line == 2 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			words, err := assembler.New().Assemble(tc.src)
			assert.Nil(t, words)
			require.Error(t, err)
			assert.True(t, tc.check(err), "unexpected error: %v", err)
		})
	}
}

func TestLoggerReceivesStages(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	asm := assembler.New(assembler.WithLogger(logrus.NewEntry(logger)))
	_, err := asm.Assemble("@40000\nD=A")
	require.NoError(t, err)

	var stages []string
	for _, e := range hook.AllEntries() {
		if s, ok := e.Data["stage"]; ok {
			stages = append(stages, fmt.Sprint(s))
		}
	}
	assert.Equal(t, []string{"scan", "parse", "labels", "encode"}, stages)
}

func TestFormatImage(t *testing.T) {
	assert.Equal(t, "", assembler.FormatImage(nil))
	assert.Equal(t, "0000000000000101\n1000000000000000\n", assembler.FormatImage([]uint16{5, 0x8000}))
}
