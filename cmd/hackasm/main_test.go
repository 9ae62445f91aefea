package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/hack/assembler"
	"github.com/Urethramancer/hack/config"
)

func TestRunWritesImage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Add.asm")
	require.NoError(t, os.WriteFile(input, []byte("@2\nD=A\n@3\nD=D+A\n@0\nM=D\n"), 0644))

	output := config.OutputPath(input, ".hack")
	require.NoError(t, run(assembler.New(), input, output, false))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "0000000000000010\n1110110000010000\n0000000000000011\n1110000010010000\n0000000000000000\n1110001100001000\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary file left behind")
}

func TestRunRaw(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "One.asm")
	require.NoError(t, os.WriteFile(input, []byte("@1\n"), 0644))

	output := filepath.Join(dir, "One.bin")
	require.NoError(t, run(assembler.New(), input, output, true))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1}, data)
}

func TestRunFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Bad.asm")
	require.NoError(t, os.WriteFile(input, []byte("@1\nDD=1\n"), 0644))

	output := config.OutputPath(input, ".hack")
	assert.Error(t, run(assembler.New(), input, output, false))
	assert.NoFileExists(t, output)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run(assembler.New(), filepath.Join(dir, "nope.asm"), filepath.Join(dir, "nope.hack"), false)
	assert.Error(t, err)
}
