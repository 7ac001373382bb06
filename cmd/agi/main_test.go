package main

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "2.089")
	assert.Contains(t, out, "3.002.149")
	assert.Contains(t, out, "0xb7")
}

func TestDisasmCommand(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte{0x65, 0x01, 0x00})
	w.Close()

	p := filepath.Join(t.TempDir(), "000.bin.gz")
	require.NoError(t, os.WriteFile(p, gz.Bytes(), 0o644))

	out, err := execute(t, "disasm", p)
	require.NoError(t, err)
	assert.Equal(t, "0000  print(m1)\n0002  return\n", out)

	_, err = execute(t, "disasm", filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

func TestRunCommand_NoGame(t *testing.T) {
	t.Setenv("AGI_GAME", "")
	_, err := execute(t, "run")
	assert.EqualError(t, err, "no game given")
}
