package iocli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Подменяет os.Stdin на pipe с заданным содержимым
func stubStdin(t *testing.T, input string) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte(input))
		_ = w.Close()
	}()

	oldStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = oldStdin })
	os.Stdin = r
}

func TestReadInput_TrimsWhitespace(t *testing.T) {
	stubStdin(t, "  collector@example.com  \n")

	stdio := NewStdio()

	result, err := stdio.ReadInput("Email: ")
	require.NoError(t, err)
	assert.Equal(t, "collector@example.com", result)
}

func TestReadInput_SequentialReads(t *testing.T) {
	stubStdin(t, "first\nsecond\n")

	stdio := NewStdio()

	first, err := stdio.ReadInput("> ")
	require.NoError(t, err)
	second, err := stdio.ReadInput("> ")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestWrite_GoesToStdout(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	oldStdout := os.Stdout
	defer func() { os.Stdout = oldStdout }()
	os.Stdout = w

	stdio := NewStdio()
	n, err := stdio.Write([]byte("цена: 42000\n"))

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	require.NoError(t, err)
	assert.Equal(t, len("цена: 42000\n"), n)

	captured, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "цена: 42000\n", string(captured))
}

func TestPrintHelpers_DoNotPanic(t *testing.T) {
	stdio := NewStdio()

	assert.NotPanics(t, func() {
		stdio.Println("Николай II", 1897)
		stdio.Printf("%s %d\n", "рубль", 1897)
	})
}
