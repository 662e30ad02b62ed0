package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParserSelectsVersionCommand(t *testing.T) {
	ctx, err := newParser().Parse(Classify([]string{"version"}))
	assert.NoError(t, err)
	assert.Equal(t, "version", ctx.Command())
}

func TestHelpSubcommandPrintsUsage(t *testing.T) {
	parser := newParser()
	var buf bytes.Buffer
	parser.Stdout = &buf
	exited := false
	parser.Exit = func(int) { exited = true }
	parser.Parse(Classify([]string{"help"}))
	assert.True(t, exited)
	assert.True(t, strings.Contains(buf.String(), "Usage:"))
}
