package main

import (
	"bytes"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/jornb/selene/pkg/selene"
)

func TestIsScriptFile(t *testing.T) {
	if !isScriptFile("demo.lua") {
		t.Error("Expected .lua to be recognized")
	}
	if isScriptFile("demo.txt") {
		t.Error("Expected .txt to be rejected")
	}
}

func TestReplExecutesLines(t *testing.T) {
	state := selene.New(true)
	defer state.Close()

	in := strings.NewReader("x = 40\nx = x + 2\n")
	var out bytes.Buffer
	repl(state, in, &out, false)

	if got := state.Global("x").Int(); got != 42 {
		t.Errorf("Expected x=42 after the prompt session, got %d", got)
	}
}

func TestReplHistoryCommand(t *testing.T) {
	state := selene.New(true)
	defer state.Close()

	in := strings.NewReader("a = 1\nb = 2\n:history\n")
	var out bytes.Buffer
	repl(state, in, &out, true)

	text := out.String()
	if !strings.Contains(text, "a = 1") || !strings.Contains(text, "b = 2") {
		t.Errorf("history output missing entered lines: %q", text)
	}
	if strings.Contains(text, ":history") {
		t.Errorf("the history command itself was recorded: %q", text)
	}
}

func TestReplHistoryDisabled(t *testing.T) {
	state := selene.New(true)
	defer state.Close()

	// With history off, :history is handed to the VM like any other line
	// and nothing entered earlier is echoed back.
	state.ReplaceReporter(func(code lua.ApiErrorType, msg string, cause error) {})
	in := strings.NewReader("a = 1\n:history\n")
	var out bytes.Buffer
	repl(state, in, &out, false)

	if strings.Contains(out.String(), "a = 1") {
		t.Errorf("history was printed while disabled: %q", out.String())
	}
}
