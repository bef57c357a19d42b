package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	assistantColor = color.New(color.FgCyan)
	successColor   = color.New(color.FgGreen)
	errorColor     = color.New(color.FgRed)
)

// Spinner は応答待ちの間に表示するスピナーです。
type Spinner struct {
	spinner *spinner.Spinner
}

// NewSpinner は message を表示するスピナーを作成します。
func NewSpinner(w io.Writer, message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	return &Spinner{spinner: s}
}

func (s *Spinner) Start() {
	s.spinner.Start()
}

func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// Assistant はアシスタントの発言を表示します。
func Assistant(w io.Writer, text string) {
	assistantColor.Fprintf(w, "🖍  %s\n", text)
}

// Success は成功メッセージを表示します。
func Success(w io.Writer, format string, args ...interface{}) {
	successColor.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

// Error はエラーメッセージを表示します。
func Error(w io.Writer, format string, args ...interface{}) {
	errorColor.Fprintf(w, "✗ %s\n", fmt.Sprintf(format, args...))
}
