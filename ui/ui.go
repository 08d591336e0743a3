// Package ui holds the console status helpers shared by the pipeline
// commands: colored check/cross/warning lines and section headers.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	header = color.New(color.FgMagenta, color.Bold)
)

const headerWidth = 60

// Header prints a boxed section title.
func Header(title string) {
	rule := strings.Repeat("=", headerWidth)
	header.Println()
	header.Println(rule)
	header.Println(center(title, headerWidth))
	header.Println(rule)
	fmt.Println()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func Success(format string, args ...any) {
	green.Printf("✓ "+format+"\n", args...)
}

func Failure(format string, args ...any) {
	red.Printf("✗ "+format+"\n", args...)
}

func Warn(format string, args ...any) {
	yellow.Printf("⚠ "+format+"\n", args...)
}

func Info(format string, args ...any) {
	cyan.Printf("ℹ "+format+"\n", args...)
}
