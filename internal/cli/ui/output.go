package ui

import (
	"fmt"
	"io"
)

// Print functions for consistent output

func Error(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// SectionHeader prints a title with an item count.
func SectionHeader(w io.Writer, title string, count int) {
	fmt.Fprintf(w, "%s %s\n", BoldStyle.Render(title), DimStyle.Render(fmt.Sprintf("(%d)", count)))
}
