// Package cli provides the terminal front end: styled output, line input and
// the interactive command shell.
package cli

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#2E9E6B")
	// SuccessColor indicates successful operations and healthy budgets.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates overspending and unsaved changes.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates rejected commands.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor is used for rules and hints.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// HeadingStyle is used for sub-section headings.
	HeadingStyle = lipgloss.NewStyle().
			Bold(true)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	CheckIcon   = "✅"
	MoneyIcon   = "💰"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + "  " + message)
}

// FormatTitle formats a title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatPrompt formats a prompt.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt)
}

// FormatMoney renders an amount with a dollar sign and two decimals.
func FormatMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
