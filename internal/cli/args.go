package cli

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned for a command line with an open quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// SplitArgs splits a command line on whitespace. Text inside single or
// double quotes stays together and the quotes are removed.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
