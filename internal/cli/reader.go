package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads lines from an input stream and gives up as soon as the
// context is canceled.
type LineReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewLineReader creates a line reader over r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}

	return &LineReader{
		reader: bufio.NewReader(r),
	}
}

// ReadLine returns the next line without its trailing newline and
// surrounding whitespace. A final line without a newline is returned with a
// nil error; io.EOF is returned once no input remains.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: value, err: err}
	}()

	// The read goroutine keeps running after cancellation; its line is dropped.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Prompt writes prompt to w and reads the answer.
func (r *LineReader) Prompt(ctx context.Context, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return r.ReadLine(ctx)
}
