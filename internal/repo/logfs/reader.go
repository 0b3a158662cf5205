package logfs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

const (
	ctxCheckEvery = 1024
	// maxLineBytes caps how much of a single line is kept; the rest is discarded.
	maxLineBytes = 1 << 20
)

// tailLines returns the last n lines of r in file order. The whole input is read
// forward through a ring of n lines, so memory stays at n * maxLineBytes at most.
func tailLines(ctx context.Context, r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	ring := make([]string, n)
	total := 0
	br := bufio.NewReader(r)

	for {
		line, err := readLine(br)
		if len(line) > 0 {
			ring[total%n] = strings.TrimRight(line, "\r\n")
			total++
			if total%ctxCheckEvery == 0 {
				if cerr := ctx.Err(); cerr != nil {
					return nil, cerr
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if total <= n {
		return ring[:total], nil
	}

	start := total % n
	out := make([]string, 0, n)
	out = append(out, ring[start:]...)
	out = append(out, ring[:start]...)
	return out, nil
}

// readLine reads through the next newline, keeping at most maxLineBytes of it.
func readLine(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if room := maxLineBytes - len(buf); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			buf = append(buf, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return string(buf), err
	}
}
