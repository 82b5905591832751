package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	return ReadMatching(path, maxLines, "")
}

// ReadMatching is Read restricted to lines containing match, ignoring case.
// Use it to pull every log line for one request id.
func ReadMatching(path string, maxLines int, match string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	needle := strings.ToLower(strings.TrimSpace(match))
	ring := newRing(maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if needle != "" && !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		ring.push(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return ring.lines(), nil
}

// ring keeps the newest limit lines; limit <= 0 keeps everything.
type ring struct {
	limit int
	buf   []string
	next  int
	full  bool
}

func newRing(limit int) *ring {
	r := &ring{limit: limit}
	if limit > 0 {
		r.buf = make([]string, limit)
	}
	return r
}

func (r *ring) push(line string) {
	if r.limit <= 0 {
		r.buf = append(r.buf, line)
		return
	}
	r.buf[r.next] = line
	r.next = (r.next + 1) % r.limit
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring) lines() []string {
	if r.limit <= 0 {
		return r.buf
	}
	if !r.full {
		out := make([]string, r.next)
		copy(out, r.buf[:r.next])
		return out
	}
	out := make([]string, 0, r.limit)
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}
