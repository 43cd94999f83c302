package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
)

// maxLineSize bounds a single export line. Publication lines carry full post
// text, so the default scanner buffer is too small.
const maxLineSize = 4 * 1024 * 1024

// readLines streams the non-blank lines of a line-delimited JSON export
// through decode. A line that fails to decode aborts the read: the exports
// are produced by a controlled upstream, so a corrupt line means the whole
// file is suspect.
func readLines(path string, decode func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := decode(line); err != nil {
			return fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
