// Package ingestor reads and writes integer sequences as text.
//
// Input is a list of signed decimal integers separated by whitespace and/or
// commas. Blank lines and lines starting with '#' are ignored.
package ingestor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single input line; one-line inputs of a few million
// values are common.
const maxLineSize = 64 << 20

// ParseInts reads every integer from r in order.
func ParseInts(r io.Reader) ([]int, error) {
	var values []int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, isSeparator)
		for _, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q at line %d: %w", field, lineNum, err)
			}
			values = append(values, v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return values, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// ReadFile parses the integers in the named file. The path "-" reads stdin.
func ReadFile(path string) ([]int, error) {
	if path == "" || path == "-" {
		return ParseInts(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	values, err := ParseInts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// WriteInts writes values one per line.
func WriteInts(w io.Writer, values []int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for _, v := range values {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes values to the named file, one per line. The path "-"
// writes to stdout.
func WriteFile(path string, values []int) error {
	if path == "" || path == "-" {
		return WriteInts(os.Stdout, values)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output %s: %w", path, err)
	}
	if err := WriteInts(f, values); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
