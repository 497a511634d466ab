package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// maxLineLength bounds a single record, padding included.
const maxLineLength = 1 << 20

var errNotFinite = errors.New("not a finite number")

// normalizeDecimal turns a decimal-comma number ("0,35") into Go syntax ("0.35").
func normalizeDecimal(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// parseLine converts one record into its (x, y) pair.
// Fields after the second are ignored.
func parseLine(lineNo int, line string) (float64, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, &LineError{Line: lineNo, Err: fmt.Errorf("expected 2 fields, found %d", len(fields))}
	}

	x, err := strconv.ParseFloat(normalizeDecimal(fields[0]), 64)
	if err != nil {
		return 0, 0, &LineError{Line: lineNo, Token: fields[0], Err: errors.Unwrap(err)}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0, &LineError{Line: lineNo, Token: fields[0], Err: errNotFinite}
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, &LineError{Line: lineNo, Token: fields[1], Err: errors.Unwrap(err)}
	}
	return x, y, nil
}

// ReadSamples parses every line of r. The first malformed line aborts
// parsing and no samples are returned.
func ReadSamples(r io.Reader) (*Samples, error) {
	samples := NewSamples(64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		x, y, err := parseLine(lineNo, scanner.Text())
		if err != nil {
			return nil, err
		}
		samples.Append(x, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	return samples, nil
}

// ParseSamplesFile opens path, parses it and closes it before returning.
func ParseSamplesFile(path string) (*Samples, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	samples, err := ReadSamples(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// formatDecimal renders x with a decimal comma, the inverse of normalizeDecimal.
func formatDecimal(x float64) string {
	return strings.Replace(strconv.FormatFloat(x, 'f', -1, 64), ".", ",", 1)
}

// WriteSamples writes samples in the format ReadSamples accepts.
func WriteSamples(w io.Writer, samples *Samples) error {
	if len(samples.X) != len(samples.Y) {
		return fmt.Errorf("column length mismatch: %d x values, %d y values", len(samples.X), len(samples.Y))
	}
	bw := bufio.NewWriter(w)
	for i := range samples.X {
		if _, err := fmt.Fprintf(bw, "%s %d\n", formatDecimal(samples.X[i]), samples.Y[i]); err != nil {
			return fmt.Errorf("failed to write sample %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

// WriteSamplesFile creates (or truncates) path and writes samples to it.
func WriteSamplesFile(path string, samples *Samples) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create data file: %w", err)
	}
	if err := WriteSamples(file, samples); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
