package life

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteState writes one line per row, '1' for a live cell and '0' for a dead one.
func (b *Board) WriteState(w io.Writer) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, b.Columns+1)
	line[b.Columns] = '\n'
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Columns; x++ {
			if b.cells[y*b.Columns+x] {
				line[x] = '1'
			} else {
				line[x] = '0'
			}
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("failed to write board row %d: %w", y, err)
		}
	}
	return bw.Flush()
}

// ReadState replaces the board contents with the state read from r.
// Rows and columns beyond the board are ignored and cells not covered
// by the input are left dead.
func (b *Board) ReadState(r io.Reader) error {
	b.Clear()
	scanner := bufio.NewScanner(r)
	for y := 0; y < b.Rows && scanner.Scan(); y++ {
		row := scanner.Text()
		for x := 0; x < b.Columns && x < len(row); x++ {
			b.cells[y*b.Columns+x] = row[x] == '1'
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read board state: %w", err)
	}
	return nil
}

// SaveStateFile writes the board state to path.
func (b *Board) SaveStateFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	if err := b.WriteState(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadStateFile reads the board state from path.
func (b *Board) LoadStateFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer file.Close()
	return b.ReadState(file)
}
