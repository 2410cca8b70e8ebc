package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes records to a CSV file. The header is written on creation.
type Writer struct {
	file   *os.File
	writer *csv.Writer
	count  int
}

// Create makes parent directories, truncates path and writes the header.
func Create(path string, header []string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	return &Writer{file: f, writer: w}, nil
}

// Write appends one record.
func (w *Writer) Write(record []string) error {
	if err := w.writer.Write(record); err != nil {
		return fmt.Errorf("write csv record: %w", err)
	}
	w.count++
	return nil
}

// Count is the number of data records written.
func (w *Writer) Count() int {
	return w.count
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush csv writer: %w", err)
	}
	return w.file.Close()
}

// WriteFile writes a header and all records to path in one go.
func WriteFile(path string, header []string, records [][]string) error {
	w, err := Create(path, header)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
