// Package sink delivers generated passwords to the clipboard and save files.
package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SingleFileName is the save file used for single-password saves.
const SingleFileName = "saved_password.txt"

// BatchFileName returns the save file name for a batch of count passwords.
func BatchFileName(count int) string {
	return fmt.Sprintf("%d_passwords.txt", count)
}

// SinglePath returns the single-save path inside dir.
func SinglePath(dir string) string {
	return filepath.Join(dir, SingleFileName)
}

// BatchPath returns the batch-save path inside dir.
func BatchPath(dir string, count int) string {
	return filepath.Join(dir, BatchFileName(count))
}

// AppendLine appends line and a newline to the file at path.
func AppendLine(path, line string) error {
	return AppendLines(path, []string{line})
}

// AppendLines appends each line, newline-terminated, in order.
func AppendLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create save dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// ReadLines reads one password per line from the provided file path.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only save file.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
