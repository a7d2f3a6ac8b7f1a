package calendar

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a calendar override file
type File struct {
	ShoppingSundays []string `yaml:"shopping_sundays"`
}

// LoadFile reads a calendar override file and builds a table from it
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode parses a YAML calendar document. Every entry must be a valid
// YYYY-MM-DD date; the first bad entry fails the whole document.
func Decode(r io.Reader) (*Table, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}
	if len(file.ShoppingSundays) == 0 {
		return nil, fmt.Errorf("calendar has no shopping_sundays entries")
	}

	dates := make([]Date, 0, len(file.ShoppingSundays))
	for i, s := range file.ShoppingSundays {
		d, err := ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		dates = append(dates, d)
	}
	return NewTable(dates)
}

// Encode writes t as a YAML calendar document
func Encode(w io.Writer, t *Table) error {
	file := File{ShoppingSundays: make([]string, 0, t.Len())}
	for _, d := range t.dates {
		file.ShoppingSundays = append(file.ShoppingSundays, d.String())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return err
	}
	return enc.Close()
}
