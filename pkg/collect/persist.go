package collect

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON writes t's solutions (sorted, per Table.Solutions) as JSON to path.
func WriteJSON(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("collect.WriteJSON: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Solutions())
}

// WriteGob writes t's solutions as a gob stream to path.
func WriteGob(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("collect.WriteGob: %w", err)
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(t.Solutions())
}

// ReadGob reads a gob stream of solutions previously written by WriteGob
// into a fresh Table.
func ReadGob(r io.Reader) (*Table, error) {
	var sols []Solution
	if err := gob.NewDecoder(r).Decode(&sols); err != nil {
		return nil, fmt.Errorf("collect.ReadGob: %w", err)
	}
	t := NewTable()
	t.solutions = sols
	return t, nil
}
