package sheet

import "fmt"

// Script is a fluent wrapper around Spreadsheet for building up a sequence
// of edits in one expression, in the style of the teacher's
// RunnableSpreadsheet builder — adapted here since every Spreadsheet edit
// already computes synchronously, so there is no separate Calculate/Run
// step, only a chain of Set/Remove/Then calls terminating in the sheet
// itself or a read.
type Script struct {
	sheet  *Spreadsheet
	printf func(string, ...any)
}

// NewScript starts a fluent script over a fresh spreadsheet. printf, if
// nil, defaults to fmt.Printf (used by Log).
func NewScript(printf func(string, ...any)) *Script {
	if printf == nil {
		printf = fmt.Printf
	}
	return &Script{sheet: NewSpreadsheet(), printf: printf}
}

// Set parses cellRef (e.g. "A1") and installs raw, cascading recomputation.
func (s *Script) Set(cellRef, raw string) *Script {
	idx, ok := StringToIndex(cellRef)
	if !ok {
		s.printf("invalid cell reference %q\n", cellRef)
		return s
	}
	s.sheet.AddCellAndCompute(idx, raw)
	return s
}

// Remove deletes cellRef, cascading recomputation over its former dependents.
func (s *Script) Remove(cellRef string) *Script {
	idx, ok := StringToIndex(cellRef)
	if !ok {
		s.printf("invalid cell reference %q\n", cellRef)
		return s
	}
	s.sheet.RemoveCell(idx)
	return s
}

// Log prints cellRef's raw text, computed value or error.
func (s *Script) Log(cellRef string) *Script {
	idx, ok := StringToIndex(cellRef)
	if !ok {
		s.printf("invalid cell reference %q\n", cellRef)
		return s
	}
	raw, found := s.sheet.GetRaw(idx)
	if !found {
		s.printf("%s: <empty>\n", cellRef)
		return s
	}
	value, err, _ := s.sheet.GetComputed(idx)
	if err != nil {
		s.printf("%s: %q -> Err(%s)\n", cellRef, raw, err.Kind())
		return s
	}
	s.printf("%s: %q -> %s\n", cellRef, raw, formatValue(value))
	return s
}

// Then runs fn against this script, for grouping a batch of edits under one
// name without breaking the chain.
func (s *Script) Then(fn func(*Script) *Script) *Script {
	return fn(s)
}

// If runs fn only when condition holds.
func (s *Script) If(condition bool, fn func(*Script) *Script) *Script {
	if condition {
		return fn(s)
	}
	return s
}

// Sheet returns the underlying spreadsheet for direct reads.
func (s *Script) Sheet() *Spreadsheet {
	return s.sheet
}

func formatValue(v Value) string {
	switch v.Kind {
	case ValueNumber:
		return fmt.Sprintf("%g", v.Number)
	case ValueText:
		return v.Text
	case ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return "<unknown>"
	}
}
