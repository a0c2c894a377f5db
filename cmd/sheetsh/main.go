// Command sheetsh is a line-editing REPL front-end for the spreadsheet
// engine in internal/sheet. It is a thin, external collaborator: it reads a
// cell's raw text, computed value, or error, and submits add/mutate/remove
// operations keyed by cell index, exactly the contract internal/sheet
// exposes. Quitting discards the sheet — there is no persistence layer to
// save into.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/DorukCem/mini-spreadsheet/internal/sheet"
)

var (
	flagPrompt  = pflag.StringP("prompt", "p", "sheet> ", "prompt string shown at each line")
	flagColWide = pflag.IntP("width", "w", 10, "column width used by dump")
	flagScript  = pflag.StringP("script", "s", "", "a file of newline-separated commands to run at startup")
)

func main() {
	pflag.Parse()

	rl, err := readline.NewEx(&readline.Config{Prompt: *flagPrompt})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sheetsh: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	s := sheet.NewSpreadsheet()

	if *flagScript != "" {
		if err := runScriptFile(s, *flagScript, rl); err != nil {
			fmt.Fprintf(os.Stderr, "sheetsh: %v\n", err)
			os.Exit(1)
		}
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return
			}
			fmt.Fprintf(os.Stderr, "sheetsh: %v\n", err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := handleLine(s, line, *flagColWide); quit {
			return
		}
	}
}

func runScriptFile(s *sheet.Spreadsheet, path string, rl *readline.Instance) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script %s: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		handleLine(s, line, *flagColWide)
	}
	return nil
}

// handleLine dispatches one REPL command. Commands:
//
//	set <cell> <raw>    add or mutate a cell
//	rm <cell>           remove a cell
//	get <cell>          print raw, computed value/error
//	dump                print every populated cell, sorted
//	quit / :q           exit
func handleLine(s *sheet.Spreadsheet, line string, colWidth int) (quit bool) {
	fields := strings.SplitN(line, " ", 3)
	switch fields[0] {
	case "quit", ":q", "exit":
		return true
	case "set":
		if len(fields) < 3 {
			fmt.Println("usage: set <cell> <raw>")
			return false
		}
		idx, ok := sheet.StringToIndex(strings.ToUpper(fields[1]))
		if !ok {
			fmt.Printf("invalid cell reference %q\n", fields[1])
			return false
		}
		s.AddCellAndCompute(idx, fields[2])
		rememberCell(fields[1])
		printCell(s, idx, fields[1])
	case "rm":
		if len(fields) < 2 {
			fmt.Println("usage: rm <cell>")
			return false
		}
		idx, ok := sheet.StringToIndex(strings.ToUpper(fields[1]))
		if !ok {
			fmt.Printf("invalid cell reference %q\n", fields[1])
			return false
		}
		s.RemoveCell(idx)
	case "get":
		if len(fields) < 2 {
			fmt.Println("usage: get <cell>")
			return false
		}
		idx, ok := sheet.StringToIndex(strings.ToUpper(fields[1]))
		if !ok {
			fmt.Printf("invalid cell reference %q\n", fields[1])
			return false
		}
		printCell(s, idx, fields[1])
	case "dump":
		dumpSheet(s, colWidth)
	default:
		fmt.Printf("unknown command %q\n", fields[0])
	}
	return false
}

func printCell(s *sheet.Spreadsheet, idx sheet.Index, label string) {
	raw, found := s.GetRaw(idx)
	if !found {
		fmt.Printf("%s: <empty>\n", label)
		return
	}
	value, err, _ := s.GetComputed(idx)
	if err != nil {
		fmt.Printf("%s: %q -> Err(%s)\n", label, raw, err.Kind())
		return
	}
	fmt.Printf("%s: %q -> %s\n", label, raw, formatValue(value))
}

func formatValue(v sheet.Value) string {
	switch v.Kind {
	case sheet.ValueNumber:
		return fmt.Sprintf("%g", v.Number)
	case sheet.ValueText:
		return v.Text
	case sheet.ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return "<unknown>"
	}
}

func dumpSheet(s *sheet.Spreadsheet, colWidth int) {
	type row struct {
		label string
		idx   sheet.Index
	}
	var rows []row
	// The engine keeps no enumeration of populated cells for us — sheetsh
	// tracks its own seen-set as it issues "set" commands.
	for _, label := range seenCells {
		idx, ok := sheet.StringToIndex(strings.ToUpper(label))
		if !ok {
			continue
		}
		if _, found := s.GetRaw(idx); found {
			rows = append(rows, row{label: label, idx: idx})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].idx.Y != rows[j].idx.Y {
			return rows[i].idx.Y < rows[j].idx.Y
		}
		return rows[i].idx.X < rows[j].idx.X
	})
	for _, r := range rows {
		printCell(s, r.idx, pad(r.label, colWidth))
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var seenCells []string

func rememberCell(label string) {
	for _, l := range seenCells {
		if l == label {
			return
		}
	}
	seenCells = append(seenCells, label)
}
