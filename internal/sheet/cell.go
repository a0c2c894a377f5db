package sheet

import "strconv"

// ParsedKind tags the classification a raw cell string resolves to (C3).
type ParsedKind uint8

const (
	ParsedText ParsedKind = iota
	ParsedNumber
	ParsedBool
	ParsedExpr
)

// Expression is a parsed formula: its expression tree plus the deduplicated
// set of cell indices it references, including those expanded from ranges.
type Expression struct {
	AST          Node
	Dependencies map[Index]struct{}
}

// ParsedCell is the classified form of a cell's raw text.
type ParsedCell struct {
	Kind   ParsedKind
	Text   string
	Number float64
	Bool   bool
	Expr   *Expression
}

// Computed is the cached result of evaluating a cell: either a Value or a
// ComputeError, never both.
type Computed struct {
	Value Value
	Err   *ComputeError
}

// Cell is the stored state of one spreadsheet slot. A Cell only exists in
// the map once it has been written; parsed/computed are both nil only in
// the reserved state described in the data model (never produced by normal
// edits through Spreadsheet).
type Cell struct {
	Raw      string
	Parsed   *ParsedCell
	Computed *Computed
}

// ParseCell classifies a non-empty raw cell string (C3). Empty strings must
// never reach this function — empty cells are removed, not parsed.
func ParseCell(raw string) (*ParsedCell, *ComputeError) {
	c := raw[0]

	if c == '=' {
		return parseFormula(raw[1:])
	}

	if isDigit(c) || c == '+' || c == '-' {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, newParseError("invalid number literal %q", raw)
		}
		return &ParsedCell{Kind: ParsedNumber, Number: f}, nil
	}

	if raw == "TRUE" {
		return &ParsedCell{Kind: ParsedBool, Bool: true}, nil
	}
	if raw == "FALSE" {
		return &ParsedCell{Kind: ParsedBool, Bool: false}, nil
	}

	return &ParsedCell{Kind: ParsedText, Text: raw}, nil
}

func parseFormula(body string) (*ParsedCell, *ComputeError) {
	tokens, err := Tokenize(body)
	if err != nil {
		return nil, newParseError("%s", err.Error())
	}
	if len(tokens) == 0 {
		return nil, newParseError("empty formula")
	}
	ast, err := BuildAST(tokens)
	if err != nil {
		return nil, newParseError("%s", err.Error())
	}

	deps := make(map[Index]struct{})
	collectDependencies(ast, deps)

	return &ParsedCell{Kind: ParsedExpr, Expr: &Expression{AST: ast, Dependencies: deps}}, nil
}

// collectDependencies walks ast, recording every referenced Index,
// expanding Range nodes into their member cells.
func collectDependencies(node Node, out map[Index]struct{}) {
	switch n := node.(type) {
	case *ValueNode:
		// no references
	case *CellNameNode:
		out[n.Ref] = struct{}{}
	case *RangeNode:
		for idx := range EnumerateRange(n.From, n.To) {
			out[idx] = struct{}{}
		}
	case *UnaryOpNode:
		collectDependencies(n.Expr, out)
	case *BinaryOpNode:
		collectDependencies(n.Left, out)
		collectDependencies(n.Right, out)
	case *FunctionCallNode:
		for _, arg := range n.Arguments {
			collectDependencies(arg, out)
		}
	}
}
