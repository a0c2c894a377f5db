package sheet

// Spreadsheet owns the cell map and the dependency graph. It is the only
// component that writes cell state; the resolver only ever sees a read-only
// Lookup capability derived from the current map (§9's resolver/orchestrator
// coupling note).
type Spreadsheet struct {
	cells map[Index]*Cell
	graph *DependencyGraph
}

// NewSpreadsheet returns an empty spreadsheet.
func NewSpreadsheet() *Spreadsheet {
	return &Spreadsheet{
		cells: make(map[Index]*Cell),
		graph: NewDependencyGraph(),
	}
}

// GetRaw returns a cell's stored raw text.
func (s *Spreadsheet) GetRaw(idx Index) (string, bool) {
	c, ok := s.cells[idx]
	if !ok {
		return "", false
	}
	return c.Raw, true
}

// GetComputed returns a cell's last computed result.
func (s *Spreadsheet) GetComputed(idx Index) (Value, *ComputeError, bool) {
	c, ok := s.cells[idx]
	if !ok || c.Computed == nil {
		return Value{}, nil, false
	}
	return c.Computed.Value, c.Computed.Err, true
}

// GetError returns a cell's error, if its last computation failed.
func (s *Spreadsheet) GetError(idx Index) (*ComputeError, bool) {
	_, err, found := s.GetComputed(idx)
	if !found || err == nil {
		return nil, false
	}
	return err, true
}

// lookup adapts the orchestrator's own map into the resolver's Lookup
// capability.
func (s *Spreadsheet) lookup(idx Index) (Value, *ComputeError, bool) {
	return s.GetComputed(idx)
}

// AddCellAndCompute installs raw as idx's content and recomputes idx plus
// everything downstream of it.
func (s *Spreadsheet) AddCellAndCompute(idx Index, raw string) {
	s.edit(idx, raw)
}

// MutateCell replaces idx's content and recomputes idx plus everything
// downstream, in one pass — equivalent in effect to RemoveCell followed by
// AddCellAndCompute, but without an intermediate state in which dependents
// briefly observe idx as absent.
func (s *Spreadsheet) MutateCell(idx Index, raw string) {
	s.edit(idx, raw)
}

func (s *Spreadsheet) edit(idx Index, raw string) {
	parsed, perr := ParseCell(raw)
	if perr != nil {
		s.cells[idx] = &Cell{Raw: raw, Computed: &Computed{Err: perr}}
		s.graph.Clear(idx)
	} else {
		s.cells[idx] = &Cell{Raw: raw, Parsed: parsed}
		if parsed.Kind == ParsedExpr {
			s.graph.SetEdges(idx, parsed.Expr.Dependencies)
		} else {
			s.graph.Clear(idx)
		}
	}

	order := dedupIndices(append([]Index{idx}, s.graph.DependentsClosure(idx)...))
	s.runCascade(order)
}

// RemoveCell deletes idx, then recomputes everything that depended on it;
// references to the removed cell typically surface as UnfindableReference.
func (s *Spreadsheet) RemoveCell(idx Index) {
	dependents := dedupIndices(s.graph.DependentsClosure(idx))
	s.graph.Clear(idx)
	delete(s.cells, idx)
	s.runCascade(dependents)
}

// runCascade evaluates order (already in dependencies-before-dependents
// order) against the graph's current cycle membership. A cell on any cycle
// is set directly to Err(Cycle) rather than resolved — cycle membership is
// permanent until an edit to that cell, or a partner cell, breaks it, and is
// recomputed fresh for the whole graph exactly once per cascade.
func (s *Spreadsheet) runCascade(order []Index) {
	members := s.graph.cycleMembers()
	for _, idx := range order {
		cell, ok := s.cells[idx]
		if !ok {
			continue
		}
		if members[idx] {
			cell.Computed = &Computed{Err: ErrCycle}
			continue
		}
		s.evaluateCell(cell)
	}
}

func (s *Spreadsheet) evaluateCell(cell *Cell) {
	if cell.Parsed == nil {
		return // parse error already recorded in Computed; nothing to resolve
	}
	switch cell.Parsed.Kind {
	case ParsedText:
		cell.Computed = &Computed{Value: TextValue(cell.Parsed.Text)}
	case ParsedNumber:
		cell.Computed = &Computed{Value: NumberValue(cell.Parsed.Number)}
	case ParsedBool:
		cell.Computed = &Computed{Value: BoolValue(cell.Parsed.Bool)}
	case ParsedExpr:
		value, err := Resolve(cell.Parsed.Expr.AST, s.lookup)
		cell.Computed = &Computed{Value: value, Err: err}
	}
}

func dedupIndices(items []Index) []Index {
	seen := make(map[Index]bool, len(items))
	out := make([]Index, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
