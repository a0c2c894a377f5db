package sheet

import "fmt"

// ASTError is returned by BuildAST when the token sequence cannot be
// shaped into a valid expression tree.
type ASTError struct {
	msg string
}

func (e *ASTError) Error() string { return e.msg }

func astErrorf(format string, args ...any) *ASTError {
	return &ASTError{msg: fmt.Sprintf(format, args...)}
}

// opStackEntry is either a binary/unary operator, a plain grouping "(", or
// the "(" that opens a function call's argument list.
type opStackEntry struct {
	isLParen    bool
	isFuncStart bool
	funcName    string
	binOp       BinOp
	unOp        UnOp
	isUnary     bool
}

// funcFrame tracks the in-progress argument list for one open function call.
type funcFrame struct {
	name     string
	args     []Node
	sawToken bool // whether any token has been seen since the last comma/open
}

// BuildAST runs the shunting-yard algorithm over tokens, producing a single
// expression tree. It implements the grammar from §4.2: binary operators at
// six precedence levels plus unary "!" above them, grouping parentheses, function calls with
// comma-separated arguments, and "From:To" ranges recognized wherever a
// cell name may appear.
func BuildAST(tokens []Token) (Node, error) {
	p := &astBuilder{tokens: tokens}
	node, err := p.run()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, astErrorf("UnexpectedToken")
	}
	return node, nil
}

type astBuilder struct {
	tokens    []Token
	pos       int
	output    []Node
	operators []opStackEntry
	funcs     []*funcFrame
}

func (p *astBuilder) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *astBuilder) run() (Node, error) {
	expectOperand := true

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}

		if expectOperand {
			switch tok.Type {
			case TokNot:
				p.operators = append(p.operators, opStackEntry{isUnary: true, unOp: UnNot})
				p.pos++
				continue
			case TokLParen:
				p.operators = append(p.operators, opStackEntry{isLParen: true})
				p.pos++
				continue
			case TokNumber:
				p.output = append(p.output, &ValueNode{Value: NumberValue(tok.Num)})
				p.pos++
				expectOperand = false
				continue
			case TokText:
				p.output = append(p.output, &ValueNode{Value: TextValue(tok.Text)})
				p.pos++
				expectOperand = false
				continue
			case TokBool:
				p.output = append(p.output, &ValueNode{Value: BoolValue(tok.Bool)})
				p.pos++
				expectOperand = false
				continue
			case TokCellName:
				node, err := p.consumeCellOrRange(tok)
				if err != nil {
					return nil, err
				}
				p.output = append(p.output, node)
				p.pos++
				expectOperand = false
				continue
			case TokFunctionName:
				p.pos++
				if nxt, ok := p.peek(); !ok || nxt.Type != TokLParen {
					return nil, astErrorf("UnexpectedToken")
				}
				p.pos++ // consume '('
				p.operators = append(p.operators, opStackEntry{isLParen: true, isFuncStart: true, funcName: tok.Text})
				p.funcs = append(p.funcs, &funcFrame{name: tok.Text})
				// zero-argument call: FUNC()
				if nxt, ok := p.peek(); ok && nxt.Type == TokRParen {
					if err := p.closeParen(false); err != nil {
						return nil, err
					}
					p.pos++
					expectOperand = false
					continue
				}
				continue
			default:
				return nil, astErrorf("UnexpectedToken")
			}
		}

		// expecting a binary operator, ',', or ')'
		switch tok.Type {
		case TokArgSeparator:
			if len(p.funcs) == 0 {
				return nil, astErrorf("UnexpectedToken")
			}
			if err := p.popOperatorsUntilLParen(); err != nil {
				return nil, err
			}
			if err := p.commitArg(); err != nil {
				return nil, err
			}
			p.pos++
			expectOperand = true
			continue
		case TokRParen:
			if err := p.closeParen(true); err != nil {
				return nil, err
			}
			p.pos++
			expectOperand = false
			continue
		default:
			if !isBinaryOperator(tok.Type) {
				return nil, astErrorf("UnexpectedToken")
			}
			if err := p.pushBinaryOperator(tok.Type); err != nil {
				return nil, err
			}
			p.pos++
			expectOperand = true
			continue
		}
	}

	if expectOperand {
		return nil, astErrorf("UnexpectedToken")
	}

	for len(p.operators) > 0 {
		top := p.operators[len(p.operators)-1]
		if top.isLParen {
			return nil, astErrorf("MismatchedParentheses")
		}
		if err := p.applyTop(); err != nil {
			return nil, err
		}
	}

	if len(p.funcs) != 0 {
		return nil, astErrorf("MismatchedParentheses")
	}
	if len(p.output) != 1 {
		return nil, astErrorf("UnexpectedToken")
	}
	return p.output[0], nil
}

// consumeCellOrRange turns a CellName token into a CellNameNode, or, if
// immediately followed by ":" and a second CellName, a RangeNode.
func (p *astBuilder) consumeCellOrRange(tok Token) (Node, error) {
	idx, ok := StringToIndex(tok.Text)
	if !ok {
		return nil, astErrorf("InvalidRange")
	}
	if nxt, ok := p.peek2(1); ok && nxt.Type == TokRangeSep {
		endTok, ok := p.peek2(2)
		if !ok || endTok.Type != TokCellName {
			return nil, astErrorf("InvalidRange")
		}
		toIdx, ok := StringToIndex(endTok.Text)
		if !ok {
			return nil, astErrorf("InvalidRange")
		}
		p.pos += 2 // consume ':' and the second cell name (plus the loop's own pos++)
		return &RangeNode{From: idx, To: toIdx}, nil
	}
	return &CellNameNode{Ref: idx}, nil
}

func (p *astBuilder) peek2(offset int) (Token, bool) {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[i], true
}

func (p *astBuilder) pushBinaryOperator(t TokenType) error {
	prec, _ := binaryPrecedence(t)
	for len(p.operators) > 0 {
		top := p.operators[len(p.operators)-1]
		if top.isLParen {
			break
		}
		var topPrec int
		if top.isUnary {
			topPrec = precUnary
		} else {
			topPrec, _ = binaryPrecedenceFromOp(top.binOp)
		}
		// left-associative: fold equal precedence before pushing.
		if topPrec < prec {
			break
		}
		if err := p.applyTop(); err != nil {
			return err
		}
	}
	p.operators = append(p.operators, opStackEntry{binOp: tokenToBinOp(t)})
	return nil
}

func (p *astBuilder) popOperatorsUntilLParen() error {
	for len(p.operators) > 0 {
		top := p.operators[len(p.operators)-1]
		if top.isLParen {
			return nil
		}
		if err := p.applyTop(); err != nil {
			return err
		}
	}
	return astErrorf("MismatchedParentheses")
}

// commitArg moves the single completed expression on the output stack into
// the current function frame's argument list.
func (p *astBuilder) commitArg() error {
	if len(p.output) == 0 {
		return astErrorf("UnexpectedToken")
	}
	frame := p.funcs[len(p.funcs)-1]
	frame.args = append(frame.args, p.output[len(p.output)-1])
	p.output = p.output[:len(p.output)-1]
	return nil
}

// closeParen handles a ")" — either plain grouping or the end of a
// function call's argument list. hasArg tells it whether the call being
// closed has a pending final argument value sitting on the output stack
// (false only for the zero-argument "FUNC()" special case).
func (p *astBuilder) closeParen(hasArg bool) error {
	if err := p.popOperatorsUntilLParen(); err != nil {
		return err
	}
	if len(p.operators) == 0 {
		return astErrorf("MismatchedParentheses")
	}
	top := p.operators[len(p.operators)-1]
	p.operators = p.operators[:len(p.operators)-1]

	if !top.isFuncStart {
		return nil // plain grouping parenthesis: leaves its single value on output
	}

	frame := p.funcs[len(p.funcs)-1]
	p.funcs = p.funcs[:len(p.funcs)-1]
	if hasArg {
		if len(p.output) == 0 {
			return astErrorf("UnexpectedToken")
		}
		frame.args = append(frame.args, p.output[len(p.output)-1])
		p.output = p.output[:len(p.output)-1]
	}
	p.output = append(p.output, &FunctionCallNode{Name: top.funcName, Arguments: frame.args})
	return nil
}

func (p *astBuilder) applyTop() error {
	top := p.operators[len(p.operators)-1]
	p.operators = p.operators[:len(p.operators)-1]

	if top.isUnary {
		if len(p.output) < 1 {
			return astErrorf("UnexpectedToken")
		}
		expr := p.output[len(p.output)-1]
		p.output = p.output[:len(p.output)-1]
		p.output = append(p.output, &UnaryOpNode{Op: top.unOp, Expr: expr})
		return nil
	}

	if len(p.output) < 2 {
		return astErrorf("UnexpectedToken")
	}
	right := p.output[len(p.output)-1]
	left := p.output[len(p.output)-2]
	p.output = p.output[:len(p.output)-2]
	p.output = append(p.output, &BinaryOpNode{Op: top.binOp, Left: left, Right: right})
	return nil
}

func tokenToBinOp(t TokenType) BinOp {
	switch t {
	case TokPlus:
		return BinAdd
	case TokMinus:
		return BinSub
	case TokMultiply:
		return BinMul
	case TokDivision:
		return BinDiv
	case TokEquals:
		return BinEq
	case TokNotEquals:
		return BinNeq
	case TokGreaterThan:
		return BinGt
	case TokLessThan:
		return BinLt
	case TokGreaterEquals:
		return BinGe
	case TokLessEquals:
		return BinLe
	case TokAnd:
		return BinAnd
	default:
		return BinOr
	}
}

func binaryPrecedenceFromOp(op BinOp) (int, bool) {
	switch op {
	case BinOr:
		return precOr, true
	case BinAnd:
		return precAnd, true
	case BinEq, BinNeq:
		return precEquality, true
	case BinGt, BinLt, BinGe, BinLe:
		return precRelational, true
	case BinAdd, BinSub:
		return precAdditive, true
	case BinMul, BinDiv:
		return precMultiplicative, true
	default:
		return 0, false
	}
}
