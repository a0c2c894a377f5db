package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLiterals(t *testing.T) {
	toks, err := Tokenize(`1 + 2.5 - "hi" && TRUE`)
	require.NoError(t, err)
	require.Len(t, toks, 7)
	assert.Equal(t, TokNumber, toks[0].Type)
	assert.Equal(t, 1.0, toks[0].Num)
	assert.Equal(t, TokPlus, toks[1].Type)
	assert.Equal(t, TokNumber, toks[2].Type)
	assert.Equal(t, 2.5, toks[2].Num)
	assert.Equal(t, TokMinus, toks[3].Type)
	assert.Equal(t, TokText, toks[4].Type)
	assert.Equal(t, "hi", toks[4].Text)
	assert.Equal(t, TokAnd, toks[5].Type)
	assert.Equal(t, TokBool, toks[6].Type)
	assert.True(t, toks[6].Bool)
}

func TestTokenizeCellAndFunction(t *testing.T) {
	toks, err := Tokenize("SUM(A1:B12, FALSE)")
	require.NoError(t, err)
	types := make([]TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		TokFunctionName, TokLParen, TokCellName, TokRangeSep, TokCellName,
		TokArgSeparator, TokBool, TokRParen,
	}, types)
}

func TestTokenizeMultiCharOperators(t *testing.T) {
	toks, err := Tokenize("A1==A2 != A3 >= A4 <= A5 || A6")
	require.NoError(t, err)
	var ops []TokenType
	for _, tok := range toks {
		switch tok.Type {
		case TokEquals, TokNotEquals, TokGreaterEquals, TokLessEquals, TokOr:
			ops = append(ops, tok.Type)
		}
	}
	assert.Equal(t, []TokenType{TokEquals, TokNotEquals, TokGreaterEquals, TokLessEquals, TokOr}, ops)
}

func TestTokenizeErrors(t *testing.T) {
	cases := []string{
		`"unterminated`,
		"1.",
		"1e",
		"&",
		"|",
		"=",
		"abc",
		"$",
	}
	for _, body := range cases {
		_, err := Tokenize(body)
		assert.Error(t, err, "expected %q to fail", body)
	}
}

func TestTokenizeSkipsWhitespace(t *testing.T) {
	toks, err := Tokenize("A1 \n + \n A2")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, TokCellName, toks[0].Type)
	assert.Equal(t, TokPlus, toks[1].Type)
	assert.Equal(t, TokCellName, toks[2].Type)
}
