package parser

import (
	"testing"

	"github.com/strata-sh/strata/internal/script/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, input string) *Program {
	t.Helper()

	p := New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parser errors for %q", input)
	return program
}

func parseSingleExpression(t *testing.T, input string) Expression {
	t.Helper()

	program := parseProgram(t, input)
	require.Len(t, program.Statements, 1)

	stmt, ok := program.Statements[0].(*ExpressionStatement)
	require.True(t, ok, "expected expression statement, got %T", program.Statements[0])
	return stmt.Expression
}

func TestAssignmentStatement(t *testing.T) {
	program := parseProgram(t, `rho = sp["density"]`)
	require.Len(t, program.Statements, 1)

	stmt, ok := program.Statements[0].(*AssignmentStatement)
	require.True(t, ok)
	assert.Equal(t, "rho", stmt.Name.Value)

	index, ok := stmt.Value.(*IndexExpression)
	require.True(t, ok)

	ident, ok := index.Left.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "sp", ident.Value)

	key, ok := index.Index.(*StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "density", key.Value)
}

func TestLiterals(t *testing.T) {
	num, ok := parseSingleExpression(t, "3.5e2").(*NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 350.0, num.Value)

	str, ok := parseSingleExpression(t, `"hello"`).(*StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hello", str.Value)

	boolean, ok := parseSingleExpression(t, "false").(*BooleanLiteral)
	require.True(t, ok)
	assert.False(t, boolean.Value)

	_, ok = parseSingleExpression(t, "null").(*NullLiteral)
	require.True(t, ok)

	arr, ok := parseSingleExpression(t, "[1, 2, 3]").(*ArrayLiteral)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestMemberExpressionChains(t *testing.T) {
	expr := parseSingleExpression(t, "ds.all.cell_count")

	outer, ok := expr.(*MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "cell_count", outer.Property.Value)

	inner, ok := outer.Object.(*MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "all", inner.Property.Value)

	base, ok := inner.Object.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "ds", base.Value)
}

func TestCallExpression(t *testing.T) {
	expr := parseSingleExpression(t, "ds.sphere(0.25, 0.5, 0.5, 0.5)")

	call, ok := expr.(*CallExpression)
	require.True(t, ok)
	assert.Len(t, call.Arguments, 4)

	member, ok := call.Function.(*MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "sphere", member.Property.Value)
}

func TestIndexAfterCall(t *testing.T) {
	expr := parseSingleExpression(t, `load("galaxy.yaml")["redshift"]`)

	index, ok := expr.(*IndexExpression)
	require.True(t, ok)

	_, ok = index.Left.(*CallExpression)
	require.True(t, ok)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-a * b", "((-a) * b)"},
		{"!ok == false", "((!ok) == false)"},
		{"a + b - c", "((a + b) - c)"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a % 2 + 1", "((a % 2) + 1)"},
		{"ds.all.cell_count * 2", "(ds.all.cell_count * 2)"},
		{`sp["density"] + 1`, `((sp["density"]) + 1)`},
	}

	for _, tt := range tests {
		expr := parseSingleExpression(t, tt.input)
		assert.Equal(t, tt.want, expr.String(), "input %q", tt.input)
	}
}

func TestUnaryExpression(t *testing.T) {
	expr := parseSingleExpression(t, "-42")

	unary, ok := expr.(*UnaryExpression)
	require.True(t, ok)
	assert.Equal(t, "-", unary.Operator)

	num, ok := unary.Right.(*NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 42.0, num.Value)
}

func TestMultipleStatements(t *testing.T) {
	program := parseProgram(t, "a = 1; b = a + 1\nb * 2")
	assert.Len(t, program.Statements, 3)
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"a = ",
		"ds.",
		"sp[",
		"(1 + 2",
		"foo(1, ",
		"= 5",
	}

	for _, input := range tests {
		p := New(lexer.New(input))
		p.ParseProgram()
		assert.NotEmpty(t, p.Errors(), "expected errors for %q", input)
	}
}
