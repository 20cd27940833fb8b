// Package interpreter implements the tree-walking evaluator for the strata
// expression language, along with the runtime value model and the layered
// variable environment the completion subsystem reads from.
package interpreter

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/strata-sh/strata/internal/fields"
	"github.com/strata-sh/strata/internal/script/lexer"
	"github.com/strata-sh/strata/internal/script/parser"
	"go.uber.org/zap"
)

// Interpreter evaluates strata programs. The prelude namespace (builtins and
// the analysis library's symbols) lives in a global environment; user
// bindings live in a session environment enclosing it.
type Interpreter struct {
	globals  *Environment
	session  *Environment
	registry *fields.Registry
	logger   *zap.Logger
	stdout   io.Writer
	graphics bool
}

// Options configures the interpreter.
// All fields are optional - nil/zero values use sensible defaults.
type Options struct {
	// Logger is a zap logger. If nil, a no-op logger is used.
	Logger *zap.Logger
	// Stdout is where print and plot write. Defaults to os.Stdout.
	Stdout io.Writer
	// Registry supplies derived field definitions for loaded datasets.
	// If nil, the default registry is used.
	Registry *fields.Registry
	// Graphics controls whether the plot builtin is registered. The caller
	// decides this from the display environment variable.
	Graphics bool
}

// New creates a new interpreter with the given options.
// Pass nil for default options.
func New(opts *Options) *Interpreter {
	if opts == nil {
		opts = &Options{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	registry := opts.Registry
	if registry == nil {
		registry = fields.DefaultRegistry()
	}

	i := &Interpreter{
		globals:  NewEnvironment(),
		registry: registry,
		logger:   logger,
		stdout:   stdout,
		graphics: opts.Graphics,
	}
	i.session = NewEnclosedEnvironment(i.globals)
	i.registerPrelude()

	return i
}

// SessionEnv returns the environment holding user bindings.
func (i *Interpreter) SessionEnv() *Environment {
	return i.session
}

// GlobalEnv returns the prelude environment.
func (i *Interpreter) GlobalEnv() *Environment {
	return i.globals
}

// GraphicsActive reports whether the plot builtin was registered.
func (i *Interpreter) GraphicsActive() bool {
	return i.graphics
}

// EvalLine lexes, parses, and evaluates a single input line, returning the
// value of its last statement.
func (i *Interpreter) EvalLine(line string) (Value, error) {
	l := lexer.New(line)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse error: %s", strings.Join(errs, "; "))
	}

	return i.Eval(program)
}

// Eval evaluates a parsed program and returns the value of the last
// statement, or NullValue for an empty program.
func (i *Interpreter) Eval(program *parser.Program) (Value, error) {
	var result Value = &NullValue{}

	for _, stmt := range program.Statements {
		value, err := i.evalStatement(stmt)
		if err != nil {
			return nil, err
		}
		result = value
	}

	return result, nil
}

func (i *Interpreter) evalStatement(stmt parser.Statement) (Value, error) {
	switch node := stmt.(type) {
	case *parser.AssignmentStatement:
		value, err := i.evalExpression(node.Value)
		if err != nil {
			return nil, err
		}
		i.session.Set(node.Name.Value, value)
		return value, nil

	case *parser.ExpressionStatement:
		return i.evalExpression(node.Expression)

	default:
		return nil, fmt.Errorf("unknown statement type %T", stmt)
	}
}

func (i *Interpreter) evalExpression(expr parser.Expression) (Value, error) {
	switch node := expr.(type) {
	case *parser.Identifier:
		value, ok := i.session.Get(node.Value)
		if !ok {
			return nil, fmt.Errorf("undefined name %q", node.Value)
		}
		return value, nil

	case *parser.NumberLiteral:
		return &NumberValue{Value: node.Value}, nil

	case *parser.StringLiteral:
		return &StringValue{Value: node.Value}, nil

	case *parser.BooleanLiteral:
		return &BoolValue{Value: node.Value}, nil

	case *parser.NullLiteral:
		return &NullValue{}, nil

	case *parser.ArrayLiteral:
		elements := make([]Value, 0, len(node.Elements))
		for _, el := range node.Elements {
			value, err := i.evalExpression(el)
			if err != nil {
				return nil, err
			}
			elements = append(elements, value)
		}
		return &ArrayValue{Elements: elements}, nil

	case *parser.UnaryExpression:
		return i.evalUnaryExpression(node)

	case *parser.BinaryExpression:
		return i.evalBinaryExpression(node)

	case *parser.MemberExpression:
		return i.evalMemberExpression(node)

	case *parser.IndexExpression:
		return i.evalIndexExpression(node)

	case *parser.CallExpression:
		return i.evalCallExpression(node)

	case nil:
		return nil, fmt.Errorf("empty expression")

	default:
		return nil, fmt.Errorf("unknown expression type %T", expr)
	}
}

func (i *Interpreter) evalUnaryExpression(node *parser.UnaryExpression) (Value, error) {
	right, err := i.evalExpression(node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "!":
		return &BoolValue{Value: !right.IsTruthy()}, nil
	case "-":
		num, ok := right.(*NumberValue)
		if !ok {
			return nil, fmt.Errorf("cannot negate %s", right.Type())
		}
		return &NumberValue{Value: -num.Value}, nil
	default:
		return nil, fmt.Errorf("unknown unary operator %q", node.Operator)
	}
}

func (i *Interpreter) evalBinaryExpression(node *parser.BinaryExpression) (Value, error) {
	left, err := i.evalExpression(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "==":
		return &BoolValue{Value: left.Equals(right)}, nil
	case "!=":
		return &BoolValue{Value: !left.Equals(right)}, nil
	}

	// String concatenation
	if node.Operator == "+" && left.Type() == ValueTypeString && right.Type() == ValueTypeString {
		return &StringValue{Value: left.String() + right.String()}, nil
	}

	leftNum, leftOk := left.(*NumberValue)
	rightNum, rightOk := right.(*NumberValue)
	if !leftOk || !rightOk {
		return nil, fmt.Errorf("operator %q requires numbers, got %s and %s",
			node.Operator, left.Type(), right.Type())
	}

	switch node.Operator {
	case "+":
		return &NumberValue{Value: leftNum.Value + rightNum.Value}, nil
	case "-":
		return &NumberValue{Value: leftNum.Value - rightNum.Value}, nil
	case "*":
		return &NumberValue{Value: leftNum.Value * rightNum.Value}, nil
	case "/":
		if rightNum.Value == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &NumberValue{Value: leftNum.Value / rightNum.Value}, nil
	case "%":
		if rightNum.Value == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &NumberValue{Value: math.Mod(leftNum.Value, rightNum.Value)}, nil
	case "<":
		return &BoolValue{Value: leftNum.Value < rightNum.Value}, nil
	case ">":
		return &BoolValue{Value: leftNum.Value > rightNum.Value}, nil
	case "<=":
		return &BoolValue{Value: leftNum.Value <= rightNum.Value}, nil
	case ">=":
		return &BoolValue{Value: leftNum.Value >= rightNum.Value}, nil
	default:
		return nil, fmt.Errorf("unknown operator %q", node.Operator)
	}
}

func (i *Interpreter) evalMemberExpression(node *parser.MemberExpression) (Value, error) {
	object, err := i.evalExpression(node.Object)
	if err != nil {
		return nil, err
	}

	getter, ok := object.(AttributeGetter)
	if !ok {
		return nil, fmt.Errorf("%s has no attributes", object.Type())
	}

	value, ok := getter.Attribute(node.Property.Value)
	if !ok {
		return nil, fmt.Errorf("%s has no attribute %q", object.Type(), node.Property.Value)
	}
	return value, nil
}

func (i *Interpreter) evalIndexExpression(node *parser.IndexExpression) (Value, error) {
	left, err := i.evalExpression(node.Left)
	if err != nil {
		return nil, err
	}
	index, err := i.evalExpression(node.Index)
	if err != nil {
		return nil, err
	}

	switch container := left.(type) {
	case *ArrayValue:
		num, ok := index.(*NumberValue)
		if !ok {
			return nil, fmt.Errorf("array index must be a number, got %s", index.Type())
		}
		idx := int(num.Value)
		if idx < 0 || idx >= len(container.Elements) {
			return nil, fmt.Errorf("array index %d out of range [0, %d)", idx, len(container.Elements))
		}
		return container.Elements[idx], nil

	case *ObjectValue:
		key, ok := index.(*StringValue)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %s", index.Type())
		}
		value, ok := container.Properties[key.Value]
		if !ok {
			return nil, fmt.Errorf("object has no key %q", key.Value)
		}
		return value, nil

	case *SelectorValue:
		key, ok := index.(*StringValue)
		if !ok {
			return nil, fmt.Errorf("field key must be a string, got %s", index.Type())
		}
		return container.Index(key.Value)

	case *DatasetValue:
		key, ok := index.(*StringValue)
		if !ok {
			return nil, fmt.Errorf("parameter key must be a string, got %s", index.Type())
		}
		value, ok := container.Ds.Parameter(key.Value)
		if !ok {
			return nil, fmt.Errorf("dataset %s has no parameter %q", container.Ds.Name, key.Value)
		}
		return &StringValue{Value: value}, nil

	default:
		return nil, fmt.Errorf("%s is not indexable", left.Type())
	}
}

func (i *Interpreter) evalCallExpression(node *parser.CallExpression) (Value, error) {
	fn, err := i.evalExpression(node.Function)
	if err != nil {
		return nil, err
	}

	builtin, ok := fn.(*BuiltinValue)
	if !ok {
		return nil, fmt.Errorf("%s is not callable", fn.Type())
	}

	args := make([]Value, 0, len(node.Arguments))
	for _, argExpr := range node.Arguments {
		arg, err := i.evalExpression(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	i.logger.Debug("calling builtin",
		zap.String("name", builtin.Name),
		zap.Int("args", len(args)))

	return builtin.Fn(args)
}
