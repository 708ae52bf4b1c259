package interp

import (
	"fmt"

	"github.com/Diokuz/optional-keys-in-objects/pkg/errors"
	"github.com/Diokuz/optional-keys-in-objects/pkg/lexer"
	"github.com/Diokuz/optional-keys-in-objects/pkg/parser"
	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
	"github.com/Diokuz/optional-keys-in-objects/pkg/value"
)

// Interpreter is a tree-walking evaluator. A single interpreter keeps its
// environment between Eval calls, so variables defined in one REPL line are
// visible in the next.
type Interpreter struct {
	env *Environment
	src *source.File // source of the program currently being evaluated
}

// New creates an interpreter with a fresh environment.
func New() *Interpreter {
	return &Interpreter{env: NewEnvironment()}
}

// Eval evaluates a parsed program against the persistent environment and
// returns the value of the last expression statement.
func (i *Interpreter) Eval(program *parser.Program, src *source.File) (value.Value, errors.ScriptError) {
	i.src = src
	result := value.Undefined()

	for _, stmt := range program.Statements {
		v, err := i.evalStatement(stmt)
		if err != nil {
			return value.Undefined(), err
		}
		result = v
	}
	return result, nil
}

func (i *Interpreter) evalStatement(stmt parser.Statement) (value.Value, errors.ScriptError) {
	switch s := stmt.(type) {
	case *parser.LetStatement:
		v := value.Undefined()
		if s.Value != nil {
			var err errors.ScriptError
			v, err = i.evalExpression(s.Value)
			if err != nil {
				return value.Undefined(), err
			}
		}
		i.env.Define(s.Name.Value, v)
		return value.Undefined(), nil
	case *parser.ConstStatement:
		v, err := i.evalExpression(s.Value)
		if err != nil {
			return value.Undefined(), err
		}
		i.env.DefineConst(s.Name.Value, v)
		return value.Undefined(), nil
	case *parser.ExpressionStatement:
		return i.evalExpression(s.Expression)
	default:
		return value.Undefined(), i.runtimeError(lexer.Token{}, "unknown statement type %T", stmt)
	}
}

func (i *Interpreter) evalExpression(expr parser.Expression) (value.Value, errors.ScriptError) {
	switch e := expr.(type) {
	case *parser.NumberLiteral:
		return value.Number(e.Value), nil
	case *parser.StringLiteral:
		return value.String(e.Value), nil
	case *parser.BooleanLiteral:
		return value.Bool(e.Value), nil
	case *parser.NullLiteral:
		return value.Null(), nil
	case *parser.UndefinedLiteral:
		return value.Undefined(), nil
	case *parser.Identifier:
		v, ok := i.env.Get(e.Value)
		if !ok {
			return value.Undefined(), i.runtimeError(e.Token, "%s is not defined", e.Value)
		}
		return v, nil
	case *parser.PrefixExpression:
		return i.evalPrefixExpression(e)
	case *parser.InfixExpression:
		return i.evalInfixExpression(e)
	case *parser.TernaryExpression:
		cond, err := i.evalExpression(e.Condition)
		if err != nil {
			return value.Undefined(), err
		}
		if value.Truthy(cond) {
			return i.evalExpression(e.Consequence)
		}
		return i.evalExpression(e.Alternative)
	case *parser.UpdateExpression:
		return i.evalUpdateExpression(e)
	case *parser.AssignmentExpression:
		return i.evalAssignmentExpression(e)
	case *parser.MemberExpression:
		obj, err := i.evalExpression(e.Object)
		if err != nil {
			return value.Undefined(), err
		}
		return i.getProperty(obj, e.Property.Value, e.Token)
	case *parser.IndexExpression:
		obj, err := i.evalExpression(e.Object)
		if err != nil {
			return value.Undefined(), err
		}
		idx, err := i.evalExpression(e.Index)
		if err != nil {
			return value.Undefined(), err
		}
		return i.getProperty(obj, value.ToPropertyKey(idx), e.Token)
	case *parser.ArrayLiteral:
		elements := make([]value.Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := i.evalExpression(el)
			if err != nil {
				return value.Undefined(), err
			}
			elements = append(elements, v)
		}
		return value.ArrayV(value.NewArray(elements)), nil
	case *parser.ObjectLiteral:
		return i.evalObjectLiteral(e)
	default:
		return value.Undefined(), i.runtimeError(lexer.Token{}, "unknown expression type %T", expr)
	}
}

// evalObjectLiteral translates the literal's properties to ordered property
// descriptors and delegates the insertion rules to value.BuildObject, so the
// evaluator and embedders share a single implementation of the optional-key
// semantics.
func (i *Interpreter) evalObjectLiteral(ol *parser.ObjectLiteral) (value.Value, errors.ScriptError) {
	descs := make([]value.PropertyDescriptor, 0, len(ol.Properties))

	for _, prop := range ol.Properties {
		p := prop // capture per-iteration

		valueThunk := func() (value.Value, error) {
			v, err := i.evalExpression(p.Value)
			if err != nil {
				return value.Undefined(), err
			}
			return v, nil
		}

		if p.Computed {
			descs = append(descs, value.PropertyDescriptor{
				Key: func() (value.Value, error) {
					k, err := i.evalExpression(p.Key)
					if err != nil {
						return value.Undefined(), err
					}
					return k, nil
				},
				Value:    valueThunk,
				Optional: p.Optional,
			})
			continue
		}

		var key string
		switch k := p.Key.(type) {
		case *parser.Identifier:
			key = k.Value
		case *parser.StringLiteral:
			key = k.Value
		case *parser.NumberLiteral:
			key = value.NumberToString(k.Value)
		default:
			return value.Undefined(), i.runtimeError(ol.Token, "unsupported property key %T", p.Key)
		}
		descs = append(descs, value.LiteralProperty(key, valueThunk, p.Optional))
	}

	obj, err := value.BuildObject(descs)
	if err != nil {
		if serr, ok := err.(errors.ScriptError); ok {
			return value.Undefined(), serr
		}
		return value.Undefined(), i.runtimeError(ol.Token, "%s", err)
	}
	return value.ObjectV(obj), nil
}

func (i *Interpreter) evalPrefixExpression(e *parser.PrefixExpression) (value.Value, errors.ScriptError) {
	right, err := i.evalExpression(e.Right)
	if err != nil {
		return value.Undefined(), err
	}
	switch e.Operator {
	case "!":
		return value.Bool(!value.Truthy(right)), nil
	case "-":
		if !value.IsNumber(right) {
			return value.Undefined(), i.runtimeError(e.Token, "unary - expects a number, got %s", typeName(right))
		}
		return value.Number(-value.AsNumber(right)), nil
	case "+":
		if !value.IsNumber(right) {
			return value.Undefined(), i.runtimeError(e.Token, "unary + expects a number, got %s", typeName(right))
		}
		return right, nil
	default:
		return value.Undefined(), i.runtimeError(e.Token, "unknown prefix operator %s", e.Operator)
	}
}

func (i *Interpreter) evalInfixExpression(e *parser.InfixExpression) (value.Value, errors.ScriptError) {
	// Short-circuit operators evaluate the right side conditionally.
	switch e.Operator {
	case "&&":
		left, err := i.evalExpression(e.Left)
		if err != nil {
			return value.Undefined(), err
		}
		if !value.Truthy(left) {
			return left, nil
		}
		return i.evalExpression(e.Right)
	case "||":
		left, err := i.evalExpression(e.Left)
		if err != nil {
			return value.Undefined(), err
		}
		if value.Truthy(left) {
			return left, nil
		}
		return i.evalExpression(e.Right)
	case "??":
		left, err := i.evalExpression(e.Left)
		if err != nil {
			return value.Undefined(), err
		}
		if !value.IsUndefined(left) && !value.IsNull(left) {
			return left, nil
		}
		return i.evalExpression(e.Right)
	}

	left, err := i.evalExpression(e.Left)
	if err != nil {
		return value.Undefined(), err
	}
	right, err := i.evalExpression(e.Right)
	if err != nil {
		return value.Undefined(), err
	}

	switch e.Operator {
	case "+":
		if value.IsString(left) || value.IsString(right) {
			return value.String(left.String() + right.String()), nil
		}
		if value.IsNumber(left) && value.IsNumber(right) {
			return value.Number(value.AsNumber(left) + value.AsNumber(right)), nil
		}
		return value.Undefined(), i.runtimeError(e.Token, "cannot add %s and %s", typeName(left), typeName(right))
	case "-", "*", "/":
		if !value.IsNumber(left) || !value.IsNumber(right) {
			return value.Undefined(), i.runtimeError(e.Token, "operator %s expects numbers, got %s and %s",
				e.Operator, typeName(left), typeName(right))
		}
		l, r := value.AsNumber(left), value.AsNumber(right)
		switch e.Operator {
		case "-":
			return value.Number(l - r), nil
		case "*":
			return value.Number(l * r), nil
		default:
			return value.Number(l / r), nil
		}
	case "<", ">", "<=", ">=":
		return i.evalComparison(e, left, right)
	case "==":
		return value.Bool(value.LooseEquals(left, right)), nil
	case "!=":
		return value.Bool(!value.LooseEquals(left, right)), nil
	case "===":
		return value.Bool(value.StrictEquals(left, right)), nil
	case "!==":
		return value.Bool(!value.StrictEquals(left, right)), nil
	default:
		return value.Undefined(), i.runtimeError(e.Token, "unknown operator %s", e.Operator)
	}
}

func (i *Interpreter) evalComparison(e *parser.InfixExpression, left, right value.Value) (value.Value, errors.ScriptError) {
	if value.IsString(left) && value.IsString(right) {
		l, r := value.AsString(left), value.AsString(right)
		switch e.Operator {
		case "<":
			return value.Bool(l < r), nil
		case ">":
			return value.Bool(l > r), nil
		case "<=":
			return value.Bool(l <= r), nil
		default:
			return value.Bool(l >= r), nil
		}
	}
	if value.IsNumber(left) && value.IsNumber(right) {
		l, r := value.AsNumber(left), value.AsNumber(right)
		switch e.Operator {
		case "<":
			return value.Bool(l < r), nil
		case ">":
			return value.Bool(l > r), nil
		case "<=":
			return value.Bool(l <= r), nil
		default:
			return value.Bool(l >= r), nil
		}
	}
	return value.Undefined(), i.runtimeError(e.Token, "operator %s expects two numbers or two strings, got %s and %s",
		e.Operator, typeName(left), typeName(right))
}

func (i *Interpreter) evalUpdateExpression(e *parser.UpdateExpression) (value.Value, errors.ScriptError) {
	// The target reference is resolved once: a[i++]++ must bump i a single
	// time and read and write the same element.
	ref, err := i.resolveRef(e.Argument, e.Token)
	if err != nil {
		return value.Undefined(), err
	}
	old, err := i.loadRef(ref)
	if err != nil {
		return value.Undefined(), err
	}
	if !value.IsNumber(old) {
		return value.Undefined(), i.runtimeError(e.Token, "%s expects a number, got %s", e.Operator, typeName(old))
	}

	delta := 1.0
	if e.Operator == "--" {
		delta = -1.0
	}
	updated := value.Number(value.AsNumber(old) + delta)

	if err := i.storeRef(ref, updated); err != nil {
		return value.Undefined(), err
	}

	if e.Prefix {
		return updated, nil
	}
	return old, nil
}

func (i *Interpreter) evalAssignmentExpression(e *parser.AssignmentExpression) (value.Value, errors.ScriptError) {
	// Target before value, as in JS: a[i++] = i sees the incremented i.
	ref, err := i.resolveRef(e.Target, e.Token)
	if err != nil {
		return value.Undefined(), err
	}
	v, err := i.evalExpression(e.Value)
	if err != nil {
		return value.Undefined(), err
	}
	if err := i.storeRef(ref, v); err != nil {
		return value.Undefined(), err
	}
	return v, nil
}

// reference is a fully evaluated assignment target: either a variable name
// or a property key on an already-evaluated container. Resolving once and
// then reading/writing through the reference keeps side effects in the
// target expression from firing more than once.
type reference struct {
	isVar     bool
	name      string      // variable targets
	container value.Value // property targets
	key       string
	tok       lexer.Token
}

// resolveRef evaluates the object and key parts of an assignable target
// exactly once.
func (i *Interpreter) resolveRef(target parser.Expression, tok lexer.Token) (reference, errors.ScriptError) {
	switch t := target.(type) {
	case *parser.Identifier:
		return reference{isVar: true, name: t.Value, tok: t.Token}, nil
	case *parser.MemberExpression:
		obj, err := i.evalExpression(t.Object)
		if err != nil {
			return reference{}, err
		}
		return reference{container: obj, key: t.Property.Value, tok: t.Token}, nil
	case *parser.IndexExpression:
		obj, err := i.evalExpression(t.Object)
		if err != nil {
			return reference{}, err
		}
		idx, err := i.evalExpression(t.Index)
		if err != nil {
			return reference{}, err
		}
		return reference{container: obj, key: value.ToPropertyKey(idx), tok: t.Token}, nil
	default:
		return reference{}, i.runtimeError(tok, "invalid assignment target")
	}
}

func (i *Interpreter) loadRef(ref reference) (value.Value, errors.ScriptError) {
	if ref.isVar {
		v, ok := i.env.Get(ref.name)
		if !ok {
			return value.Undefined(), i.runtimeError(ref.tok, "%s is not defined", ref.name)
		}
		return v, nil
	}
	return i.getProperty(ref.container, ref.key, ref.tok)
}

func (i *Interpreter) storeRef(ref reference, v value.Value) errors.ScriptError {
	if ref.isVar {
		exists, assignable := i.env.Assign(ref.name, v)
		if !exists {
			return i.runtimeError(ref.tok, "%s is not defined", ref.name)
		}
		if !assignable {
			return i.runtimeError(ref.tok, "Assignment to constant variable.")
		}
		return nil
	}
	return i.setProperty(ref.container, ref.key, v, ref.tok)
}

func (i *Interpreter) getProperty(obj value.Value, key string, tok lexer.Token) (value.Value, errors.ScriptError) {
	switch obj.Type {
	case value.TypeObject:
		return value.AsObject(obj).GetOrUndefined(key), nil
	case value.TypeArray:
		arr := value.AsArray(obj)
		if key == "length" {
			return value.Number(float64(arr.Len())), nil
		}
		if idx, ok := arrayIndex(key); ok {
			return arr.Get(idx), nil
		}
		return value.Undefined(), nil
	case value.TypeString:
		if key == "length" {
			return value.Number(float64(len(value.AsString(obj)))), nil
		}
		return value.Undefined(), nil
	case value.TypeUndefined, value.TypeNull:
		return value.Undefined(), i.runtimeError(tok, "Cannot read properties of %s (reading '%s')", obj.String(), key)
	default:
		return value.Undefined(), nil
	}
}

func (i *Interpreter) setProperty(obj value.Value, key string, v value.Value, tok lexer.Token) errors.ScriptError {
	switch obj.Type {
	case value.TypeObject:
		value.AsObject(obj).Set(key, v)
		return nil
	case value.TypeArray:
		arr := value.AsArray(obj)
		if idx, ok := arrayIndex(key); ok && idx >= 0 && idx < arr.Len() {
			arr.Elements[idx] = v
			return nil
		}
		return i.runtimeError(tok, "unsupported array assignment to '%s'", key)
	case value.TypeUndefined, value.TypeNull:
		return i.runtimeError(tok, "Cannot set properties of %s (setting '%s')", obj.String(), key)
	default:
		return i.runtimeError(tok, "cannot set property '%s' on %s", key, typeName(obj))
	}
}

func arrayIndex(key string) (int, bool) {
	n := 0
	if key == "" {
		return 0, false
	}
	for j := 0; j < len(key); j++ {
		c := key[j]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (i *Interpreter) runtimeError(tok lexer.Token, format string, args ...interface{}) *errors.RuntimeError {
	return &errors.RuntimeError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   i.src,
		},
		Msg: fmt.Sprintf(format, args...),
	}
}

func typeName(v value.Value) string {
	switch v.Type {
	case value.TypeUndefined:
		return "undefined"
	case value.TypeNull:
		return "null"
	case value.TypeBool:
		return "boolean"
	case value.TypeNumber:
		return "number"
	case value.TypeString:
		return "string"
	case value.TypeObject:
		return "object"
	case value.TypeArray:
		return "array"
	default:
		return "unknown"
	}
}
