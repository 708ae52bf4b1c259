package parser

import (
	"bytes"
	"fmt"
	"strings"
)

// EmitterOptions controls the shape of the emitted JavaScript.
type EmitterOptions struct {
	// Indent is the indentation unit inside lowered object builders.
	Indent string
	// TempPrefix prefixes the generated key/value temporaries.
	TempPrefix string
	// TypeofChecks emits `typeof v !== "undefined"` instead of
	// `v !== undefined`, for targets where the undefined global may be
	// shadowed.
	TypeofChecks bool
}

// DefaultEmitterOptions returns the options used when none are given.
func DefaultEmitterOptions() EmitterOptions {
	return EmitterOptions{
		Indent:     "  ",
		TempPrefix: "__",
	}
}

// Emitter transforms an AST into plain JavaScript. Object literals that use
// the optional-property marker are lowered to an immediately invoked builder
// function that preserves the source's key-then-value, left-to-right
// evaluation order; everything else emits verbatim.
type Emitter struct {
	opts     EmitterOptions
	buffer   bytes.Buffer
	keyCount int
	valCount int
}

// NewEmitter creates an emitter with the given options.
func NewEmitter(opts EmitterOptions) *Emitter {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	if opts.TempPrefix == "" {
		opts.TempPrefix = "__"
	}
	return &Emitter{opts: opts}
}

// Emit converts a program AST to JavaScript source.
func (e *Emitter) Emit(program *Program) string {
	e.buffer.Reset()
	e.keyCount = 0
	e.valCount = 0

	for _, stmt := range program.Statements {
		e.emitStatement(stmt)
	}

	return e.buffer.String()
}

func (e *Emitter) emitStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *LetStatement:
		if s.Value != nil {
			fmt.Fprintf(&e.buffer, "let %s = %s;\n", s.Name.Value, e.emitExpression(s.Value, ""))
		} else {
			fmt.Fprintf(&e.buffer, "let %s;\n", s.Name.Value)
		}
	case *ConstStatement:
		fmt.Fprintf(&e.buffer, "const %s = %s;\n", s.Name.Value, e.emitExpression(s.Value, ""))
	case *ExpressionStatement:
		fmt.Fprintf(&e.buffer, "%s;\n", e.emitExpression(s.Expression, ""))
	}
}

// emitExpression renders an expression. The indent argument is the
// indentation of the enclosing line, threaded through so lowered object
// builders nest readably.
func (e *Emitter) emitExpression(expr Expression, indent string) string {
	switch x := expr.(type) {
	case *Identifier:
		return x.Value
	case *NumberLiteral:
		return x.Token.Literal
	case *StringLiteral:
		return quoteJS(x.Value)
	case *BooleanLiteral:
		return x.Token.Literal
	case *NullLiteral:
		return "null"
	case *UndefinedLiteral:
		return "undefined"
	case *PrefixExpression:
		return x.Operator + e.emitExpression(x.Right, indent)
	case *InfixExpression:
		return fmt.Sprintf("(%s %s %s)",
			e.emitExpression(x.Left, indent), x.Operator, e.emitExpression(x.Right, indent))
	case *TernaryExpression:
		return fmt.Sprintf("(%s ? %s : %s)",
			e.emitExpression(x.Condition, indent),
			e.emitExpression(x.Consequence, indent),
			e.emitExpression(x.Alternative, indent))
	case *UpdateExpression:
		if x.Prefix {
			return x.Operator + e.emitExpression(x.Argument, indent)
		}
		return e.emitExpression(x.Argument, indent) + x.Operator
	case *AssignmentExpression:
		return fmt.Sprintf("%s = %s",
			e.emitExpression(x.Target, indent), e.emitExpression(x.Value, indent))
	case *MemberExpression:
		return e.emitExpression(x.Object, indent) + "." + x.Property.Value
	case *IndexExpression:
		return e.emitExpression(x.Object, indent) + "[" + e.emitExpression(x.Index, indent) + "]"
	case *ArrayLiteral:
		parts := make([]string, 0, len(x.Elements))
		for _, el := range x.Elements {
			parts = append(parts, e.emitExpression(el, indent))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ObjectLiteral:
		if x.HasOptional() {
			return e.emitLoweredObject(x, indent)
		}
		return e.emitPlainObject(x, indent)
	default:
		return fmt.Sprintf("/* unsupported node %T */", expr)
	}
}

// emitPlainObject renders an object literal with standard syntax.
func (e *Emitter) emitPlainObject(ol *ObjectLiteral, indent string) string {
	if len(ol.Properties) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(ol.Properties))
	for _, prop := range ol.Properties {
		switch {
		case prop.Shorthand:
			parts = append(parts, e.emitExpression(prop.Key, indent))
		case prop.Computed:
			parts = append(parts, fmt.Sprintf("[%s]: %s",
				e.emitExpression(prop.Key, indent), e.emitExpression(prop.Value, indent)))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s",
				e.emitExpression(prop.Key, indent), e.emitExpression(prop.Value, indent)))
		}
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// emitLoweredObject rewrites an object literal containing optional
// properties into an IIFE:
//
//	(function () {
//	  var __obj = {};
//	  __obj.a = 1;
//	  var __k0 = keyExpr;
//	  var __v0 = valueExpr;
//	  if (__v0 !== undefined) __obj[__k0] = __v0;
//	  return __obj;
//	}())
//
// Assignments run strictly in source order, and a computed key gets its own
// temporary so the key expression evaluates even when the value turns out
// undefined and the insertion is skipped.
func (e *Emitter) emitLoweredObject(ol *ObjectLiteral, indent string) string {
	obj := e.opts.TempPrefix + "obj"
	inner := indent + e.opts.Indent

	var body bytes.Buffer
	fmt.Fprintf(&body, "(function () {\n")
	fmt.Fprintf(&body, "%svar %s = {};\n", inner, obj)

	for _, prop := range ol.Properties {
		// The assignment target: dotted for identifier keys, bracketed
		// for everything else.
		var target func(keyRef string) string
		var keyRef string

		if prop.Computed {
			keyRef = e.nextKeyTemp()
			fmt.Fprintf(&body, "%svar %s = %s;\n", inner, keyRef, e.emitExpression(prop.Key, inner))
			target = func(k string) string { return obj + "[" + k + "]" }
		} else {
			switch key := prop.Key.(type) {
			case *Identifier:
				target = func(string) string { return obj + "." + key.Value }
			case *StringLiteral:
				target = func(string) string { return obj + "[" + quoteJS(key.Value) + "]" }
			case *NumberLiteral:
				target = func(string) string { return obj + "[" + key.Token.Literal + "]" }
			}
		}

		if !prop.Optional {
			fmt.Fprintf(&body, "%s%s = %s;\n", inner, target(keyRef), e.emitExpression(prop.Value, inner))
			continue
		}

		// The value temp guarantees a single evaluation even though it is
		// referenced twice below.
		valRef := e.nextValTemp()
		fmt.Fprintf(&body, "%svar %s = %s;\n", inner, valRef, e.emitExpression(prop.Value, inner))
		fmt.Fprintf(&body, "%sif (%s) %s = %s;\n", inner, e.definedCheck(valRef), target(keyRef), valRef)
	}

	fmt.Fprintf(&body, "%sreturn %s;\n", inner, obj)
	fmt.Fprintf(&body, "%s}())", indent)
	return body.String()
}

func (e *Emitter) definedCheck(ref string) string {
	if e.opts.TypeofChecks {
		return fmt.Sprintf("typeof %s !== \"undefined\"", ref)
	}
	return ref + " !== undefined"
}

func (e *Emitter) nextKeyTemp() string {
	name := fmt.Sprintf("%sk%d", e.opts.TempPrefix, e.keyCount)
	e.keyCount++
	return name
}

func (e *Emitter) nextValTemp() string {
	name := fmt.Sprintf("%sv%d", e.opts.TempPrefix, e.valCount)
	e.valCount++
	return name
}

// quoteJS renders a string as a single-quoted JS literal.
func quoteJS(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'':
			sb.WriteString("\\'")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\t':
			sb.WriteString("\\t")
		case '\r':
			sb.WriteString("\\r")
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
