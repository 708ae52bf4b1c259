package parser

import (
	"bytes"
	"strings"

	"github.com/Diokuz/optional-keys-in-objects/pkg/lexer"
)

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string // Returns the literal of the token associated with the node
	String() string       // Returns a string representation of the node (for debugging)
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node in the AST.
type Expression interface {
	Node
	expressionNode()
}

// --- Program Node ---

// Program is the root node of the AST.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// --- Statement Nodes ---

// LetStatement represents a `let` variable declaration.
// let <Name> = <Value>;
type LetStatement struct {
	Token lexer.Token // The lexer.LET token
	Name  *Identifier
	Value Expression // nil when declared without an initializer
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LetStatement) String() string {
	var out bytes.Buffer
	out.WriteString(ls.TokenLiteral() + " ")
	out.WriteString(ls.Name.String())
	if ls.Value != nil {
		out.WriteString(" = ")
		out.WriteString(ls.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ConstStatement represents a `const` variable declaration.
// Structurally identical to LetStatement, but reassignment is rejected.
type ConstStatement struct {
	Token lexer.Token // The lexer.CONST token
	Name  *Identifier
	Value Expression
}

func (cs *ConstStatement) statementNode()       {}
func (cs *ConstStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ConstStatement) String() string {
	var out bytes.Buffer
	out.WriteString(cs.TokenLiteral() + " ")
	out.WriteString(cs.Name.String())
	out.WriteString(" = ")
	if cs.Value != nil {
		out.WriteString(cs.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ExpressionStatement represents a statement consisting of a single expression.
type ExpressionStatement struct {
	Token      lexer.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}

// --- Expression Nodes ---

// Identifier represents an identifier in the source code.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// NumberLiteral represents a numeric literal.
type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }

// StringLiteral represents a string literal.
type StringLiteral struct {
	Token lexer.Token
	Value string // Unescaped content
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return "'" + sl.Value + "'" }

// BooleanLiteral represents `true` or `false`.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// NullLiteral represents `null`.
type NullLiteral struct {
	Token lexer.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) String() string       { return "null" }

// UndefinedLiteral represents `undefined`.
type UndefinedLiteral struct {
	Token lexer.Token
}

func (ul *UndefinedLiteral) expressionNode()      {}
func (ul *UndefinedLiteral) TokenLiteral() string { return ul.Token.Literal }
func (ul *UndefinedLiteral) String() string       { return "undefined" }

// PrefixExpression represents a prefix operator expression like !x or -x.
type PrefixExpression struct {
	Token    lexer.Token // The operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression represents a binary operator expression like x + y.
type InfixExpression struct {
	Token    lexer.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// TernaryExpression represents cond ? consequence : alternative.
type TernaryExpression struct {
	Token       lexer.Token // The '?' token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (te *TernaryExpression) expressionNode()      {}
func (te *TernaryExpression) TokenLiteral() string { return te.Token.Literal }
func (te *TernaryExpression) String() string {
	return "(" + te.Condition.String() + " ? " + te.Consequence.String() + " : " + te.Alternative.String() + ")"
}

// UpdateExpression represents ++x, --x, x++ or x--.
type UpdateExpression struct {
	Token    lexer.Token // The '++' or '--' token
	Operator string
	Prefix   bool
	Argument Expression // Must be an assignable target
}

func (ue *UpdateExpression) expressionNode()      {}
func (ue *UpdateExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UpdateExpression) String() string {
	if ue.Prefix {
		return "(" + ue.Operator + ue.Argument.String() + ")"
	}
	return "(" + ue.Argument.String() + ue.Operator + ")"
}

// AssignmentExpression represents target = value.
type AssignmentExpression struct {
	Token  lexer.Token // The '=' token
	Target Expression  // Identifier, member or index expression
	Value  Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) String() string {
	return "(" + ae.Target.String() + " = " + ae.Value.String() + ")"
}

// MemberExpression represents object.property access.
type MemberExpression struct {
	Token    lexer.Token // The '.' token
	Object   Expression
	Property *Identifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) String() string {
	return "(" + me.Object.String() + "." + me.Property.String() + ")"
}

// IndexExpression represents object[index] access.
type IndexExpression struct {
	Token  lexer.Token // The '[' token
	Object Expression
	Index  Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	return "(" + ie.Object.String() + "[" + ie.Index.String() + "])"
}

// ArrayLiteral represents an array literal expression like [1, 2, 3].
type ArrayLiteral struct {
	Token    lexer.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	elements := make([]string, 0, len(al.Elements))
	for _, el := range al.Elements {
		elements = append(elements, el.String())
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

// ObjectProperty represents a single entry within an object literal.
//
// For a literal key the Key is an Identifier, StringLiteral or NumberLiteral
// and Computed is false. For a computed key ([expr]) the Key is the inner
// expression and Computed is true. A shorthand property ({ foo } / { foo? })
// has Shorthand set and Key == Value (both derive from the same identifier).
// Optional records the `?` marker: the property is dropped when its value
// evaluates to undefined.
type ObjectProperty struct {
	Key       Expression
	Value     Expression
	Computed  bool
	Shorthand bool
	Optional  bool
}

func (op *ObjectProperty) String() string {
	var out bytes.Buffer
	if op.Computed {
		out.WriteString("[")
		out.WriteString(op.Key.String())
		out.WriteString("]")
	} else {
		out.WriteString(op.Key.String())
	}
	if op.Optional {
		out.WriteString("?")
	}
	if op.Shorthand {
		return out.String()
	}
	out.WriteString(": ")
	out.WriteString(op.Value.String())
	return out.String()
}

// ObjectLiteral represents an object literal expression.
// Properties are a slice, not a map, to preserve source order.
type ObjectLiteral struct {
	Token      lexer.Token // The '{' token
	Properties []*ObjectProperty
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) String() string {
	props := make([]string, 0, len(ol.Properties))
	for _, prop := range ol.Properties {
		props = append(props, prop.String())
	}
	return "{" + strings.Join(props, ", ") + "}"
}

// HasOptional reports whether any property carries the `?` marker.
func (ol *ObjectLiteral) HasOptional() bool {
	for _, prop := range ol.Properties {
		if prop.Optional {
			return true
		}
	}
	return false
}
