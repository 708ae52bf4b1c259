package parser

import (
	"fmt"
	"strconv"

	"github.com/Diokuz/optional-keys-in-objects/pkg/errors"
	"github.com/Diokuz/optional-keys-in-objects/pkg/lexer"
	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
)

// Parser takes a lexer and builds an AST.
type Parser struct {
	l      *lexer.Lexer
	source *source.File // cached from lexer
	errors []errors.ScriptError

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression // Arg is the left side expression
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // =
	TERNARY     // ?:
	NULLISH     // ??
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	EQUALS      // ==, !=, ===, !==
	LESSGREATER // >, <, >=, <=
	SUM         // + or -
	PRODUCT     // * or /
	PREFIX      // -x, !x, ++x, --x
	POSTFIX     // x++, x--
	INDEX       // obj[index]
	MEMBER      // obj.property
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:        ASSIGNMENT,
	lexer.QUESTION:      TERNARY,
	lexer.COALESCE:      NULLISH,
	lexer.LOGICAL_OR:    LOGICAL_OR,
	lexer.LOGICAL_AND:   LOGICAL_AND,
	lexer.EQ:            EQUALS,
	lexer.NOT_EQ:        EQUALS,
	lexer.STRICT_EQ:     EQUALS,
	lexer.STRICT_NOT_EQ: EQUALS,
	lexer.LT:            LESSGREATER,
	lexer.GT:            LESSGREATER,
	lexer.LE:            LESSGREATER,
	lexer.GE:            LESSGREATER,
	lexer.PLUS:          SUM,
	lexer.MINUS:         SUM,
	lexer.SLASH:         PRODUCT,
	lexer.ASTERISK:      PRODUCT,
	lexer.INC:           POSTFIX,
	lexer.DEC:           POSTFIX,
	lexer.LBRACKET:      INDEX,
	lexer.DOT:           MEMBER,
}

// NewParser creates a new Parser over the given lexer.
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		source: l.GetSource(),
		errors: []errors.ScriptError{},
	}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.UNDEFINED, p.parseUndefinedLiteral)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.PLUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.INC, p.parsePrefixUpdateExpression)
	p.registerPrefix(lexer.DEC, p.parsePrefixUpdateExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseObjectLiteral)

	p.registerInfix(lexer.PLUS, p.parseInfixExpression)
	p.registerInfix(lexer.MINUS, p.parseInfixExpression)
	p.registerInfix(lexer.SLASH, p.parseInfixExpression)
	p.registerInfix(lexer.ASTERISK, p.parseInfixExpression)
	p.registerInfix(lexer.EQ, p.parseInfixExpression)
	p.registerInfix(lexer.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.STRICT_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.STRICT_NOT_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.LT, p.parseInfixExpression)
	p.registerInfix(lexer.GT, p.parseInfixExpression)
	p.registerInfix(lexer.LE, p.parseInfixExpression)
	p.registerInfix(lexer.GE, p.parseInfixExpression)
	p.registerInfix(lexer.LOGICAL_AND, p.parseInfixExpression)
	p.registerInfix(lexer.LOGICAL_OR, p.parseInfixExpression)
	p.registerInfix(lexer.COALESCE, p.parseInfixExpression)
	p.registerInfix(lexer.QUESTION, p.parseTernaryExpression)
	p.registerInfix(lexer.ASSIGN, p.parseAssignmentExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)
	p.registerInfix(lexer.DOT, p.parseMemberExpression)
	p.registerInfix(lexer.INC, p.parsePostfixUpdateExpression)
	p.registerInfix(lexer.DEC, p.parsePostfixUpdateExpression)

	// Read two tokens so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// Errors returns the syntax errors encountered so far.
func (p *Parser) Errors() []errors.ScriptError {
	return p.errors
}

func (p *Parser) addError(tok lexer.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, &errors.SyntaxError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   p.source,
		},
		Msg: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	if p.peekToken.Type == lexer.ILLEGAL {
		p.addError(p.peekToken, "illegal token %q", p.peekToken.Literal)
	}
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances only if the next token matches, recording an error
// otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(p.peekToken, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole input and returns the root Program node
// along with any syntax errors.
func (p *Parser) ParseProgram() (*Program, []errors.ScriptError) {
	program := &Program{Statements: []Statement{}}

	for !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > 0 {
			// Don't try to recover; report the first problem cleanly.
			break
		}
		p.nextToken()
	}

	return program, p.errors
}

func (p *Parser) parseStatement() Statement {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.CONST:
		return p.parseConstStatement()
	case lexer.SEMICOLON:
		return nil // empty statement
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() Statement {
	stmt := &LetStatement{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	// `let x;` declares x as undefined.
	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken() // consume '='
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseConstStatement() Statement {
	stmt := &ConstStatement{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken, "unexpected token %q", p.curToken.Literal)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

// --- Prefix parse functions ---

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() Expression {
	lit := &NumberLiteral{Token: p.curToken}
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as number", p.curToken.Literal)
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parseNullLiteral() Expression {
	return &NullLiteral{Token: p.curToken}
}

func (p *Parser) parseUndefinedLiteral() Expression {
	return &UndefinedLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() Expression {
	expr := &PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parsePrefixUpdateExpression() Expression {
	expr := &UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Prefix: true}
	p.nextToken()
	expr.Argument = p.parseExpression(PREFIX)
	if expr.Argument == nil {
		return nil
	}
	if !isAssignable(expr.Argument) {
		p.addError(expr.Token, "invalid %s target", expr.Operator)
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() Expression {
	arr := &ArrayLiteral{Token: p.curToken, Elements: []Expression{}}

	for !p.peekTokenIs(lexer.RBRACKET) && !p.peekTokenIs(lexer.EOF) {
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		arr.Elements = append(arr.Elements, el)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return arr
}

// --- Infix parse functions ---

func (p *Parser) parseInfixExpression(left Expression) Expression {
	expr := &InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseTernaryExpression(condition Expression) Expression {
	expr := &TernaryExpression{Token: p.curToken, Condition: condition}

	p.nextToken()
	expr.Consequence = p.parseExpression(TERNARY)
	if expr.Consequence == nil {
		return nil
	}

	if !p.expectPeek(lexer.COLON) {
		return nil
	}

	p.nextToken()
	// Right-associative: a ? b : c ? d : e groups the tail.
	expr.Alternative = p.parseExpression(TERNARY - 1)
	if expr.Alternative == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseAssignmentExpression(target Expression) Expression {
	expr := &AssignmentExpression{Token: p.curToken, Target: target}

	if !isAssignable(target) {
		p.addError(expr.Token, "invalid assignment target")
		return nil
	}

	p.nextToken()
	// Right-associative: a = b = c.
	expr.Value = p.parseExpression(ASSIGNMENT - 1)
	if expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseMemberExpression(object Expression) Expression {
	expr := &MemberExpression{Token: p.curToken, Object: object}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	expr.Property = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return expr
}

func (p *Parser) parseIndexExpression(object Expression) Expression {
	expr := &IndexExpression{Token: p.curToken, Object: object}

	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if expr.Index == nil {
		return nil
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parsePostfixUpdateExpression(argument Expression) Expression {
	expr := &UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Prefix: false, Argument: argument}
	if !isAssignable(argument) {
		p.addError(expr.Token, "invalid %s target", expr.Operator)
		return nil
	}
	return expr
}

func isAssignable(e Expression) bool {
	switch e.(type) {
	case *Identifier, *MemberExpression, *IndexExpression:
		return true
	}
	return false
}

// --- Object literals ---

// parseObjectLiteral parses { key: v, "str": v, 1: v, [expr]: v, key,
// key?: v, [expr]?: v, key? } with property order preserved.
func (p *Parser) parseObjectLiteral() Expression {
	objLit := &ObjectLiteral{
		Token:      p.curToken, // the '{' token
		Properties: []*ObjectProperty{},
	}

	for !p.peekTokenIs(lexer.RBRACE) && !p.peekTokenIs(lexer.EOF) {
		p.nextToken() // move past '{' or ',' to the key

		prop := p.parseObjectProperty()
		if prop == nil {
			return nil
		}
		objLit.Properties = append(objLit.Properties, prop)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken() // consume ',' (trailing comma allowed)
		} else {
			break
		}
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return objLit
}

func (p *Parser) parseObjectProperty() *ObjectProperty {
	prop := &ObjectProperty{}

	switch {
	case p.curTokenIs(lexer.LBRACKET):
		// Computed key: [expr] or [expr]?
		prop.Computed = true
		p.nextToken()
		prop.Key = p.parseExpression(LOWEST)
		if prop.Key == nil {
			return nil
		}
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
	case p.curTokenIs(lexer.STRING):
		prop.Key = &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case p.curTokenIs(lexer.NUMBER):
		key := p.parseNumberLiteral()
		if key == nil {
			return nil
		}
		prop.Key = key
	case p.curTokenIs(lexer.IDENT) || isKeywordToken(p.curToken.Type):
		// Keywords are valid literal property names: { let: 1 }.
		prop.Key = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	default:
		p.addError(p.curToken, "unexpected token %q in object literal", p.curToken.Literal)
		return nil
	}

	// The `?` marker sits between the key and the colon (or stands alone for
	// optional shorthand).
	if p.peekTokenIs(lexer.QUESTION) {
		p.nextToken() // consume '?'
		prop.Optional = true
	}

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken() // consume ':'
		p.nextToken()
		prop.Value = p.parseExpression(LOWEST)
		if prop.Value == nil {
			return nil
		}
		return prop
	}

	// No colon: shorthand. Only a plain identifier key can double as the
	// value source.
	if p.peekTokenIs(lexer.COMMA) || p.peekTokenIs(lexer.RBRACE) {
		ident, ok := prop.Key.(*Identifier)
		if !ok || prop.Computed || ident.Token.Type != lexer.IDENT {
			p.addError(p.curToken, "shorthand property requires an identifier key")
			return nil
		}
		prop.Shorthand = true
		prop.Value = ident
		return prop
	}

	p.addError(p.peekToken, "expected ':' in object literal, got %s instead", p.peekToken.Type)
	return nil
}

func isKeywordToken(t lexer.TokenType) bool {
	switch t {
	case lexer.LET, lexer.CONST, lexer.TRUE, lexer.FALSE, lexer.NULL, lexer.UNDEFINED:
		return true
	}
	return false
}
