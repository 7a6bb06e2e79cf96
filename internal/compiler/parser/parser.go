package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/arnavsurve/crux/internal/compiler/diag"
	"github.com/arnavsurve/crux/internal/compiler/grammar"
	"github.com/arnavsurve/crux/internal/compiler/lexer"
	"github.com/arnavsurve/crux/internal/compiler/scope"
	"github.com/arnavsurve/crux/internal/compiler/symbols"
	"github.com/arnavsurve/crux/internal/compiler/token"
	"github.com/arnavsurve/crux/internal/logging"
)

// SyntaxError stops the parse. It unwinds every production up to Parse.
type SyntaxError struct {
	Token token.Token
	Entry diag.Entry
}

func (e *SyntaxError) Error() string {
	return e.Entry.Header()
}

// Binding records one declaration or resolution made while parsing.
type Binding struct {
	Token    token.Token
	Symbol   *symbols.Symbol
	Declared bool         // false for resolutions
	Scope    scope.Handle // scope that was current
	Depth    int          // depth of that scope
}

type Parser struct {
	l      *lexer.Lexer
	curTok token.Token

	// Scope management
	scopes *scope.Table

	report   *diag.Report
	bindings []Binding
	parsed   bool

	log logging.Logger
}

// NewParser returns a parser pulling tokens from l. Pass nil for logger to
// disable logging.
func NewParser(l *lexer.Lexer, logger *slog.Logger) *Parser {
	return &Parser{
		l:      l,
		scopes: scope.NewTable(),
		report: diag.New(),
		log:    logging.New(logger, "parser"),
	}
}

// Check parses everything r yields. A read failure is returned alongside
// the report, which then covers only the input read before it.
func Check(r io.Reader, logger *slog.Logger) (*diag.Report, error) {
	l := lexer.NewLexer(r, logger)
	report := NewParser(l, logger).Parse()
	if err := l.Err(); err != nil {
		return report, fmt.Errorf("read source: %w", err)
	}
	return report, nil
}

// Parse runs the pass once; later calls return the same report. Syntax
// errors end the pass, naming errors are recorded and parsing continues.
func (p *Parser) Parse() *diag.Report {
	if p.parsed {
		return p.report
	}
	p.parsed = true

	err := p.program()
	var syntaxErr *SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		p.report.Abort(p.curTok.Line, p.curTok.Column)
		p.log.Log(slog.LevelDebug, "parse aborted", slog.String("error", syntaxErr.Error()))
	case err != nil:
		// productions only ever fail with *SyntaxError
		panic(fmt.Sprintf("parser: unexpected error %v", err))
	}
	return p.report
}

func (p *Parser) HasError() bool {
	return p.report.HasError()
}

// ErrorReport returns the accumulated diagnostics as text.
func (p *Parser) ErrorReport() string {
	return p.report.String()
}

func (p *Parser) Report() *diag.Report {
	return p.report
}

// Bindings returns every declaration and resolution in source order.
func (p *Parser) Bindings() []Binding {
	return append([]Binding(nil), p.bindings...)
}

// --- Token Handling ---

func (p *Parser) nextToken() {
	p.curTok = p.l.NextToken()
}

func (p *Parser) have(nt grammar.NonTerminal) bool {
	return grammar.FirstSet(nt).Contains(p.curTok.Type)
}

func (p *Parser) is(typ token.TokenType) bool {
	return p.curTok.Is(typ)
}

func (p *Parser) accept(nt grammar.NonTerminal) bool {
	if p.have(nt) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) acceptToken(typ token.TokenType) bool {
	if p.is(typ) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) expect(typ token.TokenType) error {
	if p.acceptToken(typ) {
		return nil
	}
	entry := p.report.Expected(p.curTok.Line, p.curTok.Column, typ, p.curTok.Type)
	return &SyntaxError{Token: p.curTok, Entry: entry}
}

// expectFrom fails unless the current token can start nt. It does not
// consume anything.
func (p *Parser) expectFrom(nt grammar.NonTerminal) error {
	if p.have(nt) {
		return nil
	}
	entry := p.report.ExpectedFrom(p.curTok.Line, p.curTok.Column, nt, p.curTok.Type)
	return &SyntaxError{Token: p.curTok, Entry: entry}
}

func (p *Parser) trace(nt grammar.NonTerminal) {
	if p.log.Enabled(slog.LevelDebug) {
		p.log.Log(slog.LevelDebug, "enter", slog.String("rule", nt.String()),
			slog.Int("line", p.curTok.Line), slog.Int("column", p.curTok.Column))
	}
}

// --- Scope Management Wrappers ---

func (p *Parser) enterScope() {
	p.scopes.Enter()
	p.log.Log(slog.LevelDebug, "enter scope", slog.Int("depth", p.scopes.Depth()))
}

func (p *Parser) exitScope() {
	p.log.Log(slog.LevelDebug, "exit scope", slog.Int("depth", p.scopes.Depth()))
	p.scopes.Exit()
}

// declare binds ident in the current scope. A non-identifier is left for
// the following expect to reject.
func (p *Parser) declare(ident token.Token) *symbols.Symbol {
	if ident.Type != token.TokenIdent {
		return nil
	}
	sym, err := p.scopes.Declare(ident.Literal)
	if err != nil {
		entry := p.report.Redeclared(ident.Line, ident.Column, ident.Literal, p.scopes.Dump())
		p.log.Log(slog.LevelDebug, "redeclaration", slog.String("name", ident.Literal), slog.String("error", err.Error()))
		sym = symbols.NewError(ident.Literal, entry.Header())
	}
	p.bindings = append(p.bindings, Binding{Token: ident, Symbol: sym, Declared: true, Scope: p.scopes.Current(), Depth: p.scopes.Depth()})
	return sym
}

// resolve looks ident up through the scope chain.
func (p *Parser) resolve(ident token.Token) *symbols.Symbol {
	if ident.Type != token.TokenIdent {
		return nil
	}
	sym, err := p.scopes.Resolve(ident.Literal)
	if err != nil {
		entry := p.report.Unresolved(ident.Line, ident.Column, ident.Literal, p.scopes.Dump())
		p.log.Log(slog.LevelDebug, "unresolved", slog.String("name", ident.Literal), slog.String("error", err.Error()))
		sym = symbols.NewError(ident.Literal, entry.Header())
	}
	p.bindings = append(p.bindings, Binding{Token: ident, Symbol: sym, Scope: p.scopes.Current(), Depth: p.scopes.Depth()})
	return sym
}

// --- Declarations ---

// program := declaration-list EOF
func (p *Parser) program() error {
	p.nextToken()
	p.trace(grammar.Program)
	if err := p.declarationList(); err != nil {
		return err
	}
	return p.expect(token.TokenEOF)
}

// declaration-list := { declaration }
func (p *Parser) declarationList() error {
	p.trace(grammar.DeclarationList)
	for p.have(grammar.Declaration) {
		if err := p.declaration(); err != nil {
			return err
		}
	}
	return nil
}

// declaration := variable-declaration | function-definition | array-declaration
func (p *Parser) declaration() error {
	p.trace(grammar.Declaration)
	switch {
	case p.have(grammar.VariableDeclaration):
		return p.variableDeclaration()
	case p.have(grammar.FunctionDefinition):
		return p.functionDefinition()
	case p.have(grammar.ArrayDeclaration):
		return p.arrayDeclaration()
	}
	return p.expectFrom(grammar.Declaration)
}

// variable-declaration := "var" IDENTIFIER ":" type ";"
func (p *Parser) variableDeclaration() error {
	p.trace(grammar.VariableDeclaration)
	if err := p.expect(token.TokenVar); err != nil {
		return err
	}
	p.declare(p.curTok)
	if err := p.expect(token.TokenIdent); err != nil {
		return err
	}
	if err := p.expect(token.TokenColon); err != nil {
		return err
	}
	if err := p.typ(); err != nil {
		return err
	}
	return p.expect(token.TokenSemicolon)
}

// function-definition := "func" IDENTIFIER "(" parameter-list ")" ":" type statement-block
//
// Parameters and body share the scope opened after "(".
func (p *Parser) functionDefinition() error {
	p.trace(grammar.FunctionDefinition)
	if err := p.expect(token.TokenFunc); err != nil {
		return err
	}
	p.declare(p.curTok)
	if err := p.expect(token.TokenIdent); err != nil {
		return err
	}
	if err := p.expect(token.TokenOpenParen); err != nil {
		return err
	}
	p.enterScope()
	if err := p.parameterList(); err != nil {
		return err
	}
	if err := p.expect(token.TokenCloseParen); err != nil {
		return err
	}
	if err := p.expect(token.TokenColon); err != nil {
		return err
	}
	if err := p.typ(); err != nil {
		return err
	}
	if err := p.statementBlock(); err != nil {
		return err
	}
	p.exitScope()
	return nil
}

// array-declaration := "array" IDENTIFIER ":" type "[" INTEGER "]" { "[" INTEGER "]" } ";"
func (p *Parser) arrayDeclaration() error {
	p.trace(grammar.ArrayDeclaration)
	if err := p.expect(token.TokenArray); err != nil {
		return err
	}
	p.declare(p.curTok)
	if err := p.expect(token.TokenIdent); err != nil {
		return err
	}
	if err := p.expect(token.TokenColon); err != nil {
		return err
	}
	if err := p.typ(); err != nil {
		return err
	}
	if err := p.expect(token.TokenOpenBracket); err != nil {
		return err
	}
	if err := p.dimension(); err != nil {
		return err
	}
	for p.acceptToken(token.TokenOpenBracket) {
		if err := p.dimension(); err != nil {
			return err
		}
	}
	return p.expect(token.TokenSemicolon)
}

// dimension parses INTEGER "]" once the "[" is consumed.
func (p *Parser) dimension() error {
	if err := p.expect(token.TokenInt); err != nil {
		return err
	}
	return p.expect(token.TokenCloseBracket)
}

// parameter-list := [ parameter { "," parameter } ]
func (p *Parser) parameterList() error {
	p.trace(grammar.ParameterList)
	if !p.have(grammar.Parameter) {
		return nil
	}
	if err := p.parameter(); err != nil {
		return err
	}
	for p.acceptToken(token.TokenComma) {
		if err := p.parameter(); err != nil {
			return err
		}
	}
	return nil
}

// parameter := IDENTIFIER ":" type
func (p *Parser) parameter() error {
	p.trace(grammar.Parameter)
	if err := p.expectFrom(grammar.Parameter); err != nil {
		return err
	}
	p.declare(p.curTok)
	p.nextToken()
	if err := p.expect(token.TokenColon); err != nil {
		return err
	}
	return p.typ()
}

// type := IDENTIFIER
func (p *Parser) typ() error {
	p.trace(grammar.Type)
	return p.expect(token.TokenIdent)
}

// --- Statements ---

// statement-block := "{" statement-list "}"
func (p *Parser) statementBlock() error {
	p.trace(grammar.StatementBlock)
	if err := p.expect(token.TokenOpenBrace); err != nil {
		return err
	}
	if err := p.statementList(); err != nil {
		return err
	}
	return p.expect(token.TokenCloseBrace)
}

// statement-list := { statement }
func (p *Parser) statementList() error {
	p.trace(grammar.StatementList)
	for p.have(grammar.Statement) {
		if err := p.statement(); err != nil {
			return err
		}
	}
	return nil
}

// statement := variable-declaration | call-statement | assignment-statement
// | if-statement | while-statement | return-statement
func (p *Parser) statement() error {
	p.trace(grammar.Statement)
	switch {
	case p.have(grammar.VariableDeclaration):
		return p.variableDeclaration()
	case p.have(grammar.CallStatement):
		return p.callStatement()
	case p.have(grammar.AssignmentStatement):
		return p.assignmentStatement()
	case p.have(grammar.IfStatement):
		return p.ifStatement()
	case p.have(grammar.WhileStatement):
		return p.whileStatement()
	case p.have(grammar.ReturnStatement):
		return p.returnStatement()
	}
	return p.expectFrom(grammar.Statement)
}

// call-statement := call-expression ";"
func (p *Parser) callStatement() error {
	p.trace(grammar.CallStatement)
	if err := p.callExpression(); err != nil {
		return err
	}
	return p.expect(token.TokenSemicolon)
}

// assignment-statement := "let" designator "=" expression0 ";"
func (p *Parser) assignmentStatement() error {
	p.trace(grammar.AssignmentStatement)
	if err := p.expect(token.TokenLet); err != nil {
		return err
	}
	if err := p.designator(); err != nil {
		return err
	}
	if err := p.expect(token.TokenAssign); err != nil {
		return err
	}
	if err := p.expression0(); err != nil {
		return err
	}
	return p.expect(token.TokenSemicolon)
}

// if-statement := "if" expression0 statement-block [ "else" statement-block ]
//
// One scope spans the condition and both blocks.
func (p *Parser) ifStatement() error {
	p.trace(grammar.IfStatement)
	if err := p.expect(token.TokenIf); err != nil {
		return err
	}
	p.enterScope()
	if err := p.expression0(); err != nil {
		return err
	}
	if err := p.statementBlock(); err != nil {
		return err
	}
	if p.acceptToken(token.TokenElse) {
		if err := p.statementBlock(); err != nil {
			return err
		}
	}
	p.exitScope()
	return nil
}

// while-statement := "while" expression0 statement-block
func (p *Parser) whileStatement() error {
	p.trace(grammar.WhileStatement)
	if err := p.expect(token.TokenWhile); err != nil {
		return err
	}
	p.enterScope()
	if err := p.expression0(); err != nil {
		return err
	}
	if err := p.statementBlock(); err != nil {
		return err
	}
	p.exitScope()
	return nil
}

// return-statement := "return" expression0 ";"
func (p *Parser) returnStatement() error {
	p.trace(grammar.ReturnStatement)
	if err := p.expect(token.TokenReturn); err != nil {
		return err
	}
	if err := p.expression0(); err != nil {
		return err
	}
	return p.expect(token.TokenSemicolon)
}

// --- Expressions ---

// call-expression := "::" IDENTIFIER "(" expression-list ")"
func (p *Parser) callExpression() error {
	p.trace(grammar.CallExpression)
	if err := p.expect(token.TokenCall); err != nil {
		return err
	}
	p.resolve(p.curTok)
	if err := p.expect(token.TokenIdent); err != nil {
		return err
	}
	if err := p.expect(token.TokenOpenParen); err != nil {
		return err
	}
	if err := p.expressionList(); err != nil {
		return err
	}
	return p.expect(token.TokenCloseParen)
}

// designator := IDENTIFIER { "[" expression0 "]" }
func (p *Parser) designator() error {
	p.trace(grammar.Designator)
	if err := p.expectFrom(grammar.Designator); err != nil {
		return err
	}
	p.resolve(p.curTok)
	p.nextToken()
	for p.acceptToken(token.TokenOpenBracket) {
		if err := p.expression0(); err != nil {
			return err
		}
		if err := p.expect(token.TokenCloseBracket); err != nil {
			return err
		}
	}
	return nil
}

// expression-list := [ expression0 { "," expression0 } ]
func (p *Parser) expressionList() error {
	p.trace(grammar.ExpressionList)
	if !p.have(grammar.Expression0) {
		return nil
	}
	if err := p.expression0(); err != nil {
		return err
	}
	for p.acceptToken(token.TokenComma) {
		if err := p.expression0(); err != nil {
			return err
		}
	}
	return nil
}

// expression0 := expression1 [ op0 expression1 ]
//
// Comparisons do not chain: "a < b < c" stops after "a < b".
func (p *Parser) expression0() error {
	p.trace(grammar.Expression0)
	if err := p.expression1(); err != nil {
		return err
	}
	if p.accept(grammar.Op0) {
		return p.expression1()
	}
	return nil
}

// expression1 := expression2 { op1 expression2 }
func (p *Parser) expression1() error {
	p.trace(grammar.Expression1)
	if err := p.expression2(); err != nil {
		return err
	}
	for p.accept(grammar.Op1) {
		if err := p.expression2(); err != nil {
			return err
		}
	}
	return nil
}

// expression2 := expression3 { op2 expression3 }
func (p *Parser) expression2() error {
	p.trace(grammar.Expression2)
	if err := p.expression3(); err != nil {
		return err
	}
	for p.accept(grammar.Op2) {
		if err := p.expression3(); err != nil {
			return err
		}
	}
	return nil
}

// expression3 := "not" expression3 | "(" expression0 ")" | designator
// | call-expression | literal
func (p *Parser) expression3() error {
	p.trace(grammar.Expression3)
	switch {
	case p.acceptToken(token.TokenNot):
		return p.expression3()
	case p.acceptToken(token.TokenOpenParen):
		if err := p.expression0(); err != nil {
			return err
		}
		return p.expect(token.TokenCloseParen)
	case p.have(grammar.Designator):
		return p.designator()
	case p.have(grammar.CallExpression):
		return p.callExpression()
	case p.have(grammar.Literal):
		return p.literal()
	}
	return p.expectFrom(grammar.Expression3)
}

// literal := INTEGER | FLOAT | TRUE | FALSE
func (p *Parser) literal() error {
	p.trace(grammar.Literal)
	if err := p.expectFrom(grammar.Literal); err != nil {
		return err
	}
	p.nextToken()
	return nil
}
