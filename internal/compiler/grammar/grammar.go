// Package grammar holds the FIRST sets of the Crux grammar. The table is
// derived by hand from the productions below and never changes at run time;
// the parser only ever asks whether a token type belongs to a set.
//
//	program              := declaration-list EOF
//	declaration-list     := { declaration }
//	declaration          := variable-declaration | function-definition | array-declaration
//	variable-declaration := "var" IDENTIFIER ":" type ";"
//	function-definition  := "func" IDENTIFIER "(" parameter-list ")" ":" type statement-block
//	array-declaration    := "array" IDENTIFIER ":" type "[" INTEGER "]" { "[" INTEGER "]" } ";"
//	statement-block      := "{" statement-list "}"
//	statement-list       := { statement }
//	statement            := variable-declaration | call-statement | assignment-statement
//	                        | if-statement | while-statement | return-statement
//	call-statement       := call-expression ";"
//	call-expression      := "::" IDENTIFIER "(" expression-list ")"
//	assignment-statement := "let" designator "=" expression0 ";"
//	designator           := IDENTIFIER { "[" expression0 "]" }
//	if-statement         := "if" expression0 statement-block [ "else" statement-block ]
//	while-statement      := "while" expression0 statement-block
//	return-statement     := "return" expression0 ";"
//	expression-list      := [ expression0 { "," expression0 } ]
//	expression0          := expression1 [ op0 expression1 ]
//	expression1          := expression2 { op1 expression2 }
//	expression2          := expression3 { op2 expression3 }
//	expression3          := "not" expression3 | "(" expression0 ")" | designator
//	                        | call-expression | literal
//	literal              := INTEGER | FLOAT | TRUE | FALSE
//	parameter-list       := [ parameter { "," parameter } ]
//	parameter            := IDENTIFIER ":" type
//	type                 := IDENTIFIER
package grammar

import "github.com/arnavsurve/crux/internal/compiler/token"

type NonTerminal int

const (
	Program NonTerminal = iota
	DeclarationList
	Declaration
	VariableDeclaration
	FunctionDefinition
	ArrayDeclaration
	StatementBlock
	StatementList
	Statement
	CallStatement
	CallExpression
	AssignmentStatement
	Designator
	IfStatement
	WhileStatement
	ReturnStatement
	ExpressionList
	Expression0
	Expression1
	Expression2
	Expression3
	Op0
	Op1
	Op2
	Literal
	ParameterList
	Parameter
	Type

	numNonTerminals
)

var names = [numNonTerminals]string{
	Program:             "PROGRAM",
	DeclarationList:     "DECLARATION_LIST",
	Declaration:         "DECLARATION",
	VariableDeclaration: "VARIABLE_DECLARATION",
	FunctionDefinition:  "FUNCTION_DEFINITION",
	ArrayDeclaration:    "ARRAY_DECLARATION",
	StatementBlock:      "STATEMENT_BLOCK",
	StatementList:       "STATEMENT_LIST",
	Statement:           "STATEMENT",
	CallStatement:       "CALL_STATEMENT",
	CallExpression:      "CALL_EXPRESSION",
	AssignmentStatement: "ASSIGNMENT_STATEMENT",
	Designator:          "DESIGNATOR",
	IfStatement:         "IF_STATEMENT",
	WhileStatement:      "WHILE_STATEMENT",
	ReturnStatement:     "RETURN_STATEMENT",
	ExpressionList:      "EXPRESSION_LIST",
	Expression0:         "EXPRESSION0",
	Expression1:         "EXPRESSION1",
	Expression2:         "EXPRESSION2",
	Expression3:         "EXPRESSION3",
	Op0:                 "OP0",
	Op1:                 "OP1",
	Op2:                 "OP2",
	Literal:             "LITERAL",
	ParameterList:       "PARAMETER_LIST",
	Parameter:           "PARAMETER",
	Type:                "TYPE",
}

// String returns the name used in "Expected a token from ..." diagnostics.
func (nt NonTerminal) String() string {
	if nt < 0 || nt >= numNonTerminals {
		return "UNKNOWN"
	}
	return names[nt]
}

// NonTerminals lists every nonterminal in grammar order.
func NonTerminals() []NonTerminal {
	all := make([]NonTerminal, numNonTerminals)
	for i := range all {
		all[i] = NonTerminal(i)
	}
	return all
}

// Lookup finds a nonterminal by its diagnostic name.
func Lookup(name string) (NonTerminal, bool) {
	for i, n := range names {
		if n == name {
			return NonTerminal(i), true
		}
	}
	return 0, false
}

// Set is an immutable set of token types.
type Set struct {
	m map[token.TokenType]struct{}
}

func newSet(kinds ...token.TokenType) Set {
	s := Set{m: make(map[token.TokenType]struct{}, len(kinds))}
	for _, k := range kinds {
		s.m[k] = struct{}{}
	}
	return s
}

func union(sets ...Set) Set {
	s := Set{m: make(map[token.TokenType]struct{})}
	for _, other := range sets {
		for k := range other.m {
			s.m[k] = struct{}{}
		}
	}
	return s
}

func (s Set) Contains(kind token.TokenType) bool {
	_, ok := s.m[kind]
	return ok
}

func (s Set) Len() int {
	return len(s.m)
}

// Kinds returns the members sorted by name.
func (s Set) Kinds() []token.TokenType {
	kinds := make([]token.TokenType, 0, len(s.m))
	for _, k := range token.Kinds {
		if s.Contains(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

var firstSets = func() [numNonTerminals]Set {
	var fs [numNonTerminals]Set

	fs[VariableDeclaration] = newSet(token.TokenVar)
	fs[FunctionDefinition] = newSet(token.TokenFunc)
	fs[ArrayDeclaration] = newSet(token.TokenArray)
	fs[Declaration] = union(fs[VariableDeclaration], fs[FunctionDefinition], fs[ArrayDeclaration])
	// declaration-list may be empty, in which case EOF follows directly.
	fs[DeclarationList] = union(fs[Declaration], newSet(token.TokenEOF))
	fs[Program] = fs[DeclarationList]

	fs[Literal] = newSet(token.TokenInt, token.TokenFloat, token.TokenTrue, token.TokenFalse)
	fs[Designator] = newSet(token.TokenIdent)
	fs[CallExpression] = newSet(token.TokenCall)
	fs[Expression3] = union(newSet(token.TokenNot, token.TokenOpenParen), fs[Designator], fs[CallExpression], fs[Literal])
	fs[Expression2] = fs[Expression3]
	fs[Expression1] = fs[Expression2]
	fs[Expression0] = fs[Expression1]
	fs[ExpressionList] = fs[Expression0]

	fs[Op0] = newSet(token.TokenGreaterEqual, token.TokenLesserEqual, token.TokenNotEqual,
		token.TokenEqual, token.TokenGreaterThan, token.TokenLessThan)
	fs[Op1] = newSet(token.TokenAdd, token.TokenSub, token.TokenOr)
	fs[Op2] = newSet(token.TokenMul, token.TokenDiv, token.TokenAnd)

	fs[CallStatement] = fs[CallExpression]
	fs[AssignmentStatement] = newSet(token.TokenLet)
	fs[IfStatement] = newSet(token.TokenIf)
	fs[WhileStatement] = newSet(token.TokenWhile)
	fs[ReturnStatement] = newSet(token.TokenReturn)
	fs[Statement] = union(fs[VariableDeclaration], fs[CallStatement], fs[AssignmentStatement],
		fs[IfStatement], fs[WhileStatement], fs[ReturnStatement])
	fs[StatementList] = fs[Statement]
	fs[StatementBlock] = newSet(token.TokenOpenBrace)

	fs[Type] = newSet(token.TokenIdent)
	fs[Parameter] = newSet(token.TokenIdent)
	fs[ParameterList] = fs[Parameter]

	return fs
}()

// FirstSet returns the set of token types that can begin nt.
func FirstSet(nt NonTerminal) Set {
	return firstSets[nt]
}

// FirstSet is a method form of the package function.
func (nt NonTerminal) FirstSet() Set {
	return firstSets[nt]
}
