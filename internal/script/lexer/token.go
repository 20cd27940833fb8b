package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT  // variable names, function names
	NUMBER // 123, 45.67
	STRING // "hello", 'world'

	// Keywords
	KW_TRUE
	KW_FALSE
	KW_NULL

	// Operators
	OP_ASSIGN   // =
	OP_PLUS     // +
	OP_MINUS    // -
	OP_ASTERISK // *
	OP_SLASH    // /
	OP_PERCENT  // %
	OP_BANG     // !
	OP_EQ       // ==
	OP_NEQ      // !=
	OP_LT       // <
	OP_GT       // >
	OP_LTE      // <=
	OP_GTE      // >=

	// Delimiters
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;
	DOT       // .
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
)

var tokenTypeNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENT:       "IDENT",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	KW_TRUE:     "true",
	KW_FALSE:    "false",
	KW_NULL:     "null",
	OP_ASSIGN:   "=",
	OP_PLUS:     "+",
	OP_MINUS:    "-",
	OP_ASTERISK: "*",
	OP_SLASH:    "/",
	OP_PERCENT:  "%",
	OP_BANG:     "!",
	OP_EQ:       "==",
	OP_NEQ:      "!=",
	OP_LT:       "<",
	OP_GT:       ">",
	OP_LTE:      "<=",
	OP_GTE:      ">=",
	COMMA:       ",",
	COLON:       ":",
	SEMICOLON:   ";",
	DOT:         ".",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	LBRACKET:    "[",
	RBRACKET:    "]",
}

// String returns a readable name for the token type
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) && tokenTypeNames[t] != "" {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token represents a lexical token with position information
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1-indexed
	Column  int // 1-indexed
}

// keywords maps keyword literals to their token types
var keywords = map[string]TokenType{
	"true":  KW_TRUE,
	"false": KW_FALSE,
	"null":  KW_NULL,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
