// File: lexer.go
// Title: Command Line Lexer
// Description: Splits one input line into whitespace-delimited tokens. A
//              token of the form --key="..." is kept whole up to its closing
//              quote so that quoted values may contain whitespace.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-04
// Modified: 2025-03-04
//
// Change History:
// - 2025-03-04 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenKind represents the lexical kind of a token
type TokenKind int

const (
	// TokenWord is a maximal run of non-whitespace characters
	TokenWord TokenKind = iota

	// TokenQuoted is a --key="..." token that may contain whitespace
	TokenQuoted
)

// String returns a string representation of the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "WORD"
	case TokenQuoted:
		return "QUOTED"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexical unit of an input line
type Token struct {
	Kind     TokenKind
	Value    string
	Position int // byte offset in the input
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Value, t.Position)
}

// Lexer tokenizes a single input line
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns all tokens of the input in order
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, ok := l.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) next() (Token, bool) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	if end, ok := l.quotedEnd(); ok {
		l.pos = end
		return Token{Kind: TokenQuoted, Value: l.input[start:end], Position: start}, true
	}

	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	return Token{Kind: TokenWord, Value: l.input[start:l.pos], Position: start}, true
}

// quotedEnd reports the end offset of a --key="..." token starting at the
// current position. The closing quote must be followed by whitespace or the
// end of input.
func (l *Lexer) quotedEnd() (int, bool) {
	rest := l.input[l.pos:]
	if len(rest) < 2 || rest[0] != '-' || rest[1] != '-' {
		return 0, false
	}

	i := 2
	for i < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[i:])
		if !isWordRune(r) {
			break
		}
		i += size
	}
	if i == 2 || i+1 >= len(rest) || rest[i] != '=' || rest[i+1] != '"' {
		return 0, false
	}

	for j := i + 2; j < len(rest); j++ {
		if rest[j] != '"' {
			continue
		}
		if j+1 == len(rest) {
			return l.pos + j + 1, true
		}
		if r, _ := utf8.DecodeRuneInString(rest[j+1:]); unicode.IsSpace(r) {
			return l.pos + j + 1, true
		}
	}
	return 0, false
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
