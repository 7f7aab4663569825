package bigsmiles

import "fmt"

// Lexer tokenizes BigSMILES source text into a stream of tokens.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

// Tokenize drains a fresh lexer over src and returns the token slice. The
// terminating EOF token is not included.
func Tokenize(src string) ([]Token, error) {
	lex := NewLexer([]byte(src))
	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		ch := l.peek()
		if ch == ' ' || ch == '\t' {
			l.advance()
			continue
		}
		return
	}
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peek()

	switch ch {
	case '-', '=', '#', '$', '/', '\\':
		l.advance()
		return Token{Kind: TokenBond, Value: string(ch), Pos: pos}, nil
	case '.':
		l.advance()
		return Token{Kind: TokenDisconnect, Value: ".", Pos: pos}, nil
	case '(':
		l.advance()
		return Token{Kind: TokenBranchStart, Value: "(", Pos: pos}, nil
	case ')':
		l.advance()
		return Token{Kind: TokenBranchEnd, Value: ")", Pos: pos}, nil
	case '{':
		l.advance()
		return Token{Kind: TokenStochasticStart, Value: "{", Pos: pos}, nil
	case '}':
		l.advance()
		return Token{Kind: TokenStochasticEnd, Value: "}", Pos: pos}, nil
	case ',', ';':
		l.advance()
		return Token{Kind: TokenStochasticSeparator, Value: string(ch), Pos: pos}, nil
	case '%':
		if isDigit(l.peekAt(1)) && isDigit(l.peekAt(2)) {
			l.advance()
			d1 := l.advance()
			d2 := l.advance()
			return Token{Kind: TokenRing2, Value: "%" + string(d1) + string(d2), Pos: pos}, nil
		}
		l.advance()
		return Token{}, newTokenizeError("'%' must be followed by a two-digit ring index", pos)
	case '>':
		l.advance()
		if l.peek() == '>' {
			l.advance()
			return Token{Kind: TokenReactionArrow, Value: ">>", Pos: pos}, nil
		}
		return Token{Kind: TokenReactionArrow, Value: ">", Pos: pos}, nil
	case '[':
		return l.scanBracket()
	}

	if isDigit(ch) {
		l.advance()
		return Token{Kind: TokenRing, Value: string(ch), Pos: pos}, nil
	}

	if isLetter(ch) {
		return l.scanSymbol()
	}

	l.advance()
	return Token{}, newTokenizeError(fmt.Sprintf("invalid symbol %q", string(ch)), pos)
}

// scanSymbol matches a bare atom symbol against the organic subset in its
// two-letter-first order, then the lowercase aromatic subset. Anything else
// is either a real element that requires brackets or an outright tokenize
// error.
func (l *Lexer) scanSymbol() (Token, error) {
	pos := l.currentPos()

	for _, symbol := range organicSubset {
		if l.hasPrefix(symbol) {
			for i := 0; i < len(symbol); i++ {
				l.advance()
			}
			return Token{Kind: TokenAtom, Value: symbol, Pos: pos}, nil
		}
	}

	one := string(l.peek())
	if IsAromaticSymbol(one) {
		l.advance()
		return Token{Kind: TokenAtom, Value: one, Pos: pos}, nil
	}

	if two := l.twoByteSymbol(); IsElement(two) {
		return Token{}, &ElementError{ParseError: ParseError{Pos: pos}, Symbol: two}
	}
	if IsElement(one) {
		return Token{}, &ElementError{ParseError: ParseError{Pos: pos}, Symbol: one}
	}

	l.advance()
	return Token{}, newTokenizeError(fmt.Sprintf("invalid symbol %q", one), pos)
}

func (l *Lexer) hasPrefix(s string) bool {
	return l.pos+len(s) <= len(l.src) && string(l.src[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) twoByteSymbol() string {
	if l.pos+1 >= len(l.src) {
		return ""
	}
	return string(l.src[l.pos : l.pos+2])
}

// scanBracket handles everything opened by '[': the implicit end group '[]',
// bonding descriptors (plain and ladder), and extended atoms. Extended atom
// bodies are kept raw; TokenizeAtomSymbol decomposes them later.
func (l *Lexer) scanBracket() (Token, error) {
	pos := l.currentPos()
	l.advance() // consume '['

	if l.peek() == ']' {
		l.advance()
		return Token{Kind: TokenImplicitEndGroup, Value: "[]", Pos: pos}, nil
	}

	if ch := l.peek(); ch == '<' || ch == '>' || ch == '$' {
		return l.scanDescriptor(pos)
	}

	// Extended atom: consume through the matching ']'.
	start := l.pos
	for !l.atEnd() && l.peek() != ']' && l.peek() != '[' {
		l.advance()
	}
	if l.atEnd() || l.peek() == '[' {
		return Token{}, newScopeError("missing closing bracket symbol ']'")
	}
	body := string(l.src[start:l.pos])
	l.advance() // consume ']'
	return Token{Kind: TokenExtendedAtom, Value: "[" + body + "]", Pos: pos}, nil
}

func (l *Lexer) scanDescriptor(pos Position) (Token, error) {
	start := l.pos - 1 // include '['
	l.advance()        // consume descriptor symbol
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == ']' {
		l.advance()
		return Token{Kind: TokenBondingDescriptor, Value: string(l.src[start:l.pos]), Pos: pos}, nil
	}

	if l.peek() == '[' {
		// Ladder form: [$1[$2]1]
		l.advance()
		if ch := l.peek(); ch != '<' && ch != '>' && ch != '$' {
			return Token{}, newTokenizeError("invalid ladder bonding descriptor", pos)
		}
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() != ']' {
			return Token{}, newTokenizeError("invalid ladder bonding descriptor", pos)
		}
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() != ']' {
			return Token{}, newTokenizeError("invalid ladder bonding descriptor", pos)
		}
		l.advance()
		return Token{Kind: TokenBondingDescriptorLadder, Value: string(l.src[start:l.pos]), Pos: pos}, nil
	}

	return Token{}, newTokenizeError(fmt.Sprintf("invalid bonding descriptor starting at %q", string(l.src[start:l.pos])), pos)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
