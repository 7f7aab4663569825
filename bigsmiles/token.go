package bigsmiles

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF                     TokenKind = iota
	TokenAtom                              // bare organic-subset atom, incl. aromatic lowercase
	TokenExtendedAtom                      // [isotope? element stereo? H? charge? class?]
	TokenBond                              // - = # $ / \
	TokenBranchStart                       // (
	TokenBranchEnd                         // )
	TokenRing                              // single digit
	TokenRing2                             // %NN
	TokenDisconnect                        // .
	TokenBondingDescriptor                 // [<] [>] [$] with optional index
	TokenBondingDescriptorLadder           // [$1[$2]1]
	TokenStochasticStart                   // {
	TokenStochasticEnd                     // }
	TokenStochasticSeparator               // , ;
	TokenImplicitEndGroup                  // []
	TokenReactionArrow                     // >> or >
)

var tokenNames = map[TokenKind]string{
	TokenEOF:                     "EOF",
	TokenAtom:                    "atom",
	TokenExtendedAtom:            "bracket atom",
	TokenBond:                    "bond",
	TokenBranchStart:             "'('",
	TokenBranchEnd:               "')'",
	TokenRing:                    "ring index",
	TokenRing2:                   "two-digit ring index",
	TokenDisconnect:              "'.'",
	TokenBondingDescriptor:       "bonding descriptor",
	TokenBondingDescriptorLadder: "ladder bonding descriptor",
	TokenStochasticStart:         "'{'",
	TokenStochasticEnd:           "'}'",
	TokenStochasticSeparator:     "stochastic separator",
	TokenImplicitEndGroup:        "'[]'",
	TokenReactionArrow:           "reaction arrow",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind  TokenKind
	Value string // raw text, brackets included for bracket forms
	Pos   Position
}
