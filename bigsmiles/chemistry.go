package bigsmiles

// Static chemical lookup data: element symbols, default valences, and bond
// orders. All tables are read-only after package init; concurrent parses may
// share them freely.

// bondOrders maps a bond symbol to its order. The stereo markers '/' and '\'
// are order-1 single bonds; only the raw marker is recorded (E/Z assignment
// is not resolved here).
var bondOrders = map[string]float64{
	".":  0,
	"":   1,
	"-":  1,
	"/":  1,
	"\\": 1,
	":":  1.5,
	"=":  2,
	"#":  3,
	"$":  4,
}

// BondOrder returns the order for a bond symbol, or 0 and false for an
// unknown symbol.
func BondOrder(symbol string) (float64, bool) {
	order, ok := bondOrders[symbol]
	return order, ok
}

// symbolForOrder is the inverse of bondOrders for the canonical symbols.
// Used when merged duplicate rings sum their orders.
func symbolForOrder(order float64) (string, bool) {
	switch order {
	case 0:
		return ".", true
	case 1:
		return "", true
	case 1.5:
		return ":", true
	case 2:
		return "=", true
	case 3:
		return "#", true
	case 4:
		return "$", true
	}
	return "", false
}

// organicSubset holds the elements that may be written without brackets,
// with inferred hydrogens. Order matters for the lexer: two-letter symbols
// must be tried before their one-letter prefixes.
var organicSubset = []string{"Cl", "Br", "B", "C", "N", "O", "P", "S", "F", "I"}

var organicSet = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticSubset holds the lowercase aromatic forms allowed in bare notation.
var aromaticSubset = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
}

// elementSymbols is the full periodic table. Any of these is a valid bracket
// atom; only the organic subset is valid bare.
var elementSymbols = map[string]bool{
	"H": true, "He": true, "Li": true, "Be": true, "B": true, "C": true,
	"N": true, "O": true, "F": true, "Ne": true, "Na": true, "Mg": true,
	"Al": true, "Si": true, "P": true, "S": true, "Cl": true, "Ar": true,
	"K": true, "Ca": true, "Sc": true, "Ti": true, "V": true, "Cr": true,
	"Mn": true, "Fe": true, "Co": true, "Ni": true, "Cu": true, "Zn": true,
	"Ga": true, "Ge": true, "As": true, "Se": true, "Br": true, "Kr": true,
	"Rb": true, "Sr": true, "Y": true, "Zr": true, "Nb": true, "Mo": true,
	"Tc": true, "Ru": true, "Rh": true, "Pd": true, "Ag": true, "Cd": true,
	"In": true, "Sn": true, "Sb": true, "Te": true, "I": true, "Xe": true,
	"Cs": true, "Ba": true, "La": true, "Ce": true, "Pr": true, "Nd": true,
	"Pm": true, "Sm": true, "Eu": true, "Gd": true, "Tb": true, "Dy": true,
	"Ho": true, "Er": true, "Tm": true, "Yb": true, "Lu": true, "Hf": true,
	"Ta": true, "W": true, "Re": true, "Os": true, "Ir": true, "Pt": true,
	"Au": true, "Hg": true, "Tl": true, "Pb": true, "Bi": true, "Po": true,
	"At": true, "Rn": true, "Fr": true, "Ra": true, "Ac": true, "Th": true,
	"Pa": true, "U": true, "Np": true, "Pu": true, "Am": true, "Cm": true,
	"Bk": true, "Cf": true, "Es": true, "Fm": true, "Md": true, "No": true,
	"Lr": true, "Rf": true, "Db": true, "Sg": true, "Bh": true, "Hs": true,
	"Mt": true, "Ds": true, "Rg": true, "Cn": true, "Nh": true, "Fl": true,
	"Mc": true, "Lv": true, "Ts": true, "Og": true,
}

// elementValences lists the tabulated valences for the elements whose
// implicit-hydrogen and valence checks are supported, smallest first. The
// first entry is the default; larger entries are escalation targets when an
// added bond exceeds the current fit. Elements absent from the table never
// take part in valence inference (ValenceKnown is false on their atoms).
var elementValences = map[string][]int{
	"H":  {1},
	"B":  {3},
	"C":  {4},
	"N":  {3, 5},
	"O":  {2},
	"P":  {3, 5},
	"S":  {2, 4, 6},
	"F":  {1},
	"Cl": {1, 3, 5, 7},
	"Br": {1, 3, 5, 7},
	"I":  {1, 3, 5, 7},
}

// IsElement reports whether symbol names an element (uppercase form).
func IsElement(symbol string) bool { return elementSymbols[symbol] }

// IsOrganicSubset reports whether symbol may appear bare, without brackets.
func IsOrganicSubset(symbol string) bool { return organicSet[symbol] }

// IsAromaticSymbol reports whether symbol is a bare lowercase aromatic form.
func IsAromaticSymbol(symbol string) bool { return aromaticSubset[symbol] }
