package bigsmiles

import (
	"fmt"
	"strconv"
	"strings"
)

// AtomFields holds the decomposed fields of an atom symbol, either bare
// ("C", "c", "Cl") or bracketed ("[13C@H+:1]"). Pointer fields distinguish
// "absent" from zero: a bare atom has nil Hydrogens (inferred later), a
// bracket atom defaults to an explicit count of 0.
type AtomFields struct {
	Isotope   *int
	Symbol    string
	Aromatic  bool
	Stereo    string // "", "@", "@@"
	Hydrogens *int
	Charge    int
	Class     *int
}

// TokenizeAtomSymbol decomposes an atom symbol into its fields. Bare symbols
// must name an element or a lowercase aromatic form; bracket chunks follow
// the field order isotope, element, stereo, hydrogen count, charge, class.
func TokenizeAtomSymbol(s string) (AtomFields, error) {
	if s == "" {
		return AtomFields{}, newFieldError("empty atom symbol")
	}
	if s[0] == '[' {
		if len(s) < 3 || s[len(s)-1] != ']' {
			return AtomFields{}, newFieldError(fmt.Sprintf("malformed bracket atom %q", s))
		}
		return tokenizeBracketAtom(s[1 : len(s)-1])
	}
	if IsAromaticSymbol(s) {
		return AtomFields{Symbol: strings.ToUpper(s), Aromatic: true}, nil
	}
	if IsOrganicSubset(s) {
		return AtomFields{Symbol: s}, nil
	}
	if IsElement(s) {
		return AtomFields{}, newFieldError(fmt.Sprintf("element %q requires brackets", s))
	}
	return AtomFields{}, newFieldError(fmt.Sprintf("unknown atom symbol %q", s))
}

// tokenizeBracketAtom parses the body between '[' and ']'. Bracket atoms
// carry explicit hydrogen counts (default 0) and explicit charge (default 0).
func tokenizeBracketAtom(body string) (AtomFields, error) {
	fields := AtomFields{Hydrogens: intPtr(0)}
	rest := body

	// Isotope: 1-3 leading digits.
	if digits := leadingDigits(rest, 3); digits != "" {
		n, _ := strconv.Atoi(digits)
		fields.Isotope = &n
		rest = rest[len(digits):]
	}

	// Element symbol: two-letter before one-letter; lowercase aromatic forms.
	switch {
	case len(rest) >= 2 && IsElement(rest[:2]):
		fields.Symbol = rest[:2]
		rest = rest[2:]
	case len(rest) >= 1 && IsElement(rest[:1]):
		fields.Symbol = rest[:1]
		rest = rest[1:]
	case len(rest) >= 1 && IsAromaticSymbol(rest[:1]):
		fields.Symbol = strings.ToUpper(rest[:1])
		fields.Aromatic = true
		rest = rest[1:]
	default:
		return AtomFields{}, newFieldError(fmt.Sprintf("bracket atom %q has no valid element symbol", "["+body+"]"))
	}

	// Stereo: @@ before @.
	if strings.HasPrefix(rest, "@@") {
		fields.Stereo = "@@"
		rest = rest[2:]
	} else if strings.HasPrefix(rest, "@") {
		fields.Stereo = "@"
		rest = rest[1:]
	}

	// Hydrogen count: H with optional digits, default 1.
	if strings.HasPrefix(rest, "H") {
		rest = rest[1:]
		count := 1
		if digits := leadingDigits(rest, 2); digits != "" {
			count, _ = strconv.Atoi(digits)
			rest = rest[len(digits):]
		}
		fields.Hydrogens = intPtr(count)
	}

	// Charge: up to three repeated signs, or one sign plus a digit. When
	// both repeated signs and a digit are present the sign count wins.
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		charge, remaining, err := parseCharge(rest, body)
		if err != nil {
			return AtomFields{}, err
		}
		fields.Charge = charge
		rest = remaining
	}

	// Atom class: ':' plus 1-3 digits.
	if strings.HasPrefix(rest, ":") {
		rest = rest[1:]
		digits := leadingDigits(rest, 3)
		if digits == "" {
			return AtomFields{}, newFieldError(fmt.Sprintf("bracket atom %q has ':' without a class number", "["+body+"]"))
		}
		n, _ := strconv.Atoi(digits)
		fields.Class = &n
		rest = rest[len(digits):]
	}

	if rest != "" {
		return AtomFields{}, newFieldError(fmt.Sprintf("bracket atom %q has trailing text %q", "["+body+"]", rest))
	}
	return fields, nil
}

func parseCharge(rest, body string) (int, string, error) {
	sign := rest[0]
	count := 0
	for count < len(rest) && (rest[count] == '+' || rest[count] == '-') {
		if rest[count] != sign {
			return 0, "", newFieldError(fmt.Sprintf("bracket atom %q mixes '+' and '-' charge signs", "["+body+"]"))
		}
		count++
		if count > 3 {
			return 0, "", newFieldError(fmt.Sprintf("bracket atom %q repeats the charge sign more than three times", "["+body+"]"))
		}
	}
	rest = rest[count:]

	magnitude := count
	if count == 1 {
		if digits := leadingDigits(rest, 1); digits != "" {
			magnitude, _ = strconv.Atoi(digits)
			rest = rest[1:]
		}
	} else if digits := leadingDigits(rest, 1); digits != "" {
		// "++2" and friends: the repeated sign count wins.
		rest = rest[1:]
	}

	if sign == '-' {
		magnitude = -magnitude
	}
	return magnitude, rest, nil
}

// TokenizeBondingDescriptor decomposes a bonding descriptor chunk. The empty
// descriptor "[]" yields symbol "" and index 1; a missing index defaults to 1.
func TokenizeBondingDescriptor(s string) (string, int, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if body == "" {
		return "", 1, nil
	}
	symbol := body[:1]
	if symbol != "<" && symbol != ">" && symbol != "$" {
		return "", 0, newFieldError(fmt.Sprintf("invalid bonding descriptor %q", s))
	}
	body = body[1:]
	if body == "" {
		return symbol, 1, nil
	}
	index, err := strconv.Atoi(body)
	if err != nil {
		return "", 0, newFieldError(fmt.Sprintf("invalid bonding descriptor index in %q", s))
	}
	return symbol, index, nil
}

func leadingDigits(s string, max int) string {
	i := 0
	for i < len(s) && i < max && isDigit(s[i]) {
		i++
	}
	return s[:i]
}

func intPtr(n int) *int { return &n }
