package distribution

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dylanwal/BigSMILES/bigsmiles"
)

// ParsePolymer parses a polymer notation carrying pipe-delimited
// distribution suffixes, e.g.
//
//	CC{[>][<]CC[>][<]}CC|gauss(1000, 150)|
//
// Suffix segments apply to the stochastic objects in notation order.
// The returned distributions are also attached to the graph, so
// Attached(g) recovers them with their object indexes.
func ParsePolymer(src string) (*bigsmiles.Graph, []Distribution, error) {
	notation, segments, err := splitSuffixes(strings.TrimSpace(src))
	if err != nil {
		return nil, nil, err
	}

	g, err := bigsmiles.Parse(notation)
	if err != nil {
		return nil, nil, err
	}

	objects := g.StochasticObjects()
	if len(segments) > len(objects) {
		return nil, nil, fmt.Errorf("%d distribution suffix(es) but only %d stochastic object(s)", len(segments), len(objects))
	}

	dists := make([]Distribution, 0, len(segments))
	for i, segment := range segments {
		name, args, err := parseSegment(segment)
		if err != nil {
			return nil, nil, err
		}
		d, err := Default().Build(name, args)
		if err != nil {
			return nil, nil, err
		}
		if _, err := Attach(g, i, d); err != nil {
			return nil, nil, err
		}
		dists = append(dists, d)
	}
	return g, dists, nil
}

// splitSuffixes peels |...| segments off the end of src, returning the
// remaining notation and the segment bodies in notation order.
func splitSuffixes(src string) (string, []string, error) {
	var segments []string
	for strings.HasSuffix(src, "|") {
		open := strings.LastIndex(src[:len(src)-1], "|")
		if open < 0 {
			return "", nil, fmt.Errorf("unterminated distribution suffix in %q", src)
		}
		segments = append([]string{src[open+1 : len(src)-1]}, segments...)
		src = strings.TrimRight(src[:open], " ")
	}
	if strings.Contains(src, "|") {
		return "", nil, fmt.Errorf("distribution suffixes must trail the notation in %q", src)
	}
	return src, segments, nil
}

func parseSegment(segment string) (string, []float64, error) {
	segment = strings.TrimSpace(segment)
	open := strings.Index(segment, "(")
	if open <= 0 || !strings.HasSuffix(segment, ")") {
		return "", nil, fmt.Errorf("malformed distribution segment %q, want name(args)", segment)
	}
	name := strings.TrimSpace(segment[:open])
	inner := strings.TrimSpace(segment[open+1 : len(segment)-1])
	if inner == "" {
		return name, nil, nil
	}
	parts := strings.Split(inner, ",")
	args := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return "", nil, fmt.Errorf("distribution segment %q: bad argument %q", segment, strings.TrimSpace(part))
		}
		args = append(args, v)
	}
	return name, args, nil
}
