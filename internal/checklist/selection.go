package checklist

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Span is an inclusive range of 1-based indices.
type Span struct {
	From int
	To   int
}

// Selection addresses a set of tasks, e.g. the parsed form of "1,3-4".
type Selection []Span

// RangeParseError reports a malformed range expression.
type RangeParseError struct {
	Expr  string
	Token string
}

func (e *RangeParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid range %q: empty token", e.Expr)
	}
	return fmt.Sprintf("invalid range %q: bad token %q", e.Expr, e.Token)
}

// Index selects a single task.
func Index(n int) Selection {
	return Selection{{From: n, To: n}}
}

// ParseSelection parses a comma-separated list of integers and inclusive
// hyphenated pairs. Nothing is clamped here; that happens in Resolve.
func ParseSelection(expr string) (Selection, error) {
	var sel Selection
	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, &RangeParseError{Expr: expr}
		}
		lo, hi, isPair := strings.Cut(tok, "-")
		from, err := ParseIndex(lo)
		if err != nil {
			return nil, &RangeParseError{Expr: expr, Token: tok}
		}
		to := from
		if isPair {
			to, err = ParseIndex(hi)
			if err != nil {
				return nil, &RangeParseError{Expr: expr, Token: tok}
			}
		}
		sel = append(sel, Span{From: from, To: to})
	}
	return sel, nil
}

// ParseIndex parses a single index. Values that overflow int are pinned to
// math.MaxInt or math.MinInt so they clamp like any other out-of-range index.
func ParseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(s, "-") {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}
	return n, err
}

// Resolve clamps every span to [1, length], expands it, and returns the
// distinct indices in ascending order. An empty list resolves to nothing.
func (s Selection) Resolve(length int) []int {
	if length <= 0 {
		return nil
	}
	seen := make(map[int]struct{})
	var out []int
	for _, sp := range s {
		from, to := clamp(sp.From, length), clamp(sp.To, length)
		if from > to {
			from, to = to, from
		}
		for i := from; i <= to; i++ {
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return out
}

func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, sp := range s {
		if sp.From == sp.To {
			parts[i] = strconv.Itoa(sp.From)
		} else {
			parts[i] = fmt.Sprintf("%d-%d", sp.From, sp.To)
		}
	}
	return strings.Join(parts, ",")
}
