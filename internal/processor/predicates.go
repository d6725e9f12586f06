package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"go-chi-compute/internal/compute"
)

var (
	ErrUnknownPredicate = errors.New("unknown predicate")
	ErrMissingArgument  = errors.New("predicate argument required")
)

// predicateFactory builds a predicate from the request's optional value.
type predicateFactory func(arg any) (compute.Predicate, error)

var predicates = map[string]predicateFactory{
	"even":     numeric(func(n compute.Number) bool { v, ok := integral(n); return ok && v%2 == 0 }),
	"odd":      numeric(func(n compute.Number) bool { v, ok := integral(n); return ok && v%2 != 0 }),
	"positive": numeric(func(n compute.Number) bool { return compute.Compare(n, compute.Int(0)) > 0 }),
	"negative": numeric(func(n compute.Number) bool { return compute.Compare(n, compute.Int(0)) < 0 }),
	"nonzero":  numeric(func(n compute.Number) bool { return !n.IsZero() }),
	"gt":       comparing(func(c int) bool { return c > 0 }),
	"lt":       comparing(func(c int) bool { return c < 0 }),
	"eq":       equalTo,
	"contains": containing,
	"truthy":   func(any) (compute.Predicate, error) { return truthy, nil },
}

// PredicateNames lists the registered predicate names in order.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupPredicate resolves a named predicate against its argument.
func lookupPredicate(name string, arg any) (compute.Predicate, error) {
	factory, ok := predicates[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPredicate, name)
	}
	return factory(arg)
}

func numeric(test func(compute.Number) bool) predicateFactory {
	return func(any) (compute.Predicate, error) {
		return func(item any) bool {
			n, ok := asNumber(item)
			return ok && test(n)
		}, nil
	}
}

func comparing(test func(int) bool) predicateFactory {
	return func(arg any) (compute.Predicate, error) {
		bound, ok := asNumber(arg)
		if !ok {
			return nil, fmt.Errorf("%w: numeric value", ErrMissingArgument)
		}
		return func(item any) bool {
			n, ok := asNumber(item)
			return ok && test(compute.Compare(n, bound))
		}, nil
	}
}

func equalTo(arg any) (compute.Predicate, error) {
	if arg == nil {
		return nil, fmt.Errorf("%w: value", ErrMissingArgument)
	}
	if bound, ok := asNumber(arg); ok {
		return func(item any) bool {
			n, ok := asNumber(item)
			return ok && compute.Compare(n, bound) == 0
		}, nil
	}
	if want, ok := arg.(string); ok {
		want = norm.NFC.String(want)
		return func(item any) bool {
			s, ok := item.(string)
			return ok && norm.NFC.String(s) == want
		}, nil
	}
	return func(item any) bool { return reflect.DeepEqual(item, arg) }, nil
}

// containing matches strings in NFC form, so composed and decomposed
// spellings of the same text agree.
func containing(arg any) (compute.Predicate, error) {
	sub, ok := arg.(string)
	if !ok {
		return nil, fmt.Errorf("%w: string value", ErrMissingArgument)
	}
	sub = norm.NFC.String(sub)
	return func(item any) bool {
		s, ok := item.(string)
		return ok && strings.Contains(norm.NFC.String(s), sub)
	}, nil
}

// truthy treats null, false, zero, "" and empty collections as false.
func truthy(item any) bool {
	switch v := item.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	if n, ok := asNumber(item); ok {
		return !n.IsZero()
	}
	return true
}

// asNumber accepts json.Number literals from decoded request bodies as well
// as native Go numbers.
func asNumber(v any) (compute.Number, bool) {
	switch n := v.(type) {
	case compute.Number:
		return n, true
	case json.Number:
		parsed, err := compute.ParseNumber(string(n))
		return parsed, err == nil
	case int:
		return compute.Int(int64(n)), true
	case int64:
		return compute.Int(n), true
	case float64:
		return compute.Float(n), true
	}
	return compute.Number{}, false
}

// integral returns n as an int64 when it holds a whole value.
func integral(n compute.Number) (int64, bool) {
	if n.IsInt() {
		return n.Int64(), true
	}
	f := n.Float64()
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
