// Package action resolves dialog submit targets for single-row and bulk
// table actions and hands the resulting confirmation command to a presenter.
package action

import (
	"fmt"
	"strings"
)

// Kind identifies how an Action produces its endpoint.
type Kind int

const (
	// KindNone is the zero Action. It never resolves.
	KindNone Kind = iota
	// KindStatic always resolves to a fixed endpoint.
	KindStatic
	// KindTemplate substitutes the ids into a trailing placeholder.
	KindTemplate
	// KindComputed calls a caller-supplied function.
	KindComputed
)

// Resolver maps the ordered target ids to an endpoint. ok=false means the
// endpoint is undefined and the dialog keeps its previous target.
type Resolver func(ids []string) (endpoint string, ok bool)

// Action describes where a confirmed dialog submits to.
type Action struct {
	kind  Kind
	value string
	fn    Resolver
}

// Static returns an action with a fixed endpoint.
func Static(endpoint string) Action {
	return Action{kind: KindStatic, value: endpoint}
}

// Template returns an action whose pattern ends in a two character
// placeholder, e.g. "/ticket/delete/bulk/0/". Resolution replaces the
// placeholder with the comma-joined ids followed by "/".
func Template(pattern string) Action {
	return Action{kind: KindTemplate, value: pattern}
}

// Computed returns an action resolved by fn. A nil fn never resolves.
func Computed(fn Resolver) Action {
	return Action{kind: KindComputed, fn: fn}
}

// PerRow adapts a single-identifier function to a Computed action. The
// function receives the first id; with no ids the action does not resolve.
func PerRow(fn func(id string) (string, bool)) Action {
	if fn == nil {
		return Computed(nil)
	}
	return Computed(func(ids []string) (string, bool) {
		if len(ids) == 0 {
			return "", false
		}
		return fn(ids[0])
	})
}

// Kind returns the variant tag.
func (a Action) Kind() Kind {
	return a.kind
}

// Resolve computes the endpoint for ids.
func (a Action) Resolve(ids []string) (string, bool) {
	switch a.kind {
	case KindStatic:
		return a.value, true
	case KindTemplate:
		if len(a.value) < 2 {
			return "", false
		}
		return a.value[:len(a.value)-2] + strings.Join(ids, ",") + "/", true
	case KindComputed:
		if a.fn == nil {
			return "", false
		}
		return a.fn(ids)
	default:
		return "", false
	}
}

// String implements fmt.Stringer for log output.
func (a Action) String() string {
	switch a.kind {
	case KindStatic:
		return "static(" + a.value + ")"
	case KindTemplate:
		return "template(" + a.value + ")"
	case KindComputed:
		return "computed"
	default:
		return "none"
	}
}

// Format replaces {0}, {1}, ... in s with the matching argument. Higher
// indexes are substituted first and every occurrence is replaced.
func Format(s string, args ...any) string {
	for i := len(args) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, fmt.Sprintf("{%d}", i), fmt.Sprint(args[i]))
	}
	return s
}
