package seed

import (
	"os"
	"regexp"
)

// varPattern matches ${name} or $name. The name is greedy, so $port never
// matches inside $portNumber.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// MissingAction specifies how undefined variables are handled.
type MissingAction int

const (
	// MissingError fails the declaration. This is the default.
	MissingError MissingAction = iota

	// MissingKeep leaves the placeholder as written.
	MissingKeep

	// MissingEmpty replaces the placeholder with the empty string.
	MissingEmpty
)

type expander struct {
	vars    map[string]string
	env     bool
	missing MissingAction
}

func (e expander) lookup(name string) (string, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.env {
		return os.LookupEnv(name)
	}
	return "", false
}

// expand substitutes variables in s.
func (e expander) expand(s string) (string, error) {
	var undefined []string
	out := varPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := varPattern.FindStringSubmatch(match)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		if v, ok := e.lookup(name); ok {
			return v
		}
		switch e.missing {
		case MissingEmpty:
			return ""
		case MissingKeep:
			return match
		default:
			undefined = append(undefined, name)
			return match
		}
	})
	if len(undefined) > 0 {
		return "", &UndefinedVariableError{Names: undefined}
	}
	return out, nil
}

// expandValue expands strings and string list elements; other values pass
// through unchanged.
func (e expander) expandValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return e.expand(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			x, err := e.expandValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	default:
		return v, nil
	}
}
