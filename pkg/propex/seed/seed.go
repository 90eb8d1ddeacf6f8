package seed

import (
	"fmt"

	"github.com/randalmurphal/propex/pkg/propex"
	"github.com/randalmurphal/propex/pkg/propex/config"
	"github.com/randalmurphal/propex/pkg/propex/observability"
	"github.com/randalmurphal/propex/pkg/propex/ownership"
	"github.com/randalmurphal/propex/pkg/propex/registry"
)

// Declaration field names.
const (
	fieldValue  = "value"
	fieldPolicy = "policy"
	fieldType   = "type"
)

type pending[K ~string] struct {
	key  K
	node propex.Node
}

// Populate adds one node per configuration leaf to reg and returns how many
// were added. Keys are merged with reg's traits.
func Populate[K ~string](reg *registry.Registry[K, propex.Node], cfg config.Config, opts ...Option) (int, error) {
	s := defaults()
	for _, opt := range opts {
		opt(&s)
	}
	if s.policy == ownership.KindBorrowed {
		return 0, fmt.Errorf("default policy: %w: %s", ErrUnsupportedPolicy, s.policy)
	}

	var (
		nodes []pending[K]
		err   error
	)
	cfg.WalkPaths(isDeclaration, func(path []string, v any) bool {
		frags := make([]K, 0, len(s.prefix)+len(path))
		for _, f := range s.prefix {
			frags = append(frags, K(f))
		}
		for _, f := range path {
			frags = append(frags, K(f))
		}
		k := reg.Key(frags[0], frags[1:]...)

		var n propex.Node
		if n, err = declare(s, v); err != nil {
			err = &DeclarationError{Key: string(k), Err: err}
			return false
		}
		nodes = append(nodes, pending[K]{key: k, node: n})
		return true
	})
	if err != nil {
		for _, p := range nodes {
			p.node.Release()
		}
		return 0, err
	}

	for _, p := range nodes {
		reg.Add(p.node, p.key)
	}
	observability.LogSeeded(s.logger, s.source, len(nodes))
	return len(nodes), nil
}

// Load reads path with config.FromFile and populates reg from it.
func Load[K ~string](reg *registry.Registry[K, propex.Node], path string, opts ...Option) (int, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return 0, err
	}
	return Populate(reg, cfg, append([]Option{WithSource(path)}, opts...)...)
}

func isDeclaration(m map[string]any) bool {
	_, ok := m[fieldValue]
	return ok
}

// declare builds the node for one leaf, either a bare value or a
// declaration map.
func declare(s settings, v any) (propex.Node, error) {
	kind, typeName, raw := s.policy, "", v

	if m, ok := v.(map[string]any); ok {
		raw = m[fieldValue]
		if p, ok := m[fieldPolicy]; ok {
			name, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("%w: policy must be a string, got %T", ErrUnsupportedPolicy, p)
			}
			parsed, err := ownership.ParseKind(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrUnsupportedPolicy, name, err)
			}
			kind = parsed
		}
		if t, ok := m[fieldType]; ok {
			if typeName, ok = t.(string); !ok {
				return nil, fmt.Errorf("%w: type must be a string, got %T", ErrUnsupportedType, t)
			}
		}
	}

	raw, err := s.expander.expandValue(raw)
	if err != nil {
		return nil, err
	}
	return build(kind, typeName, raw)
}
