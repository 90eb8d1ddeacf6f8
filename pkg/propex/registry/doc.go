// Package registry provides a flat, owning map from composite keys to nodes.
//
// Keys are built from fragments with pluggable key traits, so "carA" and
// "speed" become "carA:speed" under the default traits. The map itself stays
// flat: there is no containment between entries.
//
// # Basic Usage
//
//	r := registry.New[string, propex.Node]()
//	r.Add(propex.NewOwned(42), "carA", "speed")
//
//	n, ok := r.Find("carA:speed")
//	if ok {
//	    fmt.Println(n.UnderlyingType()) // int
//	}
//
//	_, err := r.At("carB:speed")
//	errors.Is(err, registry.ErrKeyNotFound) // true
//
// # Ownership
//
// Add transfers the node to the registry. Nodes that implement Releaser are
// released when they are erased, overwritten by a later Add under the same
// key, or dropped by Clear. Callers must not keep using a node after that.
//
// # Custom Keys
//
// Any string-like key type and any key.Traits work:
//
//	type Path string
//	r := registry.New[Path, propex.Node](
//	    registry.WithTraits[Path](key.New[Path]('/')),
//	)
//	r.Add(n, "scene", "camera", "fov") // "scene/camera/fov"
//
// # Thread Safety
//
// Registry is not synchronized. Callers that share one across goroutines
// must serialize access themselves, or use Locked, which wraps a Registry
// with a sync.RWMutex.
package registry
