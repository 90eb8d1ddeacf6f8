// Package key provides traits for splitting and merging composite registry keys.
//
// A composite key is a sequence of fragments joined by a single delimiter rune,
// such as "carA:speed". The registry stays flat; hierarchy exists only in the
// key strings.
//
// # Basic Usage
//
//	traits := key.Default[string]()
//	k := traits.Merge("carA", "speed")  // "carA:speed"
//	parts := traits.Split("carA:speed") // ["carA", "speed"]
//
// Custom delimiters need no extra code:
//
//	semi := key.New[string](';')
//	semi.Merge("left", "right") // "left;right"
//
// # Empty Fragments
//
// Split never drops empty fragments. A leading or trailing delimiter, or two
// adjacent delimiters, produce "" entries:
//
//	traits.Split(":child")      // ["", "child"]
//	traits.Split("root:child:") // ["root", "child", ""]
//	traits.Split("")            // [""]
//
// Fragments are assumed not to contain the delimiter. There is no escaping,
// so Split(Merge(f...)) only round-trips for delimiter-free fragments.
package key
