package ownership

// Kind identifies one of the four storage disciplines.
type Kind uint8

const (
	// KindOwned holds a private copy of the value.
	KindOwned Kind = iota
	// KindBorrowed points at a value owned elsewhere.
	KindBorrowed
	// KindShared holds an aliasable pointer to the value.
	KindShared
	// KindAtomic holds the value behind an atomic pointer.
	KindAtomic
)

// String returns the policy name.
func (k Kind) String() string {
	switch k {
	case KindOwned:
		return "owned"
	case KindBorrowed:
		return "borrowed"
	case KindShared:
		return "shared"
	case KindAtomic:
		return "atomic"
	default:
		return "unknown"
	}
}

// ReturnsReference reports whether reads expose the live value (true) or a
// snapshot copy (false).
func (k Kind) ReturnsReference() bool {
	return k != KindAtomic
}

// ParseKind returns the Kind named by s, as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "owned":
		return KindOwned, nil
	case "borrowed":
		return KindBorrowed, nil
	case "shared":
		return KindShared, nil
	case "atomic":
		return KindAtomic, nil
	}
	return 0, ErrUnknownKind
}

// Storage is the uniform get/set surface every policy implements.
type Storage[T any] interface {
	// Kind reports the policy. It never changes.
	Kind() Kind

	// Get returns the current value. For reference policies the result is
	// read from the live value at call time, not cached.
	Get() (T, error)

	// Set writes v. For reference policies the write is visible to every
	// other holder of the same value.
	Set(v T) error

	// Release detaches the storage from its value. Every later access fails
	// with ErrDanglingTarget.
	Release()
}

// Referencer is implemented by storage that can expose its live value.
type Referencer[T any] interface {
	Storage[T]

	// Ref returns a pointer to the live value.
	Ref() (*T, error)
}
