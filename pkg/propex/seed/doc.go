/*
Package seed populates a registry from configuration.

# Declarations

Every leaf of the configuration becomes one property. A map holding a
"value" key is a declaration with optional policy and type; any other map is
a namespace whose keys become key fragments:

	carA:
	  speed: 42                # owned int under carA:speed
	  name: "Car ${FLEET}"     # owned string, ${FLEET} expanded
	  rpm:
	    value: 3000
	    policy: atomic         # owned | shared | atomic
	    type: int64

Without a type, the value's decoded type decides: int, int64, float64,
string, bool, or []string for lists of strings. Supported type names are
int, int64, float64, string, bool, duration and []string.

Borrowed storage needs a target owned by the host, so it cannot be seeded
and fails with ErrUnsupportedPolicy.

# Variables

String values expand ${VAR} and $VAR from WithVariables, optionally falling
back to the process environment:

	vars, _ := config.Variables(".env")
	n, err := seed.Populate(reg, cfg,
	    seed.WithVariables(vars),
	    seed.WithEnvironment(),
	)

Undefined variables fail with *UndefinedVariableError unless
WithMissingAction says otherwise.

Populate validates every declaration before touching the registry: on error
nothing is added.
*/
package seed
