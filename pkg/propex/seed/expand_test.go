package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpander_Expand(t *testing.T) {
	vars := map[string]string{"FLEET": "north", "port": "8080"}

	tests := []struct {
		name    string
		missing MissingAction
		in      string
		want    string
		wantErr []string
	}{
		{name: "brace", in: "Car ${FLEET}", want: "Car north"},
		{name: "dollar", in: "Car $FLEET!", want: "Car north!"},
		{name: "both", in: "${FLEET}:$port", want: "north:8080"},
		{name: "no partial match", in: "$portNumber", wantErr: []string{"portNumber"}},
		{name: "plain", in: "no vars", want: "no vars"},
		{name: "lone dollar", in: "cost $5", want: "cost $5"},
		{name: "missing errors", in: "${A} ${B}", wantErr: []string{"A", "B"}},
		{name: "missing keep", missing: MissingKeep, in: "x ${A}", want: "x ${A}"},
		{name: "missing empty", missing: MissingEmpty, in: "x ${A}$B", want: "x "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := expander{vars: vars, missing: tt.missing}
			got, err := e.expand(tt.in)
			if tt.wantErr != nil {
				var undef *UndefinedVariableError
				require.ErrorAs(t, err, &undef)
				assert.Equal(t, tt.wantErr, undef.Names)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpander_Environment(t *testing.T) {
	t.Setenv("PROPEX_SEED_TEST", "from-env")

	e := expander{vars: map[string]string{"LOCAL": "x"}, env: true}
	got, err := e.expand("${LOCAL}-${PROPEX_SEED_TEST}")
	require.NoError(t, err)
	assert.Equal(t, "x-from-env", got)

	e.env = false
	_, err = e.expand("${PROPEX_SEED_TEST}")
	assert.Error(t, err)
}

func TestExpander_ExpandValue(t *testing.T) {
	e := expander{vars: map[string]string{"A": "1"}}

	got, err := e.expandValue([]any{"${A}", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"1", "b"}, got)

	got, err = e.expandValue(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = e.expandValue([]any{"${Z}"})
	assert.Error(t, err)
}

func TestUndefinedVariableError_Message(t *testing.T) {
	assert.Equal(t, "undefined variable: A", (&UndefinedVariableError{Names: []string{"A"}}).Error())
	assert.Equal(t, "undefined variables: A, B", (&UndefinedVariableError{Names: []string{"A", "B"}}).Error())
}
