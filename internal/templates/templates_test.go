package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)
	for _, name := range []string{Page, "sidebar", "predictor"} {
		require.NotNil(t, tmpl.Lookup(name), name)
	}
}
