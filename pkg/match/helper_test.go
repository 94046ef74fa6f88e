package match

import (
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/require"
)

func mustRegexp2(t *testing.T, expr string) Regexp2Matcher {
	t.Helper()
	re, err := regexp2.Compile(expr, regexp2.None)
	require.NoError(t, err)
	return Regexp2Matcher{Re: re}
}
