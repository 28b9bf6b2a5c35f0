package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustParseType(t *testing.T) {
	ty := MustParseType(t, "Option<Vec<u8>>")
	assert.Equal(t, "Option<Vec<u8>>", ty.String())
}

func TestMustParseFile(t *testing.T) {
	f := MustParseFile(t, `pub fn f(x: i32) -> Result<i32> {}`)
	require.Len(t, f.Items, 1)
}
