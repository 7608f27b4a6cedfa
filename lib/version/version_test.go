package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnlyNumbers(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.22.333-HEAD"
	assert.Equal(t, "1.22.333", OnlyNumbers())

	Version = "dev"
	assert.Equal(t, "", OnlyNumbers())
}
