package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		in  string
		exp string
	}{
		{"red", "#ff0000"},
		{"#ABCDEF", "#abcdef"},
		{"#fff", "#ffffff"},
		{"rgb(0, 128, 255)", "#0080ff"},
		{"none", "none"},
		{"", "none"},
		{" Transparent ", "none"},
	}
	for _, tc := range tcs {
		got, err := ToHTML(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.exp, got, tc.in)
	}

	_, err := ToHTML("not-a-color")
	assert.Error(t, err)
}

func TestGradientPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, GradientHorizontal, ParseGradientPolicy("|"))
	assert.Equal(t, GradientDiagonalUp, ParseGradientPolicy(`\`))
	assert.Equal(t, GradientVertical, ParseGradientPolicy("-"))
	assert.Equal(t, GradientDiagonalDown, ParseGradientPolicy("/"))
	assert.Equal(t, GradientDiagonalDown, ParseGradientPolicy("?"))
	assert.Equal(t, GradientDiagonalDown, ParseGradientPolicy(""))

	x1, y1, x2, y2 := GradientVertical.Vector()
	assert.Equal(t, []string{"50%", "0%", "50%", "100%"}, []string{x1, y1, x2, y2})
	x1, y1, x2, y2 = GradientPolicy('x').Vector()
	assert.Equal(t, []string{"0%", "0%", "100%", "100%"}, []string{x1, y1, x2, y2})
}

func TestLinearGradient(t *testing.T) {
	t.Parallel()

	el := LinearGradient("gabc0", "#ff0000", "#0000ff", GradientHorizontal)
	exp := `<linearGradient x1="0%" y1="50%" x2="100%" y2="50%" id="gabc0">
  <stop stop-color="#ff0000" offset="0%"/>
  <stop stop-color="#0000ff" offset="100%"/>
</linearGradient>
`
	assert.Equal(t, exp, el.Render(0))
}
