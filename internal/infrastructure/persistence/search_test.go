package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]struct {
		term string
		want string
	}{
		"plain term":      {"widget", "widget"},
		"percent":         {"50% off", `50\% off`},
		"underscore":      {"sku_code", `sku\_code`},
		"backslash":       {`a\b`, `a\\b`},
		"all meta":        {`a%b_c\`, `a\%b\_c\\`},
		"escaped percent": {`\%`, `\\\%`},
		"empty":           {"", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, escapeLike(tc.term))
		})
	}
}

func TestLikeContainsMatchesLiterally(t *testing.T) {
	assert.Equal(t, "%widget%", likeContains("widget"))

	// Metacharacters in the term must not act as wildcards.
	assert.Equal(t, `%a\%b\_c\\%`, likeContains(`a%b_c\`))
	assert.Equal(t, `%100\%%`, likeContains("100%"))
}
