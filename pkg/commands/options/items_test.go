package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitItems(t *testing.T) {
	tests := map[string]struct {
		input string
		want  []string
	}{
		"single":       {input: "chicken soup", want: []string{"chicken soup"}},
		"commas":       {input: "mac, cheese", want: []string{"mac", "cheese"}},
		"blank parts":  {input: " rice ,, beans,", want: []string{"rice", "beans"}},
		"only commas":  {input: " , ,", want: nil},
		"empty string": {input: "", want: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitItems(tc.input))
		})
	}
}
