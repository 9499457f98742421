package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/docsearch/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Add(t *testing.T) {
	t.Parallel()

	t.Run("reports repeated urls", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, bloom.DefaultFalsePositiveRate)

		assert.True(t, f.Add("https://docs.example.com/a.html"))
		assert.False(t, f.Add("https://docs.example.com/a.html"))
		assert.True(t, f.Add("https://docs.example.com/b.html"))
	})

	t.Run("sized filter keeps distinct urls", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(5000, bloom.DefaultFalsePositiveRate)

		added := 0
		for i := range 5000 {
			if f.Add(fmt.Sprintf("https://docs.example.com/page/%d.html", i)) {
				added++
			}
		}
		assert.Equal(t, 5000, added)
	})

	t.Run("saturated filter treats new urls as seen", func(t *testing.T) {
		t.Parallel()

		// Two bits are set long before 200 URLs have been added.
		f := bloom.NewFilter(1, 0.5)
		for i := range 200 {
			f.Add(fmt.Sprintf("https://docs.example.com/%d.html", i))
		}

		assert.False(t, f.Add("https://docs.example.com/never-added.html"))
	})

	t.Run("zero size is usable", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(0, bloom.DefaultFalsePositiveRate)

		assert.True(t, f.Add("https://docs.example.com/a.html"))
	})
}
