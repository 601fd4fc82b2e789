package diet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentenceSegmenter(t *testing.T) {
	seg, err := NewSentenceSegmenter()
	require.NoError(t, err)

	got := seg.Sentences("Patient has diabetes. Avoid sugar and\neat more fiber. Walk 30 minutes daily.")

	assert.Equal(t, []string{
		"Patient has diabetes.",
		"Avoid sugar and eat more fiber.",
		"Walk 30 minutes daily.",
	}, got)
	assert.Empty(t, seg.Sentences("   "))
}

func TestAdviceFromText(t *testing.T) {
	seg := SegmenterFunc(func(string) []string {
		return []string{
			"Patient reviewed.",
			"Reduce salt intake.",
			"Walk every morning.",
			"Avoid sweets and exercise daily.",
			"Continue treatment.",
		}
	})

	diet, lifestyle := adviceFromText(seg, "ignored")

	assert.Equal(t, []string{"Reduce salt intake.", "Avoid sweets and exercise daily."}, diet)
	assert.Equal(t, []string{"Walk every morning.", "Avoid sweets and exercise daily."}, lifestyle)
}

func TestAdviceFromText_NoSegmenter(t *testing.T) {
	diet, lifestyle := adviceFromText(nil, "Avoid sugar.")
	assert.Nil(t, diet)
	assert.Nil(t, lifestyle)
}

func TestPickAdvice(t *testing.T) {
	assert.Equal(t, "a b", pickAdvice([]string{"a", "b"}, []string{"c"}, "d"))
	assert.Equal(t, "c e", pickAdvice(nil, []string{"c", "e"}, "d"))
	assert.Equal(t, "d", pickAdvice(nil, nil, "d"))
}
