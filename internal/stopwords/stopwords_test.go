package stopwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains("the"))
	assert.True(t, Contains("The"))
	assert.True(t, Contains("don't"))
	assert.False(t, Contains("python"))
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []string{"senior", "engineer", "python"}, Filter([]string{"a", "senior", "engineer", "with", "python"}))
}

func TestOnlyStopwords(t *testing.T) {
	assert.True(t, OnlyStopwords("and the"))
	assert.True(t, OnlyStopwords(""))
	assert.False(t, OnlyStopwords("the python"))
}
