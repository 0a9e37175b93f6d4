package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("", "anything"))
	assert.True(t, MatchesQuery("   ", "anything"))
	assert.True(t, MatchesQuery("algebra", "Linear Algebra", "vectors"))
	assert.True(t, MatchesQuery("ALGEBRA", "linear algebra"))
	assert.True(t, MatchesQuery("python", "title", "Learn Python fast"))
	assert.False(t, MatchesQuery("chemistry", "Linear Algebra", "vectors"))
	assert.False(t, MatchesQuery("chemistry"))
}
