package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustMateDistance_ShortensMateByTwoPerPly(t *testing.T) {
	assert.Equal(t, -Mate-2, adjustMateDistance(Mate))
	// A child that is mating is outside the band: plain negation.
	assert.Equal(t, Mate, adjustMateDistance(-Mate))
}

func TestAdjustMateDistance_LeavesOrdinaryScoresAlone(t *testing.T) {
	assert.Equal(t, Score(-50), adjustMateDistance(50))
	assert.Equal(t, Score(0), adjustMateDistance(0))
}

func TestIsMateScore(t *testing.T) {
	assert.True(t, isMateScore(Mate))
	assert.True(t, isMateScore(-Mate))
	assert.False(t, isMateScore(150))
	assert.False(t, isMateScore(mateThreshold+1))
}
