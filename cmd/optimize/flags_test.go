package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Negro", "Verde lima"}, splitList(" Negro, ,Verde lima ,"))
	assert.Empty(t, splitList(""))
}

func TestParseIntList(t *testing.T) {
	ids, err := parseIntList("3, 0,7")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 7}, ids)

	ids, err = parseIntList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseIntList("1,dos")
	assert.Error(t, err)
}

func TestParseStyleWeights(t *testing.T) {
	weights, err := parseStyleWeights("Casual=2, Clásico=0.5,Minimalista")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Casual": 2, "Clásico": 0.5, "Minimalista": 1}, weights)

	weights, err = parseStyleWeights("")
	require.NoError(t, err)
	assert.Nil(t, weights)

	_, err = parseStyleWeights("Casual=mucho")
	assert.Error(t, err)

	_, err = parseStyleWeights("=2")
	assert.Error(t, err)
}
