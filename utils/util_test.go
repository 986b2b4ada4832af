package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindByID(t *testing.T) {
	data := []string{"a", "b", "c"}
	dataMap := map[int32]string{1: "a", 2: "b", 3: "c"}

	found, missing := FindByID(dataMap, data, nil)
	assert.Equal(t, data, found)
	assert.Empty(t, missing)

	found, missing = FindByID(dataMap, data, []int32{3, 5, 1})
	assert.Equal(t, []string{"c", "a"}, found)
	assert.Equal(t, []int32{5}, missing)
}
