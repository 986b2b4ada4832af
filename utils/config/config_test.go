package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(`
input:
  file: roads.yaml
output:
  geojson: out.geojson
`))
	require.NoError(t, err)
	assert.Equal(t, "roads.yaml", c.Input.File)
	assert.Equal(t, DefaultEps, c.Sample.Eps)
	assert.Equal(t, DefaultEps, c.Sample.MeshEps)
	assert.False(t, c.Sample.Fixed)
	assert.Equal(t, "out.geojson", c.Output.GeoJSON)
	assert.Empty(t, c.Output.OBJ)
	assert.Equal(t, DefaultMaxSizeMB, c.Log.MaxSizeMB)
	assert.Equal(t, DefaultMaxBackups, c.Log.MaxBackups)
}

func TestParseMongo(t *testing.T) {
	c, err := Parse([]byte(`
input:
  uri: mongodb://localhost:27017
  roads:
    db: srt
    col: roads
sample:
  eps: 0.5
  fixed: true
  mesh_eps: 0.05
  road_ids: [3, 1]
`))
	require.NoError(t, err)
	assert.Equal(t, "srt", c.Input.Roads.GetDb())
	assert.Equal(t, "roads", c.Input.Roads.GetColl())
	assert.Equal(t, 0.5, c.Sample.Eps)
	assert.Equal(t, 0.05, c.Sample.MeshEps)
	assert.True(t, c.Sample.Fixed)
	assert.Equal(t, []int32{3, 1}, c.Sample.RoadIDs)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "input: {file: a.yaml}\nunknown: 1\n",
		"no input":       "sample: {eps: 1}\n",
		"missing col":    "input: {uri: 'mongodb://x', roads: {db: a}}\n",
		"negative eps":   "input: {file: a.yaml}\nsample: {eps: -1}\n",
		"negative mesh":  "input: {file: a.yaml}\nsample: {mesh_eps: -1}\n",
		"bad yaml types": "input: {file: [1, 2]}\n",
	}
	for name, data := range cases {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}
}
