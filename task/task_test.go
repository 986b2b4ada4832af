package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanegeom/entity/lane"
	"github.com/tsinghua-fib-lab/lanegeom/utils/config"

	geojson "github.com/paulmach/go.geojson"
)

const testRoads = `
roads:
- id: 1
  length: 30
  geometries:
  - {type: line, s: 0, x: 0, y: 0, hdg: 0, length: 30}
  crossfall:
    polys:
    - {s: 0, a: 0.02}
  lanes:
  - id: 1
    type: driving
    widths:
    - {s: 0, a: 3.5}
    roadmark_groups:
    - {s: 0, type: solid}
  - id: -1
    type: driving
    widths:
    - {s: 0, a: 3.5}
- id: 2
  length: 10
  geometries:
  - {type: arc, s: 0, x: 100, y: 0, hdg: 1, length: 10, curvature: 0.05}
  lanes:
  - id: -1
    type: sidewalk
    widths:
    - {s: 0, a: 2}
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	roadsPath := filepath.Join(dir, "roads.yaml")
	require.NoError(t, os.WriteFile(roadsPath, []byte(testRoads), 0o644))
	c, err := config.Parse([]byte(fmt.Sprintf(`
input:
  file: %s
sample:
  eps: 0.5
output:
  geojson: %s
  obj: %s
`, roadsPath, filepath.Join(dir, "out.geojson"), filepath.Join(dir, "out.obj"))))
	require.NoError(t, err)

	ctx := NewContext("test", c)
	require.NoError(t, ctx.Run(context.Background()))
	assert.Equal(t, 2, ctx.RoadManager().Len())
	// 3条车道各2条边界，1组实线标线
	assert.Len(t, ctx.Features(), 7)
	require.Len(t, ctx.Meshes(), 3)
	assert.Equal(t, "road1_lane-1", ctx.Meshes()[0].Name)

	data, err := os.ReadFile(filepath.Join(dir, "out.geojson"))
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 7)

	obj, err := os.ReadFile(filepath.Join(dir, "out.obj"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(obj), "o road"))
}

func TestSampleError(t *testing.T) {
	c, err := config.Parse([]byte("input: {file: unused.yaml}\nsample: {eps: 1, fixed: true}\n"))
	require.NoError(t, err)
	ctx := NewContext("test", c)

	descs := `
roads:
- id: 1
  length: 10
  geometries:
  - {type: line, length: 10}
  lanes:
  - id: 1
    roadmark_groups:
    - s: 0
      lines:
      - {s_offset: 0, length: 0, space: 0}
`
	dir := t.TempDir()
	path := filepath.Join(dir, "roads.yaml")
	require.NoError(t, os.WriteFile(path, []byte(descs), 0o644))
	ctx.config.Input.File = path
	require.NoError(t, ctx.Init(context.Background()))
	assert.ErrorIs(t, ctx.Sample(), lane.ErrDegenerateTiling)

	// 只采样不存在的道路时不出错
	ctx.config.Sample.RoadIDs = []int32{9}
	assert.NoError(t, ctx.Sample())
	assert.Empty(t, ctx.Features())

	ctx.config.Input.File = filepath.Join(dir, "missing.yaml")
	assert.Error(t, ctx.Init(context.Background()))
}
