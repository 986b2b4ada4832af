package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/utils/mesh"
)

// NamedMesh 带名称的网格，名称写为OBJ的对象名
type NamedMesh struct {
	Name string
	Mesh *mesh.Mesh3D
}

// WriteOBJ 将网格写为Wavefront OBJ
// 说明：每个网格一个对象(o)，顶点带(s, t)时同时写出纹理坐标(vt)，面索引从1开始并跨对象累加
func WriteOBJ(w io.Writer, meshes []NamedMesh) error {
	bw := bufio.NewWriter(w)
	offset, stOffset := 1, 1
	for _, nm := range meshes {
		m := nm.Mesh
		if len(m.Indices)%3 != 0 {
			return errors.Errorf("mesh %s: index count %d is not a multiple of 3", nm.Name, len(m.Indices))
		}
		hasST := len(m.ST) == len(m.Vertices)
		fmt.Fprintf(bw, "o %s\n", nm.Name)
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		if hasST {
			for _, st := range m.ST {
				fmt.Fprintf(bw, "vt %g %g\n", st[0], st[1])
			}
		}
		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := int(m.Indices[i])+offset, int(m.Indices[i+1])+offset, int(m.Indices[i+2])+offset
			if hasST {
				d := stOffset - offset
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a+d, b, b+d, c, c+d)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}
		offset += len(m.Vertices)
		if hasST {
			stOffset += len(m.ST)
		}
	}
	return errors.Wrap(bw.Flush(), "obj write")
}
