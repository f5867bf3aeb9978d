package wavefront

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVertexForms(t *testing.T) {
	const data = `
# comment line
v 1.0 2.5 -3e-1
v -1 -2 -3
vn 0 1 0
vt 0.5 0.5
f 1/1/1 2/1/1 1//1
`
	file, err := parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, file.positions, 2)
	assert.Equal(t, mgl32.Vec3{1, 2.5, -0.3}, file.positions[0])
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, file.positions[1])
	require.Len(t, file.normals, 1)

	require.Len(t, file.shapes, 1)
	require.Len(t, file.shapes[0].faces, 1)
	face := file.shapes[0].faces[0]
	assert.Equal(t, faceVertex{position: 0, normal: 0}, face[0])
	assert.Equal(t, faceVertex{position: 1, normal: 0}, face[1])
	assert.Equal(t, faceVertex{position: 0, normal: 0}, face[2])
}

func TestParseNegativeIndices(t *testing.T) {
	const data = `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	file, err := parse([]byte(data))
	require.NoError(t, err)

	face := file.shapes[0].faces[0]
	assert.Equal(t, 0, face[0].position)
	assert.Equal(t, 1, face[1].position)
	assert.Equal(t, 2, face[2].position)
	assert.Equal(t, -1, face[0].normal)
}

func TestParseShapeSplit(t *testing.T) {
	const data = `
v 0 0 0
v 1 0 0
v 0 1 0
o first
f 1 2 3
g second
f 1 2 3
f 3 2 1
`
	file, err := parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, file.shapes, 2)
	assert.Equal(t, "first", file.shapes[0].name)
	assert.Len(t, file.shapes[0].faces, 1)
	assert.Equal(t, "second", file.shapes[1].name)
	assert.Len(t, file.shapes[1].faces, 2)
}

var parseErrorTests = []struct {
	name string
	data string
}{
	{"index out of range", "v 0 0 0\nf 1 2 3\n"},
	{"negative out of range", "v 0 0 0\nf -2 -1 -1\n"},
	{"short vertex", "v 1 2\n"},
	{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	{"word in face", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 abc\n"},
}

func TestParseErrors(t *testing.T) {
	for _, test := range parseErrorTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parse([]byte(test.data))
			assert.Error(t, err)
		})
	}
}

func TestParseIgnoresUnknownKeywords(t *testing.T) {
	const data = `
mtllib scene.mtl
usemtl wood
s off
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	file, err := parse([]byte(data))
	require.NoError(t, err)
	assert.Len(t, file.positions, 3)
	assert.Len(t, file.shapes[0].faces, 1)
}
