package scene_test

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gibibite/vega/scene"
	"github.com/gibibite/vega/utils"
)

// newTestMesh creates a single triangle spanning the unit box.
func newTestMesh(s *scene.Scene) *scene.Mesh {
	vertices := []scene.VertexPN{
		{Position: mgl32.Vec3{-1, -1, -1}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{1, -1, 0}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{0, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}},
	}
	aabb := utils.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	return s.CreateMesh(aabb, scene.NewMeshVerticesPN(vertices), scene.NewMeshIndicesU16([]uint16{0, 1, 2}))
}
