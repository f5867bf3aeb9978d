package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibibite/vega/scene"
)

func buildChain(s *scene.Scene) (*scene.TranslateNode, *scene.RotateNode, *scene.ScaleNode, *scene.MeshNode) {
	material := s.CreateMaterial()
	instance := material.CreateMaterialInstance()
	mesh := newTestMesh(s)

	tNode := s.GetRootNode().AddTranslateNode(1, 2, 3)
	rNode := tNode.AddRotateNode(0, 1, 0, 0.25)
	sNode := rNode.AddScaleNode(2)
	meshNode := sNode.AddMeshNode(mesh, instance)
	return tNode, rNode, sNode, meshNode
}

var transformTests = []struct {
	name  string
	build func(root *scene.RootNode) scene.Node
	want  mgl32.Mat4
}{
	{
		"translate",
		func(root *scene.RootNode) scene.Node { return root.AddTranslateNode(1, -2, 3) },
		mgl32.Translate3D(1, -2, 3),
	},
	{
		"rotate",
		func(root *scene.RootNode) scene.Node { return root.AddRotateNode(0, 0, 1, 1.25) },
		mgl32.HomogRotate3D(1.25, mgl32.Vec3{0, 0, 1}),
	},
	{
		"rotate zero angle",
		func(root *scene.RootNode) scene.Node { return root.AddRotateNode(0, 1, 0, 0) },
		mgl32.Ident4(),
	},
	{
		"scale",
		func(root *scene.RootNode) scene.Node { return root.AddScaleNode(3) },
		mgl32.Scale3D(3, 3, 3),
	},
	{
		"unit scale",
		func(root *scene.RootNode) scene.Node { return root.AddScaleNode(1) },
		mgl32.Ident4(),
	},
}

func TestNodeTransforms(t *testing.T) {
	for _, test := range transformTests {
		t.Run(test.name, func(t *testing.T) {
			s := scene.NewScene()
			material := s.CreateMaterial()
			instance := material.CreateMaterialInstance()
			mesh := newTestMesh(s)

			parent := test.build(s.GetRootNode())
			inner, ok := parent.(interface {
				AddMeshNode(*scene.Mesh, *scene.MaterialInstance) *scene.MeshNode
			})
			require.True(t, ok)
			meshNode := inner.AddMeshNode(mesh, instance)

			drawList := s.ComputeDrawList()
			require.Len(t, drawList, 1)
			assert.Equal(t, test.want, *meshNode.GetTransform())
		})
	}
}

func TestTransformComposition(t *testing.T) {
	s := scene.NewScene()
	_, _, _, meshNode := buildChain(s)

	s.ComputeDrawList()

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3D(0.25, mgl32.Vec3{0, 1, 0})).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assert.Equal(t, want, *meshNode.GetTransform())
}

func TestTransformOverwrittenNotMerged(t *testing.T) {
	s := scene.NewScene()
	tNode, _, _, meshNode := buildChain(s)

	s.ComputeDrawList()
	first := *meshNode.GetTransform()

	// a second traversal with unchanged parameters reproduces, not compounds
	s.ComputeDrawList()
	assert.Equal(t, first, *meshNode.GetTransform())

	// editing a parameter takes effect on the next traversal
	ref := tNode.GetField("translate.amount")
	require.True(t, ref.Valid())
	*ref.AsFloat3() = mgl32.Vec3{10, 0, 0}
	s.ComputeDrawList()

	want := mgl32.Translate3D(10, 0, 0).
		Mul4(mgl32.HomogRotate3D(0.25, mgl32.Vec3{0, 1, 0})).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assert.Equal(t, want, *meshNode.GetTransform())
}

func TestChildOrder(t *testing.T) {
	s := scene.NewScene()
	root := s.GetRootNode()

	a := root.AddTranslateNode(1, 0, 0)
	b := root.AddScaleNode(2)
	c := root.AddRotateNode(0, 1, 0, 1)

	children := root.GetChildren()
	require.Len(t, children, 3)
	assert.Equal(t, a.GetID(), children[0].GetID())
	assert.Equal(t, b.GetID(), children[1].GetID())
	assert.Equal(t, c.GetID(), children[2].GetID())
}

func TestAddMeshNodePanicsOnNil(t *testing.T) {
	s := scene.NewScene()
	material := s.CreateMaterial()
	instance := material.CreateMaterialInstance()
	mesh := newTestMesh(s)
	root := s.GetRootNode()

	assert.Panics(t, func() { root.AddMeshNode(nil, instance) })
	assert.Panics(t, func() { root.AddMeshNode(mesh, nil) })
}

func TestRemoveNode(t *testing.T) {
	s := scene.NewScene()
	tNode, _, _, _ := buildChain(s)
	root := s.GetRootNode()

	require.Len(t, s.ComputeDrawList(), 1)

	// not a direct child of root
	other := tNode.AddScaleNode(1)
	assert.False(t, root.RemoveNode(other))

	assert.True(t, root.RemoveNode(tNode))
	assert.False(t, root.HasChildren())

	// mesh nodes in the removed subtree leave the draw list too
	assert.Len(t, s.ComputeDrawList(), 0)

	// removing twice fails
	assert.False(t, root.RemoveNode(tNode))
}
