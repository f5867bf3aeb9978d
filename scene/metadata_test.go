package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibibite/vega/scene"
)

func TestMetadataClasses(t *testing.T) {
	s := scene.NewScene()
	material := s.CreateMaterial()
	instance := material.CreateMaterialInstance()
	mesh := newTestMesh(s)
	root := s.GetRootNode()
	tNode := root.AddTranslateNode(0, 0, 0)
	rNode := tNode.AddRotateNode(0, 1, 0, 0)
	sNode := rNode.AddScaleNode(1)
	meshNode := sNode.AddMeshNode(mesh, instance)

	tests := []struct {
		obj   scene.Object
		class string
	}{
		{root, "root.node"},
		{tNode, "translate.node"},
		{rNode, "rotate.node"},
		{sNode, "scale.node"},
		{meshNode, "mesh.node"},
		{mesh, "object.mesh"},
		{material, "material"},
		{instance, "material.instance"},
	}
	for _, test := range tests {
		assert.Equal(t, test.class, test.obj.Metadata().ObjectClass)
	}
}

func TestMetadataSharedPerKind(t *testing.T) {
	s := scene.NewScene()
	a := s.GetRootNode().AddTranslateNode(1, 0, 0)
	b := s.GetRootNode().AddTranslateNode(2, 0, 0)
	assert.Same(t, a.Metadata(), b.Metadata())
}

func TestFieldByKey(t *testing.T) {
	s := scene.NewScene()
	rNode := s.GetRootNode().AddRotateNode(0, 1, 0, 1)

	field, ok := rNode.Metadata().FieldByKey("rotate.angle")
	require.True(t, ok)
	assert.Equal(t, "Angle", field.Label)
	assert.Equal(t, scene.ValueTypeFloat, field.Type)
	assert.True(t, field.Editable)

	_, ok = rNode.Metadata().FieldByKey("no.such.field")
	assert.False(t, ok)
}

func TestGetFieldUnknownIsInvalid(t *testing.T) {
	s := scene.NewScene()
	tNode := s.GetRootNode().AddTranslateNode(0, 0, 0)

	ref := tNode.GetField("no.such.field")
	assert.False(t, ref.Valid())
	assert.Equal(t, scene.ValueTypeNull, ref.Type())
	assert.Nil(t, ref.AsFloat3())
}

func TestFieldWriteThrough(t *testing.T) {
	s := scene.NewScene()
	rNode := s.GetRootNode().AddRotateNode(0, 1, 0, 1)

	axis := rNode.GetField("rotate.axis")
	require.True(t, axis.Valid())
	assert.Equal(t, scene.ValueTypeFloat3, axis.Type())
	*axis.AsFloat3() = mgl32.Vec3{1, 0, 0}

	angle := rNode.GetField("rotate.angle")
	require.True(t, angle.Valid())
	assert.Equal(t, scene.ValueTypeFloat, angle.Type())
	*angle.AsFloat() = 2

	// a fresh handle observes the writes
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, *rNode.GetField("rotate.axis").AsFloat3())
	assert.Equal(t, float32(2), *rNode.GetField("rotate.angle").AsFloat())
}

func TestMeshNodeReferenceFields(t *testing.T) {
	s := scene.NewScene()
	material := s.CreateMaterial()
	instance := material.CreateMaterialInstance()
	mesh := newTestMesh(s)
	meshNode := s.GetRootNode().AddMeshNode(mesh, instance)

	ref := meshNode.GetField("mesh")
	require.True(t, ref.Valid())
	assert.Equal(t, scene.ValueTypeReference, ref.Type())
	assert.Equal(t, mesh.GetID(), ref.AsObject().GetID())

	ref = meshNode.GetField("material.instance")
	require.True(t, ref.Valid())
	assert.Equal(t, instance.GetID(), ref.AsObject().GetID())
}

func TestMeshFields(t *testing.T) {
	s := scene.NewScene()
	mesh := newTestMesh(s)

	tests := []struct {
		key  string
		kind scene.ValueType
	}{
		{"aabb.min", scene.ValueTypeFloat3},
		{"aabb.max", scene.ValueTypeFloat3},
		{"vertex.attributes", scene.ValueTypeString},
		{"vertex.size", scene.ValueTypeInt},
		{"vertex.count", scene.ValueTypeInt},
		{"index.type", scene.ValueTypeString},
		{"index.size", scene.ValueTypeInt},
		{"index.count", scene.ValueTypeInt},
	}
	for _, test := range tests {
		ref := mesh.GetField(test.key)
		require.True(t, ref.Valid(), "field %q", test.key)
		assert.Equal(t, test.kind, ref.Type(), "field %q", test.key)

		field, ok := mesh.Metadata().FieldByKey(test.key)
		require.True(t, ok, "field %q", test.key)
		assert.False(t, field.Editable, "field %q", test.key)
	}

	assert.Equal(t, "position.normal", *mesh.GetField("vertex.attributes").AsString())
	assert.Equal(t, 24, *mesh.GetField("vertex.size").AsInt())
	assert.Equal(t, 3, *mesh.GetField("vertex.count").AsInt())
	assert.Equal(t, "int16", *mesh.GetField("index.type").AsString())
}

func TestAllMetadata(t *testing.T) {
	all := scene.AllMetadata()
	require.Len(t, all, 8)

	seen := map[string]bool{}
	for _, m := range all {
		assert.False(t, seen[m.ObjectClass])
		seen[m.ObjectClass] = true
	}
}

func TestValueTypeString(t *testing.T) {
	assert.Equal(t, "Float3", scene.ValueTypeFloat3.String())
	assert.Panics(t, func() { _ = scene.ValueType(42).String() })
}
