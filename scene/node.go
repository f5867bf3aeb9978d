package scene

import (
	"encoding/json"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of the scene tree. The kind set is closed: RootNode,
// TranslateNode, RotateNode, ScaleNode and MeshNode. Non-leaf kinds own their
// children exclusively; insertion order is traversal order is serialization
// order.
type Node interface {
	Object

	GetChildren() []Node
	HasChildren() bool

	// applyTransform is the only traversal mechanism. There is no caching or
	// dirty tracking: every query that needs world transforms starts a fresh
	// pre-order pass from the root with the identity matrix.
	applyTransform(m mgl32.Mat4)
}

// innerNode carries the owned child list and the builder operations shared by
// every non-leaf kind. Builders reach the scene's id generator through the
// reference stored here, so identifiers stay unique across object kinds.
type innerNode struct {
	object
	ids      *IDGenerator
	children []Node
}

func (n *innerNode) GetChildren() []Node {
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *innerNode) HasChildren() bool {
	return len(n.children) > 0
}

// ownedChildren keeps "owns" an array even for childless nodes.
func (n *innerNode) ownedChildren() []Node {
	if n.children == nil {
		return []Node{}
	}
	return n.children
}

func (n *innerNode) AddTranslateNode(x, y, z float32) *TranslateNode {
	node := &TranslateNode{
		innerNode: innerNode{object: object{id: n.ids.Next()}, ids: n.ids},
		amount:    mgl32.Vec3{x, y, z},
	}
	n.children = append(n.children, node)
	return node
}

// AddRotateNode appends a rotation about the given axis; the angle is in
// radians.
func (n *innerNode) AddRotateNode(x, y, z, angle float32) *RotateNode {
	node := &RotateNode{
		innerNode: innerNode{object: object{id: n.ids.Next()}, ids: n.ids},
		axis:      mgl32.Vec3{x, y, z},
		angle:     angle,
	}
	n.children = append(n.children, node)
	return node
}

// AddScaleNode appends a uniform scale by factor.
func (n *innerNode) AddScaleNode(factor float32) *ScaleNode {
	node := &ScaleNode{
		innerNode: innerNode{object: object{id: n.ids.Next()}, ids: n.ids},
		factor:    factor,
	}
	n.children = append(n.children, node)
	return node
}

// AddMeshNode appends a leaf that references, but does not own, the given
// mesh and material instance; both must outlive the node. The node registers
// itself with the instance so draw-list queries can group by material. Nil
// arguments are a caller bug.
func (n *innerNode) AddMeshNode(mesh *Mesh, instance *MaterialInstance) *MeshNode {
	if mesh == nil || instance == nil {
		panic("scene: AddMeshNode requires a mesh and a material instance")
	}
	node := &MeshNode{
		object:           object{id: n.ids.Next()},
		mesh:             mesh,
		materialInstance: instance,
		transform:        mgl32.Ident4(),
	}
	instance.addMeshNode(node)
	n.children = append(n.children, node)
	return node
}

// RemoveNode detaches a direct child and its whole subtree. Mesh nodes in the
// removed subtree are unregistered from their material instances, so draw
// lists computed afterwards no longer reference them. Returns false when the
// node is not a direct child.
func (n *innerNode) RemoveNode(child Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			unregisterMeshNodes(child)
			return true
		}
	}
	return false
}

func unregisterMeshNodes(node Node) {
	if meshNode, ok := node.(*MeshNode); ok {
		meshNode.materialInstance.removeMeshNode(meshNode)
		return
	}
	for _, child := range node.GetChildren() {
		unregisterMeshNodes(child)
	}
}

// RootNode is the single entry point of a scene's node tree. It has no
// transform of its own and forwards the incoming matrix unchanged.
type RootNode struct {
	innerNode
}

func (n *RootNode) Metadata() *Metadata { return rootNodeMetadata }

func (n *RootNode) GetField(string) ValueRef { return ValueRef{} }

func (n *RootNode) applyTransform(m mgl32.Mat4) {
	for _, child := range n.children {
		child.applyTransform(m)
	}
}

func (n *RootNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		objectHeader
		Owns []Node `json:"owns"`
	}{n.header(rootNodeMetadata.ObjectClass), n.ownedChildren()})
}

// TranslateNode offsets its subtree by a stored vector.
type TranslateNode struct {
	innerNode
	amount mgl32.Vec3
}

func (n *TranslateNode) Metadata() *Metadata { return translateNodeMetadata }

func (n *TranslateNode) GetField(name string) ValueRef {
	if name == "translate.amount" {
		return ValueRef{&n.amount}
	}
	return ValueRef{}
}

func (n *TranslateNode) applyTransform(m mgl32.Mat4) {
	// The local matrix is rebuilt from the current parameters on every pass.
	effective := m.Mul4(mgl32.Translate3D(n.amount.X(), n.amount.Y(), n.amount.Z()))
	for _, child := range n.children {
		child.applyTransform(effective)
	}
}

type translateValues struct {
	Amount mgl32.Vec3 `json:"translate"`
}

func (n *TranslateNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		objectHeader
		Values translateValues `json:"object.values"`
		Owns   []Node          `json:"owns"`
	}{n.header(translateNodeMetadata.ObjectClass), translateValues{n.amount}, n.ownedChildren()})
}

// RotateNode rotates its subtree about a stored axis by a stored angle in
// radians.
type RotateNode struct {
	innerNode
	axis  mgl32.Vec3
	angle float32
}

func (n *RotateNode) Metadata() *Metadata { return rotateNodeMetadata }

func (n *RotateNode) GetField(name string) ValueRef {
	switch name {
	case "rotate.axis":
		return ValueRef{&n.axis}
	case "rotate.angle":
		return ValueRef{&n.angle}
	}
	return ValueRef{}
}

func (n *RotateNode) applyTransform(m mgl32.Mat4) {
	effective := m.Mul4(mgl32.HomogRotate3D(n.angle, n.axis))
	for _, child := range n.children {
		child.applyTransform(effective)
	}
}

type rotateValues struct {
	Axis  mgl32.Vec3 `json:"rotate.axis"`
	Angle float32    `json:"rotate.angle"`
}

func (n *RotateNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		objectHeader
		Values rotateValues `json:"object.values"`
		Owns   []Node       `json:"owns"`
	}{n.header(rotateNodeMetadata.ObjectClass), rotateValues{n.axis, n.angle}, n.ownedChildren()})
}

// ScaleNode scales its subtree uniformly, the factor replicated on all three
// axes.
type ScaleNode struct {
	innerNode
	factor float32
}

func (n *ScaleNode) Metadata() *Metadata { return scaleNodeMetadata }

func (n *ScaleNode) GetField(name string) ValueRef {
	if name == "scale.factor" {
		return ValueRef{&n.factor}
	}
	return ValueRef{}
}

func (n *ScaleNode) applyTransform(m mgl32.Mat4) {
	effective := m.Mul4(mgl32.Scale3D(n.factor, n.factor, n.factor))
	for _, child := range n.children {
		child.applyTransform(effective)
	}
}

type scaleValues struct {
	Factor float32 `json:"scale"`
}

func (n *ScaleNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		objectHeader
		Values scaleValues `json:"object.values"`
		Owns   []Node      `json:"owns"`
	}{n.header(scaleNodeMetadata.ObjectClass), scaleValues{n.factor}, n.ownedChildren()})
}

// MeshNode is the leaf kind: it references one mesh and one material instance
// and stores the most recently computed world transform.
type MeshNode struct {
	object
	mesh             *Mesh
	materialInstance *MaterialInstance
	transform        mgl32.Mat4
}

func (n *MeshNode) GetChildren() []Node { return nil }
func (n *MeshNode) HasChildren() bool { return false }

func (n *MeshNode) GetMesh() *Mesh { return n.mesh }
func (n *MeshNode) GetMaterialInstance() *MaterialInstance { return n.materialInstance }

// GetTransform returns a pointer into the node so draw records observe later
// traversals without copying.
func (n *MeshNode) GetTransform() *mgl32.Mat4 { return &n.transform }

func (n *MeshNode) Metadata() *Metadata { return meshNodeMetadata }

func (n *MeshNode) GetField(name string) ValueRef {
	switch name {
	case "mesh":
		return ValueRef{n.mesh}
	case "material.instance":
		return ValueRef{n.materialInstance}
	}
	return ValueRef{}
}

// applyTransform stores the incoming matrix verbatim; the previous value is
// overwritten wholesale, never merged.
func (n *MeshNode) applyTransform(m mgl32.Mat4) {
	n.transform = m
}

type meshNodeRefs struct {
	MaterialInstance ID `json:"material.instance"`
	Mesh             ID `json:"mesh"`
}

func (n *MeshNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		objectHeader
		Refs meshNodeRefs `json:"object.refs"`
	}{n.header(meshNodeMetadata.ObjectClass), meshNodeRefs{n.materialInstance.GetID(), n.mesh.GetID()}})
}
