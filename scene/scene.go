package scene

import (
	"encoding/json"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gibibite/vega/utils"
)

// DrawRecord pairs a mesh with the world transform of the node that placed
// it. Both pointers alias scene-owned data.
type DrawRecord struct {
	Mesh      *Mesh
	Transform *mgl32.Mat4
}

// DrawList is a transient, non-owning view over the scene: it is valid only
// until the next structural mutation and must be consumed before one.
type DrawList []DrawRecord

// Scene is the aggregate root: exactly one node tree, one mesh manager and
// one material manager, sharing a single identifier generator. All operations
// except identifier allocation are meant for a single scene-owner goroutine.
type Scene struct {
	ids       *IDGenerator
	root      *RootNode
	materials *MaterialManager
	meshes    *MeshManager
}

func NewScene() *Scene {
	ids := &IDGenerator{}
	return &Scene{
		ids:       ids,
		root:      &RootNode{innerNode{object: object{id: ids.Next()}, ids: ids}},
		materials: newMaterialManager(ids),
		meshes:    newMeshManager(ids),
	}
}

func (s *Scene) GetRootNode() *RootNode { return s.root }

func (s *Scene) CreateMaterial() *Material {
	return s.materials.CreateMaterial()
}

func (s *Scene) CreateMesh(aabb utils.AABB, vertices MeshVertices, indices MeshIndices) *Mesh {
	return s.meshes.CreateMesh(aabb, vertices, indices)
}

func (s *Scene) GetMaterials() []*Material { return s.materials.GetMaterials() }
func (s *Scene) GetMeshes() []*Mesh { return s.meshes.GetMeshes() }

// ComputeDrawList refreshes every world transform with a full traversal from
// the root, then emits one record per mesh node, grouped by material and
// instance in creation order to minimize render-state changes downstream.
func (s *Scene) ComputeDrawList() DrawList {
	s.root.applyTransform(mgl32.Ident4())

	var drawList DrawList
	for _, material := range s.materials.GetMaterials() {
		for _, instance := range material.GetMaterialInstances() {
			for _, node := range instance.GetMeshNodes() {
				drawList = append(drawList, DrawRecord{Mesh: node.GetMesh(), Transform: node.GetTransform()})
			}
		}
	}
	return drawList
}

// ComputeAxisAlignedBoundingBox returns the world-space bounds of the scene.
// An empty tree yields the sentinel box {(-1,-1,-1),(1,1,1)}. Only the two
// stored corners of each mesh box are transformed, not all eight; this is
// exact for translate/uniform-scale hierarchies and an under-estimate when an
// ancestor rotates.
func (s *Scene) ComputeAxisAlignedBoundingBox() utils.AABB {
	if !s.root.HasChildren() {
		return utils.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	}

	s.root.applyTransform(mgl32.Ident4())

	out := utils.EmptyAABB()
	for _, material := range s.materials.GetMaterials() {
		for _, instance := range material.GetMaterialInstances() {
			for _, node := range instance.GetMeshNodes() {
				model := *node.GetTransform()
				box := node.GetMesh().GetBoundingBox()
				out.Expand(model.Mul4x1(box.Min.Vec4(1)).Vec3())
				out.Expand(model.Mul4x1(box.Max.Vec4(1)).Vec3())
			}
		}
	}
	return out
}

// FindObject resolves an identifier to the live object, or nil. Identifiers
// share one namespace, so a single lookup covers every kind.
func (s *Scene) FindObject(id ID) Object {
	if mesh := s.meshes.GetMesh(id); mesh != nil {
		return mesh
	}
	for _, material := range s.materials.GetMaterials() {
		if material.GetID() == id {
			return material
		}
		for _, instance := range material.GetMaterialInstances() {
			if instance.GetID() == id {
				return instance
			}
		}
	}
	return findNode(s.root, id)
}

func findNode(node Node, id ID) Object {
	if node.GetID() == id {
		return node
	}
	for _, child := range node.GetChildren() {
		if obj := findNode(child, id); obj != nil {
			return obj
		}
	}
	return nil
}

// ObjectInfo is a directory entry for editors: which ids exist and what kind
// they are.
type ObjectInfo struct {
	ID    ID     `json:"object.id"`
	Class string `json:"object.class"`
}

// ListObjects enumerates every object: the node tree pre-order, then
// materials with their instances, then meshes, each section in creation
// order.
func (s *Scene) ListObjects() []ObjectInfo {
	var out []ObjectInfo

	var walk func(node Node)
	walk = func(node Node) {
		out = append(out, ObjectInfo{ID: node.GetID(), Class: node.Metadata().ObjectClass})
		for _, child := range node.GetChildren() {
			walk(child)
		}
	}
	walk(s.root)

	for _, material := range s.materials.GetMaterials() {
		out = append(out, ObjectInfo{ID: material.GetID(), Class: material.Metadata().ObjectClass})
		for _, instance := range material.GetMaterialInstances() {
			out = append(out, ObjectInfo{ID: instance.GetID(), Class: instance.Metadata().ObjectClass})
		}
	}
	for _, mesh := range s.meshes.GetMeshes() {
		out = append(out, ObjectInfo{ID: mesh.GetID(), Class: mesh.Metadata().ObjectClass})
	}
	return out
}

// MarshalJSON exports the structured document: the recursive node tree, the
// material list and the mesh list. Export only; there is no import path.
func (s *Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Scene     *RootNode        `json:"scene"`
		Materials *MaterialManager `json:"materials"`
		Meshes    *MeshManager     `json:"meshes"`
	}{s.root, s.materials, s.meshes})
}
