package scene

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gibibite/vega/utils"
)

// VertexPN is the interleaved position+normal vertex layout produced by the
// importers and consumed by the upload/export paths.
type VertexPN struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

const vertexSizePN = 24

// MeshVertices describes an immutable vertex buffer: attribute layout,
// element size and count, and the raw little-endian bytes ready for upload.
type MeshVertices struct {
	attributes string
	vertexSize int
	count      int
	data       []byte
	pn         []VertexPN
}

func NewMeshVerticesPN(vertices []VertexPN) MeshVertices {
	buf := new(bytes.Buffer)
	buf.Grow(len(vertices) * vertexSizePN)
	if err := binary.Write(buf, binary.LittleEndian, vertices); err != nil {
		panic(fmt.Sprintf("scene: failed to serialize vertices: %v", err))
	}
	return MeshVertices{
		attributes: "position.normal",
		vertexSize: vertexSizePN,
		count:      len(vertices),
		data:       buf.Bytes(),
		pn:         vertices,
	}
}

func (v MeshVertices) GetVertexAttributes() string { return v.attributes }
func (v MeshVertices) GetVertexSize() int { return v.vertexSize }
func (v MeshVertices) GetCount() int { return v.count }
func (v MeshVertices) GetSize() int { return len(v.data) }
func (v MeshVertices) GetData() []byte { return v.data }

// PN returns the typed vertices backing the buffer.
func (v MeshVertices) PN() []VertexPN { return v.pn }

type meshVerticesJSON struct {
	Attributes string `json:"vertex.attributes"`
	VertexSize int    `json:"vertex.size"`
	Count      int    `json:"vertex.count"`
	Size       int    `json:"vertices.size"`
}

// MeshIndices describes an immutable index buffer.
type MeshIndices struct {
	indexType string
	indexSize int
	count     int
	data      []byte
	u16       []uint16
	u32       []uint32
}

func NewMeshIndicesU16(indices []uint16) MeshIndices {
	buf := new(bytes.Buffer)
	buf.Grow(len(indices) * 2)
	if err := binary.Write(buf, binary.LittleEndian, indices); err != nil {
		panic(fmt.Sprintf("scene: failed to serialize indices: %v", err))
	}
	return MeshIndices{indexType: "int16", indexSize: 2, count: len(indices), data: buf.Bytes(), u16: indices}
}

func NewMeshIndicesU32(indices []uint32) MeshIndices {
	buf := new(bytes.Buffer)
	buf.Grow(len(indices) * 4)
	if err := binary.Write(buf, binary.LittleEndian, indices); err != nil {
		panic(fmt.Sprintf("scene: failed to serialize indices: %v", err))
	}
	return MeshIndices{indexType: "int32", indexSize: 4, count: len(indices), data: buf.Bytes(), u32: indices}
}

func (i MeshIndices) GetIndexType() string { return i.indexType }
func (i MeshIndices) GetIndexSize() int { return i.indexSize }
func (i MeshIndices) GetCount() int { return i.count }
func (i MeshIndices) GetSize() int { return len(i.data) }
func (i MeshIndices) GetData() []byte { return i.data }

// ToUint32 widens the indices to 32 bits for consumers that take one type.
func (i MeshIndices) ToUint32() []uint32 {
	if i.u32 != nil {
		out := make([]uint32, len(i.u32))
		copy(out, i.u32)
		return out
	}
	out := make([]uint32, len(i.u16))
	for n, index := range i.u16 {
		out[n] = uint32(index)
	}
	return out
}

type meshIndicesJSON struct {
	Class     string `json:"index.class"`
	IndexSize int    `json:"index.size"`
	Count     int    `json:"index.count"`
	Size      int    `json:"indices.size"`
}

// Mesh holds immutable geometry: a local-space bounding box plus vertex and
// index buffer descriptors. The manager is the sole owner; everything else
// keeps non-owning pointers.
type Mesh struct {
	object
	aabb     utils.AABB
	vertices MeshVertices
	indices  MeshIndices
}

func (m *Mesh) GetBoundingBox() utils.AABB { return m.aabb }
func (m *Mesh) GetVertices() MeshVertices { return m.vertices }
func (m *Mesh) GetIndices() MeshIndices { return m.indices }

func (m *Mesh) Metadata() *Metadata { return meshMetadata }

func (m *Mesh) GetField(name string) ValueRef {
	switch name {
	case "aabb.min":
		return ValueRef{&m.aabb.Min}
	case "aabb.max":
		return ValueRef{&m.aabb.Max}
	case "vertex.attributes":
		return ValueRef{&m.vertices.attributes}
	case "vertex.size":
		return ValueRef{&m.vertices.vertexSize}
	case "vertex.count":
		return ValueRef{&m.vertices.count}
	case "index.type":
		return ValueRef{&m.indices.indexType}
	case "index.size":
		return ValueRef{&m.indices.indexSize}
	case "index.count":
		return ValueRef{&m.indices.count}
	}
	return ValueRef{}
}

type meshValues struct {
	AABB     utils.AABB       `json:"aabb"`
	Vertices meshVerticesJSON `json:"vertices"`
	Indices  meshIndicesJSON  `json:"indices"`
}

func (m *Mesh) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		objectHeader
		Values meshValues `json:"object.values"`
	}{m.header(meshMetadata.ObjectClass), meshValues{
		AABB: m.aabb,
		Vertices: meshVerticesJSON{
			Attributes: m.vertices.attributes,
			VertexSize: m.vertices.vertexSize,
			Count:      m.vertices.count,
			Size:       m.vertices.GetSize(),
		},
		Indices: meshIndicesJSON{
			Class:     m.indices.indexType,
			IndexSize: m.indices.indexSize,
			Count:     m.indices.count,
			Size:      m.indices.GetSize(),
		},
	}})
}

// MeshManager owns every mesh of a scene, keyed by identifier; iteration
// follows creation order.
type MeshManager struct {
	ids    *IDGenerator
	meshes []*Mesh
	byID   map[ID]*Mesh
}

func newMeshManager(ids *IDGenerator) *MeshManager {
	return &MeshManager{ids: ids, byID: make(map[ID]*Mesh)}
}

// CreateMesh stores the immutable geometry and returns a non-owning pointer.
func (m *MeshManager) CreateMesh(aabb utils.AABB, vertices MeshVertices, indices MeshIndices) *Mesh {
	mesh := &Mesh{
		object:   object{id: m.ids.Next()},
		aabb:     aabb,
		vertices: vertices,
		indices:  indices,
	}
	m.meshes = append(m.meshes, mesh)
	m.byID[mesh.id] = mesh
	return mesh
}

func (m *MeshManager) GetMeshes() []*Mesh {
	out := make([]*Mesh, len(m.meshes))
	copy(out, m.meshes)
	return out
}

func (m *MeshManager) GetMesh(id ID) *Mesh {
	return m.byID[id]
}

func (m *MeshManager) MarshalJSON() ([]byte, error) {
	if m.meshes == nil {
		return json.Marshal([]*Mesh{})
	}
	return json.Marshal(m.meshes)
}
