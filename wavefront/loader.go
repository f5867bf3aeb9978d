package wavefront

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/gibibite/vega/scene"
	"github.com/gibibite/vega/utils"
)

// Load reads an .obj file and adds its shapes to the scene.
func Load(s *scene.Scene, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to read %q", path)
	}
	return LoadData(s, data, filepath.Base(path))
}

// LoadData imports obj data into the scene. Every shape becomes a mesh
// hanging off its own translate/rotate/scale chain under the root node,
// all sharing one material instance named after the source.
func LoadData(s *scene.Scene, data []byte, name string) error {
	file, err := parse(data)
	if err != nil {
		return errors.Wrapf(err, "Failed to parse %q", name)
	}

	total := 0
	for _, shape := range file.shapes {
		total += len(shape.faces)
	}
	if total == 0 {
		return errors.Errorf("No faces in %q", name)
	}

	material := s.CreateMaterial()
	material.SetProperty("Name", name)
	instance := material.CreateMaterialInstance()
	instance.SetProperty("Name", name)

	rng := utils.RandomNameGenerator{}
	root := s.GetRootNode()

	for _, shape := range file.shapes {
		if len(shape.faces) == 0 {
			continue
		}
		mesh := buildMesh(s, file, shape)
		shapeName := shape.name
		if shapeName == "" {
			shapeName = rng.RandomName()
		}
		mesh.SetProperty("Name", shapeName)

		tNode := root.AddTranslateNode(0, 0, 0)
		rNode := tNode.AddRotateNode(0, 0, 1, 0)
		sNode := rNode.AddScaleNode(1)
		sNode.AddMeshNode(mesh, instance)

		log.Printf("[wavefront] Loaded shape %q: %d faces", shapeName, len(shape.faces))
	}
	return nil
}

func buildMesh(s *scene.Scene, file *objFile, shape *objShape) *scene.Mesh {
	hasNormals := true
	for _, face := range shape.faces {
		for _, fv := range face {
			if fv.normal < 0 {
				hasNormals = false
			}
		}
	}
	if hasNormals {
		return buildMeshPN(s, file, shape)
	}
	return buildMeshP(s, file, shape)
}

type pnKey struct {
	position int
	normal   int
}

// buildMeshPN reindexes (position, normal) pairs, fan-triangulating
// polygonal faces.
func buildMeshPN(s *scene.Scene, file *objFile, shape *objShape) *scene.Mesh {
	var vertices []scene.VertexPN
	var indices []uint32
	seen := map[pnKey]uint32{}

	emit := func(fv faceVertex) {
		key := pnKey{fv.position, fv.normal}
		index, ok := seen[key]
		if !ok {
			index = uint32(len(vertices))
			vertices = append(vertices, scene.VertexPN{
				Position: file.positions[fv.position],
				Normal:   file.normals[fv.normal],
			})
			seen[key] = index
		}
		indices = append(indices, index)
	}

	for _, face := range shape.faces {
		for i := 2; i < len(face); i++ {
			emit(face[0])
			emit(face[i-1])
			emit(face[i])
		}
	}
	return finishMesh(s, vertices, indices)
}

// buildMeshP computes flat face normals and dedupes whole vertices.
func buildMeshP(s *scene.Scene, file *objFile, shape *objShape) *scene.Mesh {
	var vertices []scene.VertexPN
	var indices []uint32
	seen := map[scene.VertexPN]uint32{}

	emit := func(v scene.VertexPN) {
		index, ok := seen[v]
		if !ok {
			index = uint32(len(vertices))
			vertices = append(vertices, v)
			seen[v] = index
		}
		indices = append(indices, index)
	}

	for _, face := range shape.faces {
		for i := 2; i < len(face); i++ {
			a := file.positions[face[0].position]
			b := file.positions[face[i-1].position]
			c := file.positions[face[i].position]
			normal := b.Sub(a).Cross(c.Sub(a))
			if normal.Len() > 0 {
				normal = normal.Normalize()
			}
			emit(scene.VertexPN{Position: a, Normal: normal})
			emit(scene.VertexPN{Position: b, Normal: normal})
			emit(scene.VertexPN{Position: c, Normal: normal})
		}
	}
	return finishMesh(s, vertices, indices)
}

func finishMesh(s *scene.Scene, vertices []scene.VertexPN, indices []uint32) *scene.Mesh {
	meshVertices := scene.NewMeshVerticesPN(vertices)

	aabb := utils.EmptyAABB()
	for _, v := range vertices {
		aabb.Expand(v.Position)
	}

	var meshIndices scene.MeshIndices
	if len(vertices) <= 0x10000 {
		u16 := make([]uint16, len(indices))
		for i, index := range indices {
			u16[i] = uint16(index)
		}
		meshIndices = scene.NewMeshIndicesU16(u16)
	} else {
		meshIndices = scene.NewMeshIndicesU32(indices)
	}
	return s.CreateMesh(aabb, meshVertices, meshIndices)
}
