// Package gltfexport converts a scene draw list into a glTF 2.0 document.
package gltfexport

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/gibibite/vega/scene"
)

// Export flattens the scene into a single glTF scene: one glTF mesh per
// scene mesh (shared between draw records that reference it) and one node
// per draw record carrying its world matrix.
func Export(s *scene.Scene) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "default",
		DoubleSided: true,
	})

	meshCache := make(map[scene.ID]uint32)
	for _, record := range s.ComputeDrawList() {
		meshIndex, ok := meshCache[record.Mesh.GetID()]
		if !ok {
			meshIndex = exportMesh(doc, record.Mesh)
			meshCache[record.Mesh.GetID()] = meshIndex
		}

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   objectName(record.Mesh),
			Mesh:   gltf.Index(meshIndex),
			Matrix: *record.Transform,
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc
}

// ExportBinary writes the scene as a .glb container.
func ExportBinary(w io.Writer, s *scene.Scene) error {
	doc := Export(s)
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrapf(err, "Failed to encode gltf document")
	}
	return nil
}

func exportMesh(doc *gltf.Document, mesh *scene.Mesh) uint32 {
	vertices := mesh.GetVertices().PN()
	positions := make([][3]float32, len(vertices))
	normals := make([][3]float32, len(vertices))
	for i, v := range vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
	}

	primitive := &gltf.Primitive{
		Indices:    gltf.Index(modeler.WriteIndices(doc, mesh.GetIndices().ToUint32())),
		Material:   gltf.Index(0),
		Attributes: map[string]uint32{
			"POSITION": modeler.WritePosition(doc, positions),
			"NORMAL":   modeler.WriteNormal(doc, normals),
		},
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name:       objectName(mesh),
		Primitives: []*gltf.Primitive{primitive},
	})
	return uint32(len(doc.Meshes) - 1)
}

func objectName(o scene.Object) string {
	if name, ok := o.GetProperty("Name").(string); ok {
		return name
	}
	return fmt.Sprintf("object %d", o.GetID())
}
