package scene

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ValueType tags the kind of value behind a ValueRef or described by a Field.
type ValueType int

const (
	ValueTypeNull ValueType = iota
	ValueTypeInt
	ValueTypeFloat
	ValueTypeFloat3
	ValueTypeString
	ValueTypeReference
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeNull:
		return "Null"
	case ValueTypeInt:
		return "Int"
	case ValueTypeFloat:
		return "Float"
	case ValueTypeFloat3:
		return "Float3"
	case ValueTypeString:
		return "String"
	case ValueTypeReference:
		return "Reference"
	}
	panic(fmt.Sprintf("scene: bad value type %d", int(t)))
}

func (t ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Field describes one externally visible member of an object kind.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     ValueType `json:"type"`
	Editable bool      `json:"editable"`
}

// Metadata is the static description of an object kind: its class tag, a
// human-readable label and the fields an editor may show. One instance per
// kind, shared by all objects of that kind.
type Metadata struct {
	ObjectClass string  `json:"object.class"`
	Label       string  `json:"label"`
	Fields      []Field `json:"fields,omitempty"`
}

func (m *Metadata) FieldByKey(key string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

var (
	rootNodeMetadata = &Metadata{ObjectClass: "root.node", Label: "Root"}

	translateNodeMetadata = &Metadata{
		ObjectClass: "translate.node",
		Label:       "Translate",
		Fields: []Field{
			{Key: "translate.amount", Label: "Amount", Type: ValueTypeFloat3, Editable: true},
		},
	}

	rotateNodeMetadata = &Metadata{
		ObjectClass: "rotate.node",
		Label:       "Rotate",
		Fields: []Field{
			{Key: "rotate.axis", Label: "Axis", Type: ValueTypeFloat3, Editable: true},
			{Key: "rotate.angle", Label: "Angle", Type: ValueTypeFloat, Editable: true},
		},
	}

	scaleNodeMetadata = &Metadata{
		ObjectClass: "scale.node",
		Label:       "Scale",
		Fields: []Field{
			{Key: "scale.factor", Label: "Factor", Type: ValueTypeFloat, Editable: true},
		},
	}

	meshNodeMetadata = &Metadata{
		ObjectClass: "mesh.node",
		Label:       "Mesh",
		Fields: []Field{
			{Key: "mesh", Label: "Mesh", Type: ValueTypeReference, Editable: false},
			{Key: "material.instance", Label: "Material Instance", Type: ValueTypeReference, Editable: false},
		},
	}

	meshMetadata = &Metadata{
		ObjectClass: "object.mesh",
		Label:       "Mesh",
		Fields: []Field{
			{Key: "aabb.min", Label: "Min", Type: ValueTypeFloat3, Editable: false},
			{Key: "aabb.max", Label: "Max", Type: ValueTypeFloat3, Editable: false},
			{Key: "vertex.attributes", Label: "Vertex Attributes", Type: ValueTypeString, Editable: false},
			{Key: "vertex.size", Label: "Vertex Size", Type: ValueTypeInt, Editable: false},
			{Key: "vertex.count", Label: "Vertex Count", Type: ValueTypeInt, Editable: false},
			{Key: "index.type", Label: "Index Type", Type: ValueTypeString, Editable: false},
			{Key: "index.size", Label: "Index Size", Type: ValueTypeInt, Editable: false},
			{Key: "index.count", Label: "Index Count", Type: ValueTypeInt, Editable: false},
		},
	}

	materialMetadata = &Metadata{ObjectClass: "material", Label: "Material"}

	materialInstanceMetadata = &Metadata{ObjectClass: "material.instance", Label: "Material Instance"}
)

// AllMetadata lists the metadata of every object kind, for editors that build
// property panels without per-kind special-casing.
func AllMetadata() []*Metadata {
	return []*Metadata{
		rootNodeMetadata,
		translateNodeMetadata,
		rotateNodeMetadata,
		scaleNodeMetadata,
		meshNodeMetadata,
		meshMetadata,
		materialMetadata,
		materialInstanceMetadata,
	}
}

// ValueRef is a typed handle to a single member of a live object, handed out
// by GetField. The zero value reports Valid() == false and is the answer for
// unknown field names. Writes through the contained pointer take effect on
// the next traversal; no extra invalidation is needed since every query
// recomputes transforms from scratch.
type ValueRef struct {
	ref interface{}
}

func (r ValueRef) Valid() bool { return r.ref != nil }

func (r ValueRef) Type() ValueType {
	switch r.ref.(type) {
	case nil:
		return ValueTypeNull
	case *int:
		return ValueTypeInt
	case *float32:
		return ValueTypeFloat
	case *mgl32.Vec3:
		return ValueTypeFloat3
	case *string:
		return ValueTypeString
	case Object:
		return ValueTypeReference
	}
	panic(fmt.Sprintf("scene: bad value ref %T", r.ref))
}

func (r ValueRef) AsInt() *int {
	p, _ := r.ref.(*int)
	return p
}

func (r ValueRef) AsFloat() *float32 {
	p, _ := r.ref.(*float32)
	return p
}

func (r ValueRef) AsFloat3() *mgl32.Vec3 {
	p, _ := r.ref.(*mgl32.Vec3)
	return p
}

func (r ValueRef) AsString() *string {
	p, _ := r.ref.(*string)
	return p
}

func (r ValueRef) AsObject() Object {
	o, _ := r.ref.(Object)
	return o
}
