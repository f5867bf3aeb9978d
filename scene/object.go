// Package scene implements a retained-mode scene graph: a tree of transform
// and geometry nodes that a host builds once per loaded asset and queries
// every frame for a flat draw list and a world-space bounding box.
package scene

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// ID is a handle unique across every object kind in a scene: nodes, meshes,
// materials and material instances all draw from the same generator.
type ID int64

// IDGenerator issues strictly increasing identifiers. It is owned by a Scene
// and shared by its managers and node builders; Next is safe for concurrent
// use, everything else in this package is single-threaded by contract.
type IDGenerator struct {
	last int64
}

func (g *IDGenerator) Next() ID {
	return ID(atomic.AddInt64(&g.last, 1))
}

// Object is the surface common to every scene object. The set of
// implementations is closed: nodes, Mesh, Material and MaterialInstance.
type Object interface {
	json.Marshaler

	GetID() ID
	Metadata() *Metadata
	GetField(name string) ValueRef

	SetProperty(key string, value interface{})
	GetProperty(key string) interface{}
	RemoveProperty(key string)
	HasProperties() bool
}

// Dictionary is the lazily allocated property bag attached to an object.
// Values are drawn from the closed set {int, float32, string}; there is no
// numeric coercion between them.
type Dictionary map[string]interface{}

func checkPropertyValue(key string, value interface{}) {
	switch value.(type) {
	case int, float32, string:
	default:
		panic(fmt.Sprintf("scene: property %q holds unsupported type %T", key, value))
	}
}

func (d Dictionary) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d))
	for key, value := range d {
		checkPropertyValue(key, value)
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[key] = raw
	}
	return json.Marshal(out)
}

type object struct {
	id         ID
	properties Dictionary
}

func (o *object) GetID() ID { return o.id }

// SetProperty allocates the dictionary on first use and inserts or
// overwrites. Unsupported value types are a caller bug and panic.
func (o *object) SetProperty(key string, value interface{}) {
	checkPropertyValue(key, value)
	if o.properties == nil {
		o.properties = make(Dictionary)
	}
	o.properties[key] = value
}

func (o *object) GetProperty(key string) interface{} {
	if o.properties == nil {
		return nil
	}
	return o.properties[key]
}

// RemoveProperty is a no-op when the key is absent or the dictionary was
// never allocated.
func (o *object) RemoveProperty(key string) {
	if o.properties != nil {
		delete(o.properties, key)
	}
}

func (o *object) HasProperties() bool {
	return len(o.properties) > 0
}

// objectHeader is the common serialization header every object emits.
type objectHeader struct {
	Class      string     `json:"object.class"`
	ID         ID         `json:"object.id"`
	Properties Dictionary `json:"object.properties,omitempty"`
}

func (o *object) header(class string) objectHeader {
	return objectHeader{Class: class, ID: o.id, Properties: o.properties}
}
