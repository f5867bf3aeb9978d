package scene

import "encoding/json"

// Material owns an ordered set of material instances. Render state itself
// (pipelines, descriptor sets) lives outside the core; here a material is the
// grouping key for draw-list output.
type Material struct {
	object
	ids       *IDGenerator
	instances []*MaterialInstance
}

func (m *Material) Metadata() *Metadata { return materialMetadata }

func (m *Material) GetField(string) ValueRef { return ValueRef{} }

// CreateMaterialInstance appends an owned instance and returns a non-owning
// pointer to it.
func (m *Material) CreateMaterialInstance() *MaterialInstance {
	instance := &MaterialInstance{object: object{id: m.ids.Next()}}
	m.instances = append(m.instances, instance)
	return instance
}

// GetMaterialInstances returns the instances in creation order.
func (m *Material) GetMaterialInstances() []*MaterialInstance {
	out := make([]*MaterialInstance, len(m.instances))
	copy(out, m.instances)
	return out
}

func (m *Material) MarshalJSON() ([]byte, error) {
	owns := m.instances
	if owns == nil {
		owns = []*MaterialInstance{}
	}
	return json.Marshal(struct {
		objectHeader
		Owns []*MaterialInstance `json:"owns"`
	}{m.header(materialMetadata.ObjectClass), owns})
}

// MaterialInstance groups the mesh nodes constructed against it. The list is
// an observes relation: the instance never owns the nodes, it only records
// them so draw lists come out grouped by material and instance.
type MaterialInstance struct {
	object
	meshNodes []*MeshNode
}

func (mi *MaterialInstance) Metadata() *Metadata { return materialInstanceMetadata }

func (mi *MaterialInstance) GetField(string) ValueRef { return ValueRef{} }

// addMeshNode is called by MeshNode construction only, never by hosts.
func (mi *MaterialInstance) addMeshNode(node *MeshNode) {
	mi.meshNodes = append(mi.meshNodes, node)
}

func (mi *MaterialInstance) removeMeshNode(node *MeshNode) {
	for i, n := range mi.meshNodes {
		if n == node {
			mi.meshNodes = append(mi.meshNodes[:i], mi.meshNodes[i+1:]...)
			return
		}
	}
}

// GetMeshNodes returns the referencing mesh nodes in registration order.
func (mi *MaterialInstance) GetMeshNodes() []*MeshNode {
	out := make([]*MeshNode, len(mi.meshNodes))
	copy(out, mi.meshNodes)
	return out
}

func (mi *MaterialInstance) MarshalJSON() ([]byte, error) {
	refs := make([]ID, 0, len(mi.meshNodes))
	for _, node := range mi.meshNodes {
		refs = append(refs, node.GetID())
	}
	return json.Marshal(struct {
		objectHeader
		Refs []ID `json:"object.refs"`
	}{mi.header(materialInstanceMetadata.ObjectClass), refs})
}

// MaterialManager owns every material of a scene, keyed by identifier;
// iteration follows creation order.
type MaterialManager struct {
	ids       *IDGenerator
	materials []*Material
	byID      map[ID]*Material
}

func newMaterialManager(ids *IDGenerator) *MaterialManager {
	return &MaterialManager{ids: ids, byID: make(map[ID]*Material)}
}

func (m *MaterialManager) CreateMaterial() *Material {
	material := &Material{object: object{id: m.ids.Next()}, ids: m.ids}
	m.materials = append(m.materials, material)
	m.byID[material.id] = material
	return material
}

func (m *MaterialManager) GetMaterials() []*Material {
	out := make([]*Material, len(m.materials))
	copy(out, m.materials)
	return out
}

func (m *MaterialManager) GetMaterial(id ID) *Material {
	return m.byID[id]
}

func (m *MaterialManager) MarshalJSON() ([]byte, error) {
	if m.materials == nil {
		return json.Marshal([]*Material{})
	}
	return json.Marshal(m.materials)
}
