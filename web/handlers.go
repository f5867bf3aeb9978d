package web

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/gibibite/vega/gltfexport"
	"github.com/gibibite/vega/scene"
	"github.com/gibibite/vega/status"
	"github.com/gibibite/vega/webutils"
)

func HandlerSceneJson(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()
	webutils.WriteJson(w, serverScene)
}

type drawRecordJson struct {
	Mesh      scene.ID   `json:"mesh"`
	Transform mgl32.Mat4 `json:"transform"`
}

func HandlerDrawListJson(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()

	drawList := serverScene.ComputeDrawList()
	records := make([]drawRecordJson, 0, len(drawList))
	for _, record := range drawList {
		records = append(records, drawRecordJson{
			Mesh:      record.Mesh.GetID(),
			Transform: *record.Transform,
		})
	}
	webutils.WriteJson(w, records)
}

func HandlerAabbJson(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()
	webutils.WriteJson(w, serverScene.ComputeAxisAlignedBoundingBox())
}

func HandlerObjectsJson(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()
	webutils.WriteJson(w, serverScene.ListObjects())
}

func HandlerMetadataJson(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, scene.AllMetadata())
}

func findObjectFromRequest(r *http.Request) (scene.Object, error) {
	rawId := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(rawId, 10, 64)
	if err != nil {
		return nil, errors.Errorf("Object id %q is not an integer", rawId)
	}
	obj := serverScene.FindObject(scene.ID(id))
	if obj == nil {
		return nil, errors.Errorf("No object with id %v", id)
	}
	return obj, nil
}

func HandlerObjectJson(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()

	obj, err := findObjectFromRequest(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	type result struct {
		Object   scene.Object    `json:"object"`
		Metadata *scene.Metadata `json:"metadata"`
	}
	webutils.WriteJson(w, &result{Object: obj, Metadata: obj.Metadata()})
}

func parseFloat3(value string) (mgl32.Vec3, error) {
	parts := strings.Fields(strings.ReplaceAll(value, ",", " "))
	if len(parts) != 3 {
		return mgl32.Vec3{}, errors.Errorf("Expected 3 components, got %d", len(parts))
	}
	var out mgl32.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return mgl32.Vec3{}, errors.Wrapf(err, "Component %d is not a number", i)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// HandlerObjectSetField writes a form-encoded "value" through the object's
// field handle, then notifies websocket listeners. Non-editable and reference
// fields are rejected.
func HandlerObjectSetField(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()

	obj, err := findObjectFromRequest(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	fieldKey := mux.Vars(r)["field"]
	field, ok := obj.Metadata().FieldByKey(fieldKey)
	if !ok {
		webutils.WriteError(w, errors.Errorf("Object has no field %q", fieldKey))
		return
	}
	if !field.Editable {
		webutils.WriteError(w, errors.Errorf("Field %q is not editable", fieldKey))
		return
	}

	ref := obj.GetField(fieldKey)
	if !ref.Valid() {
		webutils.WriteError(w, errors.Errorf("Object has no field %q", fieldKey))
		return
	}

	if err := r.ParseForm(); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Cannot parse form"))
		return
	}
	value := r.Form.Get("value")

	switch ref.Type() {
	case scene.ValueTypeFloat:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			webutils.WriteError(w, errors.Wrapf(err, "Value %q is not a number", value))
			return
		}
		*ref.AsFloat() = float32(f)
	case scene.ValueTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			webutils.WriteError(w, errors.Wrapf(err, "Value %q is not an integer", value))
			return
		}
		*ref.AsInt() = i
	case scene.ValueTypeFloat3:
		v, err := parseFloat3(value)
		if err != nil {
			webutils.WriteError(w, errors.Wrapf(err, "Value %q is not a vector", value))
			return
		}
		*ref.AsFloat3() = v
	case scene.ValueTypeString:
		*ref.AsString() = value
	default:
		webutils.WriteError(w, errors.Errorf("Field %q cannot be edited over the wire", fieldKey))
		return
	}

	status.FieldEdited(obj.GetID(), fieldKey)
	webutils.WriteJson(w, obj)
}

func HandlerDumpGltf(w http.ResponseWriter, r *http.Request) {
	sceneLock.Lock()
	defer sceneLock.Unlock()

	var buf bytes.Buffer
	if err := gltfexport.ExportBinary(&buf, serverScene); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, "scene.glb")
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func HandlerStatusWs(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	status.NewClient(conn)
}
