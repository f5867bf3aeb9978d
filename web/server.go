// Package web serves the scene to external collaborators: the viewer page
// reads draw lists and bounds, the editor reads metadata and writes fields
// through the reflection handles. The scene itself stays single-threaded; the
// server funnels every access through one lock.
package web

import (
	"log"
	"net/http"
	"os"
	"path"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/gibibite/vega/scene"
)

var serverScene *scene.Scene
var sceneLock sync.Mutex

func StartServer(addr string, s *scene.Scene, webPath string) error {
	serverScene = s

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerSceneJson)
	r.HandleFunc("/json/scene/drawlist", HandlerDrawListJson)
	r.HandleFunc("/json/scene/aabb", HandlerAabbJson)
	r.HandleFunc("/json/scene/objects", HandlerObjectsJson)
	r.HandleFunc("/json/scene/metadata", HandlerMetadataJson)
	r.HandleFunc("/json/object/{id}", HandlerObjectJson)
	r.HandleFunc("/action/object/{id}/setfield/{field}", HandlerObjectSetField)
	r.HandleFunc("/dump/scene/gltf", HandlerDumpGltf)
	r.HandleFunc("/ws/status", HandlerStatusWs)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
