package web

import (
	"bytes"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/scenefile"
	"github.com/mogaika/gbe_scene_converter/utils/gltfutils"
	"github.com/mogaika/gbe_scene_converter/webutils"
)

type NodeInfo struct {
	Id         string     `json:"id"`
	Name       string     `json:"name"`
	Parent     string     `json:"parent,omitempty"`
	Active     bool       `json:"active"`
	Position   [3]float32 `json:"position"`
	Rotation   [3]float32 `json:"rotation"`
	Scale      [3]float32 `json:"scale"`
	Components []string   `json:"components"`
}

type UploadResult struct {
	Nodes  int      `json:"nodes"`
	Errors []string `json:"errors"`
}

func nodeInfo(n *scene.Node) NodeInfo {
	info := NodeInfo{
		Id:         n.Id.String(),
		Name:       n.Name,
		Active:     n.Active,
		Position:   n.Position,
		Rotation:   n.EulerAngles(),
		Scale:      n.Scale,
		Components: make([]string, 0),
	}
	if n.Parent != nil {
		info.Parent = n.Parent.Id.String()
	}
	for _, c := range n.Components() {
		info.Components = append(info.Components, c.Kind().String())
	}
	return info
}

func (srv *Server) HandlerAjaxScene(w http.ResponseWriter, r *http.Request) {
	srv.lock.Lock()
	doc := srv.conv.BuildDocument(srv.scene)
	srv.lock.Unlock()

	webutils.WriteJson(w, doc)
}

func (srv *Server) HandlerAjaxSceneNodes(w http.ResponseWriter, r *http.Request) {
	nodes := make([]NodeInfo, 0)

	srv.lock.Lock()
	srv.scene.Walk(func(n *scene.Node, depth int) bool {
		nodes = append(nodes, nodeInfo(n))
		return true
	})
	srv.lock.Unlock()

	webutils.WriteJson(w, nodes)
}

func (srv *Server) HandlerAjaxStatus(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, srv.status.Messages())
}

func (srv *Server) HandlerDumpScene(w http.ResponseWriter, r *http.Request) {
	srv.lock.Lock()
	doc := srv.conv.BuildDocument(srv.scene)
	srv.lock.Unlock()

	data, err := scenefile.JSONCodec{}.Marshal(doc)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, bytes.NewReader(data), "scene.json")
}

func (srv *Server) HandlerExportScene(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	srv.lock.Lock()
	err := gltfutils.ExportScene(&buf, srv.scene, true)
	srv.lock.Unlock()

	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, "scene.glb")
}

// HandlerUploadScene replaces live scene with uploaded document.
// Broken subtrees are reported but do not prevent the replacement.
func (srv *Server) HandlerUploadScene(w http.ResponseWriter, r *http.Request) {
	data, name, err := webutils.ReadFile(r, "data")
	if err != nil {
		webutils.WriteErrorCode(w, http.StatusBadRequest, err)
		return
	}

	root, err := scenefile.CodecForPath(name).Unmarshal(data)
	if err != nil {
		srv.status.Errorf("Failed to parse uploaded scene %s: %v", name, err)
		webutils.WriteErrorCode(w, http.StatusBadRequest, errors.Wrapf(err, "Failed to parse %q", name))
		return
	}

	fresh := scene.NewScene()
	loadErr := srv.conv.Instantiate(root, fresh, nil)

	srv.lock.Lock()
	srv.scene = fresh
	srv.lock.Unlock()

	result := UploadResult{Nodes: fresh.Count(), Errors: make([]string, 0)}

	for _, e := range multierr.Errors(loadErr) {
		result.Errors = append(result.Errors, e.Error())
	}
	srv.status.Infof("Scene replaced from upload %s", name)
	webutils.WriteJson(w, result)
}

func (srv *Server) HandlerWsStatus(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.status.Warnf("[web] Failed to upgrade status connection: %v", err)
		return
	}
	srv.status.Subscribe(conn)
}
