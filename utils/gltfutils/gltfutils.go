package gltfutils

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/gbe_scene_converter/scene"
)

// IsBinaryPath reports whether path asks for a .glb container
func IsBinaryPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".glb")
}

func nodeExtras(n *scene.Node) map[string]interface{} {
	components := make([]string, 0)
	for _, c := range n.Components() {
		components = append(components, c.Kind().String())
	}
	extras := map[string]interface{}{
		"active":     n.Active,
		"components": components,
	}
	if mf := n.MeshFilter(); mf != nil {
		extras["mesh"] = mf.Mesh
	}
	if mr := n.MeshRenderer(); mr != nil {
		extras["material"] = mr.Material
	}
	return extras
}

func exportNode(doc *gltf.Document, n *scene.Node) uint32 {
	q := n.Rotation()
	node := &gltf.Node{
		Name:        n.Name,
		Translation: n.Position,
		Rotation:    [4]float32{q.V[0], q.V[1], q.V[2], q.W},
		Scale:       n.Scale,
		Extras:      nodeExtras(n),
	}

	id := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, node)

	for _, child := range n.Childs {
		node.Children = append(node.Children, exportNode(doc, child))
	}
	return id
}

// BuildDocument converts live scene graph into glTF document without geometry.
// Top level nodes are placed into the default scene.
func BuildDocument(s *scene.Scene) *gltf.Document {
	doc := gltf.NewDocument()
	for _, root := range s.RootNodes() {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, exportNode(doc, root))
	}
	return doc
}

func ExportScene(w io.Writer, s *scene.Scene, binary bool) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	if err := encoder.Encode(BuildDocument(s)); err != nil {
		return errors.Wrapf(err, "Failed to encode gltf")
	}
	return nil
}
