package converter

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/scenefile"
)

// LoadHandler attaches components to a node created for a document record
type LoadHandler func(c *Converter, s *scene.Scene, n *scene.Node, doc *scenefile.SceneNode)

var gHandlers = make(map[string]LoadHandler)

func SetHandler(nodeType string, h LoadHandler) {
	gHandlers[nodeType] = h
}

func init() {
	SetHandler(scenefile.TypeRenderObject, loadRenderObject)
	SetHandler(scenefile.TypeRigidObject, loadRigidObject)
	SetHandler(scenefile.TypeBoxCollider, func(_ *Converter, _ *scene.Scene, n *scene.Node, _ *scenefile.SceneNode) {
		// size is not restored from the document
		n.Attach(scene.NewBoxCollider())
	})
	SetHandler(scenefile.TypeSphereCollider, func(_ *Converter, _ *scene.Scene, n *scene.Node, _ *scenefile.SceneNode) {
		// radius is not restored from the document
		n.Attach(scene.NewSphereCollider())
	})
}

// doubledOnLoad mirrors halvedOnSave for document types
var doubledOnLoad = map[string]bool{
	scenefile.TypeRenderObject:   true,
	scenefile.TypeBoxCollider:    true,
	scenefile.TypeSphereCollider: true,
}

func liveScale(doc *scenefile.SceneNode) mgl32.Vec3 {
	if doubledOnLoad[doc.Type] {
		return doc.Scale().Mul(2)
	}
	return doc.Scale()
}

// Instantiate creates live nodes for every record below root under parent,
// or at the top level of s when parent is nil. Root records are transparent.
func (c *Converter) Instantiate(root *scenefile.SceneNode, s *scene.Scene, parent *scene.Node) error {
	var errAll error
	for _, child := range root.Children {
		multierr.AppendInto(&errAll, c.createNode(child, s, parent))
	}
	return errAll
}

func (c *Converter) createNode(doc *scenefile.SceneNode, s *scene.Scene, parent *scene.Node) error {
	if doc == nil {
		return c.malformed(errors.Wrapf(scenefile.ErrMalformedDocument, "null node"), parent)
	}

	if doc.IsRoot() {
		return c.Instantiate(doc, s, parent)
	}

	if err := doc.Validate(); err != nil {
		return c.malformed(err, parent)
	}

	n := s.NewNode(doc.Type, parent)
	n.Active = doc.Enabled
	n.Position = doc.Position()
	n.Scale = liveScale(doc)
	n.SetEulerAngles(doc.Rotation())

	if h, ok := gHandlers[doc.Type]; ok {
		h(c, s, n, doc)
	} else {
		c.Log.Warnf("Unknown object type: %s", doc.Type)
	}

	var errAll error
	for _, child := range doc.Children {
		multierr.AppendInto(&errAll, c.createNode(child, s, n))
	}
	return errAll
}

func (c *Converter) malformed(err error, parent *scene.Node) error {
	where := "top level"
	if parent != nil {
		where = parent.Path()
	}
	err = errors.Wrapf(err, "skipped subtree under %s", where)
	c.Log.Errorf("%v", err)
	return err
}

func loadRenderObject(c *Converter, s *scene.Scene, n *scene.Node, doc *scenefile.SceneNode) {
	primitiveName, ok := doc.Variable(scenefile.VarPrimitive)
	if !ok || c.Prefabs == nil {
		c.Log.Warnf("No primitive name found or prefab array is not assigned.")
		return
	}

	prefab := c.Prefabs.Find(primitiveName)
	if prefab == nil {
		c.Log.Warnf("Prefab for primitive '%s' not found in the assigned array.", primitiveName)
		return
	}

	inst := c.Prefabs.Instantiate(s, prefab, n)
	if mf := inst.MeshFilter(); mf != nil {
		n.Attach(mf.Clone())
	}
	if mr := inst.MeshRenderer(); mr != nil {
		n.Attach(mr.Clone())
	}
	s.Destroy(inst)

	n.Name = primitiveName
}

func loadRigidObject(_ *Converter, _ *scene.Scene, n *scene.Node, doc *scenefile.SceneNode) {
	rb := scene.NewRigidbody()
	if static, ok := doc.Variable(scenefile.VarStatic); ok {
		rb.IsKinematic = static == "1"
	}
	n.Attach(rb)
}
