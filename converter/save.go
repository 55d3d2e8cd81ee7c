package converter

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/scenefile"
	"github.com/mogaika/gbe_scene_converter/utils"
)

// classifier maps a live node to a document type.
// emit fills serialized_variables for that type.
type classifier struct {
	Type  string
	Match func(n *scene.Node) bool
	Emit  func(n *scene.Node, doc *scenefile.SceneNode)
}

// classifiers are tried in order, first match wins
var classifiers = []classifier{
	{
		Type:  scenefile.TypeRigidObject,
		Match: func(n *scene.Node) bool { return n.Has(scene.KindRigidbody) },
		Emit: func(n *scene.Node, doc *scenefile.SceneNode) {
			static := "0"
			if n.Rigidbody().IsKinematic {
				static = "1"
			}
			doc.SetVariable(scenefile.VarStatic, static)
		},
	},
	{
		Type: scenefile.TypeRenderObject,
		Match: func(n *scene.Node) bool {
			return n.Has(scene.KindMeshFilter) && n.Has(scene.KindMeshRenderer)
		},
		Emit: func(n *scene.Node, doc *scenefile.SceneNode) {
			doc.SetVariable(scenefile.VarPrimitive, n.Name)
			// asset references are not resolved yet
			doc.SetVariable(scenefile.VarTexture, "")
			doc.SetVariable(scenefile.VarMesh, "")
			doc.SetVariable(scenefile.VarMaterial, "")
		},
	},
	{
		Type:  scenefile.TypeBoxCollider,
		Match: func(n *scene.Node) bool { return n.Has(scene.KindBoxCollider) },
		Emit: func(n *scene.Node, doc *scenefile.SceneNode) {
			doc.SetVariable(scenefile.VarSize, utils.FormatVec3(n.BoxCollider().Size))
		},
	},
	{
		Type:  scenefile.TypeSphereCollider,
		Match: func(n *scene.Node) bool { return n.Has(scene.KindSphereCollider) },
		Emit: func(n *scene.Node, doc *scenefile.SceneNode) {
			doc.SetVariable(scenefile.VarRadius, utils.FormatFloat(n.SphereCollider().Radius))
		},
	},
	{
		Type:  scenefile.TypeCapsuleCollider,
		Match: func(n *scene.Node) bool { return n.Has(scene.KindCapsuleCollider) },
		Emit: func(n *scene.Node, doc *scenefile.SceneNode) {
			doc.SetVariable(scenefile.VarRadius, utils.FormatFloat(n.CapsuleCollider().Radius))
		},
	},
}

// Classify returns the document type of n and the rule index that matched, -1 for Unknown
func Classify(n *scene.Node) (string, int) {
	for i, cl := range classifiers {
		if cl.Match(n) {
			return cl.Type, i
		}
	}
	return scenefile.TypeUnknown, -1
}

// halvedOnSave lists components whose nodes are stored at half scale.
// Capsules are not part of it.
var halvedOnSave = []scene.ComponentKind{
	scene.KindMeshFilter,
	scene.KindBoxCollider,
	scene.KindSphereCollider,
}

func storedScale(n *scene.Node) mgl32.Vec3 {
	for _, kind := range halvedOnSave {
		if n.Has(kind) {
			return n.Scale.Mul(0.5)
		}
	}
	return n.Scale
}

// BuildDocument converts the whole scene into a document tree rooted at a root record
func (c *Converter) BuildDocument(s *scene.Scene) *scenefile.SceneNode {
	root := scenefile.NewRoot()
	for _, n := range s.RootNodes() {
		root.AddChild(nodeToDocument(n))
	}
	return root
}

func nodeToDocument(n *scene.Node) *scenefile.SceneNode {
	doc := &scenefile.SceneNode{
		Type:                scenefile.TypeUnknown,
		Enabled:             n.Active,
		LocalPosition:       scenefile.Vec3ToArray(n.Position),
		LocalScale:          scenefile.Vec3ToArray(storedScale(n)),
		LocalEulerRotation:  scenefile.Vec3ToArray(n.EulerAngles()),
		SerializedVariables: make(map[string]string),
		Children:            make([]*scenefile.SceneNode, 0, len(n.Childs)),
	}

	if t, i := Classify(n); i >= 0 {
		doc.Type = t
		classifiers[i].Emit(n, doc)
	}

	for _, child := range n.Childs {
		doc.AddChild(nodeToDocument(child))
	}
	return doc
}
