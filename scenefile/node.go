package scenefile

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	TypeRoot            = "class gbe::Root"
	TypeRenderObject    = "class gbe::RenderObject"
	TypeRigidObject     = "class gbe::RigidObject"
	TypeBoxCollider     = "class gbe::BoxCollider"
	TypeSphereCollider  = "class gbe::SphereCollider"
	TypeCapsuleCollider = "class gbe::CapsuleCollider"
	TypeUnknown         = "Unknown"
)

// serialized_variables keys
const (
	VarPrimitive = "primitive"
	VarTexture   = "tex"
	VarMesh      = "mesh"
	VarMaterial  = "mat"
	VarStatic    = "static"
	VarSize      = "size"
	VarRadius    = "radius"
)

var ErrMalformedDocument = errors.New("malformed scene document")

// SceneNode is one record of the scene document tree.
// The document root uses the same shape with Type == TypeRoot.
type SceneNode struct {
	Type                string            `json:"type" yaml:"type"`
	Enabled             bool              `json:"enabled" yaml:"enabled"`
	LocalPosition       []float32         `json:"local_position" yaml:"local_position,flow"`
	LocalScale          []float32         `json:"local_scale" yaml:"local_scale,flow"`
	LocalEulerRotation  []float32         `json:"local_euler_rotation" yaml:"local_euler_rotation,flow"`
	SerializedVariables map[string]string `json:"serialized_variables" yaml:"serialized_variables"`
	Children            []*SceneNode      `json:"children" yaml:"children"`
}

func NewRoot() *SceneNode {
	return &SceneNode{
		Type:                TypeRoot,
		Enabled:             true,
		LocalPosition:       []float32{0, 0, 0},
		LocalScale:          []float32{1, 1, 1},
		LocalEulerRotation:  []float32{0, 0, 0},
		SerializedVariables: make(map[string]string),
		Children:            make([]*SceneNode, 0),
	}
}

func (n *SceneNode) IsRoot() bool {
	return n.Type == TypeRoot
}

func (n *SceneNode) Position() mgl32.Vec3 {
	return mgl32.Vec3{n.LocalPosition[0], n.LocalPosition[1], n.LocalPosition[2]}
}

func (n *SceneNode) Scale() mgl32.Vec3 {
	return mgl32.Vec3{n.LocalScale[0], n.LocalScale[1], n.LocalScale[2]}
}

// Rotation returns Euler angles in degrees
func (n *SceneNode) Rotation() mgl32.Vec3 {
	return mgl32.Vec3{n.LocalEulerRotation[0], n.LocalEulerRotation[1], n.LocalEulerRotation[2]}
}

func (n *SceneNode) Variable(key string) (string, bool) {
	if n.SerializedVariables == nil {
		return "", false
	}
	v, ok := n.SerializedVariables[key]
	return v, ok
}

func (n *SceneNode) SetVariable(key, value string) {
	if n.SerializedVariables == nil {
		n.SerializedVariables = make(map[string]string)
	}
	n.SerializedVariables[key] = value
}

func (n *SceneNode) AddChild(child *SceneNode) {
	n.Children = append(n.Children, child)
}

// Validate checks the node itself, not its children.
// Position, Scale and Rotation must not be called on a node that fails it.
func (n *SceneNode) Validate() error {
	for _, f := range []struct {
		name string
		v    []float32
	}{
		{"local_position", n.LocalPosition},
		{"local_scale", n.LocalScale},
		{"local_euler_rotation", n.LocalEulerRotation},
	} {
		if f.v == nil {
			return errors.Wrapf(ErrMalformedDocument, "node %q: missing %s", n.Type, f.name)
		}
		if len(f.v) != 3 {
			return errors.Wrapf(ErrMalformedDocument, "node %q: %s has %d elements, expected 3", n.Type, f.name, len(f.v))
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree, n included
func (n *SceneNode) Count() int {
	c := 1
	for _, child := range n.Children {
		c += child.Count()
	}
	return c
}

func Vec3ToArray(v mgl32.Vec3) []float32 {
	return []float32{v[0], v[1], v[2]}
}
