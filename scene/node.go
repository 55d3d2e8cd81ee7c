package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/mogaika/gbe_scene_converter/utils"
)

type Node struct {
	Id     uuid.UUID
	Name   string
	Active bool

	Position mgl32.Vec3
	Scale    mgl32.Vec3

	// rotation and euler (degrees) always describe the same orientation.
	// euler keeps the angles exactly as they were set.
	rotation mgl32.Quat
	euler    mgl32.Vec3

	Parent *Node
	Childs []*Node

	components map[ComponentKind]Component
}

func newNode(name string) *Node {
	return &Node{
		Id:         uuid.New(),
		Name:       name,
		Active:     true,
		rotation:   mgl32.QuatIdent(),
		Scale:      mgl32.Vec3{1, 1, 1},
		components: make(map[ComponentKind]Component),
	}
}

func (n *Node) Rotation() mgl32.Quat {
	return n.rotation
}

// SetRotation sets local rotation; euler angles are derived in [0, 360)
func (n *Node) SetRotation(q mgl32.Quat) {
	n.rotation = q.Normalize()
	n.euler = utils.QuatToEuler(n.rotation)
}

func (n *Node) EulerAngles() mgl32.Vec3 {
	return n.euler
}

// SetEulerAngles sets local rotation from degrees (z, then x, then y)
func (n *Node) SetEulerAngles(deg mgl32.Vec3) {
	n.euler = deg
	n.rotation = utils.EulerToQuat(deg)
}

func (n *Node) Has(kind ComponentKind) bool {
	_, ok := n.components[kind]
	return ok
}

func (n *Node) Component(kind ComponentKind) Component {
	return n.components[kind]
}

// Attach replaces any component of the same kind
func (n *Node) Attach(c Component) Component {
	n.components[c.Kind()] = c
	return c
}

func (n *Node) Detach(kind ComponentKind) {
	delete(n.components, kind)
}

// Components returns attached components ordered by kind
func (n *Node) Components() []Component {
	result := make([]Component, 0, len(n.components))
	for _, c := range n.components {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Kind() < result[j].Kind() })
	return result
}

func (n *Node) MeshFilter() *MeshFilter {
	c, _ := n.components[KindMeshFilter].(*MeshFilter)
	return c
}

func (n *Node) MeshRenderer() *MeshRenderer {
	c, _ := n.components[KindMeshRenderer].(*MeshRenderer)
	return c
}

func (n *Node) Rigidbody() *Rigidbody {
	c, _ := n.components[KindRigidbody].(*Rigidbody)
	return c
}

func (n *Node) BoxCollider() *BoxCollider {
	c, _ := n.components[KindBoxCollider].(*BoxCollider)
	return c
}

func (n *Node) SphereCollider() *SphereCollider {
	c, _ := n.components[KindSphereCollider].(*SphereCollider)
	return c
}

func (n *Node) CapsuleCollider() *CapsuleCollider {
	c, _ := n.components[KindCapsuleCollider].(*CapsuleCollider)
	return c
}

// Path returns slash separated names from the top level down to n
func (n *Node) Path() string {
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.Path() + "/" + n.Name
}

// clone copies n and its subtree; the copy gets fresh ids and no parent
func (n *Node) clone() *Node {
	c := newNode(n.Name)
	c.Active = n.Active
	c.Position = n.Position
	c.rotation = n.rotation
	c.Scale = n.Scale
	c.euler = n.euler
	for kind, comp := range n.components {
		c.components[kind] = comp.Clone()
	}
	for _, child := range n.Childs {
		cc := child.clone()
		cc.Parent = c
		c.Childs = append(c.Childs, cc)
	}
	return c
}
