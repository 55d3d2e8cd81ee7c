package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type ComponentKind int

const (
	KindMeshFilter ComponentKind = iota
	KindMeshRenderer
	KindRigidbody
	KindBoxCollider
	KindSphereCollider
	KindCapsuleCollider
)

var kindNames = map[ComponentKind]string{
	KindMeshFilter:      "MeshFilter",
	KindMeshRenderer:    "MeshRenderer",
	KindRigidbody:       "Rigidbody",
	KindBoxCollider:     "BoxCollider",
	KindSphereCollider:  "SphereCollider",
	KindCapsuleCollider: "CapsuleCollider",
}

func (k ComponentKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Component(?)"
}

// Component is a capability record attached to a Node.
// A node holds at most one component of each kind.
type Component interface {
	Kind() ComponentKind
	Clone() Component
}

type MeshFilter struct {
	Mesh string
}

func (c *MeshFilter) Kind() ComponentKind { return KindMeshFilter }
func (c *MeshFilter) Clone() Component    { cc := *c; return &cc }

type MeshRenderer struct {
	Material string
}

func (c *MeshRenderer) Kind() ComponentKind { return KindMeshRenderer }
func (c *MeshRenderer) Clone() Component    { cc := *c; return &cc }

type Rigidbody struct {
	Mass        float32
	UseGravity  bool
	IsKinematic bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{Mass: 1, UseGravity: true}
}

func (c *Rigidbody) Kind() ComponentKind { return KindRigidbody }
func (c *Rigidbody) Clone() Component    { cc := *c; return &cc }

type BoxCollider struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

func NewBoxCollider() *BoxCollider {
	return &BoxCollider{Size: mgl32.Vec3{1, 1, 1}}
}

func (c *BoxCollider) Kind() ComponentKind { return KindBoxCollider }
func (c *BoxCollider) Clone() Component    { cc := *c; return &cc }

type SphereCollider struct {
	Center mgl32.Vec3
	Radius float32
}

func NewSphereCollider() *SphereCollider {
	return &SphereCollider{Radius: 0.5}
}

func (c *SphereCollider) Kind() ComponentKind { return KindSphereCollider }
func (c *SphereCollider) Clone() Component    { cc := *c; return &cc }

type CapsuleCollider struct {
	Center mgl32.Vec3
	Radius float32
	Height float32
	// 0 - X, 1 - Y, 2 - Z
	Direction int
}

func NewCapsuleCollider() *CapsuleCollider {
	return &CapsuleCollider{Radius: 0.5, Height: 2, Direction: 1}
}

func (c *CapsuleCollider) Kind() ComponentKind { return KindCapsuleCollider }
func (c *CapsuleCollider) Clone() Component    { cc := *c; return &cc }
