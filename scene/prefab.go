package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/cases"
)

// Catalog is an ordered set of named prefabs.
// Prefab nodes live outside of any Scene.
type Catalog struct {
	prefabs []*Node
}

func NewCatalog(prefabs ...*Node) *Catalog {
	return &Catalog{prefabs: prefabs}
}

// NewMeshPrefab builds a prefab node carrying a mesh and a renderer
func NewMeshPrefab(name, mesh, material string) *Node {
	n := newNode(name)
	n.Attach(&MeshFilter{Mesh: mesh})
	n.Attach(&MeshRenderer{Material: material})
	return n
}

func (c *Catalog) Add(prefab *Node) {
	c.prefabs = append(c.prefabs, prefab)
}

func (c *Catalog) Prefabs() []*Node {
	return c.prefabs
}

func (c *Catalog) Len() int {
	return len(c.prefabs)
}

// Find returns the first prefab whose name matches ignoring case, or nil
func (c *Catalog) Find(name string) *Node {
	if c == nil {
		return nil
	}
	key := FoldName(name)
	for _, p := range c.prefabs {
		if FoldName(p.Name) == key {
			return p
		}
	}
	return nil
}

// Instantiate places a copy of prefab under parent with identity local transform
func (c *Catalog) Instantiate(s *Scene, prefab *Node, parent *Node) *Node {
	inst := prefab.clone()
	inst.Position = mgl32.Vec3{}
	inst.Scale = mgl32.Vec3{1, 1, 1}
	inst.SetEulerAngles(mgl32.Vec3{})
	s.link(inst, parent)
	return inst
}

// FoldName is the key used for case-insensitive prefab names
func FoldName(name string) string {
	return cases.Fold().String(name)
}
