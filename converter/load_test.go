package converter

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/scenefile"
	"github.com/mogaika/gbe_scene_converter/vfs"
)

func TestLoadRenderObject(t *testing.T) {
	f := newFixture(t)
	f.writeDocument(t, "scene.json", docRoot(
		docNode(scenefile.TypeRenderObject, map[string]string{"primitive": "cYLinder", "tex": "", "mesh": "", "mat": ""}),
	))

	s := scene.NewScene()
	require.NoError(t, f.conv.LoadScene("scene.json", s))
	require.Len(t, s.RootNodes(), 1)

	n := s.RootNodes()[0]
	assert.Equal(t, "cYLinder", n.Name)
	require.NotNil(t, n.MeshFilter())
	assert.Equal(t, "Cylinder", n.MeshFilter().Mesh)
	require.NotNil(t, n.MeshRenderer())
	assert.Equal(t, "Default-Material", n.MeshRenderer().Material)
	assert.Empty(t, n.Childs, "transient prefab instance must be destroyed")
	assert.Empty(t, f.warnings())

	// the catalog prefab is not shared with the node
	n.MeshFilter().Mesh = "changed"
	assert.Equal(t, "Cylinder", f.conv.Prefabs.Find("cylinder").MeshFilter().Mesh)
}

func TestLoadRenderObjectWithoutPrimitive(t *testing.T) {
	f := newFixture(t)
	doc := docRoot(docNode(scenefile.TypeRenderObject, nil, docNode(scenefile.TypeRigidObject, nil)))

	s := scene.NewScene()
	require.NoError(t, f.conv.Instantiate(doc, s, nil))
	require.Len(t, s.RootNodes(), 1)

	n := s.RootNodes()[0]
	assert.Equal(t, scenefile.TypeRenderObject, n.Name)
	assert.False(t, n.Has(scene.KindMeshFilter))
	assert.False(t, n.Has(scene.KindMeshRenderer))
	require.Len(t, n.Childs, 1)
	assert.Equal(t, []string{"No primitive name found or prefab array is not assigned."}, f.warnings())
}

func TestLoadRenderObjectWithoutCatalog(t *testing.T) {
	f := newFixture(t)
	f.conv.Prefabs = nil

	s := scene.NewScene()
	require.NoError(t, f.conv.Instantiate(docRoot(docNode(scenefile.TypeRenderObject, map[string]string{"primitive": "Cube"})), s, nil))
	assert.Equal(t, scenefile.TypeRenderObject, s.RootNodes()[0].Name)
	assert.Empty(t, s.RootNodes()[0].Components())
	assert.Equal(t, []string{"No primitive name found or prefab array is not assigned."}, f.warnings())
}

func TestLoadRenderObjectUnknownPrimitive(t *testing.T) {
	f := newFixture(t)

	s := scene.NewScene()
	require.NoError(t, f.conv.Instantiate(docRoot(docNode(scenefile.TypeRenderObject, map[string]string{"primitive": "Teapot"})), s, nil))
	n := s.RootNodes()[0]
	assert.Equal(t, scenefile.TypeRenderObject, n.Name)
	assert.Empty(t, n.Components())
	assert.Equal(t, []string{"Prefab for primitive 'Teapot' not found in the assigned array."}, f.warnings())
}

func TestLoadRigidObject(t *testing.T) {
	f := newFixture(t)
	doc := docRoot(
		docNode(scenefile.TypeRigidObject, map[string]string{"static": "1"}),
		docNode(scenefile.TypeRigidObject, map[string]string{"static": "0"}),
		docNode(scenefile.TypeRigidObject, map[string]string{"static": "true"}),
		docNode(scenefile.TypeRigidObject, nil),
	)

	s := scene.NewScene()
	require.NoError(t, f.conv.Instantiate(doc, s, nil))
	require.Len(t, s.RootNodes(), 4)
	for i, kinematic := range []bool{true, false, false, false} {
		rb := s.RootNodes()[i].Rigidbody()
		require.NotNil(t, rb)
		assert.Equal(t, kinematic, rb.IsKinematic, "node %d", i)
	}
	assert.Empty(t, f.warnings())
}

func TestLoadUnknownType(t *testing.T) {
	f := newFixture(t)
	doc := docRoot(
		docNode("class gbe::LightObject", nil,
			docNode(scenefile.TypeRigidObject, nil),
			docNode(scenefile.TypeUnknown, nil),
		),
	)

	s := scene.NewScene()
	require.NoError(t, f.conv.Instantiate(doc, s, nil))
	assert.Equal(t, 3, s.Count())

	light := s.RootNodes()[0]
	assert.Equal(t, "class gbe::LightObject", light.Name)
	assert.Empty(t, light.Components())
	require.Len(t, light.Childs, 2)
	assert.True(t, light.Childs[0].Has(scene.KindRigidbody))
	assert.Equal(t, []string{
		"Unknown object type: class gbe::LightObject",
		"Unknown object type: Unknown",
	}, f.warnings())
}

func TestLoadScaleRules(t *testing.T) {
	f := newFixture(t)
	types := []string{
		scenefile.TypeRenderObject,
		scenefile.TypeBoxCollider,
		scenefile.TypeSphereCollider,
		scenefile.TypeCapsuleCollider,
		scenefile.TypeRigidObject,
		scenefile.TypeUnknown,
	}
	doc := docRoot()
	for _, nodeType := range types {
		n := docNode(nodeType, nil)
		n.LocalScale = []float32{1, 2, 3}
		doc.AddChild(n)
	}

	s := scene.NewScene()
	require.NoError(t, f.conv.Instantiate(doc, s, nil))
	for i, expected := range []mgl32.Vec3{
		{2, 4, 6}, {2, 4, 6}, {2, 4, 6},
		{1, 2, 3}, {1, 2, 3}, {1, 2, 3},
	} {
		assert.Equal(t, expected, s.RootNodes()[i].Scale, types[i])
	}
}

func TestLoadMalformedSubtree(t *testing.T) {
	f := newFixture(t)
	broken := docNode(scenefile.TypeRigidObject, nil, docNode(scenefile.TypeRigidObject, nil))
	broken.LocalScale = []float32{1, 1}
	doc := docRoot(
		docNode(scenefile.TypeRigidObject, nil, broken, docNode(scenefile.TypeBoxCollider, nil)),
		docNode(scenefile.TypeSphereCollider, nil),
	)
	f.writeDocument(t, "scene.json", doc)

	s := scene.NewScene()
	err := f.conv.LoadScene("scene.json", s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scenefile.ErrMalformedDocument))
	assert.Contains(t, err.Error(), "local_scale has 2 elements")

	// the broken node and its child are skipped, everything else is loaded
	assert.Equal(t, 3, s.Count())
	require.Len(t, s.RootNodes(), 2)
	require.Len(t, s.RootNodes()[0].Childs, 1)
	assert.True(t, s.RootNodes()[0].Childs[0].Has(scene.KindBoxCollider))
	assert.True(t, s.RootNodes()[1].Has(scene.KindSphereCollider))
	assert.Len(t, f.errors(), 1)
}

func TestLoadMalformedNodes(t *testing.T) {
	f := newFixture(t)
	noPosition := docNode(scenefile.TypeRigidObject, nil)
	noPosition.LocalPosition = nil
	longRotation := docNode(scenefile.TypeRigidObject, nil)
	longRotation.LocalEulerRotation = []float32{0, 0, 0, 1}
	doc := docRoot(noPosition, nil, longRotation, docNode(scenefile.TypeRigidObject, nil))

	s := scene.NewScene()
	err := f.conv.Instantiate(doc, s, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scenefile.ErrMalformedDocument))
	assert.Equal(t, 1, s.Count())
	assert.Len(t, f.errors(), 3)
}

func TestLoadNotFound(t *testing.T) {
	f := newFixture(t)
	s := scene.NewScene()
	s.NewNode("existing", nil)

	err := f.conv.LoadScene("missing.json", s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vfs.ErrNotFound))
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, []string{"Scene file not found at: missing.json"}, f.errors())
}

func TestLoadUnparsable(t *testing.T) {
	for name, text := range map[string]string{
		"truncated":   `{"type": "class gbe::Root", "children": [{"type": "class gbe::RigidObject"`,
		"array":       `[]`,
		"no children": `{"type": "class gbe::Root"}`,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.storage.WriteText("scene.json", text))

			s := scene.NewScene()
			err := f.conv.LoadScene("scene.json", s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, scenefile.ErrMalformedDocument))
			assert.Equal(t, 0, s.Count())
			assert.Len(t, f.errors(), 1)
		})
	}
}

func TestSetHandler(t *testing.T) {
	const lightType = "class gbe::LightObject"
	SetHandler(lightType, func(_ *Converter, _ *scene.Scene, n *scene.Node, _ *scenefile.SceneNode) {
		n.Name = "light"
	})
	defer delete(gHandlers, lightType)

	f := newFixture(t)
	s := scene.NewScene()
	require.NoError(t, f.conv.Instantiate(docRoot(docNode(lightType, nil)), s, nil))
	assert.Equal(t, "light", s.RootNodes()[0].Name)
	assert.Empty(t, f.warnings())
}
