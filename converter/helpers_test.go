package converter

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mogaika/gbe_scene_converter/config"
	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/scenefile"
	"github.com/mogaika/gbe_scene_converter/status"
	"github.com/mogaika/gbe_scene_converter/utils"
	"github.com/mogaika/gbe_scene_converter/vfs"
)

type fixture struct {
	conv    *Converter
	storage *vfs.BillyStorage
	log     *status.Logger
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := status.NewLogger(zap.New(core))
	storage := vfs.NewMemoryStorage()
	return &fixture{
		conv:    New(storage, log, config.Default().Catalog()),
		storage: storage,
		log:     log,
		logs:    logs,
	}
}

func (f *fixture) warnings() []string {
	var result []string
	for _, e := range f.logs.FilterLevelExact(zapcore.WarnLevel).All() {
		result = append(result, e.Message)
	}
	return result
}

func (f *fixture) errors() []string {
	var result []string
	for _, e := range f.logs.FilterLevelExact(zapcore.ErrorLevel).All() {
		result = append(result, e.Message)
	}
	return result
}

func (f *fixture) writeDocument(t *testing.T, path string, root *scenefile.SceneNode) {
	t.Helper()
	data, err := scenefile.CodecForPath(path).Marshal(root)
	require.NoError(t, err)
	require.NoError(t, f.storage.WriteText(path, string(data)))
}

func (f *fixture) readDocument(t *testing.T, path string) *scenefile.SceneNode {
	t.Helper()
	text, err := f.storage.ReadText(path)
	require.NoError(t, err)
	root, err := scenefile.CodecForPath(path).Unmarshal([]byte(text))
	require.NoError(t, err)
	return root
}

func docNode(nodeType string, vars map[string]string, children ...*scenefile.SceneNode) *scenefile.SceneNode {
	if vars == nil {
		vars = make(map[string]string)
	}
	if children == nil {
		children = make([]*scenefile.SceneNode, 0)
	}
	return &scenefile.SceneNode{
		Type:                nodeType,
		Enabled:             true,
		LocalPosition:       []float32{0, 0, 0},
		LocalScale:          []float32{1, 1, 1},
		LocalEulerRotation:  []float32{0, 0, 0},
		SerializedVariables: vars,
		Children:            children,
	}
}

func docRoot(children ...*scenefile.SceneNode) *scenefile.SceneNode {
	root := scenefile.NewRoot()
	root.Children = append(root.Children, children...)
	return root
}

func addMesh(n *scene.Node) *scene.Node {
	n.Attach(&scene.MeshFilter{Mesh: "Cube"})
	n.Attach(&scene.MeshRenderer{Material: "Default-Material"})
	return n
}

// randomScene builds a reproducible scene of render and rigid objects
func randomScene(seed int64, maxDepth int) *scene.Scene {
	rng := utils.NewRandomNameGenerator(seed)
	s := scene.NewScene()

	var grow func(parent *scene.Node, depth int)
	grow = func(parent *scene.Node, depth int) {
		count := rng.Number(1, 4)
		for i := 0; i < count; i++ {
			var n *scene.Node
			if rng.Chance(50) {
				n = addMesh(s.NewNode([]string{"Cube", "Sphere", "Capsule"}[rng.Number(0, 3)], parent))
			} else {
				n = s.NewNode(rng.RandomName(), parent)
				rb := scene.NewRigidbody()
				rb.IsKinematic = rng.Chance(50)
				n.Attach(rb)
			}
			n.Active = rng.Chance(80)
			n.Position = mgl32.Vec3{float32(rng.Number(-100, 100)) / 4, float32(rng.Number(-100, 100)) / 4, float32(rng.Number(-100, 100)) / 4}
			n.Scale = mgl32.Vec3{float32(rng.Number(1, 40)) / 8, float32(rng.Number(1, 40)) / 8, float32(rng.Number(1, 40)) / 8}
			n.SetEulerAngles(mgl32.Vec3{float32(rng.Number(0, 360)), float32(rng.Number(0, 360)), float32(rng.Number(0, 360))})
			if depth < maxDepth {
				grow(n, depth+1)
			}
		}
	}
	grow(nil, 0)
	return s
}
