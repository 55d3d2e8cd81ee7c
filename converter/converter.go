// Package converter saves a live scene graph to a scene document and loads it back.
//
// Saving walks the graph depth-first and classifies every node through an
// ordered rule table. Loading walks the document depth-first, creates a node
// per record and attaches components through a handler registry keyed by type.
// Meshes, box and sphere colliders are stored at half of their live scale and
// doubled again on load.
package converter

import (
	"github.com/pkg/errors"

	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/scenefile"
	"github.com/mogaika/gbe_scene_converter/vfs"
)

// Logger receives the human readable messages of a conversion
type Logger interface {
	Infof(format string, a ...interface{})
	Warnf(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

type Converter struct {
	Storage vfs.Storage
	Log     Logger
	// nil catalog leaves render objects without meshes
	Prefabs *scene.Catalog
}

func New(storage vfs.Storage, log Logger, prefabs *scene.Catalog) *Converter {
	return &Converter{Storage: storage, Log: log, Prefabs: prefabs}
}

// SaveScene writes the whole scene to path. The document is encoded
// in memory first and written with a single call.
func (c *Converter) SaveScene(path string, s *scene.Scene) error {
	root := c.BuildDocument(s)

	data, err := scenefile.CodecForPath(path).Marshal(root)
	if err != nil {
		c.Log.Errorf("Failed to encode scene: %v", err)
		return err
	}

	if err := c.Storage.WriteText(path, string(data)); err != nil {
		c.Log.Errorf("Failed to save scene: %v", err)
		return err
	}

	c.Log.Infof("Entire scene saved to: %s", path)
	return nil
}

// ReadDocument reads and parses path without touching any scene
func (c *Converter) ReadDocument(path string) (*scenefile.SceneNode, error) {
	text, err := c.Storage.ReadText(path)
	if err != nil {
		if errors.Is(err, vfs.ErrNotFound) {
			c.Log.Errorf("Scene file not found at: %s", path)
		} else {
			c.Log.Errorf("Failed to read scene file: %v", err)
		}
		return nil, err
	}

	root, err := scenefile.CodecForPath(path).Unmarshal([]byte(text))
	if err != nil {
		c.Log.Errorf("Failed to parse scene document %s: %v", path, err)
		return nil, err
	}
	return root, nil
}

// LoadScene adds the nodes described by the document at path to the top level of s.
// Missing or unparsable files leave s untouched. Malformed nodes skip their
// subtree only; their errors are combined into the returned error.
func (c *Converter) LoadScene(path string, s *scene.Scene) error {
	root, err := c.ReadDocument(path)
	if err != nil {
		return err
	}
	return c.Instantiate(root, s, nil)
}
