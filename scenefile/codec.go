package scenefile

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Codec interface {
	Name() string
	Marshal(root *SceneNode) ([]byte, error)
	Unmarshal(data []byte) (*SceneNode, error)
}

type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(root *SceneNode) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal")
	}
	return data, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

// stripBOM drops leading byte order mark left by windows editors
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

func (JSONCodec) Unmarshal(data []byte) (*SceneNode, error) {
	trimmed := bytes.TrimSpace(stripBOM(data))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.Wrapf(ErrMalformedDocument, "top-level value is not an object")
	}
	var root *SceneNode
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "Failed to unmarshal: %v", err)
	}
	return checkRoot(root)
}

type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Marshal(root *SceneNode) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal")
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Unmarshal(data []byte) (*SceneNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(stripBOM(data), &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "Failed to unmarshal: %v", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Wrapf(ErrMalformedDocument, "top-level value is not an object")
	}
	var root *SceneNode
	if err := doc.Content[0].Decode(&root); err != nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "Failed to decode: %v", err)
	}
	return checkRoot(root)
}

func checkRoot(root *SceneNode) (*SceneNode, error) {
	if root == nil || root.Children == nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "document root has no children")
	}
	return root, nil
}

// CodecForPath picks yaml for .yaml/.yml and json for everything else
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}
