// Package config holds converter settings stored as a YAML file.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/vfs"
)

const DefaultPath = "scene_converter.yaml"

type Prefab struct {
	Name     string `yaml:"name"`
	Mesh     string `yaml:"mesh"`
	Material string `yaml:"material"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Web struct {
	Address string `yaml:"address"`
}

type Config struct {
	// without leading dot
	FileExtension string   `yaml:"file_extension"`
	Prefabs       []Prefab `yaml:"prefabs"`
	Log           Log      `yaml:"log"`
	Web           Web      `yaml:"web"`
}

func Default() *Config {
	c := &Config{
		FileExtension: "json",
		Log:           Log{Level: "info"},
		Web:           Web{Address: ":8000"},
	}
	for _, name := range []string{"Cube", "Sphere", "Capsule", "Cylinder", "Plane", "Quad"} {
		c.Prefabs = append(c.Prefabs, Prefab{Name: name, Mesh: name, Material: "Default-Material"})
	}
	return c
}

func (c *Config) Validate() error {
	if strings.TrimPrefix(c.FileExtension, ".") == "" {
		return errors.Errorf("file_extension is empty")
	}
	seen := make(map[string]string)
	for i, p := range c.Prefabs {
		if p.Name == "" {
			return errors.Errorf("prefab #%d has no name", i)
		}
		key := scene.FoldName(p.Name)
		if other, ok := seen[key]; ok {
			return errors.Errorf("prefab %q duplicates %q", p.Name, other)
		}
		seen[key] = p.Name
	}
	return nil
}

// Extension returns the document extension with a leading dot
func (c *Config) Extension() string {
	return "." + strings.TrimPrefix(c.FileExtension, ".")
}

// Catalog builds the prefab catalog used to resolve render object primitives
func (c *Config) Catalog() *scene.Catalog {
	catalog := scene.NewCatalog()
	for _, p := range c.Prefabs {
		catalog.Add(scene.NewMeshPrefab(p.Name, p.Mesh, p.Material))
	}
	return catalog
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid config")
	}
	return c, nil
}

func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal")
	}
	return data, nil
}

func Load(storage vfs.Storage, path string) (*Config, error) {
	text, err := storage.ReadText(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse([]byte(text))
	if err != nil {
		return nil, errors.Wrapf(err, "Config %q", path)
	}
	return c, nil
}

func (c *Config) Save(storage vfs.Storage, path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return storage.WriteText(path, string(data))
}

type Logger interface {
	Infof(format string, a ...interface{})
}

// LoadOrCreate returns the config stored at path. When the file is missing
// the default config is written there first.
func LoadOrCreate(storage vfs.Storage, path string, log Logger) (*Config, error) {
	c, err := Load(storage, path)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, vfs.ErrNotFound) {
		return nil, err
	}

	c = Default()
	if err := c.Save(storage, path); err != nil {
		return nil, errors.Wrapf(err, "Failed to create config")
	}
	if log != nil {
		log.Infof("Created new config at: %s", path)
	}
	return c, nil
}
