// Package vfs is the file storage used for scene documents and the config file.
package vfs

import (
	"os"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("file not found")
	ErrIO       = errors.New("io error")
)

type Storage interface {
	ReadText(path string) (string, error)
	WriteText(path string, text string) error
}

type BillyStorage struct {
	fs billy.Filesystem
}

func NewStorage(fs billy.Filesystem) *BillyStorage {
	return &BillyStorage{fs: fs}
}

// NewOSStorage resolves paths against the process working directory
func NewOSStorage() *BillyStorage {
	return NewStorage(osfs.New(""))
}

func NewMemoryStorage() *BillyStorage {
	return NewStorage(memfs.New())
}

func (bs *BillyStorage) Filesystem() billy.Filesystem {
	return bs.fs
}

func (bs *BillyStorage) ReadText(path string) (string, error) {
	data, err := util.ReadFile(bs.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(ErrNotFound, "%q", path)
		}
		return "", errors.Wrapf(ErrIO, "Failed to read %q: %v", path, err)
	}
	return string(data), nil
}

func (bs *BillyStorage) WriteText(path string, text string) error {
	if err := util.WriteFile(bs.fs, path, []byte(text), 0666); err != nil {
		return errors.Wrapf(ErrIO, "Failed to write %q: %v", path, err)
	}
	return nil
}

func (bs *BillyStorage) Exists(path string) bool {
	_, err := bs.fs.Stat(path)
	return err == nil
}
