package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidKey is returned for keys that are empty or escape the bucket root.
var ErrInvalidKey = errors.New("invalid object key")

// FileBucket writes objects below a root directory on local disk.
type FileBucket struct {
	root string
}

// NewFileBucket 创建根目录并返回 FileBucket
func NewFileBucket(root string) (*FileBucket, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("file bucket root is empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, "create bucket root %s", root)
	}
	return &FileBucket{root: root}, nil
}

// Root returns the directory objects are written under.
func (b *FileBucket) Root() string {
	return b.root
}

// Put writes body to root/key, creating intermediate directories.
func (b *FileBucket) Put(ctx context.Context, key string, body []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, "create directory for %s", key)
	}

	// 先写临时文件再改名，读者不会看到写了一半的文档
	tmp, err := os.CreateTemp(filepath.Dir(target), ".put-*")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", key)
	}
	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "close %s", key)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "chmod %s", key)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "store %s", key)
	}
	return nil
}

func (b *FileBucket) resolve(key string) (string, error) {
	cleaned := strings.TrimLeft(strings.TrimSpace(key), "/")
	if cleaned == "" {
		return "", ErrInvalidKey
	}

	target := filepath.Join(b.root, filepath.FromSlash(cleaned))
	rel, err := filepath.Rel(b.root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrInvalidKey, "key %q", key)
	}
	return target, nil
}
