package common

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BuildInputs are the repo paths, relative to the repo root, that end up in the
// api image. Changes anywhere else do not trigger a rebuild.
var BuildInputs = []string{"go.mod", "go.sum", "cmd", "internal", "pkg"}

// GenerateHash hashes the build inputs under root. Missing inputs are skipped.
func GenerateHash(root string) (string, error) {
	var hash string
	for _, input := range BuildInputs {
		path := filepath.Join(root, input)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		err := filepath.Walk(path, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && strings.HasPrefix(info.Name(), "_") {
				return filepath.SkipDir
			}
			if info.IsDir() || info.Mode()&os.ModeSymlink == os.ModeSymlink {
				return nil
			}
			fh, err := fileMd5(path)
			if err != nil {
				return err
			}
			hash = appendHash(hash, fh)
			return nil
		})
		if err != nil {
			return "", err
		}
	}
	return hash, nil
}

func fileMd5(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func appendHash(hash1, hash2 string) string {
	h := md5.New()
	io.WriteString(h, hash1+hash2)
	return fmt.Sprintf("%x", h.Sum(nil))
}
