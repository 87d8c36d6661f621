// Package storage mirrors locally saved model files to a destination
// directory, typically a mounted bucket path.
package storage

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SaveModel uploads the locally written model file into modelDir, creating
// the directory if needed. The file keeps its base name.
func SaveModel(modelDir, modelName string) error {
	src, err := os.Open(modelName)
	if err != nil {
		return errors.Wrapf(err, "open model file %s", modelName)
	}
	defer src.Close()

	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return errors.Wrapf(err, "create model dir %s", modelDir)
	}
	dstPath := filepath.Join(modelDir, filepath.Base(modelName))
	dst, err := os.Create(dstPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", dstPath)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrapf(err, "copy model to %s", dstPath)
	}
	if err := dst.Close(); err != nil {
		return errors.Wrapf(err, "close %s", dstPath)
	}
	log.Printf("Uploaded %s to %s", modelName, dstPath)
	return nil
}
