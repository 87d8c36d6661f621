package data

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const sonarURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/undocumented/connectionist-bench/sonar/sonar.all-data"

// DownloadIfMissing fetches the UCI sonar CSV to path unless a file is
// already there.
func DownloadIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat %s", path)
	}

	log.Printf("Downloading %s to %s", sonarURL, path)
	resp, err := http.Get(sonarURL)
	if err != nil {
		return errors.Wrapf(err, "download %s", sonarURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("download %s: %s", sonarURL, resp.Status)
	}

	return writeAtomic(resp.Body, path)
}

// writeAtomic streams r into path via a temp file in the same directory, so
// a failed download never leaves a partial or stray file behind.
func writeAtomic(r io.Reader, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "sonar-*")
	if err != nil {
		return errors.Wrap(err, "create download temp file")
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "move download to %s", path)
	}
	return nil
}
