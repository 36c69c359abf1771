package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// releaseArch maps GOARCH to the architecture label in asset names.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// binaryName is the executable inside a release archive. It is named
// after the repository the releases come from.
func (c *Checker) binaryName(goos string) string {
	if goos == "windows" {
		return c.repo + ".exe"
	}
	return c.repo
}

// assetFor names the release archive for a platform, for example
// courseway_Linux_x86_64.tar.gz. macOS ships one universal archive.
func (c *Checker) assetFor(goos, goarch string) (string, error) {
	var osLabel, ext string
	switch goos {
	case "darwin":
		return c.repo + "_Darwin_all.tar.gz", nil
	case "linux":
		osLabel, ext = "Linux", ".tar.gz"
	case "windows":
		osLabel, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return c.repo + "_" + osLabel + "_" + arch + ext, nil
}

// checksumFor finds the hex digest of file in a "<sha256>  <name>" list.
func checksumFor(sums []byte, file string) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == file {
			return fields[0], true
		}
	}
	return "", false
}

func verifyAsset(sums []byte, asset string, archive []byte) error {
	want, ok := checksumFor(sums, asset)
	if !ok {
		return fmt.Errorf("no checksum found for %s in %s", asset, checksumsFile)
	}
	sum := sha256.Sum256(archive)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksum, asset, want, got)
	}
	return nil
}

// unpack pulls binary out of a .zip or .tar.gz release archive.
func unpack(archive []byte, asset, binary string) ([]byte, error) {
	var (
		data  []byte
		found bool
		err   error
	)
	if strings.HasSuffix(asset, ".zip") {
		data, found, err = fromZip(archive, binary)
	} else {
		data, found, err = fromTarGz(archive, binary)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("binary %q not found in %s", binary, asset)
	}
	return data, nil
}

func fromTarGz(archive []byte, binary string) ([]byte, bool, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, false, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != binary {
			continue
		}
		data, err := io.ReadAll(tr)
		return data, err == nil, err
	}
}

func fromZip(archive []byte, binary string) ([]byte, bool, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, false, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != binary {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, false, err
		}
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		return data, err == nil, err
	}
	return nil, false, nil
}

// replaceExecutable swaps target for data, keeping target's mode. The new
// file is staged next to target so the final rename stays on one
// filesystem, and is re-read before the swap.
func replaceExecutable(target, binary string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	stage, err := os.MkdirTemp(filepath.Dir(target), "."+binary+"-update-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(stage) }()

	staged := filepath.Join(stage, binary)
	if err := os.WriteFile(staged, data, 0o600); err != nil {
		return fmt.Errorf("write staged binary: %w", err)
	}

	onDisk, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("re-read staged binary: %w", err)
	}
	if sha256.Sum256(onDisk) != sha256.Sum256(data) {
		return fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return os.Chmod(target, info.Mode())
}
