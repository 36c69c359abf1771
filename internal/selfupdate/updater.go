package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrSameVersion   = errors.New("already running the requested version")
	ErrBadTag        = errors.New("release tag is not a semantic version")
	ErrChecksum      = errors.New("checksum verification failed")
)

const checksumsFile = "checksums.txt"

// UpdateInput selects the release to install. An empty TargetVersion
// means the latest release; a set one pins that tag, older or not.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported at each stage: check or pin, download,
// verify, extract, apply, done.
type UpdateProgress struct {
	Stage   string
	Message string
}

// install is what Update resolved before touching the network for
// release files.
type install struct {
	tag    string
	asset  string
	binary string
	pinned bool
}

// Update installs a release over the running executable. The archive is
// checked against the release checksums before anything is replaced.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" || input.CurrentVersion == "" {
		return ErrDevBuild
	}

	in, err := c.resolve(ctx, input, progress)
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s %s...", in.asset, in.tag)})
	archive, err := c.fetch(ctx, in.tag, in.asset)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := c.fetch(ctx, in.tag, checksumsFile)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	if err := verifyAsset(sums, in.asset, archive); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: fmt.Sprintf("Extracting %s...", in.binary)})
	binary, err := unpack(archive, in.asset, in.binary)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, in.binary, binary); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	done := fmt.Sprintf("Updated to %s", in.tag)
	if in.pinned {
		done = fmt.Sprintf("Installed pinned release %s", in.tag)
	}
	progress(UpdateProgress{Stage: "done", Message: done})
	return nil
}

// resolve picks the tag and the release files for this platform. A pinned
// tag skips the latest-release lookup.
func (c *Checker) resolve(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (*install, error) {
	asset, err := c.assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return nil, err
	}
	in := &install{asset: asset, binary: c.binaryName(runtime.GOOS)}

	if input.TargetVersion != "" {
		tag := canonical(input.TargetVersion)
		if !semver.IsValid(tag) {
			return nil, fmt.Errorf("%w: %q", ErrBadTag, input.TargetVersion)
		}
		current := canonical(input.CurrentVersion)
		msg := fmt.Sprintf("Pinned to %s", tag)
		if semver.IsValid(current) {
			switch semver.Compare(tag, current) {
			case 0:
				return nil, fmt.Errorf("%w: %s", ErrSameVersion, tag)
			case -1:
				msg = fmt.Sprintf("Pinned to %s, downgrading from %s", tag, current)
			}
		}
		progress(UpdateProgress{Stage: "pin", Message: msg})
		in.tag = tag
		in.pinned = true
		return in, nil
	}

	progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
	result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return nil, ErrAlreadyLatest
	}
	in.tag = result.LatestVersion
	return in, nil
}

// fetch downloads one file attached to a release.
func (c *Checker) fetch(ctx context.Context, tag, file string) ([]byte, error) {
	url := c.releaseURL(tag, file)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
