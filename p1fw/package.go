package p1fw

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ManifestName is the manifest file every release package must contain.
const ManifestName = "info.json"

// Package holds the firmware images extracted from a .p1fw release package.
type Package struct {
	// App is the application (fusion engine) firmware image
	App []byte

	// GNSS is the GNSS receiver firmware image
	GNSS []byte
}

// manifest mirrors the info.json layout inside a release package.
type manifest struct {
	FusionEngine struct {
		Filename string `json:"filename"`
	} `json:"fusion_engine"`
	GNSSReceiver struct {
		Filename string `json:"filename"`
	} `json:"gnss_receiver"`
}

// Open loads a .p1fw release package. The path may point at either a zip
// archive (the expected use case) or an already unpacked directory. Both
// forms contain an info.json manifest naming the two firmware images.
//
// Example:
//
//	pkg, err := p1fw.Open("quectel-lg69t-am.p1fw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("app: %d bytes, gnss: %d bytes\n", len(pkg.App), len(pkg.GNSS))
func Open(path string) (*Package, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return openDir(path)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s is neither a directory nor a zip archive: %w", path, err)
	}
	defer func() { _ = r.Close() }()

	return OpenZip(&r.Reader)
}

// OpenZip loads a release package from an already opened zip archive.
func OpenZip(r *zip.Reader) (*Package, error) {
	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}

	mf, ok := files[ManifestName]
	if !ok {
		return nil, fmt.Errorf("no %s file found in package", ManifestName)
	}

	m, err := parseManifest(mf)
	if err != nil {
		return nil, err
	}

	read := func(name string) ([]byte, error) {
		f, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("firmware file %q named by %s not found in package", name, ManifestName)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}

	pkg := &Package{}
	if pkg.App, err = read(m.FusionEngine.Filename); err != nil {
		return nil, err
	}
	if pkg.GNSS, err = read(m.GNSSReceiver.Filename); err != nil {
		return nil, err
	}
	return pkg, nil
}

// openDir loads a release package from an unpacked directory.
func openDir(dir string) (*Package, error) {
	f, err := os.Open(filepath.Join(dir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no %s file found in %s", ManifestName, dir)
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var m manifest
	if err := decodeManifest(f, &m); err != nil {
		return nil, err
	}

	read := func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("firmware file %q named by %s: %w", name, ManifestName, err)
		}
		return data, nil
	}

	pkg := &Package{}
	if pkg.App, err = read(m.FusionEngine.Filename); err != nil {
		return nil, err
	}
	if pkg.GNSS, err = read(m.GNSSReceiver.Filename); err != nil {
		return nil, err
	}
	return pkg, nil
}

func parseManifest(f *zip.File) (*manifest, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ManifestName, err)
	}
	defer func() { _ = rc.Close() }()

	var m manifest
	if err := decodeManifest(rc, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func decodeManifest(r io.Reader, m *manifest) error {
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return fmt.Errorf("parse %s: %w", ManifestName, err)
	}
	if m.FusionEngine.Filename == "" || m.GNSSReceiver.Filename == "" {
		return fmt.Errorf("%s does not name both firmware files", ManifestName)
	}
	return nil
}
