package docx

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// imageExtensions are the recognized embedded-image extensions. Matching is
// case-sensitive: ".PNG" is not an image part.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Image is one embedded image: the part it came from, its base filename,
// the decoded format and dimensions (zero when the bytes do not decode),
// and the raw data.
type Image struct {
	Part   string
	Name   string
	Format string
	Width  int
	Height int
	Data   []byte
}

// Images returns the embedded images in archive enumeration order. Entries
// whose bytes do not decode as an image still appear, with an empty Format
// and zero dimensions.
func (c *Container) Images() ([]Image, error) {
	var images []Image
	for _, name := range c.Parts() {
		if !isImagePart(name) {
			continue
		}
		data, err := c.ReadPart(name)
		if err != nil {
			return nil, err
		}
		img := Image{Part: name, Name: path.Base(name), Data: data}
		if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			img.Format = format
			img.Width = cfg.Width
			img.Height = cfg.Height
		}
		images = append(images, img)
	}
	return images, nil
}

// ExtractImages writes every recognized image into dir, named by the part's
// base filename with directory components stripped. When two parts share a
// base name the later one silently overwrites the earlier; both writes
// appear in the returned paths. The directory must already exist. A failed
// write aborts the extraction; files written before it stay on disk.
func (c *Container) ExtractImages(dir string) ([]string, error) {
	var written []string
	for _, name := range c.Parts() {
		if !isImagePart(name) {
			continue
		}
		data, err := c.ReadPart(name)
		if err != nil {
			return nil, err
		}
		dst := filepath.Join(dir, path.Base(name))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing image %s: %w", dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

func isImagePart(name string) bool {
	ext := path.Ext(name)
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
