package resources

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DecodeImages loads and decodes the named images concurrently. Names may repeat; each
// distinct name is decoded once. The first error encountered is returned.
func DecodeImages(l Loader, names []string) (map[string]image.Image, error) {
	var (
		mu     sync.Mutex
		images = make(map[string]image.Image, len(names))
		seen   = make(map[string]bool, len(names))
	)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		g.Go(func() error {
			img, err := DecodeImage(l, name)
			if err != nil {
				return err
			}
			mu.Lock()
			images[name] = img
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// DecodeImage loads and decodes a single image resource.
func DecodeImage(l Loader, name string) (image.Image, error) {
	rc, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	return img, nil
}
