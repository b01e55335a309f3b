// Package display renders a State with ebiten and feeds ebiten input back to the systems.
package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/kiln/resources"
	"go.uber.org/zap"
)

// TextureCache turns image resources into GPU images, once per name.
type TextureCache struct {
	res    resources.Loader
	log    *zap.Logger
	images map[string]*ebiten.Image
	failed map[string]bool
}

// NewTextureCache creates an empty cache reading textures from res.
func NewTextureCache(res resources.Loader, log *zap.Logger) *TextureCache {
	return &TextureCache{
		res:    res,
		log:    log,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]bool),
	}
}

// Preload decodes every name not already cached in parallel.
func (c *TextureCache) Preload(names []string) error {
	pending := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := c.images[name]; !ok && !c.failed[name] {
			pending = append(pending, name)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	decoded, err := resources.DecodeImages(c.res, pending)
	if err != nil {
		return err
	}
	for name, img := range decoded {
		c.images[name] = ebiten.NewImageFromImage(img)
	}
	return nil
}

// Get returns the texture called name, decoding it on first use. Textures that fail to
// load are logged once and then reported missing.
func (c *TextureCache) Get(name string) (*ebiten.Image, bool) {
	if img, ok := c.images[name]; ok {
		return img, true
	}
	if c.failed[name] {
		return nil, false
	}

	img, err := resources.DecodeImage(c.res, name)
	if err != nil {
		c.failed[name] = true
		c.log.Error("cannot load texture", zap.String("texture", name), zap.Error(err))
		return nil, false
	}

	tex := ebiten.NewImageFromImage(img)
	c.images[name] = tex
	return tex, true
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	return len(c.images)
}
