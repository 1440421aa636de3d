package main

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

type clipboardState struct {
	initialized bool
	err         error
}

func (c *clipboardState) ready() error {
	if !c.initialized {
		c.initialized = true
		c.err = clipboard.Init()
	}
	return c.err
}

// encodeMask renders the current mask of b as a PNG.
func encodeMask(b *terrain.Body) ([]byte, error) {
	if b == nil || b.Destroyed() {
		return nil, fmt.Errorf("clipboard: no body")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.Mask().Image()); err != nil {
		return nil, fmt.Errorf("clipboard: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// copyBodyAt puts the mask of the body under p on the system clipboard.
func (g *Game) copyBodyAt(p cp.Vector) {
	b := g.bodyAt(p)
	if b == nil {
		g.log.Debug("clipboard: nothing under cursor", zap.Float64("x", p.X), zap.Float64("y", p.Y))
		return
	}
	if err := g.clip.ready(); err != nil {
		g.log.Warn("clipboard: unavailable", zap.Error(err))
		return
	}
	data, err := encodeMask(b)
	if err != nil {
		g.log.Warn("clipboard: copy failed", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
	g.log.Info("clipboard: copied body mask",
		zap.String("template", b.Template().Name),
		zap.Int("width", b.Mask().Width()),
		zap.Int("height", b.Mask().Height()),
		zap.Int("pixels", b.Pixels()))
}
