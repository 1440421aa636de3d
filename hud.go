package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/destructible/scene"
	"golang.org/x/image/font/basicfont"
)

var hudTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// HUD is the tool panel drawn over the scene: one button per tool, a
// reset button and live counters.
type HUD struct {
	ui      *ebitenui.UI
	panel   *widget.Container
	stats   *widget.Text
	buttons []*widget.Button
	tools   []*scene.Tool
}

func NewHUD(g *Game, tools []*scene.Tool) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: hudTextColor}
	h := &HUD{tools: tools}

	title := widget.NewText(
		widget.TextOpts.Text("Tools", &face, hudTextColor),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(180, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(title)

	for i, tool := range tools {
		idx := i
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(toolLabel(idx, tool, false), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.SelectTool(idx)
			}),
		)
		h.buttons = append(h.buttons, btn)
		panel.AddChild(btn)
	}

	resetBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
		widget.ButtonOpts.Text("Reset (R)", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.Reset()
		}),
	)
	panel.AddChild(resetBtn)

	h.stats = widget.NewText(
		widget.TextOpts.Text("", &face, hudTextColor),
	)
	panel.AddChild(h.stats)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.panel = panel
	h.ui = &ebitenui.UI{Container: root}
	return h
}

func toolLabel(i int, t *scene.Tool, active bool) string {
	prefix := "  "
	if active {
		prefix = "> "
	}
	return fmt.Sprintf("%s%d  %s", prefix, i+1, t.Name)
}

// SetActive highlights the selected tool.
func (h *HUD) SetActive(active int) {
	if h == nil {
		return
	}
	for i, btn := range h.buttons {
		if text := btn.Text(); text != nil {
			text.Label = toolLabel(i, h.tools[i], i == active)
		}
	}
}

// SetStats replaces the counter text.
func (h *HUD) SetStats(s Stats) {
	if h == nil || h.stats == nil {
		return
	}
	h.stats.Label = s.String()
}

// Contains reports whether a screen point lies over the panel.
func (h *HUD) Contains(x, y int) bool {
	if h == nil || h.panel == nil {
		return false
	}
	return image.Pt(x, y).In(h.panel.GetWidget().Rect)
}

// Stats are the counters shown in the HUD.
type Stats struct {
	Bodies int
	Debris int
	Pool   int
	Erased int
	Shapes int
}

func (s Stats) String() string {
	return fmt.Sprintf("bodies  %d\ndebris  %d / %d\nerased  %d\nshapes  %d", s.Bodies, s.Debris, s.Pool, s.Erased, s.Shapes)
}
