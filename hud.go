package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
)

// hud is the debug overlay: live mode, previous mode, pending requests,
// and a button that copies the mode-change trace to the clipboard.
type hud struct {
	game *Game
	ui   *ebitenui.UI

	modeLabel     *widget.Text
	previousLabel *widget.Text
	requestsLabel *widget.Text
	signalsLabel  *widget.Text

	clipboardReady bool
}

func newHUD(g *Game) *hud {
	h := &hud{game: g}

	if err := clipboard.Init(); err != nil {
		log.Printf("hud: clipboard unavailable: %v", err)
	} else {
		h.clipboardReady = true
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	newLabel := func() *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, white))
	}
	h.modeLabel = newLabel()
	h.previousLabel = newLabel()
	h.requestsLabel = newLabel()
	h.signalsLabel = newLabel()

	copyBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Copy Trace", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			h.copyTrace()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(h.modeLabel)
	panel.AddChild(h.previousLabel)
	panel.AddChild(h.requestsLabel)
	panel.AddChild(h.signalsLabel)
	panel.AddChild(copyBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *hud) blade() (component.Blade, bool) {
	w := h.game.world
	blade, ok := ecs.Get(w, h.game.blade, component.BladeComponent)
	return blade, ok
}

func (h *hud) Update() {
	blade, ok := h.blade()
	if !ok {
		return
	}

	h.modeLabel.Label = "mode: " + component.ModeName(blade.Engine.CurrentKind())

	prev := "none"
	if p := blade.Engine.Previous(); p != nil {
		prev = component.ModeName(p.Kind())
	}
	h.previousLabel.Label = "previous: " + prev

	reqs := blade.Requests.Pending()
	if len(reqs) == 0 {
		h.requestsLabel.Label = "requests: -"
	} else {
		parts := make([]string, len(reqs))
		for i, r := range reqs {
			parts[i] = string(r)
		}
		h.requestsLabel.Label = "requests: " + strings.Join(parts, ", ")
	}

	h.signalsLabel.Label = fmt.Sprintf("owner=%v proxy=%v latch=%v",
		blade.OwnerAvailable, blade.ProxyValid, blade.Engine.Disposed())

	h.ui.Update()
}

func (h *hud) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func (h *hud) copyTrace() {
	if !h.clipboardReady {
		log.Printf("hud: clipboard not initialized")
		return
	}
	blade, ok := h.blade()
	if !ok {
		return
	}
	var b strings.Builder
	for _, entry := range blade.Trace {
		fmt.Fprintf(&b, "%d\t%s -> %s\n", entry.Tick,
			component.ModeName(entry.From), component.ModeName(entry.To))
	}
	clipboard.Write(clipboard.FmtText, []byte(b.String()))
}
