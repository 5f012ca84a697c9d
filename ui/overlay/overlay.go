package overlay

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"

	"eft-overlay/internal/catalog"
	"eft-overlay/internal/config"
	"eft-overlay/internal/detect"
)

var (
	colorBackground = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xf2}
	colorHeader     = color.NRGBA{R: 0x0d, G: 0x0d, B: 0x0d, A: 0xff}
	colorAccent     = color.NRGBA{R: 0x4a, G: 0x9e, B: 0xff, A: 0xff}
	colorPositive   = color.NRGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	colorNegative   = color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	colorGold       = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	colorNeutral    = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	colorDim        = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorFaint      = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
)

// backgroundColor scales the base background alpha by the configured
// opacity. Windows carry no per-window opacity in this toolkit, so the
// translucency lives in the background fill.
func backgroundColor(opacity float64) color.NRGBA {
	c := colorBackground
	if opacity > 0 && opacity < 1 {
		c.A = uint8(float64(c.A)*opacity + 0.5)
	}
	return c
}

func toneColor(t Tone) color.Color {
	switch t {
	case ToneAccent:
		return colorAccent
	case TonePositive:
		return colorPositive
	case ToneNegative:
		return colorNegative
	case ToneGold:
		return colorGold
	case ToneDim:
		return colorDim
	default:
		return colorNeutral
	}
}

// Window is the always-on-top overlay. All mutation funnels through its
// mutex; callers may invoke its methods from any goroutine.
type Window struct {
	win    fyne.Window
	trader catalog.TraderPrices

	mu        sync.Mutex
	body      *fyne.Container
	status    *canvas.Text
	itemCount int
	active    bool
	visible   bool
	showing   bool // true while an item view is up
}

// New builds the overlay window. On desktop drivers it uses a splash
// window, which is borderless and floats above other windows.
func New(a fyne.App, cfg *config.Config, trader catalog.TraderPrices) *Window {
	var win fyne.Window
	if drv, ok := a.Driver().(desktop.Driver); ok {
		win = drv.CreateSplashWindow()
	} else {
		win = a.NewWindow("EFT")
	}
	win.Resize(fyne.NewSize(float32(cfg.Overlay.Width), float32(cfg.Overlay.Height)))
	win.SetFixedSize(true)

	w := &Window{
		win:     win,
		trader:  trader,
		active:  cfg.Detection.ActiveOnStart,
		visible: true,
	}

	w.status = canvas.NewText("●", colorNegative)
	w.status.TextSize = 12
	title := canvas.NewText("EFT", colorAccent)
	title.TextSize = 10
	title.TextStyle.Bold = true
	header := container.NewStack(
		canvas.NewRectangle(colorHeader),
		container.NewHBox(title, layout.NewSpacer(), w.status),
	)

	w.body = container.NewVBox()
	win.SetContent(container.NewStack(
		canvas.NewRectangle(backgroundColor(cfg.Overlay.Opacity)),
		container.NewBorder(header, nil, nil, nil, w.body),
	))

	w.setStatusLocked()
	w.showWaitingLocked()
	return w
}

// Show displays the window.
func (w *Window) Show() {
	w.win.Show()
}

// HandleEvents consumes coordinator notifications until the channel
// closes. Run it on its own goroutine.
func (w *Window) HandleEvents(events <-chan detect.Event) {
	for ev := range events {
		switch ev.Type {
		case detect.EventItemDetected, detect.EventLivePriceUpdated:
			w.ShowItem(ev.Item)
		case detect.EventCatalogReady:
			w.SetItemCount(ev.Count)
		}
	}
}

// ShowItem renders the price view for an item.
func (w *Window) ShowItem(it catalog.Item) {
	m := BuildModel(it, w.trader, time.Now())

	w.mu.Lock()
	defer w.mu.Unlock()
	w.showing = true

	name := canvas.NewText(m.Name, color.White)
	name.TextSize = 11
	name.TextStyle.Bold = true
	name.Alignment = fyne.TextAlignCenter

	objects := []fyne.CanvasObject{name}
	for _, row := range m.Rows {
		label := canvas.NewText(row.Label, colorDim)
		label.TextSize = 10
		value := canvas.NewText(row.Value, toneColor(row.Tone))
		value.TextSize = 11
		value.TextStyle.Bold = true
		objects = append(objects, container.NewHBox(label, layout.NewSpacer(), value))
	}

	if m.Banned {
		banned := canvas.NewText("BANNED ON FLEA", colorNegative)
		banned.TextSize = 11
		banned.TextStyle.Bold = true
		banned.Alignment = fyne.TextAlignCenter
		objects = append(objects, banned)
	} else if m.UpdatedAgo != "" {
		updated := canvas.NewText(m.UpdatedAgo, colorFaint)
		updated.TextSize = 9
		updated.Alignment = fyne.TextAlignCenter
		objects = append(objects, updated)
	}

	w.render(objects)
}

// ShowWaiting renders the idle view.
func (w *Window) ShowWaiting() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.showWaitingLocked()
}

// SetItemCount updates the catalog counter; the idle view shows it.
func (w *Window) SetItemCount(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.itemCount = n
	if !w.showing {
		w.showWaitingLocked()
	}
}

// SetDetectionActive updates the status dot; turning detection off
// drops any displayed item back to the idle view.
func (w *Window) SetDetectionActive(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = on
	w.setStatusLocked()
	if !on {
		w.showing = false
		w.showWaitingLocked()
	}
}

// ToggleVisible hides or re-shows the overlay window.
func (w *Window) ToggleVisible() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.visible {
		w.win.Hide()
	} else {
		w.win.Show()
	}
	w.visible = !w.visible
}

func (w *Window) setStatusLocked() {
	if w.active {
		w.status.Color = colorPositive
	} else {
		w.status.Color = colorNegative
	}
	w.status.Refresh()
}

func (w *Window) showWaitingLocked() {
	w.showing = false

	ready := canvas.NewText("READY", colorPositive)
	if !w.active {
		ready.Color = colorNegative
	}
	ready.TextSize = 20
	ready.TextStyle.Bold = true
	ready.Alignment = fyne.TextAlignCenter

	hint := canvas.NewText("Inspect items", colorDim)
	hint.TextSize = 11
	hint.Alignment = fyne.TextAlignCenter

	objects := []fyne.CanvasObject{layout.NewSpacer(), ready, hint}
	if w.itemCount > 0 {
		count := canvas.NewText(groupDigits(w.itemCount)+" items", colorFaint)
		count.TextSize = 9
		count.Alignment = fyne.TextAlignCenter
		objects = append(objects, count)
	}
	objects = append(objects, layout.NewSpacer())

	w.render(objects)
}

func (w *Window) render(objects []fyne.CanvasObject) {
	w.body.Objects = objects
	w.body.Refresh()
}
