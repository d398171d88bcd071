package watch

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/runwear/run-watch/watch-app/internal/display"
	"github.com/runwear/run-watch/watch-app/internal/go_func_utils"
)

// CursesUIView hosts the watch face in a terminal: the frame is
// rasterized into a TermCanvas and blitted into a tview box, with a log
// pane beside it. It doubles as the Haptics sink, since a terminal can
// only ever pretend to vibrate.
type CursesUIView struct {
	logger     *log.Logger
	model      *UIModel
	controller *UIController

	app      *tview.Application
	watchBox *tview.Box
	logView  *tview.TextView
	canvas   *display.TermCanvas

	pixelW, pixelH int

	frameMu  sync.Mutex
	frame    Frame
	hasFrame bool
	overlay  bool

	done     chan struct{}
	stopOnce sync.Once
	unlisten []func()
}

var _ UIView = (*CursesUIView)(nil)
var _ Haptics = (*CursesUIView)(nil)

func NewCursesUIView(logger *log.Logger, model *UIModel, pixelW, pixelH int, colorCapable bool) *CursesUIView {
	if logger == nil {
		panic("CursesUIView: logger cannot be nil")
	}
	if model == nil {
		panic("CursesUIView: model cannot be nil")
	}
	if pixelW <= 0 || pixelH <= 0 {
		panic("CursesUIView: pixel dimensions must be > 0")
	}
	return &CursesUIView{
		logger: logger,
		model:  model,
		app:    tview.NewApplication(),
		canvas: display.NewTermCanvas(pixelW, pixelH, colorCapable),
		pixelW: pixelW,
		pixelH: pixelH,
		done:   make(chan struct{}),
	}
}

// SetController wires the gesture sink. Must be called before Run.
func (v *CursesUIView) SetController(c *UIController) {
	if c == nil {
		panic("CursesUIView: controller cannot be nil")
	}
	v.controller = c
}

// Bounds returns the full drawable pixel area of the simulated watch.
func (v *CursesUIView) Bounds() Size {
	return Size{W: v.pixelW, H: v.pixelH}
}

func (v *CursesUIView) Run() error {
	if v.controller == nil {
		panic("CursesUIView: Run called before SetController")
	}

	v.watchBox = tview.NewBox().
		SetBorder(true).
		SetTitle(" run-watch ")
	v.watchBox.SetDrawFunc(v.drawWatch)

	logView := tview.NewTextView().
		SetScrollable(true).
		SetMaxLines(200)
	logView.SetBorder(true).SetTitle(" events ")
	logView.SetChangedFunc(func() {
		v.app.Draw()
	})
	v.frameMu.Lock()
	v.logView = logView
	v.frameMu.Unlock()

	help := tview.NewTextView().
		SetText("↑/↓ hero   u units   f focus   o overlay   q quit")
	help.SetBorder(true).SetTitle(" keys ")

	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(help, 3, 0, false).
		AddItem(v.logView, 0, 1, false)

	cols, _ := v.canvas.CellSize()
	root := tview.NewFlex().
		AddItem(v.watchBox, cols+2, 0, true).
		AddItem(right, 0, 1, false)

	v.watchBox.SetInputCapture(v.handleKey)

	v.startListeners()

	return v.app.SetRoot(root, true).Run()
}

func (v *CursesUIView) Stop() {
	v.stopOnce.Do(func() {
		close(v.done)
		for _, stop := range v.unlisten {
			stop()
		}
		v.app.Stop()
	})
}

func (v *CursesUIView) startListeners() {
	frames := make(chan Frame, 8)
	v.unlisten = append(v.unlisten, v.model.ListenToFrames(frames))

	status := make(chan string, 16)
	v.unlisten = append(v.unlisten, v.model.ListenToStatus(status))

	go_func_utils.SafeGoNamed(v.logger, "view frame listener", func() {
		for {
			select {
			case <-v.done:
				return
			case f := <-frames:
				v.frameMu.Lock()
				v.frame = f
				v.hasFrame = true
				v.frameMu.Unlock()
				v.app.Draw()
			}
		}
	})

	go_func_utils.SafeGoNamed(v.logger, "view status listener", func() {
		for {
			select {
			case <-v.done:
				return
			case s := <-status:
				v.postLog(s)
			}
		}
	})
}

func (v *CursesUIView) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		v.controller.HandleGesture(GestureNextHero)
		return nil
	case tcell.KeyDown:
		v.controller.HandleGesture(GesturePrevHero)
		return nil
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.Stop()
		return nil
	}
	switch event.Rune() {
	case 'u':
		v.controller.HandleGesture(GestureToggleUnits)
	case 'f':
		// Stands in for the watch's long-press.
		v.controller.HandleGesture(GestureToggleFocus)
	case 'o':
		v.toggleOverlay()
	case 'q':
		v.Stop()
	}
	return nil
}

// toggleOverlay simulates a system overlay stealing the lower third of
// the screen, the way a timeline peek does on the real hardware.
func (v *CursesUIView) toggleOverlay() {
	v.frameMu.Lock()
	v.overlay = !v.overlay
	overlay := v.overlay
	v.frameMu.Unlock()

	bounds := v.Bounds()
	if overlay {
		bounds.H = bounds.H * 70 / 100
	}
	v.controller.SetBounds(bounds)
	v.postLog(fmt.Sprintf("overlay %v, bounds %dx%d", overlay, bounds.W, bounds.H))
}

func (v *CursesUIView) drawWatch(screen tcell.Screen, x, y, w, h int) (int, int, int, int) {
	v.frameMu.Lock()
	frame := v.frame
	hasFrame := v.hasFrame
	overlay := v.overlay
	v.frameMu.Unlock()

	if hasFrame {
		RenderFrame(v.canvas, frame)
		if overlay {
			top := v.pixelH * 70 / 100
			v.canvas.FillRect(0, top, v.pixelW, v.pixelH-top, display.ColorDim)
		}
		v.canvas.Flush(screen, x+1, y+1)
	}
	return x + 1, y + 1, w - 2, h - 2
}

func (v *CursesUIView) postLog(line string) {
	v.frameMu.Lock()
	logView := v.logView
	v.frameMu.Unlock()
	if logView == nil {
		// Haptics can fire before Run has built the panes.
		v.logger.Printf("CursesUIView: %s", line)
		return
	}
	fmt.Fprintf(logView, "%s %s\n", time.Now().Format("15:04:05"), line)
}

// ShortPulse and DoublePulse satisfy Haptics; the terminal stand-in just
// logs the buzz.
func (v *CursesUIView) ShortPulse() {
	v.postLog("~ bzzt")
}

func (v *CursesUIView) DoublePulse() {
	v.postLog("~ bzzt bzzt")
}
