package watch

import (
	"context"
	"log"
	"sync"

	"github.com/runwear/run-watch/watch-app/internal/go_func_utils"
)

// UIController serializes every external input — gestures, inbound
// messages, bounds changes — onto one event loop. Each event is handled
// to completion (state change, persist, re-layout, publish frame) before
// the next is dequeued, so the state machine needs no further locking.
type UIController struct {
	model   *UIModel
	prefs   PrefStore
	haptics Haptics
	logger  *log.Logger

	eventCh chan controllerEvent
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex

	// Render-to-render memory for the zone haptic edge: were we in the
	// band on the previous classified frame?
	wasInZone bool
}

type controllerEventKind int

const (
	evGesture controllerEventKind = iota
	evMessage
	evBounds
)

type controllerEvent struct {
	kind    controllerEventKind
	gesture Gesture
	msg     Message
	bounds  Size
}

func NewUIController(logger *log.Logger, model *UIModel, prefs PrefStore, haptics Haptics) *UIController {
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if prefs == nil {
		panic("UIController: prefs cannot be nil")
	}
	if haptics == nil {
		haptics = NoopHaptics{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &UIController{
		model:   model,
		prefs:   prefs,
		haptics: haptics,
		logger:  logger,
		eventCh: make(chan controllerEvent, 128),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the event loop and publishes an initial frame so views
// have something to draw before the first input.
func (c *UIController) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.render()

	c.wg.Add(1)
	go_func_utils.SafeGo(c.logger, func() {
		defer c.wg.Done()
		for {
			select {
			case <-c.ctx.Done():
				return
			case ev := <-c.eventCh:
				c.process(ev)
			}
		}
	})
}

func (c *UIController) Stop() {
	c.cancel()
	c.wg.Wait()
}

// HandleGesture enqueues one of the four logical user inputs.
func (c *UIController) HandleGesture(g Gesture) {
	c.enqueue(controllerEvent{kind: evGesture, gesture: g})
}

// HandleMessage enqueues an inbound transport message.
func (c *UIController) HandleMessage(m Message) {
	c.enqueue(controllerEvent{kind: evMessage, msg: m})
}

// SetBounds enqueues a drawable-area change; the next frame re-layouts.
func (c *UIController) SetBounds(b Size) {
	c.enqueue(controllerEvent{kind: evBounds, bounds: b})
}

func (c *UIController) enqueue(ev controllerEvent) {
	select {
	case c.eventCh <- ev:
	case <-c.ctx.Done():
	}
}

func (c *UIController) process(ev controllerEvent) {
	switch ev.kind {
	case evGesture:
		c.processGesture(ev.gesture)
	case evMessage:
		if c.model.ApplyMessage(ev.msg) {
			c.persist(PrefKeyUnits, int(c.model.Snapshot().Units))
		}
	case evBounds:
		c.model.SetBounds(ev.bounds)
	}
	c.render()
}

func (c *UIController) processGesture(g Gesture) {
	snap := c.model.Snapshot()
	switch g {
	case GestureNextHero:
		c.model.SetHero(snap.Hero.Next())
		c.persist(PrefKeyHero, int(snap.Hero.Next()))
		c.haptics.ShortPulse()
	case GesturePrevHero:
		c.model.SetHero(snap.Hero.Prev())
		c.persist(PrefKeyHero, int(snap.Hero.Prev()))
		c.haptics.ShortPulse()
	case GestureToggleUnits:
		c.model.SetUnits(snap.Units.Toggled())
		c.persist(PrefKeyUnits, int(snap.Units.Toggled()))
		c.haptics.ShortPulse()
	case GestureToggleFocus:
		// Accepted in any view; only visible back in free-run.
		c.model.SetFocus(snap.Focus.Toggled())
		c.persist(PrefKeyFocus, int(snap.Focus.Toggled()))
		c.haptics.DoublePulse()
	}
	c.logger.Printf("UIController: gesture %v", g)
}

func (c *UIController) persist(key, value int) {
	if err := c.prefs.WriteInt(key, value); err != nil {
		c.logger.Printf("UIController: could not persist pref %d: %v", key, err)
	}
}

// render runs the pure pipeline (layout, zone math) on the current state
// and publishes the resulting frame. The zone haptic fires on In↔non-In
// edges only.
func (c *UIController) render() {
	snap := c.model.Snapshot()
	frame := Frame{
		State: snap,
		Plan:  ComputeLayout(c.model.Bounds(), snap),
	}

	if snap.ViewMode() == ViewWorkout {
		frame.Band = NewZoneBand(snap.Target)
		if live, ok := snap.Target.LiveValue(snap.Readings); ok {
			frame.Live = live
			frame.HasLive = true
			frame.Class = frame.Band.Classify(live)

			inZone := frame.Class == ZoneIn
			if inZone != c.wasInZone {
				c.haptics.ShortPulse()
			}
			c.wasInZone = inZone
		}
	} else {
		c.wasInZone = false
	}

	c.model.PublishFrame(frame)
}
