package watch

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/runwear/run-watch/watch-app/internal/go_func_utils"
)

// SessionSegment is one stretch of a canned workout. A segment with an
// inactive target is free running.
type SessionSegment struct {
	Name     string
	Duration time.Duration
	Target   ZoneTarget
}

// Session is a scripted workout the player walks through.
type Session struct {
	Name     string
	Segments []SessionSegment
}

// DefaultSession is a small tempo run: pace and power blocks separated
// by floats, bracketed by warmup and cooldown.
func DefaultSession() Session {
	return Session{
		Name: "tempo run",
		Segments: []SessionSegment{
			{Name: "warmup", Duration: 60 * time.Second},
			{Name: "steady pace", Duration: 3 * time.Minute, Target: ZoneTarget{Kind: ZonePace, Lo: 260, Hi: 300}},
			{Name: "float", Duration: 90 * time.Second},
			{Name: "power surge", Duration: 2 * time.Minute, Target: ZoneTarget{Kind: ZonePower, Lo: 180, Hi: 220}},
			{Name: "close out", Duration: 2 * time.Minute, Target: ZoneTarget{Kind: ZonePace, Lo: 280, Hi: 320}},
			{Name: "cooldown", Duration: 60 * time.Second},
		},
	}
}

// SessionPlayer simulates a runner working through a Session and emits
// the same tag messages a phone bridge would: readings every tick,
// target updates on segment boundaries. It is the default feed when no
// sensors are attached.
type SessionPlayer struct {
	logger   *log.Logger
	sink     func(Message)
	session  Session
	interval time.Duration

	sim runnerSim

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
}

func NewSessionPlayer(logger *log.Logger, session Session, sink func(Message)) *SessionPlayer {
	if logger == nil {
		panic("SessionPlayer: logger cannot be nil")
	}
	if sink == nil {
		panic("SessionPlayer: sink cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionPlayer{
		logger:   logger,
		sink:     sink,
		session:  session,
		interval: 1 * time.Second,
		sim:      newRunnerSim(time.Now().UnixNano()),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (p *SessionPlayer) Start() {
	p.startOnce.Do(func() {
		p.wg.Add(1)
		go_func_utils.SafeGoNamed(p.logger, "session player", p.run)
	})
}

func (p *SessionPlayer) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *SessionPlayer) run() {
	defer p.wg.Done()

	p.logger.Printf("SessionPlayer: starting session %q", p.session.Name)
	p.sink(Message{TagStatus: 1})

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	segment := -1
	elapsed := time.Duration(0)

	for {
		// Advance to the segment covering the current elapsed time.
		idx, ok := p.segmentAt(elapsed)
		if !ok {
			p.sink(Message{TagStatus: 3, TagTargetKind: 0})
			p.logger.Printf("SessionPlayer: session %q finished", p.session.Name)
			return
		}
		if idx != segment {
			segment = idx
			seg := p.session.Segments[idx]
			p.logger.Printf("SessionPlayer: segment %q (target %v)", seg.Name, seg.Target.Kind)
			p.sink(targetMessage(seg.Target))
		}

		p.sim.step(p.session.Segments[segment].Target, p.interval)
		p.sink(p.sim.readingsMessage())

		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			elapsed += p.interval
		}
	}
}

func (p *SessionPlayer) segmentAt(elapsed time.Duration) (int, bool) {
	var acc time.Duration
	for i, seg := range p.session.Segments {
		acc += seg.Duration
		if elapsed < acc {
			return i, true
		}
	}
	return 0, false
}

func targetMessage(t ZoneTarget) Message {
	msg := Message{TagStatus: 2}
	switch t.Kind {
	case ZonePower:
		msg[TagTargetKind] = 1
	case ZonePace:
		msg[TagTargetKind] = 2
	default:
		msg[TagTargetKind] = 0
		return msg
	}
	msg[TagTargetLo] = t.Lo
	msg[TagTargetHi] = t.Hi
	return msg
}

// runnerSim is a crude but stable runner model: speed chases the
// segment's implied effort, heart rate and power lag speed, distance
// integrates. Enough to exercise every view without real sensors.
type runnerSim struct {
	rng        *rand.Rand
	speedCenti float64 // centi-m/s
	hr         float64
	power      float64
	distanceM  float64
}

func newRunnerSim(seed int64) runnerSim {
	return runnerSim{
		rng:        rand.New(rand.NewSource(seed)),
		speedCenti: 210, // easy jog
		hr:         95,
		power:      150,
	}
}

func (s *runnerSim) step(target ZoneTarget, dt time.Duration) {
	goalSpeed := 280.0
	goalPower := 0.0

	switch target.Kind {
	case ZonePace:
		n := target.Normalized()
		goalSpeed = float64(n.Lo+n.Hi) / 2
	case ZonePower:
		n := target.Normalized()
		goalPower = float64(n.Lo+n.Hi) / 2
		goalSpeed = goalPower * 1.5 // rough watts-to-centi-speed coupling
	}

	s.speedCenti += (goalSpeed-s.speedCenti)*0.15 + s.rng.NormFloat64()*4
	if s.speedCenti < 0 {
		s.speedCenti = 0
	}

	if goalPower == 0 {
		goalPower = s.speedCenti * 0.7
	}
	s.power += (goalPower-s.power)*0.2 + s.rng.NormFloat64()*6

	goalHR := 90 + s.speedCenti*0.22
	s.hr += (goalHR-s.hr)*0.08 + s.rng.NormFloat64()*1.5

	s.distanceM += s.speedCenti / 100 * dt.Seconds()
}

func (s *runnerSim) cadence() int {
	return 158 + int(s.speedCenti/25)
}

func (s *runnerSim) readingsMessage() Message {
	return Message{
		TagHeartRate: int32(s.hr),
		TagSpeed:     int32(s.speedCenti),
		TagCadence:   int32(s.cadence()),
		TagDistance:  int32(s.distanceM),
		TagPower:     int32(s.power),
	}
}
