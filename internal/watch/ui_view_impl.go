package watch

// UIView is the host surface the controller renders into. Run blocks
// until the view exits.
type UIView interface {
	Run() error
	Stop()
}

// Haptics is the platform vibration surface. The curses view fakes it,
// a real watch wires the motor.
type Haptics interface {
	ShortPulse()
	DoublePulse()
}

// NoopHaptics satisfies Haptics without doing anything.
type NoopHaptics struct{}

func (NoopHaptics) ShortPulse()  {}
func (NoopHaptics) DoublePulse() {}
