package transfer

import "time"

// Import feedback timing: "done" shows after DoneDelay and the indicator
// clears ResetDelay later.
const (
	DoneDelay  = 300 * time.Millisecond
	ResetDelay = 600 * time.Millisecond
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseImporting
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseImporting:
		return "importing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Pacer tracks the import indicator. Each transition returns how long the
// caller should wait before the next one.
type Pacer struct {
	phase Phase
	err   error
}

// Begin starts an import. Calls while one is running return ok=false.
func (p *Pacer) Begin() (wait time.Duration, ok bool) {
	if p.phase == PhaseImporting {
		return 0, false
	}
	p.phase = PhaseImporting
	p.err = nil
	return DoneDelay, true
}

// Finish records the import result
func (p *Pacer) Finish(err error) time.Duration {
	p.err = err
	if err != nil {
		p.phase = PhaseFailed
	} else {
		p.phase = PhaseDone
	}
	return ResetDelay
}

func (p *Pacer) Reset() {
	p.phase = PhaseIdle
	p.err = nil
}

func (p *Pacer) Phase() Phase { return p.phase }
func (p *Pacer) Err() error   { return p.err }
