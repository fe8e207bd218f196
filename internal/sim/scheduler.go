package sim

import "time"

// Scheduler drives the two production-mode periodic firings (spec.md 4.I):
// a tick ticker at TickPeriod and an autosave ticker at AutosavePeriod. Both
// post closures onto the same Strand the world already serializes through,
// rather than touching world state directly from timer goroutines.
type Scheduler struct {
	strand *Strand
	stop   chan struct{}
	done   chan struct{}
}

// StartScheduler launches the periodic drivers. onTick receives the
// wall-clock delta since the previous tick; onAutosave takes no arguments.
// A zero or negative period disables that driver entirely. Test mode starts
// no Scheduler at all.
func StartScheduler(strand *Strand, tickPeriod, autosavePeriod time.Duration, onTick func(dt time.Duration), onAutosave func()) *Scheduler {
	s := &Scheduler{
		strand: strand,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run(tickPeriod, autosavePeriod, onTick, onAutosave)
	return s
}

func (s *Scheduler) run(tickPeriod, autosavePeriod time.Duration, onTick func(dt time.Duration), onAutosave func()) {
	defer close(s.done)

	var tickC, autosaveC <-chan time.Time
	if tickPeriod > 0 {
		ticker := time.NewTicker(tickPeriod)
		defer ticker.Stop()
		tickC = ticker.C
	}
	if autosavePeriod > 0 {
		ticker := time.NewTicker(autosavePeriod)
		defer ticker.Stop()
		autosaveC = ticker.C
	}

	last := time.Now()
	for {
		select {
		case <-s.stop:
			return
		case now := <-tickC:
			dt := now.Sub(last)
			if dt <= 0 {
				dt = tickPeriod
			}
			last = now
			s.strand.Post(func() { onTick(dt) })
		case <-autosaveC:
			s.strand.Post(onAutosave)
		}
	}
}

// Stop ends both periodic firings and waits for the driver goroutine to
// exit. It does not itself drain the Strand; callers should Close the
// Strand afterward to drain in-flight work.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}
