package provisioning

import (
	"fmt"
	"time"
)

// Pipeline runs provisioning phases sequentially, stopping at the first
// failure. There is no rollback: the control plane's state after each
// completed step is the state, and a re-run converges from there.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline over the given phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// Run executes all phases in order.
func (p *Pipeline) Run(ctx *Context) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(p.Phases))

	for i, phase := range p.Phases {
		phaseStart := time.Now()
		ctx.Observer.Printf("[%s (%d/%d)] starting", phase.Name(), i+1, len(p.Phases))
		LogPhaseStart(ctx.Observer, phase.Name())

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
