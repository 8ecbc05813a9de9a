package shbridge

import (
	"time"

	"github.com/monopole/shbridge/channeler"
)

// Parameters is a bag of parameters for Submit.
// See individual fields for their explanation.
type Parameters struct {
	channeler.Params

	// InputSendTimeout is how long SendInput waits for room in the
	// input buffer before reporting ErrInputBackpressure.
	// Negative means don't wait at all.
	InputSendTimeout time.Duration
}

const defaultInputSendTimeout = 250 * time.Millisecond

// Validate returns an error if there's a problem in the Parameters.
func (p *Parameters) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.InputSendTimeout == 0 {
		p.InputSendTimeout = defaultInputSendTimeout
	}
	return nil
}
