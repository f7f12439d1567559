package progress

// noop discards all progress updates. Used when progress reporting is
// disabled or the output is not a terminal.
type noop struct{}

// NewNoop returns a Progress that does nothing.
func NewNoop() Progress {
	return noop{}
}

func (noop) Start(string)              {}
func (noop) Update(Status)             {}
func (noop) Complete(string)           {}
func (noop) Error(string)              {}
func (noop) Stop()                     {}
func (noop) SetStyle(Style)            {}
func (noop) EnableStats(bool)          {}
func (noop) IsSupportedTerminal() bool { return false }
