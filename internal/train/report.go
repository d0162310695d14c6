package train

import "time"

// EpochReport summarizes one training epoch.
type EpochReport struct {
	Epoch int // 1-based

	// Passed counts test examples whose arg-max output matched the label.
	// Only meaningful when Evaluated is true.
	Passed    int
	Total     int
	Evaluated bool

	// Loss is the mean squared error of the training examples, each measured
	// during its backward pass.
	Loss float64

	Duration       time.Duration
	ExamplesPerSec float64
}

// Accuracy returns Passed/Total, or 0 when nothing was evaluated.
func (r EpochReport) Accuracy() float64 {
	if !r.Evaluated || r.Total == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Total)
}

// Result holds the reports of every epoch of a run.
type Result struct {
	Epochs []EpochReport
}

// FinalLoss returns the training loss of the last epoch.
func (r *Result) FinalLoss() float64 {
	if r == nil || len(r.Epochs) == 0 {
		return 0
	}
	return r.Epochs[len(r.Epochs)-1].Loss
}
