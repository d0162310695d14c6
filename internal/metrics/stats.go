// Package metrics aggregates per-batch timing and loss into per-epoch figures.
package metrics

import "time"

// Window accumulates timing and loss stats across multiple batches.
type Window struct {
	examples int
	batches  int
	compute  time.Duration
	lossSum  float64
	lossN    int
	lastLoss float64
}

// Record adds one batch of batchSize examples that took computeTime.
func (w *Window) Record(batchSize int, computeTime time.Duration) {
	w.examples += batchSize
	w.compute += computeTime
	w.batches++
}

// RecordLoss adds a per-example loss value to the running mean.
func (w *Window) RecordLoss(loss float64) {
	w.lossSum += loss
	w.lossN++
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{
		Examples: w.examples,
		Batches:  w.batches,
		Duration: w.compute,
		LastLoss: w.lastLoss,
	}
	if w.compute > 0 {
		snap.ExamplesPerSec = float64(w.examples) / w.compute.Seconds()
	}
	if w.batches > 0 {
		snap.AvgBatchMS = (w.compute.Seconds() * 1000) / float64(w.batches)
	}
	if w.lossN > 0 {
		snap.MeanLoss = w.lossSum / float64(w.lossN)
	}

	*w = Window{}
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Examples       int
	Batches        int
	Duration       time.Duration
	ExamplesPerSec float64
	AvgBatchMS     float64
	MeanLoss       float64
	LastLoss       float64
}
