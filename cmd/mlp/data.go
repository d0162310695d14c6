package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/config"
	"github.com/born-ml/mlp/internal/dataset"
)

// loadSets loads the training and test sets named by cfg. The test set is
// empty when no test file is configured.
func loadSets(cfg *config.Config) (trainSet, testSet *dataset.Set, err error) {
	nIn, nOut := cfg.Layers[0], cfg.Layers[len(cfg.Layers)-1]

	switch cfg.Format {
	case config.FormatEmbedded:
		set := dataset.Embedded()
		trainSet, testSet = set.Limit(cfg.TrainSamples), set.Limit(cfg.TestSamples)
	case config.FormatFlat:
		err = withFile(cfg.TrainFile, func(f *os.File) (err error) {
			trainSet, err = dataset.LoadFlat(f, nIn, nOut, cfg.TrainSamples)
			return err
		})
	case config.FormatIDX:
		trainSet, err = dataset.LoadIDX(cfg.TrainFile, cfg.TrainLabels, cfg.TrainSamples)
	case config.FormatCSV:
		err = withFile(cfg.TrainFile, func(f *os.File) (err error) {
			trainSet, err = dataset.LoadCSV(f, nIn, cfg.TrainSamples)
			return err
		})
	default:
		err = errors.Wrapf(config.ErrInvalid, "unknown format %q", cfg.Format)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "load training set")
	}

	if testSet == nil {
		testSet, err = loadTestSet(cfg.Format, cfg.TestFile, cfg.TestLabels, nIn, cfg.TestSamples)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := checkSet(trainSet, nIn, nOut); err != nil {
		return nil, nil, errors.Wrap(err, "training set")
	}
	if err := checkSet(testSet, nIn, nOut); err != nil {
		return nil, nil, errors.Wrap(err, "test set")
	}
	return trainSet, testSet, nil
}

// loadTestSet loads labelled examples. An empty file name yields an empty set
// except for the embedded format, which needs no file.
func loadTestSet(format, file, labels string, nIn, n int) (set *dataset.Set, err error) {
	if format == config.FormatEmbedded {
		return dataset.Embedded().Limit(n), nil
	}
	if file == "" {
		return &dataset.Set{}, nil
	}

	switch format {
	case config.FormatFlat:
		err = withFile(file, func(f *os.File) (err error) {
			set, err = dataset.LoadFlatLabeled(f, nIn, n)
			return err
		})
	case config.FormatIDX:
		set, err = dataset.LoadIDX(file, labels, n)
	case config.FormatCSV:
		err = withFile(file, func(f *os.File) (err error) {
			set, err = dataset.LoadCSV(f, nIn, n)
			return err
		})
	default:
		err = errors.Wrapf(config.ErrInvalid, "unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load test set")
	}
	return set, nil
}

func withFile(path string, fn func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	return fn(f)
}

// checkSet verifies every input has the network's input width and every label
// fits its output layer.
func checkSet(set *dataset.Set, nIn, nOut int) error {
	for i, in := range set.Inputs {
		if len(in) != nIn {
			return errors.Wrapf(dataset.ErrInvalid, "example %d has %d inputs, network expects %d", i, len(in), nIn)
		}
	}
	if set.Targets == nil && set.NumClasses() > nOut {
		return errors.Wrapf(dataset.ErrInvalid, "%d classes do not fit %d outputs", set.NumClasses(), nOut)
	}
	return nil
}
