// Package main provides the mlp command line driver.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/config"
	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/serialization"
	"github.com/born-ml/mlp/internal/train"
)

const version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("mlp: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "mlp %s\n", version)
		return nil
	case "train":
		return runTrain(args[1:], stdout, stderr)
	case "eval":
		return runEval(args[1:], stdout, stderr)
	case "predict":
		return runPredict(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		return errors.Errorf("unknown command %q (try \"mlp help\")", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mlp - feedforward neural networks trained with mini-batch SGD")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train a network and save it")
	fmt.Fprintln(w, "  eval       Count correct predictions of a saved network on a test set")
	fmt.Fprintln(w, "  predict    Print the output of a saved network for one input")
	fmt.Fprintln(w, "  version    Show version")
}

func runTrain(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML run configuration")
	var o config.Overrides
	fs.StringVar(&o.Layers, "layers", "", "Layer sizes, e.g. 784,100,10")
	fs.StringVar(&o.Activation, "activation", "", "Activation: sigmoid, tanh or relu")
	fs.StringVar(&o.Init, "init", "", "Initializer: legacy or xavier")
	fs.IntVar(&o.Epochs, "epochs", 0, "Number of training epochs")
	fs.IntVar(&o.BatchSize, "batch", 0, "Mini-batch size")
	fs.Float64Var(&o.LearningRate, "lr", 0, "Learning rate")
	fs.Int64Var(&o.Seed, "seed", 0, "Random seed (0 = time based)")
	fs.StringVar(&o.Shuffle, "shuffle", "", "Shuffle: fisher-yates, legacy or none")
	fs.StringVar(&o.Format, "format", "", "Dataset format: flat, idx, csv or embedded")
	fs.StringVar(&o.TrainFile, "train", "", "Training data file")
	fs.StringVar(&o.TrainLabels, "train-labels", "", "Training labels file (idx)")
	fs.StringVar(&o.TestFile, "test", "", "Test data file")
	fs.StringVar(&o.TestLabels, "test-labels", "", "Test labels file (idx)")
	fs.IntVar(&o.TrainSamples, "train-samples", 0, "Max training samples (0 = all)")
	fs.IntVar(&o.TestSamples, "test-samples", 0, "Max test samples (0 = all)")
	fs.StringVar(&o.Output, "o", "", "Where to save the trained network")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath, o)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	logger := log.New(stderr, fmt.Sprintf("[%s] ", runID[:8]), log.LstdFlags)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Printf("run %s: layers=%v activation=%s init=%s seed=%d", runID, cfg.Layers, cfg.Activation, cfg.Init, seed)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible training, not crypto

	trainSet, testSet, err := loadSets(cfg)
	if err != nil {
		return err
	}
	logger.Printf("loaded %d training examples, %d test examples", trainSet.NumSamples(), testSet.NumSamples())

	net, err := cfg.NewNetwork(rng)
	if err != nil {
		return err
	}
	defer net.Release()

	tc, err := cfg.TrainConfig(rng, logger)
	if err != nil {
		return err
	}
	tc.Test = testSet.Labeled()
	tc.OnEpoch = func(r train.EpochReport) {
		logger.Printf("epoch %d: loss=%.6f %.0f examples/s (%v)", r.Epoch, r.Loss, r.ExamplesPerSec, r.Duration.Round(time.Millisecond))
	}

	res, err := train.Run(net, trainSet.Examples(net.OutputSize()), tc)
	if err != nil {
		return err
	}

	if err := serialization.SaveNetworkFile(cfg.Output, net); err != nil {
		return err
	}
	sum, err := serialization.WriteChecksumFile(cfg.Output)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "final loss: %.6f\n", res.FinalLoss())
	if last := res.Epochs[len(res.Epochs)-1]; last.Evaluated {
		fmt.Fprintf(stdout, "test accuracy: %d/%d (%.2f%%)\n", last.Passed, last.Total, last.Accuracy()*100)
	}
	fmt.Fprintf(stdout, "saved %s (sha256 %x)\n", cfg.Output, sum)
	return nil
}

func runEval(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modelPath := fs.String("model", "mnist.nn", "Saved network")
	activation := fs.String("activation", "sigmoid", "Activation the network was trained with")
	format := fs.String("format", config.FormatFlat, "Dataset format: flat, idx, csv or embedded")
	testFile := fs.String("test", "", "Test data file")
	testLabels := fs.String("test-labels", "", "Test labels file (idx)")
	samples := fs.Int("samples", 0, "Max test samples (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	act, err := nn.ParseActivation(*activation)
	if err != nil {
		return err
	}
	net, err := loadModel(*modelPath, stderr)
	if err != nil {
		return err
	}
	defer net.Release()

	set, err := loadTestSet(*format, *testFile, *testLabels, net.InputSize(), *samples)
	if err != nil {
		return err
	}
	if set.NumSamples() == 0 {
		return errors.New("eval: no test examples")
	}
	if err := checkSet(set, net.InputSize(), net.OutputSize()); err != nil {
		return err
	}

	passed := train.Evaluate(net, set.Labeled(), act)
	fmt.Fprintf(stdout, "%d/%d passing (%.2f%%)\n", passed, set.NumSamples(), 100*float64(passed)/float64(set.NumSamples()))
	return nil
}

func runPredict(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modelPath := fs.String("model", "mnist.nn", "Saved network")
	activation := fs.String("activation", "sigmoid", "Activation the network was trained with")
	inputPath := fs.String("input", "-", "File holding the input values (- = stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	act, err := nn.ParseActivation(*activation)
	if err != nil {
		return err
	}
	net, err := loadModel(*modelPath, stderr)
	if err != nil {
		return err
	}
	defer net.Release()

	var r io.Reader = os.Stdin
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		r = f
	}
	input := make([]float32, net.InputSize())
	if err := matrix.NewDecoder(r).Floats("input", input); err != nil {
		return errors.Wrap(err, "read input")
	}

	out := net.Forward(input, act)
	defer out.Release()
	if err := matrix.Print(stdout, out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "predicted class: %d\n", matrix.ArgMax(out))
	return nil
}

// loadConfig reads the optional YAML file, applies flag overrides and
// validates the result.
func loadConfig(path string, o config.Overrides) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if cfg, err = config.Parse(data); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.ApplyOverrides(o); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadModel reads a saved network, verifying its checksum file when present.
func loadModel(path string, stderr io.Writer) (*nn.Network, error) {
	switch err := serialization.VerifyChecksumFile(path); {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(stderr, "warning: no checksum file for %s\n", path)
	case err != nil:
		return nil, err
	}
	return serialization.LoadNetworkFile(path)
}
