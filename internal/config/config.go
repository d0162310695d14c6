// Package config loads the YAML run configuration used by the mlp command.
package config

import (
	"bytes"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/train"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Dataset formats.
const (
	FormatFlat     = "flat"
	FormatIDX      = "idx"
	FormatCSV      = "csv"
	FormatEmbedded = "embedded"
)

// Layers is a list of layer sizes. In YAML it may be written as a sequence
// or as a comma separated string such as "784,100,10".
type Layers []int

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Layers) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseLayers(value.Value)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}
	var sizes []int
	if err := value.Decode(&sizes); err != nil {
		return errors.Wrapf(ErrInvalid, "layers: %v", err)
	}
	*l = sizes
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l Layers) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// String formats the layers as a comma separated list.
func (l Layers) String() string {
	return strings.Join(lo.Map(l, func(s int, _ int) string { return strconv.Itoa(s) }), ",")
}

// ParseLayers parses a comma separated list of layer sizes.
func ParseLayers(s string) (Layers, error) {
	parts := lo.Compact(lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
	if len(parts) == 0 {
		return nil, errors.Wrap(ErrInvalid, "layers: empty list")
	}
	sizes := make(Layers, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalid, "layers: %q is not an integer", p)
		}
		sizes[i] = v
	}
	return sizes, nil
}

// Config captures the runtime knobs for a training run.
type Config struct {
	Layers       Layers  `yaml:"layers"`
	Activation   string  `yaml:"activation"`
	Init         string  `yaml:"init"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	LearningRate float32 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`
	Shuffle      string  `yaml:"shuffle"`

	Format       string `yaml:"format"`
	TrainFile    string `yaml:"train_file"`
	TrainLabels  string `yaml:"train_labels"`
	TestFile     string `yaml:"test_file"`
	TestLabels   string `yaml:"test_labels"`
	TrainSamples int    `yaml:"train_samples"`
	TestSamples  int    `yaml:"test_samples"`

	Output string `yaml:"output"`
}

// Overrides captures CLI supplied values. Zero values leave the config alone.
type Overrides struct {
	Layers       string
	Activation   string
	Init         string
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64
	Shuffle      string
	Format       string
	TrainFile    string
	TrainLabels  string
	TestFile     string
	TestLabels   string
	TrainSamples int
	TestSamples  int
	Output       string
}

// Default returns the configuration of the classic MNIST run: a 784-100-10
// sigmoid network trained for 30 epochs with batches of 10 and rate 1.0.
func Default() *Config {
	return &Config{
		Layers:       Layers{784, 100, 10},
		Activation:   nn.Sigmoid.String(),
		Init:         "legacy",
		Epochs:       30,
		BatchSize:    10,
		LearningRate: 1.0,
		Shuffle:      train.ShuffleFisherYates.String(),
		Format:       FormatFlat,
		Output:       "mnist.nn",
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected. The result
// is not validated.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.Layers != "" {
		layers, err := ParseLayers(o.Layers)
		if err != nil {
			return err
		}
		c.Layers = layers
	}
	if o.Activation != "" {
		c.Activation = o.Activation
	}
	if o.Init != "" {
		c.Init = o.Init
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = float32(o.LearningRate)
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Shuffle != "" {
		c.Shuffle = o.Shuffle
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.TrainFile != "" {
		c.TrainFile = o.TrainFile
	}
	if o.TrainLabels != "" {
		c.TrainLabels = o.TrainLabels
	}
	if o.TestFile != "" {
		c.TestFile = o.TestFile
	}
	if o.TestLabels != "" {
		c.TestLabels = o.TestLabels
	}
	if o.TrainSamples > 0 {
		c.TrainSamples = o.TrainSamples
	}
	if o.TestSamples > 0 {
		c.TestSamples = o.TestSamples
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	return nil
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalid, "config is nil")
	}
	if err := nn.ValidateSizes(c.Layers); err != nil {
		return errors.Wrapf(ErrInvalid, "layers %v: %v", c.Layers, err)
	}
	if _, err := nn.ParseActivation(c.Activation); err != nil {
		return errors.Wrapf(ErrInvalid, "activation: %v", err)
	}
	if _, err := nn.ParseInitializer(c.Init); err != nil {
		return errors.Wrapf(ErrInvalid, "init: %v", err)
	}
	if _, err := train.ParseShuffleMode(c.Shuffle); err != nil {
		return errors.Wrapf(ErrInvalid, "shuffle: %v", err)
	}
	if c.Epochs <= 0 {
		return errors.Wrapf(ErrInvalid, "epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return errors.Wrapf(ErrInvalid, "batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return errors.Wrapf(ErrInvalid, "learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.TrainSamples < 0 || c.TestSamples < 0 {
		return errors.Wrap(ErrInvalid, "sample limits must be >= 0")
	}
	return c.validateData()
}

func (c *Config) validateData() error {
	switch c.Format {
	case FormatEmbedded:
		return nil
	case FormatFlat, FormatCSV:
	case FormatIDX:
		if c.TrainFile != "" && c.TrainLabels == "" {
			return errors.Wrap(ErrInvalid, "idx format needs train_labels")
		}
		if c.TestFile != "" && c.TestLabels == "" {
			return errors.Wrap(ErrInvalid, "idx format needs test_labels")
		}
	default:
		return errors.Wrapf(ErrInvalid, "unknown format %q", c.Format)
	}
	if c.TrainFile == "" {
		return errors.Wrap(ErrInvalid, "train_file must be set")
	}
	return nil
}

// NewNetwork builds an untrained network from the layer sizes and initializer.
func (c *Config) NewNetwork(rng *rand.Rand) (*nn.Network, error) {
	init, err := nn.ParseInitializer(c.Init)
	if err != nil {
		return nil, err
	}
	return nn.NewNetwork(c.Layers, rng, init)
}

// TrainConfig converts c into trainer settings.
func (c *Config) TrainConfig(rng *rand.Rand, logger *log.Logger) (train.Config, error) {
	act, err := nn.ParseActivation(c.Activation)
	if err != nil {
		return train.Config{}, err
	}
	shuffle, err := train.ParseShuffleMode(c.Shuffle)
	if err != nil {
		return train.Config{}, err
	}
	return train.Config{
		Epochs:       c.Epochs,
		BatchSize:    c.BatchSize,
		LearningRate: c.LearningRate,
		Activation:   act,
		Rand:         rng,
		Shuffle:      shuffle,
		Logger:       logger,
	}, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
