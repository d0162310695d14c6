package dataset

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// IDX magic numbers.
const (
	idxImagesMagic = 2051 // 0x00000803
	idxLabelsMagic = 2049 // 0x00000801
)

// maxIDXBytes bounds the pixel data an IDX header may announce.
const maxIDXBytes = 1 << 31

// LoadIDX loads MNIST images and labels from official IDX binary files.
// Pixels are normalized to [0, 1]. maxSamples > 0 limits the number of samples.
//
// Download MNIST from: http://yann.lecun.com/exdb/mnist/
func LoadIDX(imagesPath, labelsPath string, maxSamples int) (*Set, error) {
	images, err := os.Open(imagesPath)
	if err != nil {
		return nil, errors.Wrap(err, "open idx images")
	}
	defer images.Close()

	labels, err := os.Open(labelsPath)
	if err != nil {
		return nil, errors.Wrap(err, "open idx labels")
	}
	defer labels.Close()

	return ReadIDX(images, labels, maxSamples)
}

// ReadIDX is LoadIDX over readers.
func ReadIDX(images, labels io.Reader, maxSamples int) (*Set, error) {
	pixels, width, err := readIDXImages(images, maxSamples)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load images")
	}
	classes, err := readIDXLabels(labels, maxSamples)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load labels")
	}
	if len(pixels) != len(classes) {
		return nil, errors.Wrapf(ErrInvalid, "image count (%d) != label count (%d)", len(pixels), len(classes))
	}

	set := &Set{
		Inputs: make([][]float32, len(pixels)),
		Labels: make([]int, len(classes)),
	}
	for i, raw := range pixels {
		in := make([]float32, width)
		for j, p := range raw {
			in[j] = float32(p) / 255.0
		}
		set.Inputs[i] = in
		set.Labels[i] = int(classes[i])
	}
	return set, nil
}

// readIDXImages reads at most maxSamples images (all when maxSamples <= 0).
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func readIDXImages(r io.Reader, maxSamples int) ([][]byte, int, error) {
	var header struct {
		Magic, NumImages, NumRows, NumCols uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, 0, errors.Wrap(ErrTruncated, "idx image header")
	}
	if header.Magic != idxImagesMagic {
		return nil, 0, errors.Wrapf(ErrMalformed, "invalid magic number: got %d, want %d", header.Magic, idxImagesMagic)
	}
	imageSize := int(header.NumRows) * int(header.NumCols)
	if imageSize == 0 || uint64(imageSize)*uint64(header.NumImages) > maxIDXBytes {
		return nil, 0, errors.Wrapf(ErrInvalid, "idx header: %d images of %dx%d",
			header.NumImages, header.NumRows, header.NumCols)
	}

	count := int(header.NumImages)
	if maxSamples > 0 && count > maxSamples {
		count = maxSamples
	}
	images := make([][]byte, count)
	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(r, images[i]); err != nil {
			return nil, 0, errors.Wrapf(ErrTruncated, "failed to read image %d: %v", i, err)
		}
	}
	return images, imageSize, nil
}

// readIDXLabels reads at most maxSamples labels (all when maxSamples <= 0).
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func readIDXLabels(r io.Reader, maxSamples int) ([]byte, error) {
	var header struct {
		Magic, NumLabels uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(ErrTruncated, "idx label header")
	}
	if header.Magic != idxLabelsMagic {
		return nil, errors.Wrapf(ErrMalformed, "invalid magic number: got %d, want %d", header.Magic, idxLabelsMagic)
	}
	if header.NumLabels > maxIDXBytes {
		return nil, errors.Wrapf(ErrInvalid, "idx header: %d labels", header.NumLabels)
	}

	count := int(header.NumLabels)
	if maxSamples > 0 && count > maxSamples {
		count = maxSamples
	}
	labels := make([]byte, count)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, errors.Wrapf(ErrTruncated, "failed to read labels: %v", err)
	}
	return labels, nil
}
