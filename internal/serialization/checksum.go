package serialization

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ChecksumSuffix is appended to a network file's path to name its checksum file.
const ChecksumSuffix = ".sha256"

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader.
// This is useful for computing checksums of large files without loading them entirely into memory.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

// FileChecksum computes the SHA-256 checksum of the file at path.
func FileChecksum(path string) ([32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "open for checksum")
	}
	defer f.Close()

	sum, err := ComputeChecksumReader(f)
	if err != nil {
		return [32]byte{}, errors.Wrapf(err, "checksum %s", path)
	}
	return sum, nil
}

// WriteChecksumFile writes path's checksum to path+ChecksumSuffix in the
// "<hex>  <name>" layout understood by sha256sum.
func WriteChecksumFile(path string) ([32]byte, error) {
	sum, err := FileChecksum(path)
	if err != nil {
		return sum, err
	}
	line := fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum[:]), filepath.Base(path))
	if err := os.WriteFile(path+ChecksumSuffix, []byte(line), 0o644); err != nil { //nolint:gosec // checksum files are public
		return sum, errors.Wrap(err, "write checksum file")
	}
	return sum, nil
}

// VerifyChecksumFile recomputes path's checksum and compares it with the one
// stored next to it. It returns an error wrapping os.ErrNotExist when there is
// no checksum file and ErrChecksumMismatch when the contents changed.
func VerifyChecksumFile(path string) error {
	f, err := os.Open(path + ChecksumSuffix)
	if err != nil {
		return errors.Wrap(err, "open checksum file")
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "read checksum file")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return errors.Wrap(ErrMalformed, "empty checksum file")
	}
	raw, err := hex.DecodeString(fields[0])
	if err != nil || len(raw) != sha256.Size {
		return errors.Wrapf(ErrMalformed, "checksum %q", fields[0])
	}
	var stored [32]byte
	copy(stored[:], raw)

	computed, err := FileChecksum(path)
	if err != nil {
		return err
	}
	return errors.Wrap(ValidateChecksum(computed, stored), path)
}
