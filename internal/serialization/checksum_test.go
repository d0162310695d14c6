package serialization

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeChecksumReader verifies checksum computation from reader.
func TestComputeChecksumReader(t *testing.T) {
	data := []byte("test data for reader")
	checksum, err := ComputeChecksumReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ComputeChecksumReader failed: %v", err)
	}
	if checksum != sha256.Sum256(data) {
		t.Error("Reader checksum should match sha256.Sum256")
	}

	other, err := ComputeChecksumReader(bytes.NewReader([]byte("different data")))
	if err != nil {
		t.Fatalf("ComputeChecksumReader failed: %v", err)
	}
	if checksum == other {
		t.Error("Checksums should differ for different data")
	}
}

// TestValidateChecksum verifies checksum validation.
func TestValidateChecksum(t *testing.T) {
	checksum := sha256.Sum256([]byte("test data"))
	if err := ValidateChecksum(checksum, checksum); err != nil {
		t.Errorf("Expected no error for matching checksums, got: %v", err)
	}
	if err := ValidateChecksum(checksum, sha256.Sum256([]byte("other"))); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got: %v", err)
	}
}

func TestChecksumFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.nn")
	require.NoError(t, SaveNetworkFile(path, testNetwork(t, 3, 2)))

	sum, err := WriteChecksumFile(path)
	require.NoError(t, err)
	fileSum, err := FileChecksum(path)
	require.NoError(t, err)
	assert.Equal(t, fileSum, sum)

	sidecar, err := os.ReadFile(path + ChecksumSuffix)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(sidecar), "  model.nn\n"))
	assert.NoError(t, VerifyChecksumFile(path))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("1 ")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, errors.Is(VerifyChecksumFile(path), ErrChecksumMismatch))
}

func TestVerifyChecksumFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.nn")
	require.NoError(t, os.WriteFile(path, []byte("2 1 1"), 0o600))
	assert.True(t, errors.Is(VerifyChecksumFile(path), os.ErrNotExist))

	require.NoError(t, os.WriteFile(path+ChecksumSuffix, []byte("not-hex  model.nn\n"), 0o600))
	assert.True(t, errors.Is(VerifyChecksumFile(path), ErrMalformed))
}
