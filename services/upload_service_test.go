// file: services/upload_service_test.go
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploader(storage ObjectStorage) *UploadService {
	svc := NewUploadService(storage)
	svc.delay = time.Millisecond
	return svc
}

func TestUploadChallengeFileFirstTry(t *testing.T) {
	storage := &flakyStorage{}
	svc := newTestUploader(storage)

	payload := []byte("contenido del reto")
	url, checksum, err := svc.UploadChallengeFile("pista.zip", payload)
	require.NoError(t, err)

	assert.Equal(t, 1, storage.calls)
	assert.Equal(t, []bool{false}, storage.overwrites)
	assert.True(t, strings.HasPrefix(url, "http://test/files/challenge_files/"))
	assert.True(t, strings.HasSuffix(url, ".zip"))

	sum := sha256.Sum256(payload)
	assert.Equal(t, hex.EncodeToString(sum[:]), checksum)
	assert.Equal(t, payload, storage.data.Bytes())
}

func TestUploadChallengeFileRetriesWithOverwrite(t *testing.T) {
	storage := &flakyStorage{failures: 2}
	svc := newTestUploader(storage)

	_, _, err := svc.UploadChallengeFile("pista.zip", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, 3, storage.calls)
	// Only the first attempt insists on a fresh object.
	assert.Equal(t, []bool{false, true, true}, storage.overwrites)
}

func TestUploadChallengeFileGivesUpAfterThree(t *testing.T) {
	storage := &flakyStorage{failures: 5}
	svc := newTestUploader(storage)

	_, _, err := svc.UploadChallengeFile("pista.zip", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, 3, storage.calls)
}

func TestUploadChallengeFileKeysAreUnique(t *testing.T) {
	storage := &flakyStorage{}
	svc := newTestUploader(storage)

	url1, _, err := svc.UploadChallengeFile("pista.zip", []byte("a"))
	require.NoError(t, err)
	url2, _, err := svc.UploadChallengeFile("pista.zip", []byte("a"))
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2)
}
