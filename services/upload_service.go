// file: services/upload_service.go
package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/xFraylin/Hackong-ctf/utils"
)

const (
	uploadAttempts   = 3
	uploadRetryDelay = time.Second
)

// UploadService moves an administrator-supplied file into object storage and
// resolves its public URL. The upload is retried up to three times, one
// second apart; only the second and later attempts may overwrite an object
// already sitting at the generated key.
type UploadService struct {
	storage  ObjectStorage
	attempts int
	delay    time.Duration
}

func NewUploadService(storage ObjectStorage) *UploadService {
	return &UploadService{storage: storage, attempts: uploadAttempts, delay: uploadRetryDelay}
}

// UploadChallengeFile stores data under challenge_files/ and returns the
// public URL plus the SHA256 of the content. On failure the last underlying
// cause is reported and no object is referenced by any challenge record.
func (s *UploadService) UploadChallengeFile(originalName string, data []byte) (string, string, error) {
	key := "challenge_files/" + utils.GenerateObjectName(originalName)

	err := utils.Retry(s.attempts, s.delay, func(attempt int) error {
		return s.storage.Upload(key, bytes.NewReader(data), attempt > 1)
	})
	if err != nil {
		return "", "", fmt.Errorf("subida fallida tras %d intentos: %w", s.attempts, err)
	}

	sum := sha256.Sum256(data)
	return s.storage.PublicURL(key), hex.EncodeToString(sum[:]), nil
}
