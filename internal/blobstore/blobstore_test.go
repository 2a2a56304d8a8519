package blobstore

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

func TestClassify_NoSuchKey_ReturnsErrBlobNotFound(t *testing.T) {
	s := &Store{logger: zap.NewNop()}
	err := minio.ErrorResponse{Code: "NoSuchKey", Message: "key not found"}

	got := s.classify("submissions/1/source.py", err)
	if !errors.Is(got, domain.ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound, got %v", got)
	}
}

func TestClassify_OtherError_WrapsWithoutErrBlobNotFound(t *testing.T) {
	s := &Store{logger: zap.NewNop()}
	err := minio.ErrorResponse{Code: "InternalError", Message: "something else broke"}

	got := s.classify("submissions/1/source.py", err)
	if errors.Is(got, domain.ErrBlobNotFound) {
		t.Error("expected a non-not-found error to not be classified as ErrBlobNotFound")
	}
	if got == nil {
		t.Fatal("expected a non-nil error")
	}
}
