package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"tourism/infras/s3"
	"tourism/shared/constant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ObjectName returns a random object name that keeps the original file extension.
func ObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))

	return uuid.NewString() + ext
}

// Image stores the file under directory. A nil header is a no-op returning empty values.
func Image(ctx context.Context, store s3.S3, bucket, directory string, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = ObjectName(header.Filename)

	url, err = store.UploadFile(ctx, bucket, directory, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Str("directory", directory).Msg("failed to upload image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

// Discard deletes an object by name. Failures are logged only.
func Discard(ctx context.Context, store s3.S3, bucket, directory, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := store.DeleteFile(ctx, bucket, directory, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to delete image")
	}
}

// DiscardURL deletes the object behind a public URL produced by Image.
func DiscardURL(ctx context.Context, store s3.S3, bucket, directory, url string) {
	if url == constant.Empty {
		return
	}

	objectKey := store.GetObjectNameFromURL(bucket, url)
	if objectKey == constant.Empty {
		return
	}

	Discard(ctx, store, bucket, directory, strings.TrimPrefix(objectKey, directory+"/"))
}
