package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// PutObject uploads body to s3://bucket/key.
func (r *AWSRepositoryImpl) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	client, err := r.getServiceClient(ctx, "s3")
	if err != nil {
		return err
	}
	s3Client := client.(s3API)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s3Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error uploading s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// ObjectExists reports whether s3://bucket/key is present.
func (r *AWSRepositoryImpl) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	client, err := r.getServiceClient(ctx, "s3")
	if err != nil {
		return false, err
	}
	s3Client := client.(s3API)

	_, err = s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("error checking s3://%s/%s: %w", bucket, key, err)
}

// HeadObject não tem corpo de resposta, então o 404 pode chegar como NotFound
// tipado ou apenas como código de erro genérico.
func isNotFound(err error) bool {
	var notFound *s3Types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
