package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store stores blobs in a single S3 bucket. Objects are addressed by the
// bucket's public base URL so the stored URL resolves without presigning.
type S3Store struct {
	session   *session.Session
	bucket    string
	publicURL string
}

func NewS3Store(sess *session.Session, bucket, publicURL string) *S3Store {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, aws.StringValue(sess.Config.Region))
	}

	return &S3Store{
		session:   sess,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, contentType string) (PutResult, error) {
	counted := &countingReader{r: body}

	uploader := s3manager.NewUploader(s.session)
	if _, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Body:        counted,
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}); err != nil {
		return PutResult{}, err
	}

	return PutResult{
		URL:  fmt.Sprintf("%s/%s", s.publicURL, key),
		Size: counted.n,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s3.New(s.session).DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// Exists checks whether an object is already present in the bucket.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s3.New(s.session).HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == "NotFound" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
