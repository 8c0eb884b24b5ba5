// Package media stores uploaded images in S3-compatible object storage.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// KeyPrefix is the folder every uploaded profile image lands in.
const KeyPrefix = "profile_images"

type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
}

// Object is one file to store.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Uploader puts objects into one bucket and returns their public URL.
type S3Uploader struct {
	client  s3API
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		now:     time.Now,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, obj Object) (string, error) {
	key := ObjectKey(u.now(), obj.Name, obj.ContentType)

	// The SDK checksums the body before sending; over plain HTTP that
	// requires a seekable stream.
	body, ok := obj.Body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(obj.Body)
		if err != nil {
			return "", fmt.Errorf("read object %s: %w", key, err)
		}
		body = bytes.NewReader(data)
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Size > 0 {
		in.ContentLength = aws.Int64(obj.Size)
	}

	if _, err := u.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.baseURL + "/" + key, nil
}

// ObjectKey builds profile_images/YYYY/MM/<uuid><ext>. The extension comes
// from the file name, falling back to the content type.
func ObjectKey(at time.Time, name, contentType string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	at = at.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%s%s", KeyPrefix, at.Year(), int(at.Month()), uuid.NewString(), ext)
}
