// Package storage generates presigned S3 upload URLs for product images and
// avatars. The rest of the system stores only the resulting URL strings.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Presigner issues presigned PUT URLs for direct-to-S3 uploads.
type Presigner struct {
	presign   *s3.PresignClient
	bucket    string
	publicURL string
}

// NewPresigner loads AWS config from the environment and returns a presigner
// for the given bucket. publicBase is the URL prefix of uploaded objects.
func NewPresigner(ctx context.Context, bucket, publicBase string) (*Presigner, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &Presigner{
		presign:   s3.NewPresignClient(client),
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

// PresignUpload returns a presigned PUT URL, the object key, and the public
// URL the object will have once uploaded.
func (p *Presigner) PresignUpload(ctx context.Context, folder, filename, contentType string, expires time.Duration) (string, string, string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	input := &s3.PutObjectInput{
		Bucket:      sdkaws.String(p.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}

	presigned, err := p.presign.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expires
	})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to presign put object: %w", err)
	}

	return presigned.URL, key, p.publicURL + "/" + key, nil
}
