package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"clipgen/internal/ports"
)

// Client implements ports.StorageProvider on an S3 bucket. URLs use the
// virtual-hosted style, so objects are expected to be publicly readable.
type Client struct {
	s3     *awss3.Client
	bucket string
	region string
}

func NewClient(s3c *awss3.Client, bucket, region string) *Client {
	return &Client{s3: s3c, bucket: bucket, region: region}
}

func (c *Client) Provider() string { return "s3" }

func (c *Client) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	if in.ObjectKey == "" {
		return ports.PutObjectOutput{}, fmt.Errorf("s3: object_key is required")
	}

	_, err := c.s3.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(in.ObjectKey),
		Body:        in.Reader,
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		return ports.PutObjectOutput{}, fmt.Errorf("s3 upload failed: %w", err)
	}

	return ports.PutObjectOutput{
		ObjectKey: in.ObjectKey,
		URL:       fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, in.ObjectKey),
		Size:      in.Size,
	}, nil
}

func (c *Client) GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error) {
	out, err := c.s3.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, "", 0, err
	}

	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, contentType, size, nil
}
