package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"snapfeed/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// provenanceTag marks every object stored by this service so uploads can be
// distinguished from assets placed in the bucket by other tools.
const provenanceTag = "source=backend-upload"

// Object describes a stored asset: the canonical name the provider stored it
// under (never equal to the client-supplied name, see uniqueObjectKey) and a
// publicly resolvable URL.
type Object struct {
	URL  string
	Name string
}

type Client struct {
	s3Client *s3.S3
	bucket   string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}

	// Ensure bucket exists (for MinIO)
	_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	if err != nil {
		_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3BucketName),
		})
	}

	return client, nil
}

// Upload stores the stream under a uniqueness-enforced name derived from
// suggestedName and returns the canonical name plus a public URL. It is
// at-most-once: the caller gets the error and no retry happens here.
func (c *Client) Upload(ctx context.Context, r io.Reader, suggestedName, contentType string) (*Object, error) {
	key := uniqueObjectKey(suggestedName)

	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(r),
		ContentType: aws.String(contentType),
		Tagging:     aws.String(provenanceTag),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return &Object{URL: c.objectURL(key), Name: key}, nil
}

// Delete removes a stored object. Used only for best-effort cleanup when the
// metadata insert fails after a successful upload.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}
	return nil
}

// uniqueObjectKey keeps the original base name for readability but appends a
// random suffix so concurrent uploads of the same file name never collide.
func uniqueObjectKey(suggestedName string) string {
	ext := path.Ext(suggestedName)
	base := strings.TrimSuffix(path.Base(suggestedName), ext)
	if base == "" || base == "." {
		base = "upload"
	}
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("posts/%s_%s%s", base, suffix, ext)
}

func (c *Client) objectURL(key string) string {
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "http"
		if c.s3Client.Config.DisableSSL == nil || !*c.s3Client.Config.DisableSSL {
			protocol = "https"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, c.bucket, key)
	}

	// AWS S3 URL format
	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
