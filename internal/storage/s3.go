package storage

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Uploader writes scrape snapshots to an S3-compatible bucket.
type Uploader struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

// Config holds the S3-compatible storage settings.
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

func NewUploader(cfg Config) *Uploader {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(cfg.Region),
		Endpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey, cfg.SecretKey, "",
		),
	}))
	return &Uploader{client: s3.New(sess), bucket: cfg.Bucket, publicURL: cfg.PublicURL}
}

// UploadSnapshot stores a scrape result under snapshots/<jobID>.html and
// returns its public URL.
func (u *Uploader) UploadSnapshot(jobID string, body []byte) (string, error) {
	key := fmt.Sprintf("snapshots/%s.html", jobID)
	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload snapshot to S3: %v", err)
	}
	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}
