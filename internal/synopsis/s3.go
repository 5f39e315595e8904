package synopsis

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
)

const (
	keyPrefix     = "synopses/"
	DefaultURLTTL = 15 * time.Minute
)

type presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*presignedRequest, error)
}

// presignedRequest mirrors the URL part of the SDK's presign result.
type presignedRequest struct {
	URL string
}

type sdkPresigner struct {
	client *s3.PresignClient
}

func (p sdkPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*presignedRequest, error) {
	req, err := p.client.PresignGetObject(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	return &presignedRequest{URL: req.URL}, nil
}

// S3Resolver hands out short-lived links to synopsis PDFs stored at
// synopses/{id}.pdf in a bucket.
type S3Resolver struct {
	bucket    string
	ttl       time.Duration
	presigner presigner
}

// NewS3Resolver uses the default AWS credential chain.
func NewS3Resolver(ctx context.Context, bucket, region string, ttl time.Duration) (*S3Resolver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3ResolverFromClient(s3.NewFromConfig(cfg), bucket, ttl)
}

func NewS3ResolverFromClient(client *s3.Client, bucket string, ttl time.Duration) (*S3Resolver, error) {
	if bucket == "" {
		return nil, fmt.Errorf("synopsis bucket required")
	}
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	return &S3Resolver{
		bucket:    bucket,
		ttl:       ttl,
		presigner: sdkPresigner{client: s3.NewPresignClient(client)},
	}, nil
}

func ObjectKey(p domain.ProjectRecord) string {
	return keyPrefix + p.ID + ".pdf"
}

func (r *S3Resolver) Resolve(ctx context.Context, p domain.ProjectRecord) (Download, error) {
	name := FileName(p, "pdf")
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(r.bucket),
		Key:                        aws.String(ObjectKey(p)),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", name)),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		return Download{}, fmt.Errorf("presign synopsis %s: %w", p.ID, err)
	}
	return Download{RedirectURL: req.URL, FileName: name, ContentType: "application/pdf"}, nil
}
