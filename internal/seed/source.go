package seed

import (
	"context"
	"fmt"
	"garage/internal/storage"
	"garage/internal/structures"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// maxSeedSize caps how much of a seed document is read.
const maxSeedSize = 16 << 20

// Source retrieves the raw seed document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

type FileSource struct {
	Path string
}

func (f *FileSource) Fetch(_ context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}

func (f *FileSource) Name() string { return "file:" + f.Path }

type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (h *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSeedSize))
}

func (h *HTTPSource) Name() string { return "http:" + h.URL }

// s3API is the part of *s3.Client the seed source uses.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Source struct {
	client s3API
	bucket string
	key    string
}

func NewS3Source(ctx context.Context, cfg structures.S3SeedConfig) (*S3Source, error) {
	awsCfg, err := storage.LoadAWSConfig(ctx, cfg.Region, cfg.AWSCredentials)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Source{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(io.LimitReader(out.Body, maxSeedSize))
}

func (s *S3Source) Name() string { return "s3://" + s.bucket + "/" + s.key }

// noSource never yields a seed; the store then starts from empty collections.
type noSource struct{}

func (noSource) Fetch(_ context.Context) ([]byte, error) {
	return nil, fmt.Errorf("seeding disabled")
}

func (noSource) Name() string { return "none" }

func NewSource(conf *structures.Config) (Source, error) {
	s := conf.Seed
	switch s.Driver {
	case "file":
		return &FileSource{Path: s.Path}, nil
	case "http":
		return NewHTTPSource(s.URL, s.Timeout), nil
	case "s3":
		src, err := NewS3Source(context.Background(), s.S3)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "none":
		return noSource{}, nil
	}
	return nil, fmt.Errorf("unknown seed driver %q", s.Driver)
}
