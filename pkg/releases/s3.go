package releases

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/errgroup"

	"github.com/webnotes/notesweb/pkg/backend"
)

// S3Client is the part of *s3.Client the source needs.
type S3Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Config locates release archives in a bucket.
type S3Config struct {
	Bucket         string `env:"RELEASES_S3_BUCKET"`
	Region         string `env:"RELEASES_S3_REGION" envDefault:"us-east-1"`
	Prefix         string `env:"RELEASES_S3_PREFIX" envDefault:"releases/latest/"`
	Endpoint       string `env:"RELEASES_S3_ENDPOINT"`
	BaseURL        string `env:"RELEASES_S3_BASE_URL"`
	AccessKeyID    string `env:"RELEASES_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"RELEASES_S3_SECRET_KEY"`
	ForcePathStyle bool   `env:"RELEASES_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// S3Source reports the latest release by checking that both archives
// exist under a prefix and returning their public URLs.
type S3Source struct {
	client  S3Client
	bucket  string
	prefix  string
	baseURL string
}

type S3Option func(*s3Options)

type s3Options struct {
	client        S3Client
	configOptions []func(*config.LoadOptions) error
}

// WithS3Client injects a client instead of building one from the
// environment.
func WithS3Client(c S3Client) S3Option {
	return func(o *s3Options) { o.client = c }
}

func WithS3ConfigOption(opt func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) { o.configOptions = append(o.configOptions, opt) }
}

func NewS3Source(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Source, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	var o s3Options
	for _, opt := range opts {
		opt(&o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, append(loadOpts, o.configOptions...)...)
		if err != nil {
			return nil, fmt.Errorf("releases: load aws config: %w", err)
		}
		client = s3.NewFromConfig(awsCfg, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	base := cfg.BaseURL
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Source{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: strings.TrimSuffix(base, "/") + "/",
	}, nil
}

func (s *S3Source) Latest(ctx context.Context) (backend.Binaries, error) {
	var out backend.Binaries
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Intel, err = s.locate(ctx, IntelAsset)
		return err
	})
	g.Go(func() (err error) {
		out.Arm, err = s.locate(ctx, ArmAsset)
		return err
	})
	if err := g.Wait(); err != nil {
		return backend.Binaries{}, err
	}
	return out, nil
}

func (s *S3Source) locate(ctx context.Context, asset string) (string, error) {
	key := s.prefix + asset
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("releases: head %s: %w", key, err)
	}
	return s.baseURL + (&url.URL{Path: key}).EscapedPath(), nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
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
