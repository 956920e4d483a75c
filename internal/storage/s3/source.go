// Package s3 serves documents from an S3 bucket laid out like the local
// directory tree: one key prefix per provider, with a .txt sidecar object
// holding each document's extracted text.
package s3

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"rachunki/internal/config"
	"rachunki/internal/domain"
	"rachunki/internal/port"
)

type s3Source struct {
	client     *s3.Client
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

// providerPrefixes is ordered so listings, and with them logs and reports,
// come out the same on every run.
var providerPrefixes = []struct {
	dir      string
	provider domain.Provider
}{
	{"eon", domain.ProviderEON},
	{"pgnig", domain.ProviderPGNiG},
	{"mpwik", domain.ProviderMPWiK},
}

// NewSource creates an S3-backed DocumentSource.
func NewSource(cfg *config.S3Config) (port.DocumentSource, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &s3Source{
		client:     client,
		downloader: manager.NewDownloader(client),
		bucket:     cfg.Bucket,
		prefix:     strings.TrimSuffix(cfg.Prefix, "/"),
	}, nil
}

func (s *s3Source) List(ctx context.Context) ([]domain.SourceDocument, error) {
	var docs []domain.SourceDocument
	for _, pp := range providerPrefixes {
		provider := pp.provider
		prefix := pp.dir + "/"
		if s.prefix != "" {
			prefix = s.prefix + "/" + prefix
		}

		paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
			Bucket: aws.String(s.bucket),
			Prefix: aws.String(prefix),
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("listing s3 prefix %s: %w", prefix, err)
			}
			for _, obj := range page.Contents {
				key := aws.ToString(obj.Key)
				if strings.HasSuffix(key, "/") || strings.HasSuffix(key, ".txt") {
					continue
				}
				doc := domain.SourceDocument{
					Name:     path.Base(key),
					Path:     key,
					Provider: provider,
					Size:     aws.ToInt64(obj.Size),
				}
				if obj.LastModified != nil {
					doc.ModTime = *obj.LastModified
				}
				docs = append(docs, doc)
			}
		}
	}
	return docs, nil
}

func (s *s3Source) Text(ctx context.Context, doc domain.SourceDocument) (string, error) {
	key := sidecarKey(doc.Path)
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("downloading text %s: %w", key, err)
	}
	return string(buf.Bytes()), nil
}

// sidecarKey maps eon/invoice.pdf to eon/invoice.txt.
func sidecarKey(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + ".txt"
}
