package aws

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/repository"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// PublisherRepositoryImpl implementa o PublisherRepository com cache de config por profile.
type PublisherRepositoryImpl struct {
	cfgCache   map[string]aws.Config
	mu         sync.Mutex
	loadConfig func(ctx context.Context, profile string) (aws.Config, error)
	newS3      func(cfg aws.Config) s3API
	newSTS     func(cfg aws.Config) stsAPI
}

// NewPublisherRepository cria uma nova implementação do PublisherRepository.
func NewPublisherRepository() repository.PublisherRepository {
	return &PublisherRepositoryImpl{
		cfgCache:   make(map[string]aws.Config),
		loadConfig: loadDefaultConfig,
		newS3:      func(cfg aws.Config) s3API { return s3.NewFromConfig(cfg) },
		newSTS:     func(cfg aws.Config) stsAPI { return sts.NewFromConfig(cfg) },
	}
}

func loadDefaultConfig(ctx context.Context, profile string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

func (r *PublisherRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	cfg, err := r.loadConfig(ctx, profile)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profileName(profile), err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *PublisherRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return "", err
	}

	result, err := r.newSTS(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %s: %w", profileName(profile), err)
	}
	return aws.ToString(result.Account), nil
}

// Publish envia o relatório para s3://bucket/key e devolve essa localização.
func (r *PublisherRepositoryImpl) Publish(ctx context.Context, profile, bucket, key string, data []byte, contentType string) (string, error) {
	if bucket == "" {
		return "", types.ErrPublisherDisabled
	}

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return "", err
	}

	_, err = r.newS3(cfg).PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading report to s3://%s/%s: %w", bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func profileName(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}
