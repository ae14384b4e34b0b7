package archive

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mirzahilmi/amtrak-trains/internal/common/config"
	"github.com/mirzahilmi/amtrak-trains/internal/common/constant"
	"github.com/mirzahilmi/amtrak-trains/internal/trainsdata"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingBucket = errors.New("archive: no bucket configured")
	ErrInvalidKey    = errors.New("archive: secret key must be base64 of 32 bytes")
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Snapshot struct {
	ID     ulid.ULID
	Bucket string
	Key    string
	Size   int
}

// Archive stores decrypted collections, encrypted at rest with a customer
// provided key.
type Archive struct {
	client    ObjectPutter
	bucket    string
	prefix    string
	secretKey string
	digest    string
}

func New(client ObjectPutter, s3cfg config.S3, cfg config.Archive) (*Archive, error) {
	if s3cfg.DefaultBucket == "" {
		return nil, ErrMissingBucket
	}
	digest, err := KeyDigest(cfg.SecretKey)
	if err != nil {
		return nil, err
	}
	return &Archive{
		client:    client,
		bucket:    s3cfg.DefaultBucket,
		prefix:    cfg.Prefix,
		secretKey: cfg.SecretKey,
		digest:    digest,
	}, nil
}

// NewS3Client builds a path-style client for S3 compatible storage.
func NewS3Client(cfg config.S3) *s3.Client {
	// deprecated, but minio and friends still need it. https://github.com/minio/docs/issues/406#issuecomment-1246316964
	resolver := aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
		return aws.Endpoint{
			PartitionID:       "aws",
			URL:               cfg.URL,
			SigningRegion:     cfg.DefaultRegion,
			HostnameImmutable: true,
		}, nil
	})
	return s3.NewFromConfig(aws.Config{
		Region: cfg.DefaultRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyId,
			cfg.SecretAccessKey,
			"",
		),
		EndpointResolver: resolver,
	}, func(o *s3.Options) {
		o.UsePathStyle = true
	})
}

// KeyDigest returns the base64 MD5 of a base64 SSE-C key, as S3 expects in
// the x-amz-server-side-encryption-customer-key-MD5 header.
func KeyDigest(secretKey string) (string, error) {
	keyRaw, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil || len(keyRaw) != 32 {
		return "", ErrInvalidKey
	}
	sum := md5.Sum(keyRaw)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// ObjectKey lays snapshots out by UTC day of the run.
func (a *Archive) ObjectKey(id ulid.ULID) string {
	t := ulid.Time(id.Time()).UTC()
	return path.Join(a.prefix, t.Format("2006/01/02"), id.String()+constant.ARCHIVE_EXTENSION)
}

func (a *Archive) Put(ctx context.Context, id ulid.ULID, fc *trainsdata.FeatureCollection) (Snapshot, error) {
	if fc == nil || len(fc.Raw) == 0 {
		return Snapshot{}, trainsdata.ErrNoFeatures
	}
	key := a.ObjectKey(id)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Key:         aws.String(key),
		Body:        bytes.NewReader(fc.Raw),
		ContentType: aws.String(constant.ARCHIVE_CONTENT_TYPE),
		Metadata: map[string]string{
			"run":      id.String(),
			"features": fmt.Sprint(len(fc.Features)),
		},

		Bucket:               aws.String(a.bucket),
		SSECustomerAlgorithm: aws.String(constant.SSE_ALGORITHM),
		SSECustomerKey:       aws.String(a.secretKey),
		SSECustomerKeyMD5:    aws.String(a.digest),
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("archive: put %s: %w", key, err)
	}

	log.Info().Str("bucket", a.bucket).Str("key", key).Int("features", len(fc.Features)).Msg("archived snapshot")
	return Snapshot{ID: id, Bucket: a.bucket, Key: key, Size: len(fc.Raw)}, nil
}
