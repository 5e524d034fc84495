// Package storage sube documentos generados a un almacenamiento S3 compatible
// (AWS S3, MinIO, R2) para el modo upload.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/internal/application/rendering"
	"github.com/jhoicas/docengine/pkg/config"
)

var _ rendering.BinaryStore = (*S3Store)(nil)

const contentTypePDF = "application/pdf"

// ObjectAPI subconjunto de *s3.Client que usa el store.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// Presigner subconjunto de *s3.PresignClient.
type Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store implementa rendering.BinaryStore.
type S3Store struct {
	api     ObjectAPI
	presign Presigner
	bucket  string
	prefix  string
	expiry  time.Duration
	log     zerolog.Logger
}

// Option configura el store.
type Option func(*S3Store)

// WithLogger asigna el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *S3Store) { s.log = log }
}

// WithPresignExpiry vigencia de las URLs firmadas.
func WithPresignExpiry(d time.Duration) Option {
	return func(s *S3Store) { s.expiry = d }
}

// WithPrefix prefijo de clave delante de cada ruta.
func WithPrefix(p string) Option {
	return func(s *S3Store) { s.prefix = strings.Trim(p, "/") }
}

// NewS3Store construye el cliente S3 desde la configuración. Sin claves se
// usa la cadena de credenciales por defecto del SDK.
func NewS3Store(ctx context.Context, cfg config.StorageConfig, opts ...Option) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: configuración AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	all := append([]Option{WithPresignExpiry(cfg.PresignExpiry), WithPrefix(cfg.Prefix)}, opts...)
	return NewS3StoreFromClients(client, s3.NewPresignClient(client), cfg.Bucket, all...), nil
}

// NewS3StoreFromClients construye el store sobre clientes ya creados.
func NewS3StoreFromClients(api ObjectAPI, presign Presigner, bucket string, opts ...Option) *S3Store {
	s := &S3Store{
		api:     api,
		presign: presign,
		bucket:  bucket,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.expiry <= 0 {
		s.expiry = time.Hour
	}
	return s
}

// EnsureBucket crea el bucket si no existe. Se llama al arrancar.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("storage: verificar bucket: %w", err)
	}

	s.log.Info().Str("bucket", s.bucket).Msg("creando bucket de documentos")
	_, err = s.api.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("storage: crear bucket: %w", err)
	}
	return nil
}

// Store sube data bajo p y devuelve una URL firmada de lectura.
func (s *S3Store) Store(ctx context.Context, p string, data []byte) (string, error) {
	key := s.key(p)
	if key == "" {
		return "", errors.New("storage: ruta vacía")
	}
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentTypePDF),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("storage: firmar %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("documento subido")
	return req.URL, nil
}

func (s *S3Store) key(p string) string {
	p = strings.TrimLeft(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return ""
	}
	if s.prefix == "" {
		return p
	}
	return s.prefix + "/" + p
}
