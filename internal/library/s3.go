package library

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Options содержит настройки доступа к S3
type S3Options struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// s3API часть клиента S3, которая нужна источнику
type s3API interface {
	ListObjectsV2PagesWithContext(ctx aws.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, opts ...request.Option) error
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// S3Source источник из префикса бакета S3
type S3Source struct {
	client   s3API
	uploader uploaderAPI
	bucket   string
	prefix   string
}

// NewS3Source создает источник с AWS сессией
func NewS3Source(opts S3Options, bucket, prefix string) (*S3Source, error) {
	awsConfig := &aws.Config{
		Region: aws.String(opts.Region),
	}

	if opts.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")
	}

	// Если указан endpoint, добавляем его
	if opts.Endpoint != "" {
		awsConfig.Endpoint = aws.String(opts.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	src := newS3Source(s3.New(sess), bucket, prefix)
	src.uploader = s3manager.NewUploader(sess)
	return src, nil
}

func newS3Source(client s3API, bucket, prefix string) *S3Source {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Source) Location() string {
	return "s3://" + s.bucket + "/" + s.prefix
}

// Names возвращает ключи непосредственно под префиксом, без вложенных "каталогов"
func (s *S3Source) Names(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	var names []string
	var invalid string
	err := s.client.ListObjectsV2PagesWithContext(ctx, input, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.StringValue(obj.Key), s.prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			if !utf8.ValidString(name) {
				invalid = name
				return false
			}
			names = append(names, name)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка объектов S3: %w", err)
	}
	if invalid != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, invalid)
	}

	sort.Strings(names)
	return names, nil
}

// Open открывает объект под префиксом как поток
func (s *S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + name),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения объекта S3: %w", err)
	}
	return out.Body, nil
}

// ParseS3URL разбирает адрес s3://bucket/key на бакет и ключ (префикс)
func ParseS3URL(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, "s3://")
	if rest == location {
		return "", "", fmt.Errorf("адрес %q не начинается с s3://", location)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("в адресе %q не указан бакет", location)
	}
	return bucket, key, nil
}
