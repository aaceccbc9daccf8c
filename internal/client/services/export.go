package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/affiliatepro/internal/csvx"
	"github.com/dmitrijs2005/affiliatepro/internal/filex"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
)

const usersExportFile = "users_data.csv"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// ExportOptions says where exports go. S3 upload is skipped when S3Bucket
// is empty.
type ExportOptions struct {
	Dir            string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// ExportResult describes a finished export.
type ExportResult struct {
	Path      string
	Rows      int
	ObjectKey string
}

// ExportService writes the admin CSV exports.
type ExportService interface {
	ExportUsers(ctx context.Context) (*ExportResult, error)
}

type exportService struct {
	users  UserDirectory
	opts   ExportOptions
	logger logging.Logger
	now    func() time.Time
}

func NewExportService(users UserDirectory, opts ExportOptions, logger logging.Logger) ExportService {
	return &exportService{users: users, opts: opts, logger: logger, now: time.Now}
}

// ExportUsers writes every user (without credential fields) to
// users_data.csv in the export directory and uploads it when a bucket is
// configured.
func (e *exportService) ExportUsers(ctx context.Context) (*ExportResult, error) {
	users, err := e.users.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]csvx.Record, 0, len(users))
	for _, u := range users {
		records = append(records, u.CSVRecord())
	}
	data := []byte(csvx.Encode(records))

	dir, err := filex.EnsureDir(e.opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(dir, usersExportFile)
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return nil, err
	}
	res := &ExportResult{Path: path, Rows: len(records)}

	if e.opts.S3Bucket != "" {
		key, err := e.upload(ctx, usersExportFile, data)
		if err != nil {
			return nil, fmt.Errorf("upload export: %w", err)
		}
		res.ObjectKey = key
	}

	e.logger.Info(ctx, "users exported", "path", res.Path, "rows", res.Rows, "object_key", res.ObjectKey)
	return res, nil
}

func (e *exportService) objectKey(name string) string {
	d := e.now().UTC()
	return fmt.Sprintf("exports/%04d/%02d/%02d/%v-%s", d.Year(), d.Month(), d.Day(), uuid.New(), name)
}

func (e *exportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	optFns := []func(*config.LoadOptions) error{config.WithRegion(e.opts.S3Region)}
	if e.opts.S3AccessKey != "" {
		optFns = append(optFns, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.opts.S3AccessKey,
			e.opts.S3SecretKey,
			"",
		)))
	}
	cfg, err := loadDefaultAWSConfig(ctx, optFns...)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if e.opts.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(e.opts.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (e *exportService) upload(ctx context.Context, name string, data []byte) (string, error) {
	client, err := e.getS3Client(ctx)
	if err != nil {
		return "", err
	}

	key := e.objectKey(name)
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.opts.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}
