package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubS3(t *testing.T, put func(in *s3.PutObjectInput) error) *awsconfig.LoadOptions {
	t.Helper()
	origLoad, origNew, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject = origLoad, origNew, origPut
	})

	var lo awsconfig.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		return &s3.Client{}
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		if err := put(in); err != nil {
			return nil, err
		}
		return &s3.PutObjectOutput{}, nil
	}
	return &lo
}

func seedUsers(t *testing.T, users UserDirectory, emails ...string) {
	t.Helper()
	for _, e := range emails {
		_, err := users.Register(context.Background(), RegisterInput{Email: e, Phone: "0811"})
		require.NoError(t, err)
	}
}

func TestExportUsers_WritesCSV(t *testing.T) {
	ctx := context.Background()
	f := newDirectoryFixture(t)
	seedUsers(t, f.users, "a@x.com", "b@x.com")
	require.NoError(t, f.users.ResetCredential(ctx, "a@x.com", []byte("secret")))

	dir := t.TempDir()
	svc := NewExportService(f.users, ExportOptions{Dir: dir}, nopLogger)

	res, err := svc.ExportUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "users_data.csv"), res.Path)
	assert.Equal(t, 2, res.Rows)
	assert.Empty(t, res.ObjectKey)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,email,phone,username,level,clicks,orders,balance,joinDate", lines[0])
	assert.Contains(t, lines[1], `"a@x.com","0811","a","Warrior","0","0","0"`)
	assert.NotContains(t, string(data), "secret")
}

func TestExportUsers_Empty(t *testing.T) {
	f := newDirectoryFixture(t)
	svc := NewExportService(f.users, ExportOptions{Dir: t.TempDir()}, nopLogger)

	res, err := svc.ExportUsers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Rows)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestExportUsers_UploadsToS3(t *testing.T) {
	ctx := context.Background()
	f := newDirectoryFixture(t)
	seedUsers(t, f.users, "a@x.com")

	var got *s3.PutObjectInput
	var body []byte
	lo := stubS3(t, func(in *s3.PutObjectInput) error {
		got = in
		var err error
		body, err = io.ReadAll(in.Body)
		return err
	})

	svc := NewExportService(f.users, ExportOptions{
		Dir:            t.TempDir(),
		S3Bucket:       "affiliatepro",
		S3Region:       "us-east-1",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3AccessKey:    "minio",
		S3SecretKey:    "minio123",
	}, nopLogger).(*exportService)
	svc.now = func() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }

	res, err := svc.ExportUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", lo.Region)
	require.NotNil(t, lo.Credentials)

	require.NotNil(t, got)
	assert.Equal(t, "affiliatepro", aws.ToString(got.Bucket))
	assert.Equal(t, res.ObjectKey, aws.ToString(got.Key))
	assert.Regexp(t, `^exports/2024/03/07/[0-9a-f-]{36}-users_data\.csv$`, res.ObjectKey)

	local, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, local, body)
}

func TestExportUsers_UploadFailure(t *testing.T) {
	f := newDirectoryFixture(t)
	seedUsers(t, f.users, "a@x.com")
	stubS3(t, func(in *s3.PutObjectInput) error { return errors.New("bucket gone") })

	svc := NewExportService(f.users, ExportOptions{
		Dir: t.TempDir(), S3Bucket: "b", S3Region: "us-east-1", S3BaseEndpoint: "http://127.0.0.1:9000",
	}, nopLogger)

	_, err := svc.ExportUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestExportUsers_LoadConfigFailure(t *testing.T) {
	f := newDirectoryFixture(t)
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	svc := NewExportService(f.users, ExportOptions{Dir: t.TempDir(), S3Bucket: "b"}, nopLogger)
	_, err := svc.ExportUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load-fail")
}
