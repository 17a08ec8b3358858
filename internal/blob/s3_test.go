package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func restoreS3() {
	loadDefaultAWSConfig = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
}

func TestNewS3(t *testing.T) {
	t.Cleanup(restoreS3)

	loadDefaultAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}
	_, err := NewS3(context.Background(), S3Options{Bucket: "b", Region: "us-east-1"})
	require.Error(t, err)

	loadDefaultAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	var applied s3.Options
	newS3ClientFromConfig = func(_ aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		for _, fn := range optFns {
			fn(&applied)
		}
		return &fakePutter{}
	}

	s, err := NewS3(context.Background(), S3Options{Bucket: "files", Region: "us-east-1", Endpoint: "http://minio:9000/"})
	require.NoError(t, err)
	require.Equal(t, "http://minio:9000/", aws.ToString(applied.BaseEndpoint))
	require.True(t, applied.UsePathStyle)
	require.Equal(t, "http://minio:9000/files", s.publicURL)

	s, err = NewS3(context.Background(), S3Options{Bucket: "files", Region: "eu-west-1"})
	require.NoError(t, err)
	require.Equal(t, "https://files.s3.eu-west-1.amazonaws.com", s.publicURL)

	s, err = NewS3(context.Background(), S3Options{Bucket: "files", PublicURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com", s.publicURL)
}

func TestS3Put(t *testing.T) {
	fp := &fakePutter{}
	s := &S3{client: fp, bucket: "files", publicURL: "https://cdn.example.com"}

	obj, err := s.Put(context.Background(), "1700000000000-cv.pdf", strings.NewReader("pdf"), 3, "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "s3://files/1700000000000-cv.pdf", obj.Path)
	require.Equal(t, "https://cdn.example.com/1700000000000-cv.pdf", obj.URL)
	require.Equal(t, "files", aws.ToString(fp.in.Bucket))
	require.Equal(t, "application/pdf", aws.ToString(fp.in.ContentType))
	require.EqualValues(t, 3, aws.ToInt64(fp.in.ContentLength))
	require.Equal(t, "pdf", fp.body)

	fp.err = errors.New("denied")
	_, err = s.Put(context.Background(), "k", strings.NewReader(""), -1, "")
	require.Error(t, err)
	require.Nil(t, fp.in.ContentLength)
}
