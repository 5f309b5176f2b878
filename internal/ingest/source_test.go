package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string]string
	gotCfg  S3Config
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func withFakeS3(t *testing.T, f *fakeObjects) {
	t.Helper()
	orig := newS3Client
	newS3Client = func(_ context.Context, c S3Config) (objectGetter, error) {
		f.gotCfg = c
		return f, nil
	}
	t.Cleanup(func() { newS3Client = orig })
}

func TestOpenSource_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overview.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"A"}]`), 0o600))

	rc, err := OpenSource(context.Background(), path, S3Config{})
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"A"}]`, string(b))
}

func TestOpenSource_MissingFile(t *testing.T) {
	_, err := OpenSource(context.Background(), filepath.Join(t.TempDir(), "nope.json"), S3Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpenSource_S3(t *testing.T) {
	f := &fakeObjects{objects: map[string]string{"datasets/2024/overview.json": `[]`}}
	withFakeS3(t, f)

	cfg := S3Config{Region: "eu-north-1", BaseEndpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}
	rc, err := OpenSource(context.Background(), "s3://datasets/2024/overview.json", cfg)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
	assert.Equal(t, cfg, f.gotCfg)
}

func TestOpenSource_S3MissingObject(t *testing.T) {
	withFakeS3(t, &fakeObjects{objects: map[string]string{}})

	_, err := OpenSource(context.Background(), "s3://datasets/none.json", S3Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get object datasets/none.json")
}

func TestOpenSource_InvalidS3Location(t *testing.T) {
	withFakeS3(t, &fakeObjects{})

	for _, p := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, err := OpenSource(context.Background(), p, S3Config{})
		require.Error(t, err, p)
		assert.Contains(t, err.Error(), "invalid s3 location", p)
	}
}
