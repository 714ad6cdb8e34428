package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"catalog-api/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string][]byte
	calls   []string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.calls = append(f.calls, key)

	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) (*model.CatalogSnapshot, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func gzipSnapshot(t *testing.T, snapshot *model.CatalogSnapshot) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snapshot))
	return buf.Bytes()
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"catalog-bucket/seeds/catalog.json.gz": gzipSnapshot(t, &model.CatalogSnapshot{
			Categories: []model.Category{{ID: 1, CategoryName: "Shoes"}},
		}),
		"catalog-bucket/seeds/broken.json.gz": []byte("not gzip"),
	}}
	loader := NewS3LoaderWithClient(client, "catalog-bucket", zerolog.Nop())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		snapshot, err := loader.Load(ctx, "seeds/catalog.json.gz")
		require.NoError(t, err)
		require.Len(t, snapshot.Categories, 1)
		assert.Equal(t, "Shoes", snapshot.Categories[0].CategoryName)
	})

	t.Run("Missing object", func(t *testing.T) {
		_, err := loader.Load(ctx, "seeds/missing.json.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket=catalog-bucket")
	})

	t.Run("Corrupt object", func(t *testing.T) {
		_, err := loader.Load(ctx, "seeds/broken.json.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read S3 object")
	})
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
			assert.Equal(t, "seeds/catalog.json.gz", path, "S3 key should have prefix")
			return &model.CatalogSnapshot{Tags: []model.Tag{{ID: 1}}}, nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "seeds/", zerolog.Nop())

	snapshot, err := fallback.Load(context.Background(), "catalog.json.gz")
	require.NoError(t, err)
	assert.Len(t, snapshot.Tags, 1)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
			assert.Equal(t, "catalog.json.gz", path, "local file path should not have prefix")
			return &model.CatalogSnapshot{Categories: []model.Category{{ID: 2}}}, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "seeds/", zerolog.Nop())

	snapshot, err := fallback.Load(context.Background(), "catalog.json.gz")
	require.NoError(t, err)
	assert.Len(t, snapshot.Categories, 1)
}

func TestFallbackLoader_NoS3(t *testing.T) {
	called := false
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
			called = true
			return &model.CatalogSnapshot{}, nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "seeds/", zerolog.Nop())

	_, err := fallback.Load(context.Background(), "catalog.json.gz")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	failing := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
			return nil, errors.New("unavailable: " + path)
		},
	}

	fallback := NewFallbackLoader(failing, failing, "seeds/", zerolog.Nop())

	_, err := fallback.Load(context.Background(), "catalog.json.gz")
	require.Error(t, err)
	assert.Equal(t, "unavailable: catalog.json.gz", err.Error())
}
