package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/domain"
)

type fakeS3 struct {
	put     []*s3.PutObjectInput
	deleted []string
	putErr  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = append(f.put, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploadAndDelete(t *testing.T) {
	client := &fakeS3{}
	store := newS3Store(client, &config.StorageConfig{
		Bucket:        "volley",
		PublicBaseURL: "https://cdn.example.com/",
	})

	url, err := store.Upload(context.Background(), "players", domain.Upload{
		Name:        "Photo.JPG",
		ContentType: "image/jpeg",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	require.NoError(t, err)
	require.Len(t, client.put, 1)

	key := aws.ToString(client.put[0].Key)
	assert.True(t, strings.HasPrefix(key, "players/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, "volley", aws.ToString(client.put[0].Bucket))
	assert.EqualValues(t, 4, aws.ToInt64(client.put[0].ContentLength))

	require.NoError(t, store.Delete(context.Background(), url))
	assert.Equal(t, []string{key}, client.deleted)
}

func TestUploadFailureIsUpstreamError(t *testing.T) {
	store := newS3Store(&fakeS3{putErr: errors.New("connection refused")}, &config.StorageConfig{Bucket: "volley"})

	_, err := store.Upload(context.Background(), "logos", domain.Upload{Name: "a.png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrUpload)
}

func TestDeleteForeignURL(t *testing.T) {
	client := &fakeS3{}
	store := newS3Store(client, &config.StorageConfig{
		Bucket:   "volley",
		Endpoint: "http://minio:9000",
	})

	err := store.Delete(context.Background(), "https://elsewhere.test/volley/a.png")
	assert.ErrorIs(t, err, ErrForeignURL)
	assert.Empty(t, client.deleted)

	require.NoError(t, store.Delete(context.Background(), "http://minio:9000/volley/players/a.png"))
	assert.Equal(t, []string{"players/a.png"}, client.deleted)
}
