package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/domain"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string]string
	headErr error
	puts    []*s3.PutObjectInput
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string]string{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = string(body)
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.objects[*in.Key]; ok {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, &types.NotFound{}
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

type fakePresigner struct {
	expires time.Duration
	err     error
}

func (p *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if p.err != nil {
		return nil, p.err
	}
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	p.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + *in.Bucket + "/" + *in.Key + "?X-Amz-Signature=abc"}, nil
}

func newService(signed bool) (*S3Service, *fakeObjects, *fakePresigner) {
	objects := newFakeObjects()
	presigner := &fakePresigner{}
	svc := NewS3ServiceWithClient(objects, presigner, S3Options{
		BucketName: "heey-assets",
		SignedURLs: signed,
		URLExpiry:  time.Hour,
	}, nil)
	return svc, objects, presigner
}

func TestResolveURL_AbsolutePassesThrough(t *testing.T) {
	svc, _, presigner := newService(true)
	url, err := svc.ResolveURL(context.Background(), "https://cdn.example/a.jpg", domain.AssetImage)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/a.jpg", url)
	assert.Zero(t, presigner.expires)
}

func TestResolveURL_SignsBucketPaths(t *testing.T) {
	svc, _, presigner := newService(true)

	url, err := svc.ResolveURL(context.Background(), "o1.jpg", domain.AssetImage)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/heey-assets/images/o1.jpg?X-Amz-Signature=abc", url)
	assert.Equal(t, time.Hour, presigner.expires)

	url, err = svc.ResolveURL(context.Background(), "v1.mp4", domain.AssetVideo)
	require.NoError(t, err)
	assert.Contains(t, url, "/videos/v1.mp4")
}

func TestResolveURL_Public(t *testing.T) {
	svc, _, _ := newService(false)
	url, err := svc.ResolveURL(context.Background(), "/o1.jpg", domain.AssetImage)
	require.NoError(t, err)
	assert.Equal(t, "https://heey-assets.s3.amazonaws.com/images/o1.jpg", url)
}

func TestResolveURL_Failures(t *testing.T) {
	svc, _, presigner := newService(true)
	_, err := svc.ResolveURL(context.Background(), "", domain.AssetImage)
	assert.Error(t, err)

	presigner.err = errors.New("no credentials")
	_, err = svc.ResolveURL(context.Background(), "o1.jpg", domain.AssetImage)
	assert.ErrorContains(t, err, "no credentials")
}

func TestUpload(t *testing.T) {
	svc, objects, _ := newService(true)

	path, err := svc.Upload(context.Background(), strings.NewReader("jpeg"), "o1.jpg", "image/jpeg", domain.AssetImage)
	require.NoError(t, err)
	assert.Equal(t, "o1.jpg", path)
	assert.Equal(t, "jpeg", objects.objects["images/o1.jpg"])
	require.Len(t, objects.puts, 1)
	assert.Equal(t, "max-age=3600", *objects.puts[0].CacheControl)
	assert.Equal(t, "image/jpeg", *objects.puts[0].ContentType)

	_, err = svc.Upload(context.Background(), strings.NewReader("again"), "o1.jpg", "", domain.AssetImage)
	assert.ErrorIs(t, err, domain.ErrAssetExists)
	assert.Equal(t, "jpeg", objects.objects["images/o1.jpg"])
}

func TestUpload_HeadFailure(t *testing.T) {
	svc, objects, _ := newService(true)
	objects.headErr = errors.New("access denied")
	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "v.mp4", "", domain.AssetVideo)
	assert.ErrorContains(t, err, "access denied")
	assert.Empty(t, objects.puts)
}

func TestDelete(t *testing.T) {
	svc, objects, _ := newService(true)
	objects.objects["videos/v1.mp4"] = "data"

	require.NoError(t, svc.Delete(context.Background(), "v1.mp4", domain.AssetVideo))
	assert.NotContains(t, objects.objects, "videos/v1.mp4")

	assert.Error(t, svc.Delete(context.Background(), "https://cdn.example/v.mp4", domain.AssetVideo))
}

func TestThumbnailPath(t *testing.T) {
	assert.Equal(t, "projects/house_thumb.jpg", ThumbnailPath("projects/house.jpg"))
	assert.Equal(t, "a.b_thumb.png", ThumbnailPath("a.b.png"))
	assert.Equal(t, "dir.v2/file_thumb", ThumbnailPath("dir.v2/file"))
}
