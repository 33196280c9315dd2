package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessor_ShrinksToMaxSide(t *testing.T) {
	p := NewProcessor(0, 0)

	out, err := p.Process(bytes.NewReader(pngOf(t, 1024, 256)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxSide, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestProcessor_NeverUpscales(t *testing.T) {
	p := NewProcessor(512, 90)

	out, err := p.Process(bytes.NewReader(pngOf(t, 40, 100)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestProcessor_RejectsGarbage(t *testing.T) {
	_, err := NewProcessor(0, 0).Process(strings.NewReader("not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, httperr.ErrNotFound)

	body := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", ContentType, body))
	body[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestNewKey(t *testing.T) {
	a := NewKey(3, "clients", 9)
	b := NewKey(3, "clients", 9)

	assert.True(t, strings.HasPrefix(a, "companies/3/clients/9-"))
	assert.True(t, strings.HasSuffix(a, ".webp"))
	assert.NotEqual(t, a, b)
}

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	s := &S3Store{client: fake, bucket: "imgs"}
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.webp", ContentType, []byte("data")))
	assert.Equal(t, ContentType, fake.types["a.webp"])

	got, err := s.Get(ctx, "a.webp")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	_, err = s.Get(ctx, "nope.webp")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNewS3Store_BuildsClient(t *testing.T) {
	s := NewS3Store(S3Config{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "imgs",
		AccessKey: "k",
		SecretKey: "s",
	})
	assert.NotNil(t, s.client)
	assert.Equal(t, "imgs", s.bucket)
}
