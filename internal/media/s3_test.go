package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, _ := io.ReadAll(in.Body)
	f.body = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

var keyPattern = regexp.MustCompile(`^profile_images/2026/02/[0-9a-f-]{36}\.png$`)

func TestObjectKey(t *testing.T) {
	at := time.Date(2026, 2, 14, 23, 0, 0, 0, time.UTC)

	assert.Regexp(t, keyPattern, ObjectKey(at, "Avatar.PNG", "image/png"))
	assert.Regexp(t, keyPattern, ObjectKey(at, "avatar", "image/png"))

	a := ObjectKey(at, "a.png", "image/png")
	b := ObjectKey(at, "a.png", "image/png")
	assert.NotEqual(t, a, b)
}

func TestS3Uploader_Upload(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

	t.Run("returns public url of stored object", func(t *testing.T) {
		fake := &fakeS3{}
		u := &S3Uploader{client: fake, bucket: "media", baseURL: "https://cdn.example.com", now: now}

		url, err := u.Upload(context.Background(), Object{
			Name: "me.png", ContentType: "image/png", Size: 4, Body: strings.NewReader("data"),
		})
		require.NoError(t, err)

		require.NotNil(t, fake.input)
		assert.Equal(t, "media", *fake.input.Bucket)
		assert.Equal(t, "image/png", *fake.input.ContentType)
		assert.Equal(t, int64(4), *fake.input.ContentLength)
		assert.Equal(t, "data", fake.body)
		assert.Equal(t, "https://cdn.example.com/"+*fake.input.Key, url)
		assert.Regexp(t, keyPattern, *fake.input.Key)
	})

	t.Run("wraps storage errors", func(t *testing.T) {
		cause := errors.New("access denied")
		u := &S3Uploader{client: &fakeS3{err: cause}, bucket: "media", now: now}

		_, err := u.Upload(context.Background(), Object{Name: "x.png", ContentType: "image/png", Body: strings.NewReader("")})
		assert.ErrorIs(t, err, cause)
	})
}

// objectStore is a minimal S3 endpoint accepting path-style PutObject.
type objectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newObjectStore(t *testing.T) (*objectStore, *httptest.Server) {
	t.Helper()
	store := &objectStore{objects: map[string][]byte{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		store.mu.Lock()
		store.objects[r.URL.Path] = data
		store.mu.Unlock()
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return store, srv
}

func (s *objectStore) get(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	return data, ok
}

func TestS3Uploader_PlainHTTPEndpoint(t *testing.T) {
	store, srv := newObjectStore(t)
	payload := []byte("\x89PNG\r\n\x1a\n image bytes")

	u, err := NewS3Uploader(context.Background(), S3Config{
		Bucket:        "media",
		Region:        "us-east-1",
		Endpoint:      srv.URL,
		AccessKey:     "test-key",
		SecretKey:     "test-secret",
		PublicBaseURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		body io.Reader
	}{
		{"seekable body", bytes.NewReader(payload)},
		{"stream body", io.MultiReader(bytes.NewReader(payload[:4]), bytes.NewReader(payload[4:]))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := u.Upload(context.Background(), Object{
				Name:        "me.png",
				ContentType: "image/png",
				Size:        int64(len(payload)),
				Body:        tt.body,
			})
			require.NoError(t, err)

			key := strings.TrimPrefix(url, "https://cdn.example.com/")
			assert.True(t, strings.HasPrefix(key, KeyPrefix+"/"))

			stored, ok := store.get("/media/" + key)
			require.True(t, ok, "object %s not stored", key)
			assert.Equal(t, payload, stored)
		})
	}
}
