package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newFakeS3(t *testing.T) (*s3Storage, *[]recordedRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"etag-1"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("key", "secret", ""),
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
	})
	return newS3Storage(client, "pdf-files"), &reqs
}

func TestS3Storage_Put(t *testing.T) {
	store, reqs := newFakeS3(t)

	info, err := store.Put(context.Background(), "1718000000123-report.pdf", strings.NewReader("%PDF-1.7"), PutObjectOptions{
		Size:        8,
		ContentType: "application/pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, "1718000000123-report.pdf", info.Key)
	assert.Equal(t, `"etag-1"`, info.ETag)
	assert.Equal(t, int64(8), info.Size)
	require.NotEmpty(t, *reqs)
	assert.Equal(t, http.MethodPut, (*reqs)[0].method)
	assert.Equal(t, "/pdf-files/1718000000123-report.pdf", (*reqs)[0].path)
}

func TestS3Storage_PutBuffersUnseekableReader(t *testing.T) {
	store, _ := newFakeS3(t)

	r := io.MultiReader(strings.NewReader("%PDF"), strings.NewReader("-1.7"))
	info, err := store.Put(context.Background(), "k.pdf", r, PutObjectOptions{Size: -1})

	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size)
}

func TestS3Storage_Delete(t *testing.T) {
	store, reqs := newFakeS3(t)

	require.NoError(t, store.Delete(context.Background(), "k.pdf"))
	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].method)
	assert.Equal(t, "/pdf-files/k.pdf", (*reqs)[0].path)
}

func TestS3Storage_PresignGet(t *testing.T) {
	store, reqs := newFakeS3(t)

	u, err := store.PresignGet(context.Background(), "k.pdf", 15*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, u, "/pdf-files/k.pdf")
	assert.Contains(t, u, "X-Amz-Expires=900")
	assert.Empty(t, *reqs, "presigning must not hit the network")
}
