package objectstore

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{name: "no trailing slash", base: "http://localhost:9000", want: "http://localhost:9000/civicreport/u1/a.jpg"},
		{name: "trailing slash", base: "http://localhost:9000/", want: "http://localhost:9000/civicreport/u1/a.jpg"},
		{name: "several trailing slashes", base: "https://cdn.example.com//", want: "https://cdn.example.com/civicreport/u1/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicURL(tt.base, "civicreport", "u1/a.jpg"))
		})
	}
}

func TestS3Presigner_PresignUpload(t *testing.T) {
	presigner, err := NewS3Presigner(context.Background(), Options{
		ServiceURL:    "http://localhost:9000",
		Region:        "us-east-1",
		AccessKey:     "minio",
		SecretKey:     "minio123",
		Bucket:        "civicreport",
		PublicURLBase: "http://cdn.local/",
	})
	require.NoError(t, err)

	raw, err := presigner.PresignUpload(context.Background(), "user-1/abc.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", parsed.Host)
	assert.Equal(t, "/civicreport/user-1/abc.png", parsed.Path, "path-style addressing")

	query := parsed.Query()
	assert.Equal(t, "900", query.Get("X-Amz-Expires"))
	assert.NotEmpty(t, query.Get("X-Amz-Signature"))
	assert.Contains(t, query.Get("X-Amz-Credential"), "minio/")

	assert.Equal(t, "http://cdn.local/civicreport/user-1/abc.png", presigner.PublicURL("user-1/abc.png"))
}
