package s3

import (
	"context"
	"testing"

	"clinicore/internal/blob/core"
)

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestNewBuildsClientOffline(t *testing.T) {
	st, err := New(context.Background(), Config{
		Bucket:           "images",
		Endpoint:         "https://minio.local:9000",
		AccessKeyID:      "minio",
		SecretAccessKey:  "miniosecret",
		PathStyle:        true,
		DisableTLSVerify: true,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if st.Driver() != core.DriverS3 {
		t.Fatalf("driver = %s", st.Driver())
	}
}
