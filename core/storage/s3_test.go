package storage

import "testing"

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		key  string
		want string
	}{
		{
			name: "cdn base",
			cfg:  S3Config{PublicBaseURL: "https://cdn.example.com/", Bucket: "b"},
			key:  "/hero/1.png",
			want: "https://cdn.example.com/hero/1.png",
		},
		{
			name: "custom endpoint",
			cfg:  S3Config{Endpoint: "http://localhost:9000", Bucket: "media"},
			key:  "hero/1.png",
			want: "http://localhost:9000/media/hero/1.png",
		},
		{
			name: "aws",
			cfg:  S3Config{Bucket: "media", Region: "eu-west-1"},
			key:  "hero/1.png",
			want: "https://media.s3.eu-west-1.amazonaws.com/hero/1.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicURL(tt.cfg, tt.key); got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	if _, err := NewS3Store(S3Config{Region: "us-east-1"}); err == nil {
		t.Fatal("expected error without bucket")
	}
}
