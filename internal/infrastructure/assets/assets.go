// Package assets resolves display image URLs for listings, farms and
// products. Production serves presigned URLs from an S3-compatible bucket;
// the static resolver hands out bundled placeholder URLs and doubles as the
// fallback when the bucket is unreachable.
package assets

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// assetRotation is the number of distinct logo/hero assets to rotate through.
const assetRotation = 4

// Static resolves every asset to a bundled placeholder URL.
type Static struct{}

func (Static) LogoURL(ctx context.Context, index int) string {
	return fmt.Sprintf("https://placehold.co/100x100?text=farm-logo-%d", index%assetRotation+1)
}

func (Static) HeroURL(ctx context.Context, index int) string {
	return fmt.Sprintf("https://placehold.co/800x400?text=farm-hero-%d", index%assetRotation+1)
}

func (Static) ProductURL(ctx context.Context, productID string) string {
	return "https://placehold.co/400x300?text=" + productID
}

// MinIO resolves assets to presigned URLs from an S3-compatible bucket,
// falling back to the static placeholders when presigning fails.
type MinIO struct {
	client   *minio.Client
	bucket   string
	expiry   time.Duration
	fallback Static
}

// Config holds the bucket connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinIO connects to the object store and verifies the bucket exists.
func NewMinIO(ctx context.Context, cfg Config) (*MinIO, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("assets: missing MinIO endpoint or credentials")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("assets: create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("assets: check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("assets: create bucket %q: %w", cfg.Bucket, err)
		}
	}

	log.Printf("[assets] serving images from bucket %q at %s", cfg.Bucket, cfg.Endpoint)
	return &MinIO{client: client, bucket: cfg.Bucket, expiry: 24 * time.Hour}, nil
}

func (m *MinIO) LogoURL(ctx context.Context, index int) string {
	return m.presign(ctx, fmt.Sprintf("farm-logo-%d.png", index%assetRotation+1),
		m.fallback.LogoURL(ctx, index))
}

func (m *MinIO) HeroURL(ctx context.Context, index int) string {
	return m.presign(ctx, fmt.Sprintf("farm-hero-%d.png", index%assetRotation+1),
		m.fallback.HeroURL(ctx, index))
}

func (m *MinIO) ProductURL(ctx context.Context, productID string) string {
	return m.presign(ctx, fmt.Sprintf("products/%s.png", productID),
		m.fallback.ProductURL(ctx, productID))
}

func (m *MinIO) presign(ctx context.Context, key, fallback string) string {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, m.expiry, nil)
	if err != nil {
		log.Printf("[assets] presign %s failed: %v", key, err)
		return fallback
	}
	return u.String()
}
