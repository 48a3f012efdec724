// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStore is the subset of object storage the API needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, r io.Reader, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   Alibaba OSS
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

// NewOSSServiceFromEnv reads ALI_OSS_ENDPOINT / ACCESS_KEY / SECRET_KEY / BUCKET
// and the optional ALI_OSS_SECURITY_TOKEN.
func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			zap.L().Warn("skip OSS location check", zap.String("bucket", bucketName))
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		zap.L().Info("OSS bucket ready", zap.String("bucket", bucketName), zap.String("location", loc))
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSService) PutObject(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, strings.TrimLeft(key, "/"))
}

// KeyFromPublicURL strips the bucket host from a URL produced by PublicURL.
func (s *OSSService) KeyFromPublicURL(u string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return strings.TrimPrefix(u, fmt.Sprintf("https://%s.%s/", s.BucketName, host))
}

/* =======================================================================
   Upload helpers
======================================================================= */

// BuildObjectKey makes a dated, collision-free key under prefix.
func BuildObjectKey(prefix, filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = sanitize(base)
	if base == "" {
		base = "file"
	}
	name := fmt.Sprintf("%s/%s-%s%s",
		time.Now().UTC().Format("2006/01/02"), base, uuid.NewString()[:8], strings.ToLower(path.Ext(filename)))
	if p := strings.Trim(prefix, "/"); p != "" {
		return p + "/" + name
	}
	return name
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return b.String()
}

// UploadImageAsWebP re-encodes data to WebP and stores it under prefix. Returns the
// public URL and object key.
func UploadImageAsWebP(ctx context.Context, store ObjectStore, data []byte, filename, prefix string, opt WebPOptions) (string, string, error) {
	webpData, err := ConvertToWebP(data, filename, opt)
	if err != nil {
		return "", "", err
	}
	base := strings.TrimSuffix(filename, path.Ext(filename))
	key := BuildObjectKey(prefix, base+".webp")
	if err := store.PutObject(ctx, key, bytes.NewReader(webpData), "image/webp"); err != nil {
		return "", "", err
	}
	return store.PublicURL(key), key, nil
}
