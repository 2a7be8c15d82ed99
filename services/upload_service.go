package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"phantoms-store/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const maxUploadNameLen = 100

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
	"video/mp4":  {},
}

type UploadOptions struct {
	Bucket        string
	PublicBaseURL string
	Expiry        time.Duration
}

// UploadService hands out presigned S3 PUT URLs for product media.
type UploadService interface {
	PresignUpload(ctx context.Context, principal models.Principal, req models.PresignRequest) (*models.PresignResponse, error)
}

type uploadService struct {
	presigner *s3.PresignClient
	opts      UploadOptions
	now       func() time.Time
}

// NewUploadService returns a service that answers 503 when presigner is nil.
func NewUploadService(presigner *s3.PresignClient, opts UploadOptions) UploadService {
	if opts.Expiry <= 0 {
		opts.Expiry = 15 * time.Minute
	}
	return &uploadService{
		presigner: presigner,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *uploadService) PresignUpload(ctx context.Context, principal models.Principal, req models.PresignRequest) (*models.PresignResponse, error) {
	if s.presigner == nil || s.opts.Bucket == "" {
		return nil, models.ErrorServiceUnavailable{Message: "uploads are not configured"}
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if _, ok := allowedUploadTypes[contentType]; !ok {
		return nil, models.ErrorValidation{Message: fmt.Sprintf("content type %q is not allowed", req.ContentType)}
	}

	key := fmt.Sprintf("uploads/%s/%s-%s",
		sanitizeFilename(principal.UserID), uuid.NewString(), sanitizeFilename(req.Filename))

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.opts.Expiry
	})
	if err != nil {
		return nil, models.ErrorUpstream{Message: "failed to presign upload", Err: err}
	}

	headers := make(map[string]string, len(presigned.SignedHeader))
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &models.PresignResponse{
		UploadURL: presigned.URL,
		Key:       key,
		PublicURL: s.publicURL(key),
		Headers:   headers,
		ExpiresAt: s.now().Add(s.opts.Expiry),
	}, nil
}

func (s *uploadService) publicURL(key string) string {
	if s.opts.PublicBaseURL != "" {
		return strings.TrimRight(s.opts.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.opts.Bucket, key)
}

// sanitizeFilename keeps letters, digits, dot, dash and underscore.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))

	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	out := strings.Trim(b.String(), ".-")
	if len(out) > maxUploadNameLen {
		out = out[len(out)-maxUploadNameLen:]
	}
	if out == "" {
		return "file"
	}
	return out
}
