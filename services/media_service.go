package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/techagentng/ecotrack/config"
	apiError "github.com/techagentng/ecotrack/errors"
)

type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaService stores report images in object storage; the caller persists
// only the returned URL.
type MediaService interface {
	UploadReportImage(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
}

type mediaService struct {
	Config *config.Config
	client s3PutAPI
}

func NewMediaService(conf *config.Config) MediaService {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(conf.AwsRegion),
	)
	if err != nil {
		log.Printf("unable to load AWS config: %v", err)
	}
	return &mediaService{
		Config: conf,
		client: s3.NewFromConfig(cfg),
	}
}

func (s *mediaService) UploadReportImage(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		log.Printf("UploadReportImage read error: %v", err)
		return "", apiError.ErrValidation
	}

	// Shrink oversized uploads; reports don't need more than feed size.
	if resized, ok := resizeImage(data); ok {
		data = resized
		contentType = "image/jpeg"
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	}

	fileKey := fmt.Sprintf("reports/%d-%s-%s", time.Now().Unix(), uuid.New().String()[:8], filepath.Base(filename))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.Config.AwsS3Bucket,
		Key:         &fileKey,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		log.Printf("UploadReportImage put error: %v", err)
		return "", apiError.ErrPersistence
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Config.AwsS3Bucket, s.Config.AwsRegion, fileKey)
	return fileURL, nil
}

func resizeImage(data []byte) ([]byte, bool) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	if img.Bounds().Dx() <= 1080 {
		return nil, false
	}

	resized := imaging.Resize(img, 1080, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		log.Printf("resizeImage encode error: %v", err)
		return nil, false
	}
	return buf.Bytes(), true
}
