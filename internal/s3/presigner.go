package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"itemboard/internal/config"
)

// FilePresigner hands out short-lived PUT URLs so avatar uploads go straight
// to object storage instead of through the API.
type FilePresigner struct {
	presignClient *s3.PresignClient
	endpoint      string
	bucket        string
}

func NewFilePresigner(cfg config.S3Config) (*FilePresigner, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               cfg.Endpoint,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &FilePresigner{
		presignClient: s3.NewPresignClient(client),
		endpoint:      cfg.Endpoint,
		bucket:        cfg.Bucket,
	}, nil
}

func (p *FilePresigner) PresignedUploadURL(ctx context.Context, objectKey string) (string, error) {
	req, err := p.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// ObjectURL is the public URL the avatar will have once uploaded.
func (p *FilePresigner) ObjectURL(objectKey string) string {
	return p.endpoint + "/" + p.bucket + "/" + objectKey
}
