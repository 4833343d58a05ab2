package s3client

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const DefaultRegion = "ap-southeast-1"

// Init builds an S3 client from static AWS credentials.
func Init(awsAccessKey, awsSecretKey, region string) (s3iface.S3API, error) {
	if awsAccessKey == "" || awsSecretKey == "" {
		return nil, fmt.Errorf("AWS_ACCESS_KEY and AWS_SECRET_KEY must be set")
	}
	if region == "" {
		region = DefaultRegion
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(awsAccessKey, awsSecretKey, ""),
		Region:      aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s3.New(sess), nil
}

// GetObject retrieves an object from S3
func GetObject(s3Client s3iface.S3API, bucket, key string) ([]byte, error) {
	result, err := s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
