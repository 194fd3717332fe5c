// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package s3 mirrors backup workbooks to an S3 bucket, giving the Drive
// folder an off-site twin.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/sheetctl/sheetctl/internal/aws"
	"github.com/sheetctl/sheetctl/internal/log"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Mirror struct {
	client *s3v2.Client
	bucket string
	prefix string
}

// NewMirror builds an S3 mirror for the given bucket/prefix. Region and
// profile are optional overrides; the default chain applies otherwise.
func NewMirror(ctx context.Context, bucket, prefix, region, profile string) (*Mirror, error) {
	var opts []awsx.Option
	if region != "" {
		opts = append(opts, awsx.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, awsx.WithProfile(profile))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Mirror{
		client: awsx.NewS3(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (m *Mirror) String() string {
	return "s3://" + path.Join(m.bucket, m.prefix)
}

// Put uploads one workbook under the mirror prefix.
func (m *Mirror) Put(ctx context.Context, name string, body []byte) error {
	key := path.Join(m.prefix, name+".xlsx")

	_, err := m.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(m.bucket),
		Key:         awsv2.String(key),
		Body:        bytes.NewReader(body),
		ContentType: awsv2.String(workbookContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", m.bucket, key, err)
	}

	log.Infof("mirrored backup to s3://%s/%s", m.bucket, key)
	return nil
}
