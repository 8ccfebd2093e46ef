// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package backblaze

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/kothar/go-backblaze"
	"github.com/rs/zerolog"

	"github.com/penny-vault/pvfmp/config"
)

var (
	ErrBucketNotFound = errors.New("bucket not found")
)

// Uploader copies snapshot files into a B2 bucket under Prefix
type Uploader struct {
	Prefix string

	credentials backblaze.Credentials
	bucketName  string
	bucket      *backblaze.Bucket
}

// New returns an uploader for the configured bucket, or nil when backblaze
// is not configured
func New(conf config.BackblazeConfig, prefix string) *Uploader {
	if conf.ApplicationID == "" || conf.ApplicationKey == "" || conf.Bucket == "" {
		return nil
	}

	return &Uploader{
		Prefix: prefix,
		credentials: backblaze.Credentials{
			KeyID:          conf.ApplicationID,
			ApplicationKey: conf.ApplicationKey,
		},
		bucketName: conf.Bucket,
	}
}

// ObjectName is the name fn is stored under in the bucket
func (uploader *Uploader) ObjectName(fn string) string {
	return path.Join(uploader.Prefix, filepath.Base(fn))
}

func (uploader *Uploader) Upload(ctx context.Context, fn string) error {
	logger := zerolog.Ctx(ctx).With().Str("BucketName", uploader.bucketName).Logger()

	if err := ctx.Err(); err != nil {
		return err
	}

	if uploader.bucket == nil {
		b2, err := backblaze.NewB2(uploader.credentials)
		if err != nil {
			logger.Error().Err(err).Msg("authorize backblaze failed")
			return err
		}

		bucket, err := b2.Bucket(uploader.bucketName)
		if err != nil {
			logger.Error().Err(err).Msg("lookup bucket failed")
			return err
		}

		if bucket == nil {
			logger.Error().Msg("bucket does not exist")
			return ErrBucketNotFound
		}

		uploader.bucket = bucket
	}

	reader, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer reader.Close()

	outName := uploader.ObjectName(fn)
	metadata := make(map[string]string)

	file, err := uploader.bucket.UploadFile(outName, metadata, reader)
	if err != nil {
		logger.Error().Err(err).Str("FileName", outName).Msg("save file to backblaze failed")
		return err
	}

	logger.Info().Str("FileName", file.Name).Int64("Size", file.ContentLength).Str("ID", file.ID).Msg("uploaded file to backblaze")
	return nil
}
