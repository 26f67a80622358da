/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package webcache provides an implementation of httpcache.Cache that stores
 * and retrieves data using Amazon S3. Cache misses and S3 failures are both
 * reported as misses; httpcache treats them identically, so callers degrade
 * to an origin fetch either way.
 */
package webcache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const objectPrefix = "webcache"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache uses. Init() sets it from the
	// default Config; callers may override it afterwards.
	Client *s3.Client

	bucketName string

	// gzip indicates whether cache entries are compressed in Set and
	// decompressed in Get. Compressed entry keys carry a ".gz" suffix.
	gzip bool

	logErrors bool

	ctx context.Context
}

// New returns a Cache backed by the named S3 bucket. Callers must invoke
// Init() on the returned Cache before use.
func New(ctx context.Context, bucketName string, gzipEntries bool,
	logErrors bool) *Cache {

	return &Cache{
		ctx:        ctx,
		bucketName: bucketName,
		gzip:       gzipEntries,
		logErrors:  logErrors,
	}
}

// Init loads AWS configuration from the default sources (environment,
// shared config/credentials files) and verifies the bucket is accessible.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("webcache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("webcache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if c.logErrors && !isNoSuchKey(err) {
			log.Printf("webcache.get: failed to get %v/%v: %v",
				c.bucketName, objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := io.ReadCloser(resp.Body)
	if c.gzip {
		rdr, err = gzip.NewReader(resp.Body)
		if err != nil {
			if c.logErrors {
				log.Printf("webcache.get: failed to open compressed %v/%v: %v",
					c.bucketName, objKey, err)
			}
			return nil, false
		}
		defer rdr.Close()
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		if c.logErrors {
			log.Printf("webcache.get: failed to read %v/%v: %v",
				c.bucketName, objKey, err)
		}
		return nil, false
	}

	return data, true
}

func (c *Cache) Set(key string, data []byte) {
	objKey := c.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		_, err := gw.Write(data)
		if err == nil {
			err = gw.Close()
		}
		if err != nil {
			if c.logErrors {
				log.Printf("webcache.set: failed to gzip data for %v/%v: %v",
					c.bucketName, objKey, err)
			}
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		if c.logErrors {
			log.Printf("webcache.set: put failed for %v/%v: %v",
				c.bucketName, objKey, err)
		}
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil && c.logErrors {
		log.Printf("webcache.delete: delete failed for %v/%v: %v",
			c.bucketName, objKey, err)
	}
}

// objectKey maps an httpcache key (a URL) onto a fixed-depth object name.
func (c *Cache) objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := fmt.Sprintf("/%v/%v", objectPrefix,
		hex.EncodeToString(sum[:]))
	if c.gzip {
		objKey += ".gz"
	}
	return objKey
}

// isNoSuchKey reports whether err just indicates a cache miss.
func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
