package entries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
)

// S3API is the part of *s3.Client the object store needs.
type S3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Record is the JSON document stored per entry.
type s3Record struct {
	Locality  string    `json:"locality"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
}

// S3Repository stores one JSON object per entry under a key prefix, in the
// manner of a document collection. Keys are "<prefix><id>.json"; with
// time-ordered IDs the lexicographic listing order is insertion order.
type S3Repository struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Repository(client S3API, bucket, prefix string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket, prefix: prefix}
}

func (r *S3Repository) key(id string) string {
	return r.prefix + id + ".json"
}

func (r *S3Repository) Create(ctx context.Context, entry *models.Entry) error {
	body, err := json.Marshal(s3Record{Locality: entry.Locality, Term: entry.Term, CreatedAt: entry.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key(entry.ID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (r *S3Repository) ListAll(ctx context.Context) ([]*models.Entry, error) {
	p := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(r.prefix),
	})

	result := make([]*models.Entry, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".json") {
				continue
			}
			e, err := r.get(ctx, key)
			if err != nil {
				return nil, err
			}
			result = append(result, e)
		}
	}
	return result, nil
}

// FindFirstByLocality scans the whole collection; there is no index.
func (r *S3Repository) FindFirstByLocality(ctx context.Context, locality string) (*models.Entry, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.Locality == locality {
			return e, nil
		}
	}
	return nil, common.ErrUnknown
}

func (r *S3Repository) get(ctx context.Context, key string) (*models.Entry, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	var rec s3Record
	if err := json.NewDecoder(out.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode object %s: %w", key, err)
	}

	id := strings.TrimSuffix(strings.TrimPrefix(key, r.prefix), ".json")
	return &models.Entry{ID: id, Locality: rec.Locality, Term: rec.Term, CreatedAt: rec.CreatedAt}, nil
}
