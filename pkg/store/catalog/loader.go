package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/warehouse-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const s3Scheme = "s3"

// ObjectGetter is the slice of the S3 client the loader needs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Option func(*Loader)

// WithS3Client overrides the client built from the default AWS config chain
func WithS3Client(client ObjectGetter) Option {
	return func(l *Loader) {
		l.s3 = client
	}
}

// Loader reads catalog documents from local files or s3://bucket/key locations
type Loader struct {
	mu sync.Mutex
	s3 ObjectGetter
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Load(ctx context.Context, location string) (*store.Catalog, error) {
	logger := zerolog.Ctx(ctx)

	format, err := formatOf(location)
	if err != nil {
		return nil, err
	}

	var r io.ReadCloser
	if strings.HasPrefix(location, s3Scheme+"://") {
		r, err = l.openS3(ctx, location)
	} else {
		r, err = os.Open(location)
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", location, err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			logger.Warn().Err(err).Str("catalog", location).Msg("failed to close catalog")
		}
	}()

	cat, err := Parse(r, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", location, err)
	}

	logger.Debug().
		Str("catalog", location).
		Int("warehouses", len(cat.Warehouses)).
		Msg("catalog loaded")
	return cat, nil
}

func (l *Loader) openS3(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URL(location)
	if err != nil {
		return nil, err
	}

	client, err := l.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3 object: %w", err)
	}
	return out.Body, nil
}

func (l *Loader) s3Client(ctx context.Context) (ObjectGetter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.s3 != nil {
		return l.s3, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	l.s3 = s3.NewFromConfig(cfg)
	return l.s3, nil
}

// Parse decodes a catalog in the given format ("yaml", "yml" or "json") and validates it.
// Scalars are decoded straight into the typed fields, so ids keep their literal text.
func Parse(r io.Reader, format string) (*store.Catalog, error) {
	var cat store.Catalog
	var err error
	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&cat)
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&cat)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := Validate(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func Validate(cat *store.Catalog) error {
	seen := make(map[string]struct{}, len(cat.Warehouses))
	for i, wh := range cat.Warehouses {
		if strings.TrimSpace(wh.ID) == "" {
			return fmt.Errorf("warehouse #%d: warehouse_id is required", i)
		}
		if _, dup := seen[wh.ID]; dup {
			return fmt.Errorf("duplicate warehouse %q", wh.ID)
		}
		seen[wh.ID] = struct{}{}

		products := make(map[string]struct{}, len(wh.Products))
		for _, p := range wh.Products {
			if p.ID == "" {
				return fmt.Errorf("warehouse %q: product_id is required", wh.ID)
			}
			if _, dup := products[p.ID]; dup {
				return fmt.Errorf("warehouse %q: duplicate product %q", wh.ID, p.ID)
			}
			if p.Quantity < 0 {
				return fmt.Errorf("warehouse %q: product %q quantity out of range: %d", wh.ID, p.ID, p.Quantity)
			}
			products[p.ID] = struct{}{}
		}
	}
	return nil
}

func formatOf(location string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(location)), ".")
	switch ext {
	case "yaml", "yml", "json":
		return ext, nil
	default:
		return "", fmt.Errorf("unsupported catalog format %q: expected .yaml, .yml or .json", ext)
	}
}

func parseS3URL(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 location %q: %w", location, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q: expected s3://bucket/key", location)
	}
	return bucket, key, nil
}
