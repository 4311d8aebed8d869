// internal/services/catalog_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/vinyl-storefront/internal/config"
	"github.com/javajoker/vinyl-storefront/internal/models"
)

// CatalogLoader reads the catalog document from a file, an http(s) URL or
// an s3://bucket/key object.
type CatalogLoader struct {
	source     string
	timeout    time.Duration
	httpClient *http.Client
	awsConfig  config.AWSConfig
}

func NewCatalogLoader(cfg *config.Config) *CatalogLoader {
	return &CatalogLoader{
		source:     cfg.Catalog.Source,
		timeout:    cfg.Catalog.Timeout(),
		httpClient: &http.Client{},
		awsConfig:  cfg.AWS,
	}
}

func (l *CatalogLoader) Load(ctx context.Context) ([]models.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	body, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var doc models.CatalogDocument
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}
	return doc.Catalog, nil
}

func (l *CatalogLoader) open(ctx context.Context) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(l.source, "s3://"):
		return l.openS3(ctx)
	case strings.HasPrefix(l.source, "http://"), strings.HasPrefix(l.source, "https://"):
		return l.openHTTP(ctx)
	default:
		f, err := os.Open(l.source)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog file: %w", err)
		}
		return f, nil
	}
}

func (l *CatalogLoader) openHTTP(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch catalog: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (l *CatalogLoader) openS3(ctx context.Context) (io.ReadCloser, error) {
	u, err := url.Parse(l.source)
	if err != nil || u.Host == "" || strings.Trim(u.Path, "/") == "" {
		return nil, fmt.Errorf("invalid s3 catalog source %q", l.source)
	}

	awsCfg := &aws.Config{Region: aws.String(l.awsConfig.Region)}
	if l.awsConfig.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			l.awsConfig.AccessKeyID,
			l.awsConfig.SecretAccessKey,
			"",
		)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	out, err := s3.New(sess).GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog from S3: %w", err)
	}
	return out.Body, nil
}

// CatalogSource produces the catalog items; CatalogLoader is the production one.
type CatalogSource interface {
	Load(ctx context.Context) ([]models.CatalogItem, error)
}

// CatalogService owns the catalog loaded at start-up.
type CatalogService struct {
	source CatalogSource
	locale string

	mu      sync.RWMutex
	catalog *Catalog
}

func NewCatalogService(source CatalogSource, locale string) *CatalogService {
	return &CatalogService{source: source, locale: locale}
}

// Load fetches the catalog once. On failure the service stays unloaded;
// there is no retry.
func (s *CatalogService) Load(ctx context.Context) error {
	items, err := s.source.Load(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to load catalog")
		return err
	}

	s.Use(NewCatalog(items, s.locale))
	logrus.WithField("items", len(items)).Info("Catalog loaded")
	return nil
}

// Use installs an already built catalog.
func (s *CatalogService) Use(c *Catalog) {
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
}

func (s *CatalogService) Catalog() (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil, ErrCatalogNotLoaded
	}
	return s.catalog, nil
}

func (s *CatalogService) Loaded() bool {
	_, err := s.Catalog()
	return err == nil
}

// Find implements ItemFinder; an unloaded catalog finds nothing.
func (s *CatalogService) Find(id int) (models.CatalogItem, bool) {
	c, err := s.Catalog()
	if err != nil {
		return models.CatalogItem{}, false
	}
	return c.Find(id)
}

// Browse builds the view state for criteria and moves to the requested page.
func (s *CatalogService) Browse(criteria Criteria, page int) (*Storefront, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	view := NewStorefront(c)
	view.ApplyFilters(criteria)
	view.Paginator().Jump(page)
	return view, nil
}

func (s *CatalogService) GetItem(id int) (*models.CatalogItem, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	item, ok := c.Find(id)
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}
