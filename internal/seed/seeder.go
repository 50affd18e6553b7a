package seed

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"myflix-api/internal/repository"
	"myflix-api/internal/storage"
)

// Result counts the movies written by a seeding run.
type Result struct {
	Files   int
	Created int
	Updated int
}

// Seeder loads movie catalogs into the store. Movies are matched by title, ignoring
// case, so running a seed twice updates instead of duplicating.
type Seeder struct {
	movies  repository.MovieRepository
	objects storage.Service
	logger  *logrus.Logger
}

// NewSeeder builds a Seeder. objects may be nil when only local files are seeded.
func NewSeeder(movies repository.MovieRepository, objects storage.Service, logger *logrus.Logger) *Seeder {
	return &Seeder{
		movies:  movies,
		objects: objects,
		logger:  logger,
	}
}

// Run seeds from a local file path, an s3://bucket/key object, or every .json object
// under an s3://bucket/prefix/ location.
func (s *Seeder) Run(ctx context.Context, source string) (Result, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Result{}, fmt.Errorf("seed source is required")
	}

	files, err := s.read(ctx, source)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, f := range files {
		movies, err := ParseCatalog(f.data)
		if err != nil {
			return result, fmt.Errorf("%s: %w", f.name, err)
		}
		for i := range movies {
			created, err := s.movies.Upsert(ctx, &movies[i])
			if err != nil {
				return result, err
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		result.Files++
		s.logger.WithFields(logrus.Fields{
			"file":   f.name,
			"movies": len(movies),
		}).Info("seeded catalog file")
	}
	return result, nil
}

type catalogSource struct {
	name string
	data []byte
}

func (s *Seeder) read(ctx context.Context, source string) ([]catalogSource, error) {
	if !storage.IsRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return []catalogSource{{name: source, data: data}}, nil
	}

	if s.objects == nil {
		return nil, fmt.Errorf("object storage is not configured for %s", source)
	}
	bucket, key, err := storage.ParseLocation(source)
	if err != nil {
		return nil, err
	}

	keys := []string{key}
	if key == "" || strings.HasSuffix(key, "/") {
		objects, err := s.objects.ListObjects(ctx, bucket, key)
		if err != nil {
			return nil, err
		}
		keys = keys[:0]
		for _, obj := range objects {
			if strings.EqualFold(path.Ext(obj.Key), ".json") {
				keys = append(keys, obj.Key)
			}
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("no catalog files under %s", source)
		}
	}

	files := make([]catalogSource, 0, len(keys))
	for _, k := range keys {
		data, err := s.objects.Download(ctx, bucket, k)
		if err != nil {
			return nil, err
		}
		files = append(files, catalogSource{name: fmt.Sprintf("s3://%s/%s", bucket, k), data: data})
	}
	return files, nil
}
