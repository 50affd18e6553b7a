package seed

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository/mocks"
	"myflix-api/internal/storage"
)

const silenceCatalog = `{
  "movies": [
    {
      "Title": "Silence of the Lambs",
      "Plot": "A young FBI cadet must confide in an incarcerated cannibal.",
      "Genre": {"Name": "Thriller", "Description": "Thrillers keep you on edge."},
      "Director": {"Name": "Jonathan Demme", "Bio": "American director.", "Birth": "1944-02-22", "Death": "2017-04-26"},
      "Actors": ["Jodie Foster", "Anthony Hopkins"],
      "ImageURL": "silenceofthelambs.png",
      "Featured": true
    }
  ]
}`

const arrayCatalog = `[
  {"Title": "Inception", "Description": "A thief steals secrets through dreams.", "Genre": {"Name": "Sci-Fi"}, "Director": {"Name": "Christopher Nolan", "Birth": "1970-07-30"}},
  {"Title": "Heat", "Description": "A cop chases a crew of thieves.", "Genre": {"Name": "Crime"}, "Director": {"Name": "Michael Mann"}}
]`

type fakeObjects struct {
	objects map[string][]byte
	listed  []string
}

func (f *fakeObjects) ListObjects(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	f.listed = append(f.listed, bucket+"/"+prefix)
	var out []storage.ObjectInfo
	for key, data := range f.objects {
		out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
	}
	return out, nil
}

func (f *fakeObjects) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestParseCatalogWrappedObject(t *testing.T) {
	movies, err := ParseCatalog([]byte(silenceCatalog))
	require.NoError(t, err)
	require.Len(t, movies, 1)

	m := movies[0]
	assert.Equal(t, "Silence of the Lambs", m.Title)
	assert.Equal(t, "A young FBI cadet must confide in an incarcerated cannibal.", m.Description)
	assert.Equal(t, "Thriller", m.Genre.Name)
	assert.Equal(t, "silenceofthelambs.png", m.ImagePath)
	assert.True(t, m.Featured)
	assert.Equal(t, []string{"Jodie Foster", "Anthony Hopkins"}, m.Actors)
	require.NotNil(t, m.Director.Birth)
	assert.Equal(t, 1944, m.Director.Birth.Year())
	require.NotNil(t, m.Director.Death)
	assert.Equal(t, 2017, m.Director.Death.Year())
}

func TestParseCatalogBareArray(t *testing.T) {
	movies, err := ParseCatalog([]byte(arrayCatalog))
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, "Heat", movies[1].Title)
	assert.Nil(t, movies[1].Director.Birth)
	assert.Equal(t, []string{}, movies[1].Actors)
}

func TestParseCatalogRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"empty":         "   ",
		"not json":      "movies",
		"missing title": `[{"Description": "x"}]`,
		"missing plot":  `[{"Title": "Heat"}]`,
		"bad birth":     `[{"Title": "Heat", "Description": "x", "Director": {"Birth": "someday"}}]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestRunLocalFileCountsCreatedAndUpdated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(arrayCatalog), 0o644))

	movies := new(mocks.MovieRepository)
	movies.On("Upsert", ctx, mock.MatchedBy(func(m *domain.Movie) bool { return m.Title == "Inception" })).Return(true, nil)
	movies.On("Upsert", ctx, mock.MatchedBy(func(m *domain.Movie) bool { return m.Title == "Heat" })).Return(false, nil)

	result, err := NewSeeder(movies, nil, quietLogger()).Run(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, Result{Files: 1, Created: 1, Updated: 1}, result)
	movies.AssertExpectations(t)
}

func TestRunRemotePrefixReadsJSONObjects(t *testing.T) {
	ctx := context.Background()
	objects := &fakeObjects{objects: map[string][]byte{
		"catalog/classics.json": []byte(silenceCatalog),
		"catalog/README.md":     []byte("# not a catalog"),
	}}

	movies := new(mocks.MovieRepository)
	movies.On("Upsert", ctx, mock.AnythingOfType("*domain.Movie")).Return(true, nil).Once()

	result, err := NewSeeder(movies, objects, quietLogger()).Run(ctx, "s3://myflix-data/catalog/")
	require.NoError(t, err)

	assert.Equal(t, Result{Files: 1, Created: 1}, result)
	assert.Equal(t, []string{"myflix-data/catalog/"}, objects.listed)
	movies.AssertExpectations(t)
}

func TestRunRemoteSingleObject(t *testing.T) {
	ctx := context.Background()
	objects := &fakeObjects{objects: map[string][]byte{"movies.json": []byte(arrayCatalog)}}

	movies := new(mocks.MovieRepository)
	movies.On("Upsert", ctx, mock.AnythingOfType("*domain.Movie")).Return(false, nil).Twice()

	result, err := NewSeeder(movies, objects, quietLogger()).Run(ctx, "s3://myflix-data/movies.json")
	require.NoError(t, err)

	assert.Equal(t, Result{Files: 1, Updated: 2}, result)
	assert.Empty(t, objects.listed)
}

func TestRunRemoteWithoutStorage(t *testing.T) {
	movies := new(mocks.MovieRepository)
	_, err := NewSeeder(movies, nil, quietLogger()).Run(context.Background(), "s3://myflix-data/movies.json")
	assert.Error(t, err)
	movies.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRunStopsOnStoreError(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(arrayCatalog), 0o644))

	boom := errors.New("store down")
	movies := new(mocks.MovieRepository)
	movies.On("Upsert", ctx, mock.AnythingOfType("*domain.Movie")).Return(false, boom).Once()

	_, err := NewSeeder(movies, nil, quietLogger()).Run(ctx, path)
	assert.ErrorIs(t, err, boom)
	movies.AssertNumberOfCalls(t, "Upsert", 1)
}
