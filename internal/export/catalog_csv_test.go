package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"course-catalog/internal/domain"
	"course-catalog/internal/embed"
	"course-catalog/internal/normalize"
	"course-catalog/internal/providers/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCourses() []domain.Course {
	return []domain.Course{
		{
			ID:               "c01",
			Title:            "Foundations of Biology",
			ShortDescription: "Cells and taxonomy.",
			FullDescription:  "Deep dive into the cell\nwith quizzes.",
			Category:         "Biology",
			Level:            "Beginner",
			Duration:         "4h 20m",
			Price:            "Free",
			VideoURL:         "https://drive.google.com/file/d/ABCDEFGHIJ1234/view",
			EmbedURL:         "https://drive.google.com/file/d/ABCDEFGHIJ1234/preview",
			Resources:        []domain.Resource{{Name: "Syllabus (PDF)", Href: "#"}, {Name: "Images (ZIP)", Href: "#"}},
		},
		{
			ID:        "c02",
			Title:     "Frontend Web Development",
			Category:  "Computer Science",
			Level:     "Intermediate",
			Price:     "$25",
			Resources: []domain.Resource{},
		},
	}
}

func TestWriteCatalogCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCatalogCSV(&buf, sampleCourses()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,title,short,fulldesc,category,level,duration,price,video_url,resources", lines[0])
	assert.Equal(t, "c01,Foundations of Biology,Cells and taxonomy.,Deep dive into the cell with quizzes.,Biology,Beginner,4h 20m,Free,https://drive.google.com/file/d/ABCDEFGHIJ1234/view,Syllabus (PDF)|#;Images (ZIP)|#", lines[1])
	assert.Equal(t, "c02,Frontend Web Development,,,Computer Science,Intermediate,,$25,,", lines[2])
}

func TestExportReparseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := sampleCourses()
	require.NoError(t, WriteCatalogCSV(&buf, in))

	n := normalize.New(embed.Strategy{Kind: embed.DriveEmbedStrategy}, normalize.RandomIDs)
	out := n.NormalizeAll(sheet.ParseCSV(buf.String()))
	require.Len(t, out, len(in))

	// newlines are flattened on export
	in[0].FullDescription = "Deep dive into the cell with quizzes."
	assert.Equal(t, in, out)
}

func TestWriteCatalogCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "catalog.csv")
	require.NoError(t, WriteCatalogCSVFile(path, sampleCourses()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,title,"))
}

func TestWriteCatalogCSVFileBadDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := WriteCatalogCSVFile(filepath.Join(blocker, "catalog.csv"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export: mkdir")
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a b  c", clean(" a\nb\r\nc "))
}
