package library

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatalf("Ошибка создания файла %s: %v", name, err)
		}
	}
}

func TestDirSourceNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.mp3", "a.flac", "c.ogg")
	if err := os.Mkdir(filepath.Join(dir, "covers"), 0755); err != nil {
		t.Fatalf("Ошибка создания каталога: %v", err)
	}

	names, err := NewDirSource(dir).Names(context.Background())
	if err != nil {
		t.Fatalf("Ошибка чтения каталога: %v", err)
	}

	expected := []string{"a.flac", "b.mp3", "c.ogg", "covers"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Ожидались имена %v, получено %v", expected, names)
	}
}

func TestDirSourceInvalidName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "ok.mp3", "bad-\xff.mp3")

	_, err := NewDirSource(dir).Names(context.Background())
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Ожидалась ErrInvalidName, получено %v", err)
	}
}

func TestDirSourceMissingDir(t *testing.T) {
	_, err := NewDirSource("/non/existent/music").Names(context.Background())
	if err == nil {
		t.Fatal("Ожидалась ошибка для несуществующего каталога")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
}

func TestDirSourceOpen(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "track.mp3")

	src := NewDirSource(dir)
	rc, err := src.Open(context.Background(), "track.mp3")
	if err != nil {
		t.Fatalf("Ошибка открытия файла: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "track.mp3" {
		t.Errorf("Неожиданное содержимое: %q", data)
	}
	if src.Path("track.mp3") != filepath.Join(dir, "track.mp3") {
		t.Errorf("Неожиданный путь: %s", src.Path("track.mp3"))
	}
}

func TestOpenLocalFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "x.mp3")

	rc, err := Open(context.Background(), filepath.Join(dir, "x.mp3"), S3Options{})
	if err != nil {
		t.Fatalf("Ошибка открытия: %v", err)
	}
	rc.Close()

	if _, err := Open(context.Background(), filepath.Join(dir, "missing.mp3"), S3Options{}); err == nil {
		t.Error("Ожидалась ошибка для отсутствующего файла")
	}
}

func TestOpenURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/track.mp3" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Range") != "bytes=0-" {
			t.Errorf("Ожидался заголовок Range, получено %q", r.Header.Get("Range"))
		}
		w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	rc, err := Open(context.Background(), server.URL+"/track.mp3", S3Options{})
	if err != nil {
		t.Fatalf("Ошибка открытия URL: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "audio-bytes" {
		t.Errorf("Неожиданное содержимое: %q", data)
	}

	_, err = Open(context.Background(), server.URL+"/missing.mp3", S3Options{})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Ожидалась ошибка HTTP 404, получено %v", err)
	}
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		input  string
		bucket string
		key    string
		err    bool
	}{
		{"s3://music/albums/", "music", "albums/", false},
		{"s3://music", "music", "", false},
		{"s3://music/a.mp3", "music", "a.mp3", false},
		{"s3:///a.mp3", "", "", true},
		{"/home/music", "", "", true},
	}

	for _, test := range tests {
		bucket, key, err := ParseS3URL(test.input)
		if (err != nil) != test.err {
			t.Errorf("ParseS3URL(%q): неожиданная ошибка %v", test.input, err)
			continue
		}
		if bucket != test.bucket || key != test.key {
			t.Errorf("ParseS3URL(%q) = %q, %q; expected %q, %q", test.input, bucket, key, test.bucket, test.key)
		}
	}
}

// mockS3 мок для клиента S3
type mockS3 struct {
	pages     [][]string
	listErr   error
	objects   map[string]string
	listInput *s3.ListObjectsV2Input
}

func (m *mockS3) ListObjectsV2PagesWithContext(_ aws.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, _ ...request.Option) error {
	m.listInput = input
	if m.listErr != nil {
		return m.listErr
	}
	for i, keys := range m.pages {
		page := &s3.ListObjectsV2Output{}
		for _, k := range keys {
			page.Contents = append(page.Contents, &s3.Object{Key: aws.String(k)})
		}
		if !fn(page, i == len(m.pages)-1) {
			break
		}
	}
	return nil
}

func (m *mockS3) GetObjectWithContext(_ aws.Context, input *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	body, ok := m.objects[aws.StringValue(input.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3SourceNames(t *testing.T) {
	client := &mockS3{
		pages: [][]string{
			{"albums/b.mp3", "albums/a.mp3"},
			{"albums/nested/c.mp3", "albums/", "albums/d.flac"},
		},
	}
	src := newS3Source(client, "music", "albums")

	names, err := src.Names(context.Background())
	if err != nil {
		t.Fatalf("Ошибка получения списка: %v", err)
	}

	expected := []string{"a.mp3", "b.mp3", "d.flac"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Ожидались имена %v, получено %v", expected, names)
	}
	if aws.StringValue(client.listInput.Prefix) != "albums/" {
		t.Errorf("Ожидался префикс albums/, получено %q", aws.StringValue(client.listInput.Prefix))
	}
	if src.Location() != "s3://music/albums/" {
		t.Errorf("Неожиданный адрес источника: %s", src.Location())
	}
}

func TestS3SourceInvalidName(t *testing.T) {
	src := newS3Source(&mockS3{pages: [][]string{{"\xfe.mp3"}}}, "music", "")

	_, err := src.Names(context.Background())
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Ожидалась ErrInvalidName, получено %v", err)
	}
}

func TestS3SourceListError(t *testing.T) {
	src := newS3Source(&mockS3{listErr: errors.New("access denied")}, "music", "")

	_, err := src.Names(context.Background())
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Ожидалась ошибка доступа, получено %v", err)
	}
}

func TestS3SourceOpen(t *testing.T) {
	client := &mockS3{objects: map[string]string{"albums/a.mp3": "data"}}
	src := newS3Source(client, "music", "albums/")

	rc, err := src.Open(context.Background(), "a.mp3")
	if err != nil {
		t.Fatalf("Ошибка открытия объекта: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "data" {
		t.Errorf("Неожиданное содержимое: %q", data)
	}

	if _, err := src.Open(context.Background(), "missing.mp3"); err == nil {
		t.Error("Ожидалась ошибка для отсутствующего объекта")
	}
}
