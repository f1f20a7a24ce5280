// Package library перечисляет треки фонотеки и открывает их для воспроизведения
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidName возвращается для имени файла, которое не является корректным UTF-8
var ErrInvalidName = errors.New("имя файла не является корректной строкой UTF-8")

// Source источник строк списка: каталог на диске или префикс в бакете S3
type Source interface {
	// Names возвращает имена записей без пути, отсортированные по имени
	Names(ctx context.Context) ([]string, error)
	// Open открывает запись по имени
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Location возвращает исходный адрес источника
	Location() string
}

// NewSource выбирает источник по адресу: s3://bucket/prefix или путь к каталогу
func NewSource(location string, opts S3Options) (Source, error) {
	if IsS3(location) {
		bucket, prefix, err := ParseS3URL(location)
		if err != nil {
			return nil, err
		}
		src, err := NewS3Source(opts, bucket, prefix)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return NewDirSource(location), nil
}

// Open открывает трек по адресу: http(s) URL, s3:// ключ или локальный путь
func Open(ctx context.Context, location string, opts S3Options) (io.ReadCloser, error) {
	switch {
	case IsURL(location):
		r, err := OpenURL(ctx, location, DefaultBufferSize)
		if err != nil {
			return nil, err
		}
		return r, nil

	case IsS3(location):
		bucket, key, err := ParseS3URL(location)
		if err != nil {
			return nil, err
		}
		src, err := NewS3Source(opts, bucket, "")
		if err != nil {
			return nil, err
		}
		return src.Open(ctx, key)

	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия файла: %w", err)
		}
		return f, nil
	}
}

// IsURL проверяет, является ли адрес HTTP(S) ссылкой
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// IsS3 проверяет, является ли адрес ссылкой на S3
func IsS3(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// DirSource источник из каталога на диске
type DirSource struct {
	dir string
}

// NewDirSource создает источник для каталога
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Location() string { return s.dir }

// Names читает записи каталога. Любая нечитаемая запись или имя не в UTF-8 дает ошибку.
func (s *DirSource) Names(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !utf8.ValidString(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		names = append(names, name)
	}
	return names, nil
}

// Open открывает файл каталога по имени
func (s *DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	return f, nil
}

// Path возвращает полный путь к записи каталога
func (s *DirSource) Path(name string) string {
	return filepath.Join(s.dir, name)
}
