package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// ErrExists возвращается, если запись с таким именем уже есть в фонотеке
var ErrExists = errors.New("запись уже существует")

// Importer источник, в который можно добавить трек
type Importer interface {
	// Import записывает r под именем name и возвращает адрес новой записи
	Import(ctx context.Context, r io.Reader, name string) (string, error)
}

// uploaderAPI часть s3manager.Uploader, которая нужна источнику
type uploaderAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}

// checkName проверяет, что имя - это одна запись без пути
func checkName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("недопустимое имя записи %q", name)
	}
	return nil
}

// Import копирует трек в каталог. Существующий файл не перезаписывается.
func (s *DirSource) Import(ctx context.Context, r io.Reader, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	path := s.Path(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла: %w", err)
	}

	_, err = io.Copy(f, contextReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Недописанный файл попал бы в список
		os.Remove(path)
		return "", fmt.Errorf("ошибка копирования файла: %w", err)
	}

	return path, nil
}

// Import загружает трек под префикс бакета
func (s *S3Source) Import(ctx context.Context, r io.Reader, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", errors.New("источник S3 открыт только для чтения")
	}

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + name),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	return s.Location() + name, nil
}

// contextReader прерывает копирование при отмене контекста
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

// ImportFile добавляет локальный файл в фонотеку под его базовым именем
func ImportFile(ctx context.Context, dst Importer, path string, onProgress func(done, total int64)) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("ошибка получения информации о файле: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s является каталогом", path)
	}

	var reader io.Reader = f
	if onProgress != nil {
		reader = &ProgressReader{
			Reader: f,
			OnProgress: func(n int64) {
				onProgress(n, info.Size())
			},
		}
	}

	return dst.Import(ctx, reader, filepath.Base(path))
}
