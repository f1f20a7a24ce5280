package library

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// DefaultBufferSize размер буфера потокового чтения
const DefaultBufferSize = 256 * 1024

// StreamReader буферизованный поток HTTP ответа
type StreamReader struct {
	reader *bufio.Reader
	resp   *http.Response
}

var streamClient = &http.Client{
	// Общего таймаута нет: трек читается все время воспроизведения
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       300 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// OpenURL открывает трек по HTTP(S) для потокового воспроизведения
func OpenURL(ctx context.Context, url string, bufferSize int) (*StreamReader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept-Encoding", "identity") // Отключаем сжатие для потока
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("User-Agent", "fb24/1.0")

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &StreamReader{
		reader: bufio.NewReaderSize(resp.Body, bufferSize),
		resp:   resp,
	}, nil
}

func (sr *StreamReader) Read(p []byte) (int, error) {
	return sr.reader.Read(p)
}

func (sr *StreamReader) Close() error {
	return sr.resp.Body.Close()
}
