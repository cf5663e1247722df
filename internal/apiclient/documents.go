package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"parseai/internal/domain"
)

// UploadDocument uploads content as a multipart form file named fileName.
func (c *Client) UploadDocument(ctx context.Context, fileName string, content io.Reader) (*domain.UploadResponse, error) {
	const path = "/upload"

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeFilePart(mw, fileName, content))
	}()

	var out domain.UploadResponse
	decoded, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        pr,
		contentType: mw.FormDataContentType(),
	}, &out)
	// Unblock the writer if the transport stopped reading early.
	_ = pr.Close()
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	return &out, nil
}

// UploadFile opens the file at path and uploads it under its base name.
func (c *Client) UploadFile(ctx context.Context, path string) (*domain.UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newEncodeError(http.MethodPost, "/upload", err)
	}
	defer func() { _ = f.Close() }()
	return c.UploadDocument(ctx, filepath.Base(path), f)
}

func writeFilePart(mw *multipart.Writer, fileName string, content io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", contentTypeFor(fileName))

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("writing form part: %w", err)
	}
	return mw.Close()
}

func contentTypeFor(fileName string) string {
	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// ViewDocument streams the stored bytes of a document. The caller must close the
// returned reader.
func (c *Client) ViewDocument(ctx context.Context, documentID string) (io.ReadCloser, string, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodGet,
		path:   "/documents/" + EscapeSegment(documentID) + "/view",
	})
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
