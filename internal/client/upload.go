package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	internalhttp "github.com/WolVesz/oic-devops/internal/http"
)

// uploadArchive sends an archive as a multipart form upload. The platform
// expects the archive bytes under the "file" field regardless of resource
// type.
func uploadArchive(ctx context.Context, httpClient *internalhttp.Client, path string, filename string, archive []byte, resourceType string) ([]byte, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	_, err = part.Write(archive)
	if err != nil {
		return nil, fmt.Errorf("writing archive to form: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	resp, err := httpClient.PostRaw(ctx, path, buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", resourceType, err)
	}

	return resp.Body, nil
}
