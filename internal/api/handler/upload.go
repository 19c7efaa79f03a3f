package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

var errFileTooLarge = errors.New("file too large")

// readUpload loads the multipart file field into memory, bounded by maxBytes.
// Writes the error response itself; callers return when ok is false.
func readUpload(c *gin.Context, field string, maxBytes int64) (filename string, data []byte, ok bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "file too large")
			return "", nil, false
		}
		response.BadRequest(c, 10001, "file is required")
		return "", nil, false
	}

	data, err = readFileHeader(fh, maxBytes)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "file too large")
			return "", nil, false
		}
		response.BadRequest(c, 10001, "could not read uploaded file")
		return "", nil, false
	}
	return fh.Filename, data, true
}

func readFileHeader(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh.Size > maxBytes {
		return nil, errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errFileTooLarge
	}
	return data, nil
}
