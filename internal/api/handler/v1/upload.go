package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/service"
)

const maxImageSize = 5 << 20

var imageMIMETypes = []string{"image/jpeg", "image/png"}

// formFile is an uploaded part opened for reading. Close must be called once
// the service is done with it.
type formFile struct {
	domain.Upload
	file multipart.File
}

func (f *formFile) Close() {
	if f == nil || f.file == nil {
		return
	}
	if err := f.file.Close(); err != nil {
		zap.L().Warn("failed to close uploaded file", zap.String("name", f.Name), zap.Error(err))
	}
}

// upload returns the domain view of f, or nil when no file was sent.
func (f *formFile) upload() *domain.Upload {
	if f == nil {
		return nil
	}
	return &f.Upload
}

// openFormFile opens the multipart part named field and sniffs its content
// type. It returns nil, nil when the part is absent.
func openFormFile(ctx *gin.Context, field string) (*formFile, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("ctx.FormFile -> %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("header.Open -> %w", err)
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("mimetype.DetectReader -> %w", err)
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("file.Seek -> %w", err)
	}

	return &formFile{
		Upload: domain.Upload{
			Name:        header.Filename,
			ContentType: contentType(mtype),
			Size:        header.Size,
			Body:        file,
		},
		file: file,
	}, nil
}

// openImage is openFormFile restricted to JPEG and PNG images.
func openImage(ctx *gin.Context, field string) (*formFile, error) {
	f, err := openFormFile(ctx, field)
	if err != nil || f == nil {
		return f, err
	}

	if !slices.Contains(imageMIMETypes, f.ContentType) {
		f.Close()
		return nil, service.ErrUnsupportedFileType
	}
	if f.Size > maxImageSize {
		f.Close()
		return nil, service.ErrFileTooLarge
	}

	return f, nil
}

// contentType reports the accepted type the detected one belongs to, walking
// up the detection tree, and the raw detected type otherwise.
func contentType(mtype *mimetype.MIME) string {
	for m := mtype; m != nil; m = m.Parent() {
		for _, allowed := range domain.DocumentMIMETypes {
			if m.Is(allowed) {
				return allowed
			}
		}
	}

	return mtype.String()
}
