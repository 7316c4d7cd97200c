package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/JULEEP/securitybackend/internal/interface/http/response"
	"github.com/JULEEP/securitybackend/internal/storage"
)

// Разрешённые типы по сигнатуре файла: расширение -> MIME.
var allowedUploadKinds = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"zip":  "application/zip",
}

// DocumentSaver файловое хранилище загрузок.
type DocumentSaver interface {
	Save(ctx context.Context, userID int64, ext string, r io.Reader) (string, int64, error)
	MaxUploadBytes() int64
}

// UploadHandler принимает документы пользователей: резюме, вложения к предложениям.
type UploadHandler struct {
	storage   DocumentSaver
	publicURL string
}

// NewUploadHandler создаёт хэндлер; publicURL - префикс, под которым раздаются файлы.
func NewUploadHandler(storage DocumentSaver, publicURL string) *UploadHandler {
	return &UploadHandler{storage: storage, publicURL: strings.TrimSuffix(publicURL, "/")}
}

// UploadResponse описывает сохранённый файл.
type UploadResponse struct {
	Path     string `json:"path"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// Upload обрабатывает POST /api/users/:userId/uploads.
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	// запас на заголовки multipart
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.storage.MaxUploadBytes()+1<<20)

	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.BadRequest(c, "File exceeds upload limit")
			return
		}
		response.BadRequest(c, "Field file is required")
		return
	}
	if file.Size == 0 {
		response.BadRequest(c, "File must not be empty")
		return
	}
	if file.Size > h.storage.MaxUploadBytes() {
		response.BadRequest(c, "File exceeds upload limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Fail(c, err, "Error reading file")
		return
	}
	defer src.Close()

	// реальный тип определяем по первым байтам, а не по имени файла
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		response.BadRequest(c, "Could not read file")
		return
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		response.BadRequest(c, "Unsupported file type. Allowed: "+allowedUploadList())
		return
	}
	mime, allowed := allowedUploadKinds[kind.Extension]
	if !allowed {
		response.BadRequest(c, "Unsupported file type ("+kind.MIME.Value+"). Allowed: "+allowedUploadList())
		return
	}

	relative, size, err := h.storage.Save(c.Request.Context(), userID, kind.Extension, io.MultiReader(bytes.NewReader(head[:n]), src))
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			response.BadRequest(c, "File exceeds upload limit")
			return
		}
		response.Fail(c, err, "Error saving file")
		return
	}

	response.Created(c, "File uploaded successfully", UploadResponse{
		Path:     relative,
		URL:      h.publicURL + "/" + relative,
		MimeType: mime,
		Size:     size,
	})
}

func allowedUploadList() string {
	exts := make([]string, 0, len(allowedUploadKinds))
	for ext := range allowedUploadKinds {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
