package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/turret-landing/internal/services"
	"github.com/tbourn/turret-landing/internal/utils"
)

const msgDocumentNotFound = "Документ не найден"

// DownloadDocument godoc
// @ID          downloadDocument
// @Summary     Download a document
// @Description Streams an active document as an attachment under its original file name and increments its download counter.
// @Tags        Site
// @Produce     octet-stream
// @Param       id   path      int  true  "Document ID"  minimum(1)
// @Success     200  {file}    file
// @Header      200  {string}  Content-Disposition  "attachment; filename=…"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown, inactive or missing file"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /document/{id}/download/ [get]
func (h *Handlers) DownloadDocument(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		failPage(c, http.StatusNotFound, ErrCodeNotFound, msgDocumentNotFound)
		return
	}

	dl, err := h.docs.Open(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			failPage(c, http.StatusNotFound, ErrCodeNotFound, msgDocumentNotFound)
			return
		}
		_ = c.Error(err)
		failPage(c, http.StatusInternalServerError, ErrCodeDownloadFailed, "Не удалось открыть документ")
		return
	}
	defer dl.Body.Close()

	extra := map[string]string{
		"Content-Disposition": attachmentDisposition(dl.FileName),
		"Cache-Control":       "private, no-cache",
	}
	if !dl.ModTime.IsZero() {
		extra["Last-Modified"] = dl.ModTime.UTC().Format(http.TimeFormat)
	}
	c.DataFromReader(http.StatusOK, dl.Size, downloadContentType(dl), dl.Body, extra)
}

// attachmentDisposition builds a Content-Disposition header value. Non-ASCII
// names are emitted in the RFC 2231 filename* form.
func attachmentDisposition(name string) string {
	if name == "" {
		return "attachment"
	}
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

// downloadContentType prefers the stored content type, then the extension.
func downloadContentType(dl *services.Download) string {
	if dl.ContentType != "" && dl.ContentType != "application/octet-stream" {
		return dl.ContentType
	}
	if ct := mime.TypeByExtension(path.Ext(dl.FileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
