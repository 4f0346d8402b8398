package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/turret-landing/internal/storage"
)

// MediaStore opens stored objects by key.
type MediaStore interface {
	Open(ctx context.Context, key string) (*storage.Object, error)
}

// privateMediaPrefix holds uploaded documents; they are only reachable
// through DownloadDocument so downloads are counted.
const privateMediaPrefix = "documents/"

// Media serves gallery and settings images from store under /media/*key.
//
// @ID          media
// @Summary     Media file
// @Tags        Site
// @Produce     octet-stream
// @Param       key  path  string  true  "Storage key"
// @Success     200  {file}    file
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /media/{key} [get]
func Media(store MediaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := storage.CleanKey(strings.TrimPrefix(c.Param("key"), "/"))
		if err != nil || strings.HasPrefix(key, privateMediaPrefix) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "file not found")
			return
		}

		obj, err := store.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, storage.ErrNotExist) {
				fail(c, http.StatusNotFound, ErrCodeNotFound, "file not found")
				return
			}
			failInternal(c, ErrCodeInternal, err)
			return
		}
		defer obj.Body.Close()

		ct := obj.ContentType
		if ct == "" || ct == "application/octet-stream" {
			if byExt := mime.TypeByExtension(path.Ext(key)); byExt != "" {
				ct = byExt
			} else {
				ct = "application/octet-stream"
			}
		}
		extra := map[string]string{"Cache-Control": "public, max-age=86400"}
		if !obj.ModTime.IsZero() {
			extra["Last-Modified"] = obj.ModTime.UTC().Format(http.TimeFormat)
		}
		c.DataFromReader(http.StatusOK, obj.Size, ct, obj.Body, extra)
	}
}
