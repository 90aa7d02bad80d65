package http

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/diveplanner/internal/domain/inspiration"
)

const pngDataURLPrefix = "data:image/png;base64,"

// GenerateImage creates an inspiration image.
func (h *Handler) GenerateImage(c *gin.Context) {
	var req inspiration.ImageRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.inspirationSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type sketchUpload struct {
	DataURL string `json:"dataUrl"`
}

// UploadSketch stores a canvas sketch. It accepts a multipart "file" field
// or a JSON body carrying a PNG data URL.
func (h *Handler) UploadSketch(c *gin.Context) {
	data, httpErr := readSketch(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	sketch, err := h.inspirationSvc.SaveSketch(c.Request.Context(), data)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sketch)
}

// GetSketch streams a stored sketch.
func (h *Handler) GetSketch(c *gin.Context) {
	data, err := h.inspirationSvc.LoadSketch(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// DeleteSketch removes a stored sketch.
func (h *Handler) DeleteSketch(c *gin.Context) {
	if err := h.inspirationSvc.DeleteSketch(c.Request.Context(), c.Param("id")); err != nil {
		abortWithAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func readSketch(c *gin.Context) ([]byte, *HTTPError) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, "file is required", err)
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, "failed to read upload", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, "failed to read upload", err)
		}
		return data, nil
	}

	var req sketchUpload
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, NewHTTPError(http.StatusRequestEntityTooLarge, codeInvalidRequest, "sketch too large", err)
		}
		return nil, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, errMessage(err), err)
	}
	encoded, ok := strings.CutPrefix(strings.TrimSpace(req.DataURL), pngDataURLPrefix)
	if !ok {
		return nil, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, "dataUrl must be a base64 PNG data URL", nil)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, "dataUrl is not valid base64", err)
	}
	return data, nil
}
