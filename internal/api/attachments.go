package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
)

// UploadAttachment accepts a multipart upload --> POST /api/issues/:id/attachments
func (h *Handler) UploadAttachment(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return badRequest(c, "invalid issue ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "no file uploaded")
	}

	uploaderID, err := strconv.Atoi(c.FormValue("uploaderId"))
	if err != nil {
		return badRequest(c, "uploader ID is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, err)
	}
	defer src.Close()

	attachment, err := h.attachments.Upload(
		c.Request().Context(), id, uploaderID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, src)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, attachment)
}

// ListAttachments --> GET /api/issues/:id/attachments
func (h *Handler) ListAttachments(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return badRequest(c, "invalid issue ID")
	}

	attachments, err := h.attachments.ListByIssue(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, attachments)
}

// DownloadAttachment streams the stored file --> GET /api/download/:fileId
func (h *Handler) DownloadAttachment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("fileId"))
	if err != nil {
		return badRequest(c, "invalid file ID")
	}

	attachment, err := h.attachments.Get(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	if _, err := os.Stat(attachment.Filepath); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "file is missing from storage"})
	}

	return c.Attachment(attachment.Filepath, attachment.Filename)
}
