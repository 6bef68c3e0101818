package handler

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reviewapi/internal/service"
)

// formValue returns the first value for key, or "".
func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// openUploads opens every file under the "files" field, preserving the order
// in which the client sent them. The returned closer must be called after the
// service has consumed the readers.
func openUploads(form *multipart.Form) ([]service.Upload, func(), error) {
	headers := form.File["files"]

	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		uploads = append(uploads, service.Upload{
			Reader:           f,
			OriginalFilename: fh.Filename,
			ContentType:      ct,
			Size:             fh.Size,
		})
	}
	return uploads, closeAll, nil
}

// CreatePaper creates a paper with its initial attachments. Admin only.
// Multipart fields: moderator_id, title, note, files (repeatable).
//
// @Summary Create a paper
// @Tags papers
// @Accept multipart/form-data
// @Produce json
// @Param moderator_id formData string true "Owning moderator ID"
// @Param title formData string true "Title (max 100 chars)"
// @Param note formData string true "Note (max 500 chars)"
// @Param files formData file false "Attachments, in order"
// @Success 201 {object} model.Paper
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /papers [post]
func CreatePaper(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "admin privileges required")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "multipart form required")
		}

		uploads, closeAll, err := openUploads(form)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeAll()

		paper, err := svc.Create(c.UserContext(),
			formValue(form, "moderator_id"),
			formValue(form, "title"),
			formValue(form, "note"),
			uploads,
		)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(paper)
	}
}

// UpdatePaper replaces the note and/or appends attachments. Admin only.
// Multipart fields: note (optional), files (repeatable, optional).
//
// @Summary Update a paper
// @Tags papers
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Paper ID"
// @Param note formData string false "Replacement note (max 500 chars)"
// @Param files formData file false "Attachments to append, in order"
// @Success 200 {object} model.Paper
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /papers/{id} [put]
func UpdatePaper(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "admin privileges required")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "multipart form required")
		}

		// Absent note means keep the current one; present-but-empty is a
		// validation error downstream.
		var note *string
		if vs, ok := form.Value["note"]; ok && len(vs) > 0 {
			note = &vs[0]
		}

		uploads, closeAll, err := openUploads(form)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeAll()

		paper, err := svc.Update(c.UserContext(), id, note, uploads)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(paper)
	}
}

// DeleteAttachment removes a single attachment from a paper. Admin only.
//
// @Summary Delete an attachment
// @Tags papers
// @Produce json
// @Param paperId path string true "Paper ID"
// @Param fileId path string true "Attachment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /papers/{paperId}/files/{fileId} [delete]
func DeleteAttachment(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "admin privileges required")
		}

		paperID := c.Params("paperId")
		fileID := c.Params("fileId")
		if _, err := uuid.Parse(paperID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if _, err := uuid.Parse(fileID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if _, err := svc.RemoveAttachment(c.UserContext(), paperID, fileID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "attachment deleted"})
	}
}

// ListPapersByModerator returns every paper owned by a moderator. Admins may
// read any moderator's papers; moderators only their own.
//
// @Summary List papers by moderator
// @Tags papers
// @Produce json
// @Param moderatorId path string true "Moderator ID"
// @Success 200 {array} model.Paper
// @Failure 403 {object} errorPayload
// @Security BearerAuth
// @Router /papers/moderator/{moderatorId} [get]
func ListPapersByModerator(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		moderatorID := c.Params("moderatorId")
		if _, err := uuid.Parse(moderatorID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if !canActOn(c, moderatorID) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "cannot access another moderator's papers")
		}

		papers, err := svc.ListByModerator(c.UserContext(), moderatorID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(papers)
	}
}

// DeletePaper removes a paper and its attachment blobs. Admin only.
//
// @Summary Delete a paper
// @Tags papers
// @Produce json
// @Param id path string true "Paper ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /papers/{id} [delete]
func DeletePaper(svc service.PaperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "admin privileges required")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "paper deleted",
			"cascade": res,
		})
	}
}
