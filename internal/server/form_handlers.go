package server

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"plume/internal/middleware"
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// recognizedFields are the only multipart field names a submission may carry.
var recognizedFields = map[string]bool{
	"text":   true,
	"image":  true,
	"user":   true,
	"avatar": true,
}

// SubmitPost handles POST /form
func (s *Server) SubmitPost(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	in, err := extractSubmission(form)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if _, err := s.postService.Submit(c.UserContext(), *in); err != nil {
		status := mapServiceError(err)
		if status >= fiber.StatusInternalServerError {
			middleware.Logger.ErrorContext(c.UserContext(), "failed to store submission",
				slog.String("error", err.Error()))
		}
		return models.RespondWithError(c, status, err)
	}

	return c.Redirect("/home", fiber.StatusSeeOther)
}

// extractSubmission maps the multipart form onto a submission input.
//
// Exactly one occurrence per recognized name is accepted: a duplicate or an
// unknown field name rejects the whole submission as malformed, matching the
// strict behavior the pipeline guarantees. A browser file input with no file
// chosen arrives as an empty value, which counts as "no image".
func extractSubmission(form *multipart.Form) (*service.SubmitPostInput, error) {
	for name, values := range form.Value {
		if !recognizedFields[name] {
			return nil, models.NewValidationError(fmt.Sprintf("Unknown field %q", name))
		}
		if len(values) > 1 || len(form.File[name]) > 0 {
			return nil, models.NewValidationError(fmt.Sprintf("Duplicate field %q", name))
		}
	}
	for name, files := range form.File {
		if !recognizedFields[name] {
			return nil, models.NewValidationError(fmt.Sprintf("Unknown field %q", name))
		}
		if name != "image" {
			return nil, models.NewValidationError(fmt.Sprintf("Field %q must be a text part", name))
		}
		if len(files) > 1 {
			return nil, models.NewValidationError(fmt.Sprintf("Duplicate field %q", name))
		}
	}

	in := &service.SubmitPostInput{}
	if v, ok := singleValue(form, "text"); ok {
		in.Body = v
	}
	if v, ok := singleValue(form, "user"); ok {
		in.Author = v
	}
	if v, ok := singleValue(form, "avatar"); ok {
		in.AvatarURL = v
	}

	if files := form.File["image"]; len(files) == 1 {
		data, err := readFilePart(files[0])
		if err != nil {
			return nil, models.NewValidationError("Unable to read uploaded file")
		}
		in.ImageData = data
	} else if v, ok := singleValue(form, "image"); ok && v != "" {
		in.ImageData = []byte(v)
	}

	return in, nil
}

func singleValue(form *multipart.Form, name string) (string, bool) {
	values := form.Value[name]
	if len(values) != 1 {
		return "", false
	}
	return values[0], true
}

func readFilePart(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return io.ReadAll(src)
}
