package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Davi3103/chamados4/internal/api/dto"
	"github.com/Davi3103/chamados4/internal/service"
	"github.com/Davi3103/chamados4/internal/validation"
	"github.com/Davi3103/chamados4/pkg/util"
)

// attachmentsField is the multipart field carrying uploaded files.
const attachmentsField = "attachments"

// TicketIntake is the service contract the handler depends on.
type TicketIntake interface {
	Submit(ctx context.Context, sub *validation.Submission, files []service.UploadedFile) (*service.IntakeResult, error)
}

// IntakeHandler exposes the ticket submission endpoint.
type IntakeHandler struct {
	validator *validation.IntakeValidator
	intake    TicketIntake
}

// NewIntakeHandler constructs the handler.
func NewIntakeHandler(validator *validation.IntakeValidator, intake TicketIntake) *IntakeHandler {
	return &IntakeHandler{validator: validator, intake: intake}
}

// Create POST /tickets.
func (h *IntakeHandler) Create(c *fiber.Ctx) error {
	sub := submissionFromForm(c)
	if violations := h.validator.Validate(sub); len(violations) > 0 {
		return util.NewValidationError("invalid submission: " + strings.Join(violations, ", "))
	}

	result, err := h.intake.Submit(c.UserContext(), sub, uploadedFiles(c))
	if err != nil {
		return err
	}

	stored := make([]dto.StoredAttachment, 0, len(result.Attachments))
	for _, att := range result.Attachments {
		if att.Stored() {
			stored = append(stored, dto.StoredAttachment{Name: att.OriginalName, Size: att.Size})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IntakeResponse{
		Success: true,
		Message: "ticket created successfully",
		Data: &dto.IntakeData{
			TicketNumber: result.TicketNumber,
			ID:           result.TicketID,
			Attachments:  stored,
		},
	})
}

func submissionFromForm(c *fiber.Ctx) *validation.Submission {
	return &validation.Submission{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Subject:     c.FormValue("subject"),
		Category:    c.FormValue("category"),
		Priority:    c.FormValue("priority"),
		Description: c.FormValue("description"),

		Phone:          optionalField(c, "phone"),
		Company:        optionalField(c, "company"),
		TaxIDA:         optionalField(c, "tax_id_a"),
		TaxIDB:         optionalField(c, "tax_id_b"),
		Urgency:        optionalField(c, "urgency"),
		Impact:         optionalField(c, "impact"),
		Terminal:       optionalField(c, "terminal"),
		Location:       optionalField(c, "location"),
		OccurrenceDate: optionalField(c, "occurrence_date"),
		OccurrenceTime: optionalField(c, "occurrence_time"),
		RelatedURL:     optionalField(c, "related_url"),
		Notes:          optionalField(c, "notes"),
	}
}

func optionalField(c *fiber.Ctx, name string) *string {
	if val := c.FormValue(name); val != "" {
		return &val
	}
	return nil
}

func uploadedFiles(c *fiber.Ctx) []service.UploadedFile {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	headers := form.File[attachmentsField]
	files := make([]service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		files = append(files, fromHeader(header))
	}
	return files
}

func fromHeader(header *multipart.FileHeader) service.UploadedFile {
	return service.UploadedFile{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}
