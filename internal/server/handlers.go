package server

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mvanroy/permit-validator/constants"
	"github.com/mvanroy/permit-validator/internal/match"
)

// handleValidateDocuments accepts the permit submission form: the declared
// fields plus one PDF attachment per document type, and responds with the
// aggregated validation report.
func (s *Server) handleValidateDocuments(c *fiber.Ctx) error {
	facts := match.Facts{
		FirstName:       strings.TrimSpace(c.FormValue("firstName")),
		LastName:        strings.TrimSpace(c.FormValue("lastName")),
		CompanyName:     strings.TrimSpace(c.FormValue("companyName")),
		CompanyNumber:   strings.TrimSpace(c.FormValue("companyNumber")),
		OwnerName:       strings.TrimSpace(c.FormValue("ownerName")),
		BusinessAddress: strings.TrimSpace(c.FormValue("businessAddress")),
	}
	if facts.FirstName == "" || facts.LastName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "firstName and lastName are required")
	}
	if facts.CompanyName == "" || facts.CompanyNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "companyName and companyNumber are required")
	}

	docs := make(map[constants.DocumentKind][]byte, len(constants.AllKinds))
	for _, kind := range constants.AllKinds {
		fh, err := c.FormFile(string(kind))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "missing attachment: "+string(kind))
		}
		data, err := readUpload(fh)
		if err != nil {
			s.logger.Error("reading upload failed", "attachment", string(kind), "error", err)
			return fiber.NewError(fiber.StatusBadRequest, "unreadable attachment: "+string(kind))
		}
		docs[kind] = data
	}

	report := s.validator.ValidateSubmission(c.Context(), facts, docs)

	if s.audit != nil {
		if err := s.audit.SaveReport(c.Context(), facts, report); err != nil {
			// audit is best effort; the response is still served
			s.logger.Error("audit persist failed", "submission_id", report.SubmissionID, "error", err)
		}
	}

	return c.JSON(report)
}

// handleCheckContent runs the standalone content-classification probe on a
// single uploaded file.
func (s *Server) handleCheckContent(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file part")
	}
	data, err := readUpload(fh)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file part")
	}
	return c.JSON(fiber.Map{
		"filename":       fh.Filename,
		"classification": string(s.validator.CheckContent(data)),
	})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
