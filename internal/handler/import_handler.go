package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/school-admin-api/internal/service"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
	"github.com/campuskit/school-admin-api/pkg/response"
)

// ImportHandler accepts spreadsheet uploads for bulk loading.
type ImportHandler struct {
	imports     *service.ImportService
	maxFileSize int64
}

// NewImportHandler constructs ImportHandler. maxFileSize caps the accepted
// upload size in bytes.
func NewImportHandler(imports *service.ImportService, maxFileSize int64) *ImportHandler {
	return &ImportHandler{imports: imports, maxFileSize: maxFileSize}
}

// Students godoc
// @Summary Import students from a spreadsheet
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet (.xlsx) with columns name, contact_number, dob"
// @Success 200 {object} response.Envelope
// @Router /import/students [post]
func (h *ImportHandler) Students(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing file upload"))
		return
	}
	defer file.Close()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "uploaded file is too large"))
		return
	}

	imported, err := h.imports.ImportStudents(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported": imported})
}
