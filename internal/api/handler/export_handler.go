package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/service"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/response"
)

// ExportHandler serves the admin billing export.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAssignments streams an .xlsx of assignments in a day range.
// GET /api/v1/export/assignments?from=<millis>&to=<millis>
func (h *ExportHandler) ExportAssignments(c *gin.Context) {
	from, err := strconv.ParseInt(c.Query("from"), 10, 64)
	if err != nil {
		response.BadRequest(c, 16001, "from must be an epoch-millis day")
		return
	}
	to, err := strconv.ParseInt(c.Query("to"), 10, 64)
	if err != nil {
		response.BadRequest(c, 16001, "to must be an epoch-millis day")
		return
	}
	if to < from {
		response.BadRequest(c, 16001, "to must not precede from")
		return
	}

	buf, filename, err := h.exportSvc.ExportAssignments(c.Request.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoAssignments):
			response.NotFound(c, 16002, err.Error())
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
