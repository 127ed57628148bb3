package httpx

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/techmidia/painel/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandlers serves spreadsheet downloads of list pages.
type ExportHandlers struct {
	*UIHandlers
	Now func() time.Time
}

// Export downloads the filtered list as an XLSX workbook.
// GET /app/{page}/export.xlsx.
func (h *ExportHandlers) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := SessionFrom(ctx)
	page, known := PageFor(r.PathValue("page"))
	spec, listable := service.Resource(page.ID)
	if !known || !listable {
		http.NotFound(w, r)
		return
	}
	if page.AdminOnly && (sess == nil || !sess.IsAdmin()) {
		http.Error(w, MessageAccessDenied, http.StatusForbidden)
		return
	}

	table, err := h.Resources.List(ctx, service.Credentials(sess), spec, r.URL.Query())
	if err != nil {
		if h.expireOnUnauthorized(w, r, sess, err) {
			return
		}
		h.logger().WarnContext(ctx, "export failed", "page", page.ID, "error", err)
		http.Error(w, errorMessage(err), DetermineErrorStatus(err))
		return
	}

	// Buffered so a failure can still become an error status.
	var buf bytes.Buffer
	if err := service.WriteXLSX(&buf, page.Label, table); err != nil {
		h.logger().ErrorContext(ctx, "xlsx encoding failed", "page", page.ID, "error", err)
		http.Error(w, messageUnexpected, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.filename(page.ID)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().DebugContext(ctx, "export write aborted", "error", err)
	}
}

func (h *ExportHandlers) filename(page string) string {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return fmt.Sprintf("%s-%s.xlsx", page, now().Format("2006-01-02"))
}
