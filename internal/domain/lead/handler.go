package lead

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/domain/audit"
	"leadcrm/internal/middleware"
	"leadcrm/internal/pkg/i18n"
	"leadcrm/internal/pkg/response"
)

type Handler struct {
	svc   *Service
	audit *audit.Recorder
}

func NewHandler(svc *Service, auditRec *audit.Recorder) *Handler {
	return &Handler{svc: svc, audit: auditRec}
}

func (h *Handler) list(c *gin.Context) {
	v, err := valuesFromRequest(c)
	if err != nil {
		h.fail(c, "LeadApi@lead_list", err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), middleware.UserID(c), v)
	if err != nil {
		h.respondError(c, "LeadApi@lead_list", err)
		return
	}
	response.Data(c, page)
}

func (h *Handler) save(c *gin.Context) {
	v, err := valuesFromRequest(c)
	if err != nil {
		h.fail(c, "LeadApi@save_lead", err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), middleware.UserID(c), v); err != nil {
		h.respondError(c, "LeadApi@save_lead", err)
		return
	}
	response.Message(c, i18n.T("lead_insert_success_msg"))
}

func (h *Handler) update(c *gin.Context) {
	v, err := valuesFromRequest(c)
	if err != nil {
		h.fail(c, "LeadApi@update_lead", err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), middleware.UserID(c), v); err != nil {
		h.respondError(c, "LeadApi@update_lead", err)
		return
	}
	response.Message(c, i18n.T("lead_update_success_msg"))
}

func (h *Handler) delete(c *gin.Context) {
	v, err := valuesFromRequest(c)
	if err != nil {
		h.fail(c, "LeadApi@delete_lead", err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), v); err != nil {
		h.respondError(c, "LeadApi@delete_lead", err)
		return
	}
	response.Message(c, i18n.T("lead_delete_success_msg"))
}

func (h *Handler) updateStatus(c *gin.Context) {
	v, err := valuesFromRequest(c)
	if err != nil {
		h.fail(c, "LeadApi@update_lead_status", err)
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), middleware.UserID(c), v); err != nil {
		h.respondError(c, "LeadApi@update_lead_status", err)
		return
	}
	response.Message(c, i18n.T("lead_status_update_success_msg"))
}

func (h *Handler) history(c *gin.Context) {
	v, err := valuesFromRequest(c)
	if err != nil {
		h.fail(c, "LeadApi@lead_history", err)
		return
	}

	entries, err := h.svc.History(c.Request.Context(), middleware.UserID(c), v)
	if err != nil {
		h.respondError(c, "LeadApi@lead_history", err)
		return
	}
	response.Data(c, entries)
}

// respondError maps service errors onto the response contract: validation
// failures and ownership denials answer with their message, anything else
// is logged and audited under the operation's identity and answered with
// the generic message.
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.Fail(c, ve.Message)
	case IsDenial(err):
		response.Fail(c, i18n.T("invalid_login_credential_error_msg"))
	case errors.Is(err, ErrNotFound):
		response.Fail(c, i18n.T("lead_id_exists_error_msg"))
	default:
		h.fail(c, op, err)
	}
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	log.Printf("%s error=%v", op, err)
	userID := middleware.UserID(c)
	h.audit.Log(c.Request.Context(), op, &userID, audit.CategoryError, err.Error())
	response.Fail(c, i18n.T("something_went_wrong_error_msg"))
}
