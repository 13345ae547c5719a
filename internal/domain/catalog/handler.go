package catalog

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/pkg/i18n"
	"leadcrm/internal/pkg/response"
	"leadcrm/internal/pkg/rules"
)

// Handler exposes the reference catalogs: read-only listings plus admin-side
// save/rename guarded by a uniqueness rule on the name.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) listStatuses(c *gin.Context) {
	out, err := h.repo.Statuses(c.Request.Context())
	if err != nil {
		h.fail(c, "Catalog@listStatuses", err)
		return
	}
	response.Data(c, out)
}

func (h *Handler) listChannels(c *gin.Context) {
	out, err := h.repo.Channels(c.Request.Context())
	if err != nil {
		h.fail(c, "Catalog@listChannels", err)
		return
	}
	response.Data(c, out)
}

func (h *Handler) listConversions(c *gin.Context) {
	out, err := h.repo.Conversions(c.Request.Context())
	if err != nil {
		h.fail(c, "Catalog@listConversions", err)
		return
	}
	response.Data(c, out)
}

func (h *Handler) listProductServices(c *gin.Context) {
	out, err := h.repo.ProductServices(c.Request.Context())
	if err != nil {
		h.fail(c, "Catalog@listProductServices", err)
		return
	}
	response.Data(c, out)
}

type saveEntryRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// saveEntry creates or renames a catalog entry. The name must be unique
// among live rows, excluding the entry itself on rename.
func (h *Handler) saveEntry(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, i18n.T("something_went_wrong_error_msg"))
			return
		}

		values := rules.Values{"name": req.Name}
		fields := []rules.FieldRules{
			{Field: "name", Rules: []rules.Rule{
				rules.Required(),
				rules.String(),
				rules.Unique(func(ctx context.Context, value any) (bool, error) {
					name, _ := rules.Str(value)
					return h.repo.NameTaken(ctx, kind, name, req.ID)
				}),
			}},
		}
		res, err := rules.Validate(c.Request.Context(), fields, values, map[string]string{
			"name.required": "Invalid name, please try again.",
			"name.string":   "Invalid name, please try again.",
			"name.unique":   "The name has already been taken.",
		})
		if err != nil {
			h.fail(c, "Catalog@saveEntry", err)
			return
		}
		if !res.OK() {
			response.Fail(c, res.First())
			return
		}

		if req.ID > 0 {
			err = h.repo.Rename(c.Request.Context(), kind, req.ID, req.Name)
		} else {
			err = h.repo.Create(c.Request.Context(), kind, req.Name)
		}
		if err != nil {
			h.fail(c, "Catalog@saveEntry", err)
			return
		}
		response.Message(c, "Saved successfully.")
	}
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	log.Printf("%s error=%v", op, err)
	response.Fail(c, i18n.T("something_went_wrong_error_msg"))
}
