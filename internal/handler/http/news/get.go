package news

import (
	"net/http"

	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	newsUC "newsdesk/internal/usecase/news"
)

// GetHandler serves GET /api/news/{id}.
type GetHandler struct{ Svc *newsUC.Service }

// ServeHTTP ニュース取得
// @Summary      ニュース取得
// @Description  IDでニュースを取得します。削除済みのニュースは404になります
// @Tags         news
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ニュースID (UUID)"
// @Success      200 {object} NewsResponse
// @Failure      400 {object} respond.ErrorBody "Invalid ID"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - admin role required"
// @Failure      404 {object} respond.ErrorBody "News not found"
// @Failure      500 {object} respond.ErrorBody "Internal server error"
// @Router       /api/news/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseUUID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}

	n, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(n))
}
