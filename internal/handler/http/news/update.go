package news

import (
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	newsUC "newsdesk/internal/usecase/news"
)

// UpdateHandler serves PUT /api/news/{id}.
type UpdateHandler struct{ Svc *newsUC.Service }

// ServeHTTP ニュース更新
// @Summary      ニュース更新
// @Description  ニュースの編集可能な項目を置き換えます。ステータス、公開日時、作成者は変更されません
// @Tags         news
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "ニュースID (UUID)"
// @Param        news body UpdateRequest true "更新内容"
// @Success      200 {object} NewsResponse
// @Failure      400 {object} respond.ErrorBody "Invalid ID or malformed JSON body"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - admin role required"
// @Failure      404 {object} respond.ErrorBody "News not found"
// @Failure      422 {object} respond.ErrorBody "Validation failed"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Failure      500 {object} respond.ErrorBody "Internal server error"
// @Router       /api/news/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, auth.ErrUnauthenticated)
		return
	}

	id, err := pathutil.ParseUUID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}

	var req UpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	scope, err := parseScope(req.Scope)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Svc.Update(r.Context(), newsUC.UpdateInput{
		ID:       id,
		ActorID:  actor.ID,
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Scope:    scope,
		CoverURL: req.CoverURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(updated))
}
