package news

import (
	"net/http"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	newsUC "newsdesk/internal/usecase/news"
)

// CreateHandler serves POST /api/news.
type CreateHandler struct{ Svc *newsUC.Service }

// ServeHTTP ニュース作成
// @Summary      ニュース作成
// @Description  下書き状態のニュースを作成します。作成者は認証済み管理者になります
// @Tags         news
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        news body CreateRequest true "ニュース情報"
// @Success      201 {object} NewsResponse
// @Failure      400 {object} respond.ErrorBody "Malformed JSON body"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - admin role required"
// @Failure      422 {object} respond.ErrorBody "Validation failed"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Failure      500 {object} respond.ErrorBody "Internal server error"
// @Router       /api/news [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, auth.ErrUnauthenticated)
		return
	}

	var req CreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	scope, err := parseScope(req.Scope)
	if err != nil {
		writeError(w, err)
		return
	}

	in := newsUC.CreateInput{
		Title:    req.Title,
		AuthorID: actor.ID,
		Summary:  req.Summary,
		Content:  req.Content,
		Scope:    entity.NewsScopeGeneral,
		CoverURL: req.CoverURL,
	}
	if scope != nil {
		in.Scope = *scope
	}

	created, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toResponse(created))
}
