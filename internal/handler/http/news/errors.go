package news

import (
	"errors"
	"net/http"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"
	newsUC "newsdesk/internal/usecase/news"
)

// writeError maps decode, domain and repository errors onto HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var (
		reqErr   *requestError
		fieldErr *entity.ValidationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &reqErr):
		respond.Validation(w, reqErr.fields)
	case errors.As(err, &fieldErr):
		respond.Validation(w, []respond.FieldError{{Field: fieldErr.Field, Message: fieldErr.Message}})
	case errors.As(err, &tooLarge):
		respond.Error(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
	case errors.Is(err, errMalformedBody):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, newsUC.ErrNewsNotFound), errors.Is(err, entity.ErrNotFound):
		respond.Error(w, http.StatusNotFound, newsUC.ErrNewsNotFound)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
