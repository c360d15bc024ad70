package deliveryserver

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var responder = apierrors.NewResponder(
	apierrors.WithMappers(apierrors.MapKind),
	apierrors.WithRequestIDKey(HeaderRequestID),
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError maps classified service errors to RFC 7807 responses. Anything
// unclassified is a 500.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBindError reports malformed bodies and query strings as 400s, listing failed
// fields when the binding validator produced them.
func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[lowerFirst(fe.Field())] = fe.Tag()
		}
		respondProblem(c, apierrors.NewValidationProblem(fields))
		return
	}
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
