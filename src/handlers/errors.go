package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fluentos/desktop-admin-api/src/logging"
	"github.com/fluentos/desktop-admin-api/src/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInternalError  = "Erreur interne du serveur"
	msgInvalidRequest = "Requête invalide"
)

// respondError writes err as {"detail": ...} with the status matching its kind
func respondError(c *gin.Context, err error) {
	var se *services.ServiceError
	if errors.As(err, &se) {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"detail": se.Message})
		return
	}

	logging.FromContext(c.Request.Context()).Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("request failed")
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": msgInternalError})
}

// respondBindingError reports the first invalid field of a request body
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": bindingMessage(err)})
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgInvalidRequest
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Le champ %s est requis", fe.Field())
	case "role":
		return "Rôle invalide"
	default:
		return fmt.Sprintf("Champ %s invalide", fe.Field())
	}
}
