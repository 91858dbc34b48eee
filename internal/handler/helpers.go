package handler

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service errors to their HTTP status. Anything that is not
// an *apierror.APIError is logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	if apiErr, ok := err.(*apierror.APIError); ok {
		c.JSON(apiErr.Status(), apiErr)
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("error no tipificado")
	interno := apierror.Interno()
	c.JSON(interno.Status(), interno)
}

// parseID reads a uuid path param; writes the 400 response itself on failure.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion(name+" inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// empleadoID resolves the acting empleado from the JWT. Operations de caja
// fail upfront when the login has no empleado linked.
func empleadoID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.EmpleadoID == "" {
		c.JSON(http.StatusBadRequest, apierror.Validacion("el usuario no tiene un empleado asociado"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("empleado_id inválido en el token"))
		return uuid.Nil, false
	}
	return id, true
}

// paginate wraps a list in the standard envelope with previous/next links
// rebuilt from the request URL.
func paginate(c *gin.Context, items interface{}, total int64, filter dto.PageFilter) dto.Page {
	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		totalPages++
	}

	var previous, next *string
	if filter.Page > 1 {
		url := pageURL(c, filter.Page-1, filter.Limit)
		previous = &url
	}
	if int64(filter.Page) < totalPages {
		url := pageURL(c, filter.Page+1, filter.Limit)
		next = &url
	}

	return dto.Page{
		Results:     items,
		PageSize:    filter.Limit,
		CurrentPage: filter.Page,
		Previous:    previous,
		Next:        next,
		TotalItems:  total,
		TotalPages:  totalPages,
	}
}

func pageURL(c *gin.Context, page, limit int) string {
	query := c.Request.URL.Query()
	query.Set("page", fmt.Sprint(page))
	query.Set("page_size", fmt.Sprint(limit))
	return c.Request.URL.Path + "?" + query.Encode()
}
