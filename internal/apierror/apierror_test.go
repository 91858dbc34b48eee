package apierror

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPorKind(t *testing.T) {
	cases := []struct {
		err  *APIError
		want int
	}{
		{Validacion("x"), http.StatusBadRequest},
		{EstadoInvalido("x"), http.StatusBadRequest},
		{NoEncontrado("x"), http.StatusNotFound},
		{Conflicto("x"), http.StatusConflict},
		{NoAutorizado("x"), http.StatusUnauthorized},
		{Interno(), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Status(), string(tc.err.Kind))
	}
}

func TestInternoNoFiltraDetalles(t *testing.T) {
	err := Interno()
	assert.Equal(t, "Error interno del servidor", err.Error())
}
