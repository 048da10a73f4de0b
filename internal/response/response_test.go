package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coverbox/service/internal/response"
)

func TestEnvelopeShapes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	response.OK(rec, 42)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"code":0,"data":42}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.OKEmpty(rec)
	require.JSONEq(t, `{"code":0}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.NotFound(rec, "cover not found")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"code":-1,"errorMsg":"cover not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.Forbidden(rec, "admin secret invalid")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"code":-1,"errorMsg":"admin secret invalid"}`, rec.Body.String())
}
