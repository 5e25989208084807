package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Title string `json:"title" validate:"required,max=10"`
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"title":"Roadmap"}`))

	var target decodeTarget
	require.NoError(t, DecodeJSON(req, &target))
	assert.Equal(t, "Roadmap", target.Title)
}

func TestDecodeJSONMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"title":`))

	var target decodeTarget
	assert.Error(t, DecodeJSON(req, &target))
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(decodeTarget{Title: "Roadmap"}))
	assert.Error(t, ValidateRequest(decodeTarget{}), "required field missing")
	assert.Error(t, ValidateRequest(decodeTarget{Title: "this title is too long"}))
}

type selfValidating struct {
	ok bool
}

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequestPrefersValidateMethod(t *testing.T) {
	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{ok: false}), assert.AnError)
}
