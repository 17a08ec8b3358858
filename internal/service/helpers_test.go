package service

import (
	"bytes"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

// restoreGlobals 重設所有可替換的全域函式
func restoreGlobals(t *testing.T) {
	t.Helper()
	origNow := timeNow
	origParse := parseWithClaims
	origGen := bcryptGenerateFromPassword
	origCmp := bcryptCompareHashAndPassword
	origID := newID
	origSuffix := newKeySuffix
	t.Cleanup(func() {
		timeNow = origNow
		parseWithClaims = origParse
		bcryptGenerateFromPassword = origGen
		bcryptCompareHashAndPassword = origCmp
		newID = origID
		newKeySuffix = origSuffix
	})
}

// fastBcrypt keeps hashing real but cheap.
func fastBcrypt(t *testing.T) {
	t.Helper()
	restoreGlobals(t)
	bcryptGenerateFromPassword = func(p []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(p, bcrypt.MinCost)
	}
}

// fileHeader builds a *multipart.FileHeader the way Echo hands it to handlers.
func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}
