package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unedp/careers/internal/utils"
)

type fakeSigner struct {
	signCalls int
	signErr   error
}

func (f *fakeSigner) SignedPutURL(_ context.Context, objectName, _ string, _ time.Duration) (string, error) {
	f.signCalls++
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://storage.example.test/put/" + objectName, nil
}

func (f *fakeSigner) PublicURL(objectName string) string {
	return "https://storage.example.test/" + objectName
}

type fakeUploader struct {
	uploadCalls int
	uploadErr   error

	lastKey         string
	lastContentType string
	lastBody        []byte
}

func (f *fakeUploader) Upload(_ context.Context, objectName, contentType string, r io.Reader) (string, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.lastKey = objectName
	f.lastContentType = contentType
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.lastBody = body
	return objectName, nil
}

func TestIssueTokenAcceptsExactMaxSize(t *testing.T) {
	signer := &fakeSigner{}
	b := NewBroker(signer, nil, "test-secret")

	d, err := b.IssueToken(context.Background(), "cv.pdf", "application/pdf", MaxResumeBytes)
	require.NoError(t, err)
	assert.Equal(t, 1, signer.signCalls)
	assert.True(t, strings.HasPrefix(d.ObjectKey, "resumes/"))
	assert.True(t, strings.HasSuffix(d.ObjectKey, ".pdf"))
	assert.Contains(t, d.UploadURL, d.ObjectKey)
	assert.Equal(t, signer.PublicURL(d.ObjectKey), d.ResumeURL)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), d.ExpiresIn)
}

func TestIssueTokenRejectsBeforeSigning(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		size        int64
	}{
		{"one byte over limit", "application/pdf", MaxResumeBytes + 1},
		{"image", "image/png", 1024},
		{"empty file", "application/pdf", 0},
		{"negative size", "application/pdf", -1},
		{"no content type", "", 1024},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signer := &fakeSigner{}
			b := NewBroker(signer, nil, "test-secret")

			_, err := b.IssueToken(context.Background(), "cv.bin", tc.contentType, tc.size)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
			assert.Equal(t, 0, signer.signCalls, "rejection must happen before any signing call")
		})
	}
}

func TestIssueTokenKeyFollowsContentType(t *testing.T) {
	exts := map[string]string{
		"application/pdf":    ".pdf",
		"application/msword": ".doc",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	}

	b := NewBroker(&fakeSigner{}, nil, "test-secret")
	for contentType, ext := range exts {
		// a misleading client filename never decides the stored extension
		d, err := b.IssueToken(context.Background(), "resume.exe", contentType, 1024)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(d.ObjectKey, ext), "key %q should end in %q", d.ObjectKey, ext)
	}
}

func TestVerifyClaimRoundTrip(t *testing.T) {
	signer := &fakeSigner{}
	b := NewBroker(signer, nil, "test-secret")

	d, err := b.IssueToken(context.Background(), "cv.pdf", "application/pdf", 2048)
	require.NoError(t, err)

	url, err := b.VerifyClaim(d.ClaimToken)
	require.NoError(t, err)
	assert.Equal(t, d.ResumeURL, url)
}

func TestVerifyClaimRejectsForeignSecret(t *testing.T) {
	issuer := NewBroker(&fakeSigner{}, nil, "secret-a")
	verifier := NewBroker(&fakeSigner{}, nil, "secret-b")

	d, err := issuer.IssueToken(context.Background(), "cv.pdf", "application/pdf", 2048)
	require.NoError(t, err)

	_, err = verifier.VerifyClaim(d.ClaimToken)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestVerifyClaimRejectsGarbage(t *testing.T) {
	b := NewBroker(&fakeSigner{}, nil, "test-secret")

	for _, tok := range []string{"", "not-a-jwt", "https://evil.example/cv.pdf"} {
		_, err := b.VerifyClaim(tok)
		require.Error(t, err)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	}
}

func TestUploadStoresBodyAndMintsClaim(t *testing.T) {
	signer := &fakeSigner{}
	uploader := &fakeUploader{}
	b := NewBroker(signer, uploader, "test-secret")

	body := []byte("%PDF-1.7 fake resume body")
	d, err := b.Upload(context.Background(), "cv.pdf", "application/pdf", int64(len(body)), bytes.NewReader(body))
	require.NoError(t, err)

	require.Equal(t, 1, uploader.uploadCalls)
	assert.Equal(t, d.ObjectKey, uploader.lastKey)
	assert.Equal(t, "application/pdf", uploader.lastContentType)
	assert.Equal(t, body, uploader.lastBody)
	assert.True(t, strings.HasSuffix(d.ObjectKey, ".pdf"))
	assert.Empty(t, d.UploadURL, "a pass-through upload needs no signed URL")
	assert.Equal(t, 0, signer.signCalls)

	// the minted claim vouches for the stored object at submit time
	url, err := b.VerifyClaim(d.ClaimToken)
	require.NoError(t, err)
	assert.Equal(t, d.ResumeURL, url)
}

func TestUploadRejectsBeforeStorage(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		size        int64
	}{
		{"one byte over limit", "application/pdf", MaxResumeBytes + 1},
		{"image", "image/png", 1024},
		{"empty file", "application/pdf", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uploader := &fakeUploader{}
			b := NewBroker(&fakeSigner{}, uploader, "test-secret")

			_, err := b.Upload(context.Background(), "cv.bin", tc.contentType, tc.size, bytes.NewReader(nil))
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
			assert.Equal(t, 0, uploader.uploadCalls, "rejection must happen before any write")
		})
	}
}

func TestUploadStorageFailure(t *testing.T) {
	uploader := &fakeUploader{uploadErr: errors.New("bucket unreachable")}
	b := NewBroker(&fakeSigner{}, uploader, "test-secret")

	_, err := b.Upload(context.Background(), "cv.pdf", "application/pdf", 1024, bytes.NewReader([]byte("x")))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestVerifyClaimRejectsExpired(t *testing.T) {
	b := NewBroker(&fakeSigner{}, nil, "test-secret")

	past := time.Now().UTC().Add(-time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claimClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(15 * time.Minute)),
		},
		ObjectKey:   "resumes/expired.pdf",
		ContentType: "application/pdf",
		Size:        1024,
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = b.VerifyClaim(signed)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestVerifyClaimRechecksConstraints(t *testing.T) {
	b := NewBroker(&fakeSigner{}, nil, "test-secret")

	// a token minted for a type the allow-list no longer accepts must fail
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claimClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
		ObjectKey:   "resumes/sneaky.png",
		ContentType: "image/png",
		Size:        1024,
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = b.VerifyClaim(signed)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
