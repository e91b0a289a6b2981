// Package upload is the résumé upload broker: it hands candidates a
// short-lived signed channel into blob storage and, at submit time, proves a
// résumé reference really came from that channel.
package upload

import (
	"context"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/unedp/careers/internal/storage"
	"github.com/unedp/careers/internal/utils"
)

const MaxResumeBytes int64 = 10 * 1024 * 1024 // 10,485,760

// allowedTypes maps accepted content types to the extension used for the
// stored object key.
var allowedTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Descriptor is the signed upload channel returned to the client.
type Descriptor struct {
	UploadURL  string `json:"upload_url"`
	ObjectKey  string `json:"object_key"`
	ClaimToken string `json:"claim_token"`
	ResumeURL  string `json:"resume_url"`
	ExpiresIn  int64  `json:"expires_in"`
}

type claimClaims struct {
	jwt.RegisteredClaims
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type Broker struct {
	signer   storage.Signer
	uploader storage.Uploader
	secret   []byte
	tokenTTL time.Duration
}

func NewBroker(signer storage.Signer, uploader storage.Uploader, secret string) *Broker {
	return &Broker{
		signer:   signer,
		uploader: uploader,
		secret:   []byte(secret),
		tokenTTL: 15 * time.Minute,
	}
}

// IssueToken validates the file against the allow-list and, on pass, returns
// a signed PUT URL plus a claim token binding the object key to this
// issuance. Constraint violations are rejected before any network call.
func (b *Broker) IssueToken(ctx context.Context, filename, contentType string, size int64) (*Descriptor, error) {
	const op = "UploadBroker.IssueToken"

	ext, err := b.checkConstraints(op, contentType, size)
	if err != nil {
		return nil, err
	}

	// extension follows the declared content type, never the client filename
	key := "resumes/" + uuid.NewString() + ext

	url, err := b.signer.SignedPutURL(ctx, key, contentType, b.tokenTTL)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to sign upload url", err)
	}

	signed, err := b.mintClaim(key, contentType, size)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign claim token", err)
	}

	return &Descriptor{
		UploadURL:  url,
		ObjectKey:  key,
		ClaimToken: signed,
		ResumeURL:  b.signer.PublicURL(key),
		ExpiresIn:  int64(b.tokenTTL.Seconds()),
	}, nil
}

// Upload is the pass-through intake path for clients that cannot PUT to a
// signed URL: the file body goes through this service into blob storage.
// Same allow-list, same claim token as IssueToken.
func (b *Broker) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*Descriptor, error) {
	const op = "UploadBroker.Upload"

	ext, err := b.checkConstraints(op, contentType, size)
	if err != nil {
		return nil, err
	}
	if b.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "direct upload is not configured", nil)
	}

	key := "resumes/" + uuid.NewString() + ext
	if _, err := b.uploader.Upload(ctx, key, contentType, io.LimitReader(r, size)); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store resume", err)
	}

	signed, err := b.mintClaim(key, contentType, size)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign claim token", err)
	}

	return &Descriptor{
		ObjectKey:  key,
		ClaimToken: signed,
		ResumeURL:  b.signer.PublicURL(key),
		ExpiresIn:  int64(b.tokenTTL.Seconds()),
	}, nil
}

func (b *Broker) mintClaim(key, contentType string, size int64) (string, error) {
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claimClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(b.tokenTTL)),
		},
		ObjectKey:   key,
		ContentType: contentType,
		Size:        size,
	})
	return tok.SignedString(b.secret)
}

// VerifyClaim checks a claim token presented at submit time and returns the
// résumé URL it vouches for. Arbitrary caller-supplied URLs never pass.
func (b *Broker) VerifyClaim(token string) (string, error) {
	const op = "UploadBroker.VerifyClaim"

	claims := &claimClaims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return b.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || tok == nil || !tok.Valid {
		return "", utils.E(utils.CodeInvalidArgument, op, "invalid resume claim token", err)
	}

	// re-check the allow-list; a token minted under older rules must not slip
	if _, err := b.checkConstraints(op, claims.ContentType, claims.Size); err != nil {
		return "", err
	}

	return b.signer.PublicURL(claims.ObjectKey), nil
}

func (b *Broker) checkConstraints(op, contentType string, size int64) (string, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", utils.E(utils.CodeInvalidArgument, op,
			"unsupported resume file type (allowed: PDF, DOC, DOCX)", nil)
	}
	if size <= 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "resume file is empty", nil)
	}
	if size > MaxResumeBytes {
		return "", utils.E(utils.CodeInvalidArgument, op, "resume file too large (max 10MB)", nil)
	}
	return ext, nil
}
