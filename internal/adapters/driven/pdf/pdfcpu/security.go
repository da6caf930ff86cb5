package pdfcpu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
)

func init() {
	// Keep pdfcpu from creating its own config directory in the user's home.
	model.ConfigPath = "disable"
}

// Ensure Security implements the interface.
var _ driven.DocumentSecurity = (*Security)(nil)

// Security inspects, encrypts, decrypts and rewrites PDF files.
type Security struct{}

// NewSecurity creates a new pdfcpu-backed document security adapter.
func NewSecurity() *Security {
	return &Security{}
}

// Inspect opens the document with the password and reports its page count
// and whether it is encrypted. A document that cannot be opened without a
// password returns domain.ErrWrongPassword.
func (s *Security) Inspect(ctx context.Context, path, password string) (*domain.DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pdfCtx, err := api.ReadContext(f, configuration(password))
	if err != nil {
		return nil, classify(err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, classify(err)
	}

	return &domain.DocumentInfo{
		Path:      path,
		Pages:     pdfCtx.PageCount,
		Encrypted: pdfCtx.Encrypt != nil,
	}, nil
}

// Encrypt writes dst as an AES-encrypted copy of src with password as both
// user and owner password.
func (s *Security) Encrypt(ctx context.Context, src, dst, password string, keyLength int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !domain.ValidKeyLength(keyLength) {
		return fmt.Errorf("%w: key length %d", domain.ErrInvalidInput, keyLength)
	}

	conf := model.NewAESConfiguration(password, password, keyLength)
	return writeAtomic(dst, func(tmp string) error {
		return api.EncryptFile(src, tmp, conf)
	})
}

// Decrypt writes dst as an unprotected copy of src.
func (s *Security) Decrypt(ctx context.Context, src, dst, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	conf := configuration(password)
	return writeAtomic(dst, func(tmp string) error {
		return api.DecryptFile(src, tmp, conf)
	})
}

// Rewrite copies the pages of an unencrypted src to dst unchanged.
func (s *Security) Rewrite(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeAtomic(dst, func(tmp string) error {
		return api.OptimizeFile(src, tmp, configuration(""))
	})
}

// configuration returns a relaxed configuration carrying password as both
// user and owner password.
func configuration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = password
	conf.OwnerPW = password
	return conf
}

// writeAtomic runs write against a temporary path and renames it to dst.
func writeAtomic(dst string, write func(tmp string) error) error {
	tmp := dst + ".tmp"
	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return classify(err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// classify maps pdfcpu's password complaints to domain.ErrWrongPassword.
// pdfcpu reports them as plain errors, so the message is the only signal.
func classify(err error) error {
	if err == nil || errors.Is(err, domain.ErrWrongPassword) {
		return err
	}
	if strings.Contains(strings.ToLower(err.Error()), "password") {
		return fmt.Errorf("%w: %v", domain.ErrWrongPassword, err)
	}
	return err
}
