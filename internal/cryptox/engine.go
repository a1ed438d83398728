package cryptox

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/keeperbackup/internal/logging"
)

// Engine encrypts and decrypts backup artifacts. It holds no key material
// between calls.
type Engine struct {
	params Params
	limits Params
	salts  SaltSource
	random io.Reader
	log    logging.Logger
}

type Option func(*Engine)

// WithParams sets the KDF cost used for new artifacts.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithReadLimits caps the KDF cost accepted from an artifact header. The
// cost used for new artifacts is always accepted.
func WithReadLimits(p Params) Option {
	return func(e *Engine) { e.limits = p }
}

// WithSaltSource replaces the preferred salt source.
func WithSaltSource(s SaltSource) Option {
	return func(e *Engine) { e.salts = s }
}

// WithRandom replaces the CSPRNG used for stream headers and as the salt
// fallback.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) { e.random = r }
}

func NewEngine(log logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		params: DefaultParams(),
		limits: DefaultReadLimits(),
		salts:  LockedSaltSource{},
		random: rand.Reader,
		log:    log,
	}
	for _, o := range opts {
		o(e)
	}
	e.limits.OpsLimit = max(e.limits.OpsLimit, e.params.OpsLimit)
	e.limits.MemLimit = max(e.limits.MemLimit, e.params.MemLimit)
	return e
}

func (e *Engine) salt(ctx context.Context) ([]byte, error) {
	s, err := e.salts.Salt(SaltSize)
	if err == nil && len(s) == SaltSize {
		return s, nil
	}

	e.log.Warn(ctx, "locked salt source unavailable, using fallback random generator", "error", err)

	s = make([]byte, SaltSize)
	if _, err := io.ReadFull(e.random, s); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return s, nil
}

// Encrypt seals payload with a key derived from password and binds the
// result to userID.
func (e *Engine) Encrypt(ctx context.Context, payload, password []byte, userID string) ([]byte, error) {
	if err := e.params.Validate(); err != nil {
		return nil, err
	}

	salt, err := e.salt(ctx)
	if err != nil {
		return nil, err
	}

	h := Header{Version: HeaderVersion, Params: e.params}
	copy(h.Salt[:], salt)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.log.Debug(ctx, "deriving keys", "ops_limit", e.params.OpsLimit, "mem_limit", e.params.MemLimit)

	accountHash, err := DeriveKey([]byte(userID), salt, e.params)
	if err != nil {
		return nil, fmt.Errorf("account hash: %w", err)
	}
	copy(h.AccountHash[:], accountHash)

	key, err := DeriveKey(password, salt, e.params)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(key)

	hdr, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}

	sh := make([]byte, StreamHeaderSize)
	if _, err := io.ReadFull(e.random, sh); err != nil {
		return nil, fmt.Errorf("generate stream header: %w", err)
	}

	st, err := newStream(key, sh)
	if err != nil {
		return nil, err
	}

	ct, err := st.seal(TagFinal, payload, hdr)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+StreamHeaderSize+len(ct))
	out = append(out, hdr...)
	out = append(out, sh...)
	out = append(out, ct...)
	return out, nil
}

// Decrypt opens an artifact produced by Encrypt. The account binding is
// checked before the payload key is derived, so an archive of another
// account fails with ErrAccountMismatch even when the password is right.
func (e *Engine) Decrypt(ctx context.Context, artifact, password []byte, userID string) ([]byte, error) {
	if len(artifact) < HeaderSize {
		return nil, fmt.Errorf("%w: artifact shorter than header", ErrHeaderFormat)
	}

	h, err := ParseHeader(artifact[:HeaderSize])
	if err != nil {
		return nil, err
	}

	if err := e.verify(ctx, h, userID); err != nil {
		return nil, err
	}

	body := artifact[HeaderSize:]
	if len(body) < StreamHeaderSize+StreamOverhead {
		return nil, fmt.Errorf("%w: truncated ciphertext", ErrAuthentication)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := DeriveKey(password, h.Salt[:], h.Params)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(key)

	st, err := newStream(key, body[:StreamHeaderSize])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	tag, payload, err := st.open(body[StreamHeaderSize:], artifact[:HeaderSize])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if tag != TagFinal {
		return nil, fmt.Errorf("%w: stream not finalized", ErrAuthentication)
	}

	return payload, nil
}

func (e *Engine) verify(ctx context.Context, h Header, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if h.Params.OpsLimit > e.limits.OpsLimit || h.Params.MemLimit > e.limits.MemLimit {
		return fmt.Errorf("%w: header asks for ops %d mem %d, limit is ops %d mem %d", ErrKeyDerivation,
			h.Params.OpsLimit, h.Params.MemLimit, e.limits.OpsLimit, e.limits.MemLimit)
	}

	want, err := DeriveKey([]byte(userID), h.Salt[:], h.Params)
	if err != nil {
		return fmt.Errorf("account hash: %w", err)
	}

	if subtle.ConstantTimeCompare(want, h.AccountHash[:]) != 1 {
		return ErrAccountMismatch
	}
	return nil
}

// EncryptFile encrypts the file at src into a new file at dst.
func (e *Engine) EncryptFile(ctx context.Context, src, dst string, password []byte, userID string) error {
	payload, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	out, err := e.Encrypt(ctx, payload, password, userID)
	if err != nil {
		return err
	}

	return writeNew(dst, out)
}

// DecryptFile decrypts the artifact at src into a new file at dst.
func (e *Engine) DecryptFile(ctx context.Context, src, dst string, password []byte, userID string) error {
	artifact, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	payload, err := e.Decrypt(ctx, artifact, password, userID)
	if err != nil {
		return err
	}

	return writeNew(dst, payload)
}

// ReadHeader reads and parses the header of the artifact at path.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrHeaderFormat, err)
	}
	return ParseHeader(buf)
}

// VerifyAccount reports whether the artifact at path belongs to userID,
// without a password.
func (e *Engine) VerifyAccount(ctx context.Context, path, userID string) error {
	h, err := ReadHeader(path)
	if err != nil {
		return err
	}
	return e.verify(ctx, h, userID)
}

func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("write %s: %w", path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("close %s: %w", path, cerr)
	}
	return nil
}
