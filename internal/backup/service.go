package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/keeperbackup/internal/backup/archiver"
	"github.com/dmitrijs2005/keeperbackup/internal/backup/meta"
	"github.com/dmitrijs2005/keeperbackup/internal/backup/packager"
	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/filex"
	"github.com/dmitrijs2005/keeperbackup/internal/logging"
)

const (
	bundleName = "bundle.zip"
	pagesDir   = "pages"
)

// Archiver exports and imports one table.
type Archiver interface {
	Name() string
	Export(ctx context.Context, dir string, pageSize int) (archiver.Result, error)
	Import(ctx context.Context, files []string) (archiver.Result, error)
}

// Crypto seals and opens artifacts on disk.
type Crypto interface {
	EncryptFile(ctx context.Context, src, dst string, password []byte, userID string) error
	DecryptFile(ctx context.Context, src, dst string, password []byte, userID string) error
}

type CreateRequest struct {
	Session  models.Session
	Password []byte
	// ScratchRoot is the parent of the per-run scratch directory.
	ScratchRoot string
	// Output is the artifact path; it must not exist.
	Output string
}

type CreateResult struct {
	WorkDir  string
	Artifact string
	Tables   []archiver.Result
}

type RestoreRequest struct {
	UserID      string
	Password    []byte
	Artifact    string
	ScratchRoot string
}

type RestoreResult struct {
	WorkDir  string
	Metadata meta.Metadata
	Tables   []archiver.Result
}

// Service runs backup pipelines over a fixed, ordered set of tables.
type Service struct {
	tables   []Archiver
	crypto   Crypto
	log      logging.Logger
	pageSize int
	version  int
	inflight *inflight
}

func NewService(tables []Archiver, crypto Crypto, log logging.Logger, pageSize int) *Service {
	return &Service{
		tables:   tables,
		crypto:   crypto,
		log:      log,
		pageSize: pageSize,
		version:  meta.CurrentVersion,
		inflight: newInflight(),
	}
}

// CreateAsync runs Create on a background goroutine. The busy check happens
// before it returns.
func (s *Service) CreateAsync(ctx context.Context, req CreateRequest) (*Task[*CreateResult], error) {
	release, ok := s.inflight.acquire("create", req.Session.UserID)
	if !ok {
		return nil, ErrBusy
	}

	return start(ctx, func(ctx context.Context) (*CreateResult, error) {
		defer release()
		return s.create(ctx, req)
	}), nil
}

// RestoreAsync runs Restore on a background goroutine. The busy check
// happens before it returns.
func (s *Service) RestoreAsync(ctx context.Context, req RestoreRequest) (*Task[*RestoreResult], error) {
	release, ok := s.inflight.acquire("restore", req.UserID)
	if !ok {
		return nil, ErrBusy
	}

	return start(ctx, func(ctx context.Context) (*RestoreResult, error) {
		defer release()
		return s.restore(ctx, req)
	}), nil
}

// Create exports every table, then packages and encrypts them into
// req.Output. The first failure stops the pipeline and is returned as a
// *CreationError; files written so far are left in the scratch directory.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	release, ok := s.inflight.acquire("create", req.Session.UserID)
	if !ok {
		return nil, ErrBusy
	}
	defer release()

	return s.create(ctx, req)
}

func (s *Service) create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	log := s.log.With("op", "create", "user_id", req.Session.UserID)

	workDir, err := filex.ScratchDir(req.ScratchRoot, "create")
	if err != nil {
		return nil, &CreationError{Stage: StageExport, Err: err}
	}
	res := &CreateResult{WorkDir: workDir}

	fail := func(stage, table string, err error) (*CreateResult, error) {
		log.Error(ctx, "backup creation failed", "stage", stage, "table", table, "error", err)
		return res, &CreationError{Stage: stage, Table: table, Err: err}
	}

	pages := filepath.Join(workDir, pagesDir)
	if err := os.Mkdir(pages, 0o700); err != nil {
		return fail(StageExport, "", err)
	}

	var files []string
	for _, t := range s.tables {
		if err := ctx.Err(); err != nil {
			return fail(StageExport, t.Name(), err)
		}

		tr, err := t.Export(ctx, pages, s.pageSize)
		if err != nil {
			return fail(StageExport, t.Name(), err)
		}

		log.Info(ctx, "table exported", "table", tr.Table, "pages", len(tr.Files), "rows", tr.Rows)
		res.Tables = append(res.Tables, tr)
		files = append(files, tr.Files...)
	}

	mdPath, err := meta.Write(meta.New(req.Session, s.version), pages)
	if err != nil {
		return fail(StageMetadata, "", err)
	}
	files = append(files, mdPath)

	bundle := filepath.Join(workDir, bundleName)
	if err := packager.Zip(ctx, files, bundle); err != nil {
		return fail(StagePackage, "", err)
	}

	if err := ctx.Err(); err != nil {
		return fail(StageEncrypt, "", err)
	}
	if err := s.crypto.EncryptFile(ctx, bundle, req.Output, req.Password, req.Session.UserID); err != nil {
		return fail(StageEncrypt, "", err)
	}

	res.Artifact = req.Output
	log.Info(ctx, "backup created", "artifact", req.Output, "tables", len(res.Tables))
	return res, nil
}

// Restore decrypts req.Artifact, validates it against req.UserID and imports
// every table in order. Each table is imported atomically; tables imported
// before a failure are kept.
func (s *Service) Restore(ctx context.Context, req RestoreRequest) (*RestoreResult, error) {
	release, ok := s.inflight.acquire("restore", req.UserID)
	if !ok {
		return nil, ErrBusy
	}
	defer release()

	return s.restore(ctx, req)
}

func (s *Service) restore(ctx context.Context, req RestoreRequest) (*RestoreResult, error) {
	log := s.log.With("op", "restore", "user_id", req.UserID)

	workDir, err := filex.ScratchDir(req.ScratchRoot, "restore")
	if err != nil {
		return nil, &RestoreError{Stage: StageDecrypt, Err: err}
	}
	res := &RestoreResult{WorkDir: workDir}

	fail := func(stage, table string, err error) (*RestoreResult, error) {
		log.Error(ctx, "restore failed", "stage", stage, "table", table, "kind", KindOf(err), "error", err)
		return res, &RestoreError{Stage: stage, Table: table, Err: err}
	}

	bundle := filepath.Join(workDir, bundleName)
	if err := s.crypto.DecryptFile(ctx, req.Artifact, bundle, req.Password, req.UserID); err != nil {
		return fail(StageDecrypt, "", err)
	}

	pages := filepath.Join(workDir, pagesDir)
	if err := os.Mkdir(pages, 0o700); err != nil {
		return fail(StageUnpack, "", err)
	}

	ex, err := packager.Unzip(ctx, bundle, pages)
	if err != nil {
		return fail(StageUnpack, "", err)
	}
	if err := s.checkTables(ex); err != nil {
		return fail(StageUnpack, "", err)
	}

	md, err := meta.Read(ex.Metadata)
	if err != nil {
		return fail(StageMetadata, "", err)
	}
	if err := meta.Validate(md, req.UserID, s.version); err != nil {
		return fail(StageMetadata, "", err)
	}
	res.Metadata = md

	for _, t := range s.tables {
		if err := ctx.Err(); err != nil {
			return fail(StageImport, t.Name(), err)
		}

		tr, err := t.Import(ctx, ex.Pages[t.Name()])
		if err != nil {
			return fail(StageImport, t.Name(), err)
		}

		log.Info(ctx, "table restored", "table", tr.Table, "pages", len(tr.Files), "rows", tr.Rows)
		res.Tables = append(res.Tables, tr)
	}

	log.Info(ctx, "restore finished", "artifact", req.Artifact, "tables", len(res.Tables))
	return res, nil
}

// checkTables rejects archives holding pages of tables this service does
// not know.
func (s *Service) checkTables(ex *packager.Extracted) error {
	known := make(map[string]bool, len(s.tables))
	for _, t := range s.tables {
		known[t.Name()] = true
	}

	var errs []error
	for name := range ex.Pages {
		if !known[name] {
			errs = append(errs, fmt.Errorf("%w: unknown table %q", packager.ErrPackaging, name))
		}
	}
	return errors.Join(errs...)
}
