package archiver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/dmitrijs2005/keeperbackup/internal/backup/codec"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
)

// Gateway is the storage contract a table must offer to be archived.
type Gateway[R any] interface {
	Count(ctx context.Context) (int64, error)
	GetBatch(ctx context.Context, limit, offset int) ([]R, error)
	Insert(ctx context.Context, rows []R) error
}

// GatewayFunc builds a gateway over a handle, which is either the database
// itself or an open transaction.
type GatewayFunc[R any] func(db dbx.DBTX) Gateway[R]

// Result summarizes one table export or import.
type Result struct {
	Table string
	Files []string
	Rows  int
}

// Table archives the rows R of one table using the JSON records J.
type Table[R, J any] struct {
	name    string
	db      *dbx.DB
	gateway GatewayFunc[R]
	codec   codec.Codec[R, J]
}

func NewTable[R, J any](name string, db *dbx.DB, gateway GatewayFunc[R], c codec.Codec[R, J]) *Table[R, J] {
	return &Table[R, J]{name: name, db: db, gateway: gateway, codec: c}
}

func (t *Table[R, J]) Name() string { return t.name }

func (t *Table[R, J]) fail(op string, err error) error {
	return &TableError{Table: t.name, Op: op, Err: err}
}

type page struct {
	data []byte
	rows int
}

// Pages yields the table as encoded JSON pages of up to pageSize records.
// The sequence ends after the first slice shorter than pageSize and never
// yields an empty page. Every iteration starts again from the first row.
func (t *Table[R, J]) Pages(ctx context.Context, pageSize int) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for p, err := range t.pages(ctx, pageSize) {
			if !yield(p.data, err) || err != nil {
				return
			}
		}
	}
}

func (t *Table[R, J]) pages(ctx context.Context, pageSize int) iter.Seq2[page, error] {
	return func(yield func(page, error) bool) {
		if pageSize <= 0 {
			yield(page{}, t.fail(OpRead, fmt.Errorf("invalid page size %d", pageSize)))
			return
		}

		gw := t.gateway(t.db)

		total, err := gw.Count(ctx)
		if err != nil {
			yield(page{}, t.fail(OpCount, err))
			return
		}
		if total == 0 {
			return
		}

		for offset := 0; ; offset += pageSize {
			if err := ctx.Err(); err != nil {
				yield(page{}, err)
				return
			}

			rows, err := gw.GetBatch(ctx, pageSize, offset)
			if err != nil {
				yield(page{}, t.fail(OpRead, err))
				return
			}
			if len(rows) == 0 {
				return
			}

			records := make([]J, len(rows))
			for i, r := range rows {
				records[i] = t.codec.Encode(r)
			}

			data, err := json.Marshal(records)
			if err != nil {
				yield(page{}, t.fail(OpEncode, err))
				return
			}

			if !yield(page{data: data, rows: len(rows)}, nil) || len(rows) < pageSize {
				return
			}
		}
	}
}

// Export writes every page of the table into dir and returns the written
// file paths in page order.
func (t *Table[R, J]) Export(ctx context.Context, dir string, pageSize int) (Result, error) {
	res := Result{Table: t.name}

	i := 0
	for p, err := range t.pages(ctx, pageSize) {
		if err != nil {
			return res, err
		}

		path := filepath.Join(dir, PageName(t.name, i))
		if err := os.WriteFile(path, p.data, 0o600); err != nil {
			return res, t.fail(OpWrite, err)
		}

		res.Files = append(res.Files, path)
		res.Rows += p.rows
		i++
	}

	return res, nil
}

// Import inserts the rows of the given page files in page index order.
// All pages are imported in one transaction; any failure leaves the table
// as it was.
func (t *Table[R, J]) Import(ctx context.Context, files []string) (Result, error) {
	res := Result{Table: t.name}

	ordered, err := t.order(files)
	if err != nil {
		return res, err
	}

	err = t.db.WithTx(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		gw := t.gateway(tx)

		for _, f := range ordered {
			if err := ctx.Err(); err != nil {
				return err
			}

			rows, err := t.readPage(f)
			if err != nil {
				return err
			}

			if err := gw.Insert(ctx, rows); err != nil {
				return t.fail(OpInsert, err)
			}
			res.Rows += len(rows)
		}
		return nil
	})
	if err != nil {
		res.Rows = 0
		return res, err
	}

	res.Files = ordered
	return res, nil
}

func (t *Table[R, J]) order(files []string) ([]string, error) {
	type indexed struct {
		index int
		path  string
	}

	pages := make([]indexed, 0, len(files))
	for _, f := range files {
		table, idx, ok := ParsePageName(f)
		if !ok || table != t.name {
			return nil, t.fail(OpDecode, fmt.Errorf("unexpected page file %q", filepath.Base(f)))
		}
		pages = append(pages, indexed{index: idx, path: f})
	}

	slices.SortFunc(pages, func(a, b indexed) int { return a.index - b.index })

	out := make([]string, len(pages))
	for i, p := range pages {
		if i > 0 && pages[i-1].index == p.index {
			return nil, t.fail(OpDecode, fmt.Errorf("duplicate page %d", p.index))
		}
		out[i] = p.path
	}
	return out, nil
}

// readPage stream-decodes one page file into rows.
func (t *Table[R, J]) readPage(path string) ([]R, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, t.fail(OpRead, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	if err := expectDelim(dec, '['); err != nil {
		return nil, t.fail(OpDecode, fmt.Errorf("%s: %w", filepath.Base(path), err))
	}

	var rows []R
	for dec.More() {
		var rec J
		if err := dec.Decode(&rec); err != nil {
			return nil, t.fail(OpDecode, fmt.Errorf("%s record %d: %w", filepath.Base(path), len(rows), err))
		}

		row, err := t.codec.Decode(rec)
		if err != nil {
			return nil, t.fail(OpDecode, fmt.Errorf("%s record %d: %w", filepath.Base(path), len(rows), err))
		}
		rows = append(rows, row)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, t.fail(OpDecode, fmt.Errorf("%s: %w", filepath.Base(path), err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, t.fail(OpDecode, fmt.Errorf("%s: trailing data after page", filepath.Base(path)))
	}

	return rows, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
