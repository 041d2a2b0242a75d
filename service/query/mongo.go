// Package query wraps the official mongo driver behind a small interface so
// repositories never touch driver types directly. See
// https://godoc.org/go.mongodb.org/mongo-driver/mongo for driver details.
package query

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
)

var (
	// ErrNotFound is returned when no document matches the selector
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is returned when an insert violates a unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is returned for unindexed queries when index checking is on
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is a functional option for Patch
type PatchOp func(*patchOp)

// WithPatchMany patches every entry the selector matches instead of one
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Mongo abstracts the mongo layer
type Mongo interface {
	// Insert inserts a new document into the table.
	// Returns ErrDuplicateKey when a unique index rejects the document.
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne decodes the first document matching query into result.
	// Returns ErrNotFound when nothing matches.
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count counts the documents matching the selector
	// https://docs.mongodb.com/manual/reference/method/db.collection.countDocuments
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Search queries with offset/limit pagination, sorted by `sort`
	// ("field" ascending, "-field" descending, "" for no ordering)
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Upsert replaces the entry matching the selector, inserting when absent
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Patch applies a $set update to the entry matching the selector.
	// Returns ErrNotFound when nothing matches. Use WithPatchMany(true) to
	// patch every match.
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// CustomPatch applies a caller-built mongo update document.
	// Returns ErrNotFound when upsert is false and nothing matches.
	CustomPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// Increment atomically increases `field` by `inc` and decodes the
	// post-increment document into result. Inserts the entry when absent.
	Increment(context ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error

	// Remove deletes the entry matching the selector.
	// Returns ErrNotFound when nothing matches.
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// RunWithTransaction runs fn inside a mongo session transaction
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
