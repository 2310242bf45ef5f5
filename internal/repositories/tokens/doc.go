// Package tokens provides the persistence layer for stored credentials.
//
// # Overview
//
// The package defines a Repository interface for CRUD operations on Token
// models (see internal/models). SQLiteRepository persists rows of the
// api_tokens table through a dbx.DBTX, so the same code runs on a *sql.DB or
// inside a transaction.
//
// # Data Model
//
// The token value is stored only as an encryption blob; this package never
// sees plaintext. Listings omit the blob; single and batch reads return it so
// the service layer can decrypt. Ids are integer keys rendered as decimal
// strings.
//
// # Errors
//
// Missing rows are reported as common.ErrNotFound and CHECK constraint
// failures as common.ErrValidation.
//
// Typical Usage
//
//	repo := tokens.NewSQLiteRepository(db)
//	id, _ := repo.Insert(ctx, &token)
//	list, _ := repo.List(ctx)
//	one, _ := repo.GetByID(ctx, id)
//	_ = repo.Delete(ctx, id)
package tokens
