// Package users is the local Record Store: user records persisted in the
// client's SQLite database.
//
// # Overview
//
// Repository describes the operations the offline backend needs. The SQLite
// implementation (SQLiteRepository) commits every mutation immediately, runs
// multi-statement work (InsertMany, Update) in a single transaction and keeps
// a UNIQUE index on userid so two rows can never share a business key.
//
// # Errors
//
// Domain conditions come back as the types in package common:
// *common.NotFoundError, *common.DuplicateUserError and common.ErrDuplicateKey.
// Anything else the driver reports is wrapped in *common.StorageError.
//
// Typical Usage
//
//	repo := users.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, rec)
//	list, _ := repo.List(ctx)
//	one, _ := repo.GetByID(ctx, rec.ID)
//	_ = repo.Delete(ctx, rec.ID)
package users
