// Package client contains the client-side plumbing that talks to things
// outside the process.
//
// # Overview
//
//  1. A transport-agnostic contract for the remote user service (see the
//     Client interface): Health, List, Create, Update and Delete.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that maps transport
//     failures to common.ErrRemoteUnavailable and non-2xx answers to
//     *common.RemoteRequestError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite file and applies the embedded goose migrations.
//
// # Error Handling
//
// Callers match failures with errors.Is / errors.As against the sentinels
// and types in package common.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation and deadlines.
package client
