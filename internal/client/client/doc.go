// Package client contains client-side building blocks for itemkeeper.
//
// The package provides:
//  1. The API contract the CLI depends on (see Client).
//  2. A JSON-over-HTTP implementation (see HTTPClient) that sends the token in
//     a configurable header and maps error statuses to APIError values.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Server rejections are *APIError and
// match ErrUnauthorized (401) and ErrNotFound (404) with errors.Is.
// ErrTokenRejected narrows ErrUnauthorized to token failures, leaving out the
// 401 sent for an item owned by someone else.
package client
