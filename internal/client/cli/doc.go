// Package cli provides the interactive itemkeeper command-line client.
//
// It wires configuration, local storage, the API client, the session manager
// and an interactive REPL. At start-up the saved token is resolved in the
// background; dashboard commands wait for that resolution and send anonymous
// users to the login view.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
