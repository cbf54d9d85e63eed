// Package cli provides the interactive racfadmin command-line client.
//
// It wires the UserService, the export pipeline and an interactive REPL that
// works the same whether the remote service is up or not. A background
// watcher keeps the prompt's online/offline badge current.
//
// Commands:
//   - list                 show all users
//   - add                  create a user (prompts for fields)
//   - edit <id|userid>     change fields of a user
//   - delete <id|userid>…  delete one or more users
//   - preview <id|userid>  print the ADDUSER command for a user
//   - status               show online/offline mode and local seed state
//   - export               upload a JSON snapshot to S3
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
