// Package cli implements the AUXillary command-line client.
//
// Commands:
//   - register: prompts for username, email, password and confirmation
//   - login:    prompts for username and password, prints the issued tokens
//
// Passwords are read from the terminal without echo and wiped after use.
package cli
