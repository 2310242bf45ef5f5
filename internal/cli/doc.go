// Package cli provides the interactive lockbox shell.
//
// The shell reads one command per line and dispatches it to the
// authentication gate, the token service and the expiry scheduler. Every
// line counts as user activity for the session's idle auto-lock.
//
// Commands
//
//	setup                     set the master password (first run)
//	unlock                    unlock with the master password
//	touchid                   unlock with the biometric helper
//	lock                      lock the session
//	list                      list tokens with their expiry status
//	add                       add a token (interactive)
//	show <id>...              show tokens including their values
//	update <id>               edit a token (interactive, empty keeps)
//	delete <id>               delete a token after confirmation
//	mute <id>, unmute <id>    toggle expiry notifications for a token
//	history <id>              list notifications sent for a token
//	export env|shell [id]...  write tokens to a .env or shell file
//	check                     run the expiry check now
//	help, exit, quit
//
// The shell is started via App.Run, which blocks until the user exits or
// input ends.
package cli
