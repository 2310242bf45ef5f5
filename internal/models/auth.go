package models

// AuthRecordID is the fixed row id of the singleton password record.
const AuthRecordID = 1

// AuthRecord is the salted master-password hash. At most one exists; it is
// written once by setup and never updated.
type AuthRecord struct {
	PasswordHash []byte
	Salt         []byte
}
