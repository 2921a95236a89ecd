package enum

type SessionRole string

const (
	SessionRoleUser  SessionRole = "user"
	SessionRoleAdmin SessionRole = "admin"
)
