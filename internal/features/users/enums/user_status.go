package users_enums

type UserStatus string

const (
	UserStatusActive UserStatus = "ACTIVE"
	// UserStatusInvited marks an account created by a workspace invitation
	// that has not completed registration yet.
	UserStatusInvited UserStatus = "INVITED"
)
