package services

// Keys of the records kept in the key-value store. Each purpose has its own
// distinct key; per-account records append the account email to a prefix.
const (
	authStateKey         = "auth_state"
	registeredUsersKey   = "registered_users"
	userKeyPrefix        = "user_"
	credentialsKeyPrefix = "credentials_"
	draftRegistrationKey = "draft_registration"
	biometricEnabledKey  = "biometric_enabled"
	installationIDKey    = "installation_id"
)

func userKey(email string) string        { return userKeyPrefix + email }
func credentialsKey(email string) string { return credentialsKeyPrefix + email }
