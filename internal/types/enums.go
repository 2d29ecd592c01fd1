package types

// Project type values
const (
	ProjectTypeApp       = "App"
	ProjectTypeWeb       = "Web"
	ProjectTypeDashboard = "Dashboard"
)

// OAuth flow intents
const (
	IntentLogin  = "login"
	IntentSignup = "signup"
)

// Valid project types for validation
var ValidProjectTypes = []string{
	ProjectTypeApp, ProjectTypeWeb, ProjectTypeDashboard,
}

func IsValidProjectType(t string) bool {
	for _, v := range ValidProjectTypes {
		if v == t {
			return true
		}
	}
	return false
}
