package auth

import "github.com/user/todo-api-go/apperror"

// Bounds for credential fields. Usernames and passwords outside these
// lengths are rejected before any store access.
const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 6
	maxPasswordLen = 50
)

// ValidateCredentials checks a registration or login payload and returns a
// ValidationError carrying field-level messages, or nil when the payload is
// acceptable. Missing-field errors for username and password are combined
// into a single response; length violations are reported per field.
func ValidateCredentials(req CredentialsRequest) error {
	if req.Username == "" || req.Password == "" {
		fields := map[string]string{}
		if req.Username == "" {
			fields["username"] = "Username is required"
		}
		if req.Password == "" {
			fields["password"] = "Password is required"
		}
		return apperror.NewValidationError("All fields are required", nil).WithFields(fields)
	}

	if len(req.Username) < minUsernameLen {
		return apperror.NewValidationError("Invalid username format", nil).WithFields(map[string]string{
			"username": "Username must be at least 3 characters long",
		})
	}
	if len(req.Username) > maxUsernameLen {
		return apperror.NewValidationError("Invalid username format", nil).WithFields(map[string]string{
			"username": "Username cannot exceed 20 characters",
		})
	}

	if len(req.Password) < minPasswordLen {
		return apperror.NewValidationError("Invalid password format", nil).WithFields(map[string]string{
			"password": "Password must be at least 6 characters long",
		})
	}
	if len(req.Password) > maxPasswordLen {
		return apperror.NewValidationError("Invalid password format", nil).WithFields(map[string]string{
			"password": "Password cannot exceed 50 characters",
		})
	}

	return nil
}
