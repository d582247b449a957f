// Package validation implements the business rules for guarantor intake.
//
// Validation happens at two levels:
//  1. Detailed validators (ValidateAddress, ValidatePersonalInfo, ...) return
//     a FieldError per offending field for inline display.
//  2. ValidateStep is the fast boolean gate the wizard uses to decide whether
//     a step may be advanced past. It reports no detail, only pass/fail.
//
// All functions here are pure; they never mutate their inputs and have no
// side effects.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// MaxFileSize is the largest accepted upload (10 MiB).
const MaxFileSize int64 = 10 * 1024 * 1024

// MinAge is the minimum guarantor age in years.
const MinAge = 18

// DateLayout is the wire format for dates of birth.
const DateLayout = "2006-01-02"

var (
	nameRe    = regexp.MustCompile(`^[a-zA-Z\s\-.']+$`)
	zipRe     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	regNumRe  = regexp.MustCompile(`(?i)^[A-Z]{2,3}-?\w{6,12}$`)
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
)

// allowedFileTypes are the MIME types accepted for attachments.
var allowedFileTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// FieldError is a single validation failure scoped to one field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects the failures from one validation pass. A nil or empty
// list means the input passed.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// ValidateAddress checks the postal address fields.
func ValidateAddress(a guarantor.Address) FieldErrors {
	var errs FieldErrors

	if l := len(a.Street); l < 5 || l > 100 {
		errs = append(errs, FieldError{"address.street", "Street address must be between 5 and 100 characters"})
	}
	if l := len(a.City); l < 2 || l > 50 {
		errs = append(errs, FieldError{"address.city", "City must be between 2 and 50 characters"})
	}
	if l := len(a.State); l < 2 || l > 50 {
		errs = append(errs, FieldError{"address.state", "State must be between 2 and 50 characters"})
	}
	if !zipRe.MatchString(a.Zip) {
		errs = append(errs, FieldError{"address.zip", "ZIP code must be in format 12345 or 12345-6789"})
	}

	return errs
}

// ValidatePersonalInfo checks name, relationship, address, and date of birth.
func ValidatePersonalInfo(form guarantor.FormData) FieldErrors {
	var errs FieldErrors

	if l := len(form.Name); l < 2 || l > 100 {
		errs = append(errs, FieldError{"guarantor_name", "Full name must be between 2 and 100 characters"})
	} else if !nameRe.MatchString(form.Name) {
		errs = append(errs, FieldError{"guarantor_name", "Name can only contain letters, spaces, hyphens, periods, and apostrophes"})
	}

	if l := len(form.Relationship); l < 3 || l > 200 {
		errs = append(errs, FieldError{"relationship_to_borrower", "Relationship must be between 3 and 200 characters"})
	}

	errs = append(errs, ValidateAddress(form.Address)...)

	dob, err := time.Parse(DateLayout, form.DateOfBirth)
	switch {
	case err != nil:
		errs = append(errs, FieldError{"date_of_birth", "Date of birth must be a valid date"})
	case dob.After(time.Now()):
		errs = append(errs, FieldError{"date_of_birth", "Date of birth cannot be in the future"})
	case Age(dob, time.Now()) < MinAge:
		errs = append(errs, FieldError{"date_of_birth", "Guarantor must be at least 18 years old"})
	}

	return errs
}

// ValidateProfessionalInfo checks occupation, employer, and the optional
// LinkedIn profile and company registration number. Empty optional fields are
// treated as absent and skipped.
func ValidateProfessionalInfo(form guarantor.FormData) FieldErrors {
	var errs FieldErrors

	if l := len(form.Occupation); l < 2 || l > 100 {
		errs = append(errs, FieldError{"occupation", "Occupation must be between 2 and 100 characters"})
	}
	if l := len(form.Employer); l < 2 || l > 150 {
		errs = append(errs, FieldError{"employer_or_business", "Employer/Business name must be between 2 and 150 characters"})
	}

	if form.LinkedIn != "" && !isLinkedInURL(form.LinkedIn) {
		errs = append(errs, FieldError{"linkedin_profile", "Must be a valid LinkedIn URL"})
	}
	if form.RegistrationNumber != "" && !regNumRe.MatchString(form.RegistrationNumber) {
		errs = append(errs, FieldError{"company_registration_number", "Invalid company registration number format"})
	}

	return errs
}

// ValidateAssociations checks the known-associations list and the comments
// field. Association entries are length-checked only; whitespace-only entries
// of valid length pass here and are stripped later by Clean.
func ValidateAssociations(form guarantor.FormData) FieldErrors {
	var errs FieldErrors

	for _, assoc := range form.Associations {
		if l := len(assoc); l < 2 || l > 150 {
			errs = append(errs, FieldError{"known_associations", "Each association must be between 2 and 150 characters"})
			break
		}
	}
	if len(form.Comments) > 1000 {
		errs = append(errs, FieldError{"comments", "Comments must not exceed 1000 characters"})
	}

	return errs
}

// ValidateStep is the wizard's step gate: 1 checks personal info, 2
// professional info, 3 associations. Any other step number fails closed.
func ValidateStep(step int, form guarantor.FormData) bool {
	switch step {
	case 1:
		return ValidatePersonalInfo(form).Valid()
	case 2:
		return ValidateProfessionalInfo(form).Valid()
	case 3:
		return ValidateAssociations(form).Valid()
	default:
		return false
	}
}

// ValidateFile checks a selected file before upload. The type check runs
// before the size check, so an oversized file of an unsupported type reports
// the type error. Returns nil when the file is acceptable.
func ValidateFile(file guarantor.FileInfo) error {
	if !allowedFileTypes[file.ContentType] {
		return errors.New("File type not supported. Please upload PDF, JPEG, PNG, or Word documents.")
	}
	if file.Size > MaxFileSize {
		return errors.New("File size must be less than 10MB.")
	}
	return nil
}

// Clean normalizes a form snapshot before submission: all string fields are
// trimmed, unset optional strings default to empty, and associations that are
// empty after trimming are dropped. Clean is idempotent.
func Clean(in guarantor.CreateInput) guarantor.CreateInput {
	out := in
	out.Name = strings.TrimSpace(in.Name)
	out.Relationship = strings.TrimSpace(in.Relationship)
	out.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
	out.Occupation = strings.TrimSpace(in.Occupation)
	out.Employer = strings.TrimSpace(in.Employer)
	out.LinkedIn = strings.TrimSpace(in.LinkedIn)
	out.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	out.Comments = strings.TrimSpace(in.Comments)
	out.Address = guarantor.Address{
		Street: strings.TrimSpace(in.Address.Street),
		City:   strings.TrimSpace(in.Address.City),
		State:  strings.TrimSpace(in.Address.State),
		Zip:    strings.TrimSpace(in.Address.Zip),
	}

	out.Associations = make([]string, 0, len(in.Associations))
	for _, assoc := range in.Associations {
		if strings.TrimSpace(assoc) != "" {
			out.Associations = append(out.Associations, assoc)
		}
	}

	return out
}

// Age returns the whole years between dob and now, decremented by one when the
// birthday has not yet occurred in the current year.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool { return emailRe.MatchString(s) }

// IsValidPhoneNumber reports whether s looks like a US phone number.
func IsValidPhoneNumber(s string) bool { return phoneRe.MatchString(s) }

// IsValidURL reports whether s parses as an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func isLinkedInURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Hostname() == "linkedin.com" || u.Hostname() == "www.linkedin.com"
}
