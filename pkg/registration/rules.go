package registration

import (
	"log/slog"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// Field names of the registration form.
const (
	FirstName       = "firstName"
	LastName        = "lastName"
	City            = "city"
	Phone           = "phone"
	Zipcode         = "zipcode"
	Email           = "email"
	Username        = "username"
	Password        = "password"
	Address         = "address"
	Birthdate       = "birthdate"
	ConfirmPassword = "confirmPassword"
	Country         = "country"
	Terms           = "terms"

	// Gender is a radio group; no single input carries the name, so it is a
	// required group rather than a field rule.
	Gender = "gender"
)

// Whitespace is the class browsers treat as whitespace in form patterns.
// RE2's \s covers ASCII only, so the Unicode space separators, the line and
// paragraph separators, vertical tab and BOM are listed explicitly.
const Whitespace = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

// Expressions used by the pattern rules and their sanitizers.
const (
	NamePattern     = `^[A-Za-z` + Whitespace + `'-]+$`
	NameSanitize    = `[^A-Za-z` + Whitespace + `'-]`
	PhonePattern    = `^[\d` + Whitespace + `\-\+\(\)]{10,15}$`
	PhoneSanitize   = `[^\d` + Whitespace + `\-\+\(\)]`
	ZipcodePattern  = `^\d{3,10}$`
	ZipcodeSanitize = `[^\d]`
	EmailPattern    = `^[^` + Whitespace + `@]+@[^` + Whitespace + `@]+\.[^` + Whitespace + `@]+$`
	PasswordPattern = `.{8,}`

	// MinAddressLength is the minimum trimmed length of the address field.
	MinAddressLength = 10
)

// Rules returns the registration form's rules in evaluation order.
func Rules() []validator.FieldRule {
	return []validator.FieldRule{
		validator.Pattern(FirstName, NamePattern,
			validator.WithSanitize(NameSanitize),
			validator.WithMessage("may contain only letters, spaces, apostrophes and hyphens")),
		validator.Pattern(LastName, NamePattern,
			validator.WithSanitize(NameSanitize),
			validator.WithMessage("may contain only letters, spaces, apostrophes and hyphens")),
		validator.Pattern(City, NamePattern,
			validator.WithSanitize(NameSanitize),
			validator.WithMessage("may contain only letters, spaces, apostrophes and hyphens")),
		validator.Pattern(Phone, PhonePattern,
			validator.WithSanitize(PhoneSanitize),
			validator.WithMessage("must be 10 to 15 digits, spaces, dashes, plus signs or parentheses")),
		validator.Pattern(Zipcode, ZipcodePattern,
			validator.WithSanitize(ZipcodeSanitize),
			validator.WithMessage("must be 3 to 10 digits")),
		validator.Pattern(Email, EmailPattern,
			validator.WithMessage("must be a valid email address")),
		validator.Predicate(Username, validator.NonEmpty(),
			validator.WithMessage("is required")),
		validator.Pattern(Password, PasswordPattern,
			validator.WithMessage("must be at least 8 characters")),
		validator.Predicate(Address, validator.MinLength(MinAddressLength),
			validator.WithMessage("must be at least 10 characters")),
		validator.Predicate(Birthdate, validator.NonEmpty(),
			validator.WithMessage("is required")),
		validator.Predicate(ConfirmPassword, validator.EqualsField(Password),
			validator.WithMessage("must match the password")),
		validator.Predicate(Country, validator.NonEmpty(),
			validator.WithMessage("please select a country")),
		validator.Predicate(Terms, validator.GroupChecked(Terms),
			validator.WithMessage("must be accepted")),
	}
}

// Registry returns the registration rules as an immutable registry.
func Registry() *validator.Registry {
	return validator.MustRegistry(Rules()...)
}

// NewEngine returns the engine for the registration form: the rule set, the
// gender group requirement and eager errors for the country selector and the
// terms checkbox. A nil logger is ignored.
func NewEngine(log *slog.Logger, opts ...validator.Option) *validator.Engine {
	all := []validator.Option{
		validator.WithRequiredGroup(Gender),
		validator.WithEagerErrors(Country, Terms),
		validator.WithLogger(log),
	}
	return validator.New(Registry(), append(all, opts...)...)
}
