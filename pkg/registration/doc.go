// Package registration defines the rule set of the user registration form:
// names, phone, postal code, email, credentials, address, birthdate, country,
// terms acceptance and the gender radio group.
//
// NewEngine returns a validator.Engine configured for the form. The country
// selector and terms checkbox are eager: their errors may be shown as soon
// as they are evaluated. Free-text fields only show errors once the user has
// typed something or tries to submit.
package registration
