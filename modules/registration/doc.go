// Package registration exposes the registration form engine over HTTP.
//
// The module is a thin host: it parses posted forms, writes sanitized values
// back into the form, asks the engine for verdicts and renders them as JSON
// in a {data, meta, error} envelope. It stores nothing.
//
//	svc := registration.NewService(form.NewEngine(log),
//		registration.WithCountries(src),
//		registration.WithLogger(log),
//	)
//	r.Mount("/", svc.Handle())
package registration
