// Package validation wraps go-playground/validator for struct tag based
// input validation. Malformed inputs surface as coded validation errors
// rather than panics or silent defaults.
package validation
