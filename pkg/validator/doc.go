// Package validator provides declarative, field-aware validation rules.
//
// A Rule couples a boolean Check with a ValidationError describing the failure
// (field name, human-readable message, translation key and values). Rules are
// evaluated with Apply, which collects every failing rule into a
// ValidationErrors slice that satisfies the error interface.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("beneficiary", name),
//	    validator.MaxLenString("beneficiary", name, 25),
//	)
//	if err != nil {
//	    if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	        verrs.Get("beneficiary") // field-level messages
//	    }
//	}
//
// Lengths are measured in bytes, which is how TLV length prefixes count.
//
// # Error Handling
//
// ValidationErrors can be joined with package sentinels through errors.Join;
// ExtractValidationErrors and IsValidationError use errors.As and keep working
// on the joined error.
//
// The package has no global state and is safe for concurrent use.
package validator
