// Package validate checks decoded YAML resource documents against derived
// parameter schemas.
//
// Schemas are expected in camelCase, the spelling used in documents (see
// params.SpecSet.AsCamelCase). Validators never fail: every finding is a
// Warning, and an incomplete schema suppresses unused-parameter findings.
package validate
