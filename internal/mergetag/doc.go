// Package mergetag checks the delimiter syntax of merge variables in template
// text.
//
// A merge variable is written {{name}}. Three independent passes run over the
// text, always in the same order:
//
//   - angle: <name> spans that are not HTML tags or comments
//   - square: [name] spans that are not CSS attribute selectors or code
//   - curly: {{...}} spans that are empty or contain forbidden characters
//
// Findings keep that order, and inside each pass they follow the text from
// left to right. The package performs no I/O and never fails on text input.
package mergetag
