// Command lintcfg resolves linter rule configurations.
//
// Usage:
//
//	# Print the effective configuration of a document
//	lintcfg resolve tslint.hcl
//
//	# Resolve one of the bundled project configurations as JSON
//	lintcfg resolve --profile ui-project --format json
//
//	# Re-resolve whenever the document changes
//	lintcfg resolve tslint.yaml --watch
//
//	# Convert a document to another format
//	lintcfg fmt tslint.json --output tslint.hcl
//
//	# List builtin presets and the custom rules of a document
//	lintcfg presets
//	lintcfg rules tslint.hcl
package main

func main() {
	Execute()
}
